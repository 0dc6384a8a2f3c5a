// Package controllers holds the HTTP handlers: bind the body, call the
// service, translate errors to the response envelope.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pethive/pethive/app/services"
	"github.com/pethive/pethive/pkg/response"
)

// paramUint reads a numeric URL parameter; 0 means absent or malformed.
func paramUint(r *http.Request, name string) uint {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// serviceError maps the service sentinels onto the response envelope.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		response.Conflict(w, "User already exists")
	case errors.Is(err, services.ErrSlugTaken):
		response.Conflict(w, "Slug already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrCategoryInUse):
		response.ValidationError(w, map[string]string{
			"category": "Cannot delete category with existing products",
		})
	case errors.Is(err, services.ErrInvalidStatus):
		response.ValidationError(w, map[string]string{
			"status": "Unknown order status",
		})
	case errors.Is(err, services.ErrStoreUnavailable):
		response.Unavailable(w, "Store temporarily unavailable")
	default:
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
