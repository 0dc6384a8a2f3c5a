package middleware

import (
	"context"
	"net/http"

	"github.com/pethive/pethive/pkg/response"
)

// Principal is the authenticated identity attached to a request. Kind is
// "user" for store-backed accounts and "demo" for session-scoped fallback
// identities synthesized while the store is unreachable.
type Principal struct {
	ID      uint   `json:"id"`
	Kind    string `json:"kind"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Picture string `json:"picture,omitempty"`
}

// ResolverFunc turns a request (its session) into a Principal.
// The application wires its auth service in as the resolver.
type ResolverFunc func(r *http.Request) (*Principal, bool)

type principalKey struct{}

// Auth returns middleware that requires an authenticated session.
// Unresolved requests are rejected with 401 before reaching the handler.
func Auth(resolve ResolverFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := resolve(r)
			if !ok || p == nil {
				response.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromCtx returns the authenticated principal, if any.
func PrincipalFromCtx(r *http.Request) (*Principal, bool) {
	p, ok := r.Context().Value(principalKey{}).(*Principal)
	return p, ok
}

// UserIDFromCtx returns the store-backed user ID of the principal.
// Demo principals have no durable ID and report false.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	p, ok := PrincipalFromCtx(r)
	if !ok || p.ID == 0 {
		return 0, false
	}
	return p.ID, true
}

// RoleFromCtx returns the principal's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	p, ok := PrincipalFromCtx(r)
	if !ok {
		return "", false
	}
	return p.Role, true
}
