package controllers

import (
	"net/http"

	"github.com/pethive/pethive/app/services"
	"github.com/pethive/pethive/pkg/bind"
	"github.com/pethive/pethive/pkg/middleware"
	"github.com/pethive/pethive/pkg/response"
)

type ChatController struct {
	service *services.ChatService
}

func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{service: service}
}

type messageInput struct {
	Content string `json:"content" validate:"required"`
}

func (c *ChatController) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	msgs, err := c.service.MyMessages(principal.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"messages": msgs})
}

func (c *ChatController) Post(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body messageInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	msg, err := c.service.Post(principal.ID, body.Content)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Created(w, map[string]interface{}{"message": msg})
}

func (c *ChatController) Edit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body messageInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	msg, err := c.service.Edit(principal.ID, paramUint(r, "id"), body.Content)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"message": msg})
}

func (c *ChatController) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := c.service.Delete(principal.ID, paramUint(r, "id")); err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Deleted"})
}

func (c *ChatController) ClearMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := c.service.ClearMine(principal.ID); err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Chat cleared"})
}
