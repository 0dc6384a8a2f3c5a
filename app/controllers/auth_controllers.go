package controllers

import (
	"net/http"

	"github.com/pethive/pethive/app/services"
	"github.com/pethive/pethive/pkg/bind"
	"github.com/pethive/pethive/pkg/logger"
	"github.com/pethive/pethive/pkg/response"
	"github.com/pethive/pethive/pkg/session"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type registerInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body registerInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	identity, err := c.service.Register(body.Email, body.Password, body.Name)
	if err != nil {
		serviceError(w, err)
		return
	}

	sess := session.FromCtx(r)
	c.service.StartSession(sess, identity)
	if err := sess.Save(w); err != nil {
		logger.Error("auth: session save failed", "error", err)
	}
	response.Success(w, map[string]interface{}{"user": identity})
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	identity, err := c.service.Login(body.Email, body.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	sess := session.FromCtx(r)
	c.service.StartSession(sess, identity)
	if err := sess.Save(w); err != nil {
		logger.Error("auth: session save failed", "error", err)
	}
	response.Success(w, map[string]interface{}{"user": identity})
}

type mockLoginInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// MockLogin is the development shortcut; locked out of production.
func (c *AuthController) MockLogin(w http.ResponseWriter, r *http.Request) {
	if c.service.IsProductionLocked() {
		response.Error(w, http.StatusForbidden, "Not available in production")
		return
	}

	var body mockLoginInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	identity, err := c.service.MockLogin(body.Email, body.Name)
	if err != nil {
		serviceError(w, err)
		return
	}

	sess := session.FromCtx(r)
	c.service.StartSession(sess, identity)
	if err := sess.Save(w); err != nil {
		logger.Error("auth: session save failed", "error", err)
	}
	response.Success(w, map[string]interface{}{"user": identity})
}

type googleLoginInput struct {
	Token string `json:"token" validate:"required"`
}

func (c *AuthController) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var body googleLoginInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	identity, err := c.service.GoogleLogin(body.Token)
	if err != nil {
		serviceError(w, err)
		return
	}

	sess := session.FromCtx(r)
	c.service.StartSession(sess, identity)
	if err := sess.Save(w); err != nil {
		logger.Error("auth: session save failed", "error", err)
	}
	response.Success(w, map[string]interface{}{"user": identity})
}

// Me returns the current identity, or null. Always 200: the client polls
// this and must not see 401 noise while logged out.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	identity := c.service.CurrentUser(session.FromCtx(r))
	response.Success(w, map[string]interface{}{"user": identity})
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	c.service.Logout(sess)
	if err := sess.Save(w); err != nil {
		logger.Error("auth: session save failed", "error", err)
	}
	response.Success(w, map[string]string{"message": "Logged out"})
}
