// Package controllers maps HTTP requests onto the service layer and
// translates business errors into response envelopes.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Register(cc *ctx.Context) {
	var req registerRequest
	if !cc.BindJSON(&req) {
		return
	}
	user, token, err := c.service.Register(cc.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, domain.ErrEmailTaken) {
		cc.ValidationError(map[string]string{"email": "email already registered"})
		return
	}
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not register user")
		return
	}
	cc.Created(map[string]any{"user": user, "token": token})
}

func (c *AuthController) Login(cc *ctx.Context) {
	var req loginRequest
	if !cc.BindJSON(&req) {
		return
	}
	user, token, err := c.service.Login(cc.Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		cc.Error(http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not log in")
		return
	}
	cc.Success(map[string]any{"user": user, "token": token})
}
