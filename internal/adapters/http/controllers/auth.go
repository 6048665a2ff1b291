package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/storefront/internal/adapters/http/handlers"
	"github.com/rafaelleal24/storefront/internal/core/dto"
	"github.com/rafaelleal24/storefront/internal/core/service"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
)

type AuthController struct {
	authService *service.AuthService
}

type LoginResponse struct {
	Token     string    `json:"token" example:"3f2c0a9e-6d0b-4b8e-9a43-1c5d2f7e8b10"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary     Admin login
// @Description Exchanges admin credentials for a bearer token
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request body     dto.LoginRequest true "Credentials"
// @Success     200     {object} LoginResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Router      /api/v1/admin/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	session, err := ac.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}

// Logout godoc
// @Summary     Admin logout
// @Description Revokes the bearer token
// @Tags        admin
// @Security    BearerAuth
// @Success     204
// @Failure     401 {object} handlers.ErrorResponse
// @Router      /api/v1/admin/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.authService.Logout(c.Request.Context(), handlers.BearerToken(c)); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
