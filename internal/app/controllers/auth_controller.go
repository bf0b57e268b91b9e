package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscompanion/campusplus/internal/app/models/dto"
	"github.com/campuscompanion/campusplus/internal/app/services"
	"github.com/campuscompanion/campusplus/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login verifies credentials and issues an access token.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Email and password are required"),
		})
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Me returns the authenticated user's profile.
func (c *AuthController) Me(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	profile, err := c.authService.Me(ctx.Request.Context(), session.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profile})
}
