// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/app/services"
	"github.com/yigit/ssis/internal/middleware"
)

// CookieConfig describes the auth cookie issued on signup and login
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	cookie      CookieConfig
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, cookie CookieConfig, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// setAuthCookie writes the token as an HttpOnly, SameSite=Lax cookie.
// gin renders a negative maxAge as Max-Age=0, which expires the cookie.
func (c *AuthController) setAuthCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, token, maxAge, "/", "", c.cookie.Secure, true)
}

// Signup handles user registration
// @Summary Register a new user
// @Description Creates an account and signs the user in by setting the auth cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Account information"
// @Success 201 {object} dto.UserResponse "User registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Username or email already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid signup request payload")
		return
	}

	result, err := c.authService.Signup(ctx.Request.Context(), req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Signup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setAuthCookie(ctx, result.Token, result.ExpiresIn)
	ctx.JSON(http.StatusCreated, result.User)
}

// Login handles user login
// @Summary User login
// @Description Verifies credentials, records the login time and sets the auth cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.UserResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid login request payload")
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		c.logger.Warn().Err(err).Str("login", req.UsernameOrEmail).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("username", result.User.Username).Msg("User logged in successfully")
	c.setAuthCookie(ctx, result.Token, result.ExpiresIn)
	ctx.JSON(http.StatusOK, result.User)
}

// Me returns the profile of the authenticated user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	username, ok := middleware.CurrentUsername(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.Me(ctx.Request.Context(), username)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// Logout revokes the presented token and clears the auth cookie
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if token, ok := middleware.RequestToken(ctx, c.cookie.Name); ok {
		if err := c.authService.Logout(ctx.Request.Context(), token); err != nil {
			c.logger.Error().Err(err).Msg("Logout could not revoke token")
		}
	}
	c.setAuthCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
