package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/pkg/auth"
)

// Context keys set by RequireAuth
const (
	ContextUsername = "username"
	ContextEmail    = "email"
)

// AuthMiddleware gates handlers behind a valid access token
type AuthMiddleware struct {
	jwtService *auth.JWTService
	denylist   auth.Denylist
	cookieName string
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware reading tokens from cookieName
// or the Authorization header
func NewAuthMiddleware(jwtService *auth.JWTService, cookieName string, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		cookieName: cookieName,
		logger:     logger,
	}
}

// WithDenylist rejects tokens revoked by logout
func (m *AuthMiddleware) WithDenylist(d auth.Denylist) *AuthMiddleware {
	m.denylist = d
	return m
}

// RequireAuth aborts with 401 unless the request carries a valid token
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := RequestToken(c, m.cookieName)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeTokenNotFound, "Authentication required")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected access token")
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		if m.denylist != nil {
			revoked, err := m.denylist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				HandleAPIError(c, fmt.Errorf("failed to check token revocation: %w", err))
				return
			}
			if revoked {
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Token has been revoked")
				return
			}
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// RequestToken prefers the auth cookie and falls back to the Authorization header
func RequestToken(c *gin.Context, cookieName string) (string, bool) {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie, true
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	tokenString, err := auth.ExtractBearerToken(header)
	if err != nil {
		return "", false
	}
	return tokenString, true
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// CurrentUsername returns the username stored by RequireAuth
func CurrentUsername(c *gin.Context) (string, bool) {
	username := c.GetString(ContextUsername)
	return username, username != ""
}
