package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/pkg/apperrors"
	"github.com/yigit/ssis/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

func serveError(t *testing.T, err error) (int, errorBody) {
	t.Helper()
	router := gin.New()
	router.GET("/", func(c *gin.Context) { HandleAPIError(c, err) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
		field   string
	}{
		{"validation", apperrors.NewValidationError("No codes provided"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "No codes provided", ""},
		{"not found", apperrors.NewResourceNotFoundError("College not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "College not found", ""},
		{"conflict", apperrors.NewConflictError("email", "Email already in use", apperrors.ErrEmailTaken), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already in use", "email"},
		{"unique violation", fmt.Errorf("failed to create college: %w", &pgconn.PgError{Code: "23505", ConstraintName: "colleges_pkey"}), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Record already exists", ""},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Referenced record does not exist", ""},
		{"check violation", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Value out of range", ""},
		{"bad credentials", apperrors.NewUnauthorizedError(apperrors.ErrInvalidCredentials, "Invalid credentials"), http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials", ""},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired", ""},
		{"invalid token", fmt.Errorf("%w: bad signature", auth.ErrInvalidToken), http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token", ""},
		{"unauthorized", apperrors.NewUnauthorizedError(apperrors.ErrUnauthorized, "User no longer exists"), http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "User no longer exists", ""},
		{"unhandled", errors.New("connection refused"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "connection refused", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serveError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.False(t, body.Success)
			assert.Equal(t, string(tt.code), body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
			assert.Equal(t, tt.field, body.Error.Field)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "ssis"})
	mw := NewAuthMiddleware(jwtService, "access_token", zerolog.Nop())

	router := gin.New()
	router.GET("/private", mw.RequireAuth(), func(c *gin.Context) {
		username, _ := CurrentUsername(c)
		c.String(http.StatusOK, username+"|"+c.GetString(ContextEmail))
	})

	token, _, err := jwtService.GenerateToken("maria", "maria@example.com")
	require.NoError(t, err)
	stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		Username: "maria",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
		code   dto.ErrorCode
	}{
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: token}) }, http.StatusOK, ""},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK, ""},
		{"missing", func(r *http.Request) {}, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound},
		{"tampered", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token+"x") }, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"expired", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: stale}) }, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "maria|maria@example.com", w.Body.String())
				return
			}
			var body errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, string(tt.code), body.Error.Code)
		})
	}
}

type brokenDenylist struct{}

func (brokenDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	return errors.New("redis: connection refused")
}

func (brokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func TestRequireAuthDenylist(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "ssis"})
	token, expiresAt, err := jwtService.GenerateToken("maria", "maria@example.com")
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	serve := func(d auth.Denylist) *httptest.ResponseRecorder {
		mw := NewAuthMiddleware(jwtService, "access_token", zerolog.Nop()).WithDenylist(d)
		router := gin.New()
		router.GET("/private", mw.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	denylist := auth.NewMemoryDenylist()
	assert.Equal(t, http.StatusNoContent, serve(denylist).Code)

	require.NoError(t, denylist.Revoke(context.Background(), claims.ID, expiresAt))
	w := serve(denylist)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(dto.ErrorCodeInvalidToken), body.Error.Code)

	assert.Equal(t, http.StatusInternalServerError, serve(brokenDenylist{}).Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/api/home", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/home?x=1", nil))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/api/home?x=1", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
}

func TestBindJSON(t *testing.T) {
	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var req dto.CollegeRequest
		if !BindJSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, req)
	})

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		return w
	}

	assert.Equal(t, http.StatusOK, post(`{"code":"CCS","name":"Computer Studies"}`).Code)

	w := post(`{"code":"CCS"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(dto.ErrorCodeValidationFailed), body.Error.Code)
	assert.Equal(t, "name", body.Error.Field)

	assert.Equal(t, http.StatusBadRequest, post(`{not json`).Code)
}
