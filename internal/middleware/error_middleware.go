package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/pkg/apperrors"
	"github.com/yigit/ssis/internal/pkg/auth"
	"github.com/yigit/ssis/internal/pkg/dberrors"
	"github.com/yigit/ssis/internal/pkg/logger"
)

// HandleAPIError translates service and storage errors into HTTP responses.
// It is the only place where errors are mapped to status codes.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled request error")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	message, field := describe(err)

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, withField(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message), field)

	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)

	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, withField(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message), field)

	case dberrors.IsUniqueViolation(err):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Record already exists").
			WithDetails(dberrors.ConstraintName(err))

	case dberrors.IsForeignKeyViolation(err):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Referenced record does not exist").
			WithDetails(dberrors.ConstraintName(err))

	case dberrors.IsCheckViolation(err):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Value out of range").
			WithDetails(dberrors.ConstraintName(err))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, message)

	case apperrors.Is(err, apperrors.ErrTokenExpired, auth.ErrExpiredToken):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")

	case apperrors.Is(err, apperrors.ErrTokenInvalid, auth.ErrInvalidToken, auth.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message)

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, err.Error())
	}
}

// describe extracts the client-facing message and field of err
func describe(err error) (string, string) {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		return custom.Error(), custom.Field
	}
	return err.Error(), ""
}

func withField(detail *dto.ErrorDetail, field string) *dto.ErrorDetail {
	if field == "" {
		return detail
	}
	return detail.WithField(field)
}

// NotFound responds 404 for a lookup that matched no row
func NotFound(c *gin.Context, message string) {
	HandleAPIError(c, apperrors.NewResourceNotFoundError(message))
}
