package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscompanion/campusplus/internal/app/models/dto"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto HTTP responses. Every
// controller funnels service errors through here so status codes and error
// codes stay consistent across endpoints.
func HandleAPIError(c *gin.Context, err error) {
	detail := buildErrorDetail(err)

	var status int
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrFileTooLarge),
		errors.Is(err, apperrors.ErrFileTypeUnsupported),
		errors.Is(err, apperrors.ErrUploadRequired):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrInvalidFormat):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNoteNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrSubjectsUnavailable),
		errors.Is(err, apperrors.ErrNotesUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrStorageUnavailable),
		errors.Is(err, apperrors.ErrNormalization):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	c.JSON(status, dto.APIResponse{Error: detail})
}

// buildErrorDetail picks the error code and carries over the message and the
// offending field when the error supplies them.
func buildErrorDetail(err error) *dto.ErrorDetail {
	code := dto.ErrorCodeInternalServer
	message := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrFileTooLarge),
		errors.Is(err, apperrors.ErrFileTypeUnsupported),
		errors.Is(err, apperrors.ErrUploadRequired):
		code = dto.ErrorCodeValidationFailed
		message = err.Error()
	case errors.Is(err, apperrors.ErrBadRequest):
		code = dto.ErrorCodeInvalidRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		code = dto.ErrorCodeInvalidCredentials
		message = "Invalid credentials"
	case errors.Is(err, apperrors.ErrTokenExpired):
		code = dto.ErrorCodeExpiredToken
		message = "Token expired"
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		code = dto.ErrorCodeInvalidToken
		message = "Invalid token"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		code = dto.ErrorCodeForbidden
		message = err.Error()
	case errors.Is(err, apperrors.ErrNoteNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		code = dto.ErrorCodeResourceNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrSubjectsUnavailable):
		code = dto.ErrorCodeSubjectsUnavailable
		message = "Subjects are temporarily unavailable"
	case errors.Is(err, apperrors.ErrNotesUnavailable):
		code = dto.ErrorCodeNotesUnavailable
		message = "Notes are temporarily unavailable"
	case errors.Is(err, apperrors.ErrStorageUnavailable), errors.Is(err, apperrors.ErrNormalization):
		code = dto.ErrorCodeStorageUnavailable
		message = "File storage is temporarily unavailable"
	}

	detail := dto.NewErrorDetail(code, message)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		if field, ok := custom.Details["field"].(string); ok {
			detail = detail.WithField(field)
		}
	}

	return detail
}
