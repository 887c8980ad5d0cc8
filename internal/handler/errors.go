// Package handler contains HTTP handlers for the API.
package handler

import (
	"errors"

	apperrors "moviestream/internal/errors"
	"moviestream/internal/logging"
	"moviestream/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError is the single place where domain errors become HTTP statuses.
func respondError(c *gin.Context, err error) {
	var vErr *apperrors.ValidationError

	switch {
	case errors.As(err, &vErr):
		response.ValidationError(c, vErr.Error(), vErr.Fields)
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidOrExpiredToken),
		errors.Is(err, apperrors.ErrConflict):
		response.BadRequest(c, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, apperrors.ErrTooManyRequests):
		response.TooManyRequests(c, err.Error())
	default:
		logging.FromContext(c.Request.Context()).WithError(err).Error("request failed")
		response.InternalError(c)
	}
}

// respondBindError reports a request body that failed to decode or bind.
func respondBindError(c *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make([]apperrors.FieldError, len(vErrs))
		for i, fe := range vErrs {
			fields[i] = apperrors.FieldError{Field: fe.Field(), Rule: fe.Tag()}
		}
		respondError(c, apperrors.NewValidationError("request", fields...))
		return
	}
	response.BadRequest(c, "invalid request body")
}
