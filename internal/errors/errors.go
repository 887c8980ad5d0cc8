// Package errors provides custom error types for the application.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Handlers map these to HTTP status codes; entity errors wrap them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// User errors
var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrUserAlreadyExists  = fmt.Errorf("email %w", ErrConflict)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAccountOwner    = fmt.Errorf("you can only modify your own account: %w", ErrForbidden)
)

// Movie errors
var (
	ErrMovieNotFound = fmt.Errorf("movie %w", ErrNotFound)
)

// Auth errors
var (
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrUnauthorized)
)

// Password reset errors
var (
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrEmailDelivery         = errors.New("failed to deliver email")
)

// Rate limit errors
var (
	ErrTooManyRequests = errors.New("too many requests, please try again later")
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError carries the offending fields of a rejected document.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

// NewValidationError creates a ValidationError for entity.
func NewValidationError(entity string, fields ...FieldError) *ValidationError {
	return &ValidationError{Entity: entity, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("invalid %s", e.Entity)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s failed on '%s'", f.Field, f.Rule)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, ", "))
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
