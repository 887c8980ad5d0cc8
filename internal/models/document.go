// Package models defines data structures for the application.
package models

import (
	"fmt"
	"strings"
	"time"

	apperrors "moviestream/internal/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the calendar-date format accepted by the API.
const DateLayout = "2006-01-02"

// Document is implemented by every entity stored through the generic repository.
type Document interface {
	GetID() primitive.ObjectID
	SetID(id primitive.ObjectID)
	// Touch stamps timestamps; created is true on insert.
	Touch(now time.Time, created bool)
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.UTC(), nil
}

// parseDateField parses a request date and reports failures as a validation error.
func parseDateField(entity, field, value string) (time.Time, error) {
	t, err := ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(entity, apperrors.FieldError{Field: field, Rule: "date"})
	}
	return t, nil
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
