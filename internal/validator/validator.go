// Package validator holds the custom validation rules shared by request
// binding and document validation.
package validator

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

var (
	once     sync.Once
	instance *validator.Validate
)

// now is replaced in tests.
var now = time.Now

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// validateDate checks that a string field holds a parseable date.
func validateDate(fl validator.FieldLevel) bool {
	_, ok := parseDate(strings.TrimSpace(fl.Field().String()))
	return ok
}

// validatePastDate checks that a date lies strictly before the current time.
// It accepts time.Time values and date strings.
func validatePastDate(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		t, ok := parseDate(strings.TrimSpace(field.String()))
		return ok && t.Before(now())
	case reflect.Struct:
		t, ok := field.Interface().(time.Time)
		return ok && !t.IsZero() && t.Before(now())
	}
	return false
}

// validateObjectID checks that a string is a 24-character hex ObjectID.
func validateObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}

// jsonTagName reports fields by their JSON name so errors match the request body.
func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonTagName)
	_ = v.RegisterValidation("date", validateDate)
	_ = v.RegisterValidation("pastdate", validatePastDate)
	_ = v.RegisterValidation("objectid", validateObjectID)
}

// Instance returns the validator used for stored documents. Rules are read
// from `validate` struct tags.
func Instance() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		register(instance)
	})
	return instance
}

// RegisterCustomValidators registers all custom validators with gin's validator
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}
