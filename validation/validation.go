// Package validation contains custom validation functions for the application to use for input validation.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"TaskManagerService/models"
)

// StatusValidator checks that the field value is one of the known task statuses.
func StatusValidator(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.StatusPending, models.StatusInProgress, models.StatusCompleted:
		return true
	}
	return false
}

// NotBlank is a validation function that rejects values which are empty or
// contain only whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("statusValidator", StatusValidator)
	v.RegisterValidation("notBlank", NotBlank)
	return v
}
