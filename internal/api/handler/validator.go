package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/inkwell/blog-service/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Failures come back as a domain.ValidationError so the central error handler
// renders them as a 422 with per-field messages.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			verr := domain.NewValidationError()
			for _, fe := range ve {
				verr.Add(fieldName(fe), fieldError(fe))
			}
			return verr
		}
		return err
	}
	return nil
}

// fieldName lowercases the struct field to match the JSON naming convention.
func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "PasswordConfirmation":
		return "password_confirmation"
	default:
		return strings.ToLower(fe.Field())
	}
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", field)
	case "email":
		return fmt.Sprintf("the %s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("the %s may not be greater than %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("the %s must be at least %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("the %s confirmation does not match", strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("the %s failed validation (%s)", field, fe.Tag())
	}
}
