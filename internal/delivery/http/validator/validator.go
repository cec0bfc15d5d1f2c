// Package validator adapts go-playground validation to Echo's Validator hook.
package validator

import (
	"errors"

	domainerrors "samity/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// EchoValidator wraps a validator instance for use as echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates a validator that reads the struct tags on request DTOs.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator. Tag violations surface as the
// validation-failed application error so the error handler renders them
// uniformly.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return domainerrors.ErrValidationFailed.
				WithDetails(fieldErrs[0].Field()).
				WrapMessage("request validation failed")
		}

		return domainerrors.ErrValidationFailed.WrapMessage("request validation failed")
	}

	return nil
}
