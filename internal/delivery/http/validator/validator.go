// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "dezapego/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator instance used for request payloads.
type CustomValidator struct {
	validate *playground.Validate
}

// New builds the validator Echo delegates struct validation to.
func New() *CustomValidator {
	return &CustomValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Failures surface as the standard
// validation error so the error handler renders them as 400s.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
