package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var (
	ErrNameRequired      = NewValidationError("Name is required")
	ErrInvalidPrice      = NewValidationError("Price must be a number with up to 2 decimal places")
	ErrPaidAboveRegular  = NewValidationError("Paid price must be less than the regular price")
	ErrCategoryRequired  = NewValidationError("Category and subcategory names are required")
	ErrNotCustomCategory = NewValidationError("Only custom categories can be modified")
)
