package errors

import (
	"errors"
	"fmt"
)

// Domain errors for the rewards ledger. Repositories and services share
// these so handlers can branch on the outcome of an operation.
var (
	ErrProfileNotFound     = errors.New("rewards profile not found")
	ErrProfileExists       = errors.New("rewards profile already exists for this user")
	ErrInvalidAmount       = errors.New("amount must be a positive integer")
	ErrInvalidQuantity     = errors.New("quantity must be a positive integer")
	ErrRewardUnavailable   = errors.New("reward unavailable")
	ErrInsufficientCredits = errors.New("not enough credits")
)

// ValidationError reports which catalog field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation creates a field-specific validation error
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
