package model

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the domain layer.
var (
	// ErrInvalidInput matches every *InvalidInputError via errors.Is.
	ErrInvalidInput = errors.New("invalid input")

	ErrLenderNotFound      = errors.New("lender not found")
	ErrLenderExists        = errors.New("lender already registered")
	ErrApplicationNotFound = errors.New("credit application not found")
	ErrListingNotFound     = errors.New("listing not found")
	ErrNotApplicant        = errors.New("caller is not the applicant")
	ErrVersionConflict     = errors.New("concurrent modification")
)

// InvalidInputError reports a request the core refuses to compute. It is
// never replaced by zero values.
type InvalidInputError struct {
	Field  string
	Reason string
}

// NewInvalidInput builds an *InvalidInputError.
func NewInvalidInput(field, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match any InvalidInputError.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
