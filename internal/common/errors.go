// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Ingestion errors.
	ErrValidation  = errors.New("upload validation failed")
	ErrEmptyUpload = errors.New("upload contains no rows")
	ErrRowCap      = errors.New("upload exceeds maximum row count")
	ErrFileSize    = errors.New("upload exceeds maximum file size")

	// Storage errors. Write faults are surfaced to the caller; read faults
	// degrade to empty results at the repository boundary.
	ErrPersistence = errors.New("persistence failure")
	ErrReadFault   = errors.New("storage read fault")
	ErrNotFound    = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user inline.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
