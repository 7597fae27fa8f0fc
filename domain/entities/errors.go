package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrTicketNotFound is returned when no ticket matches the requested ID
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrTicketAlreadyCompleted is returned when a result is entered twice
	ErrTicketAlreadyCompleted = errors.New("ticket already has a result")

	// ErrInvalidBackup is returned for backup payloads without a history list
	ErrInvalidBackup = errors.New("invalid backup format")
)

// ValidationError reports malformed or out-of-range input
type ValidationError struct {
	Reason string
}

// NewValidationError builds a ValidationError from a format string
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// InsufficientDataError reports a history too small for smart generation
type InsufficientDataError struct {
	MinRequired int
	Actual      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient history: need at least %d games, have %d", e.MinRequired, e.Actual)
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsInsufficientDataError reports whether err wraps an InsufficientDataError
func IsInsufficientDataError(err error) bool {
	var target *InsufficientDataError
	return errors.As(err, &target)
}
