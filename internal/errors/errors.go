// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrMissingToken       = errors.New("discord token is not configured")
	ErrMissingAPIKey      = errors.New("api key is not configured")
	ErrInsufficientData   = errors.New("insufficient price history")
	ErrSymbolNotFound     = errors.New("symbol not found")
	ErrNoEvents           = errors.New("no economic events for date")
	ErrNoHighImpactEvents = errors.New("no high-importance events for date")
	ErrBadDateFormat      = errors.New("invalid date format")
	ErrMissingArgument    = errors.New("required argument missing")
	ErrConfigInvalid      = errors.New("invalid configuration")
)

// UpstreamError represents a failure from an external provider.
type UpstreamError struct {
	Provider  string
	Operation string
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error [%s] %s: %v", e.Provider, e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates a new UpstreamError.
func NewUpstreamError(provider, operation string, err error) *UpstreamError {
	return &UpstreamError{
		Provider:  provider,
		Operation: operation,
		Err:       err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
