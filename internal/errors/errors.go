// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrMissingAPIKey      = errors.New("api key not configured")
	ErrEmptyQuery         = errors.New("empty search query")
	ErrEmptyResponse      = errors.New("empty response from service")
	ErrServiceUnavailable = errors.New("analysis service unavailable")
	ErrNoStockLoaded      = errors.New("no stock data loaded")
	ErrNoPlatformSelected = errors.New("no platform selected")
	ErrConfigInvalid      = errors.New("invalid configuration")
	ErrInputValidation    = errors.New("input validation failed")
)

// AnalysisError represents a failure of an external analysis call.
type AnalysisError struct {
	Query     string
	Operation string
	Err       error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis error [%s] %q: %v", e.Operation, e.Query, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError.
func NewAnalysisError(operation, query string, err error) *AnalysisError {
	return &AnalysisError{
		Query:     query,
		Operation: operation,
		Err:       err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// TransitionError represents a rejected view-state transition.
type TransitionError struct {
	From   string
	To     string
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition error %s -> %s: %s", e.From, e.To, e.Reason)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to, reason string) *TransitionError {
	return &TransitionError{
		From:   from,
		To:     to,
		Reason: reason,
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
