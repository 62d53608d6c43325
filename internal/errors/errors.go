package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the run timed out.
	ExitErrorMismatch = 3   // Indicates a cross-order price mismatch.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorParse    = 5   // Indicates malformed or invalid input data.
	ExitErrorIO       = 6   // Indicates a report-writing failure.
	ExitErrorCanceled = 130 // Indicates the run was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an entity field that failed validation at
// construction or mutation time. It identifies which field failed and
// provides a human-readable explanation. Entities that fail validation
// never enter aggregation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field with a
// formatted message.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// ParseError encapsulates a failure to decode the input order document while
// preserving the original cause. It is surfaced before aggregation begins.
type ParseError struct {
	// Cause is the underlying decoding error.
	Cause error
}

// Error returns a formatted message describing the parse failure.
func (e ParseError) Error() string {
	return fmt.Sprintf("cannot parse order document: %v", e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e ParseError) Unwrap() error { return e.Cause }

// PriceMismatchError reports a cross-order price inconsistency for a single
// product. A mismatch signals a data-integrity problem in the input, not a
// transient condition: it aborts the entire aggregation run and no partial
// report is produced.
type PriceMismatchError struct {
	// Product is the name of the product with conflicting prices.
	Product string
	// Found is the price carried by the item that triggered the conflict.
	Found float64
	// Previous is the canonical price previously recorded for the product.
	Previous float64
}

// Error returns a formatted message identifying the product and both prices.
func (e PriceMismatchError) Error() string {
	return fmt.Sprintf("price mismatch for product %q: found $%.2f but previously had $%.2f",
		e.Product, e.Found, e.Previous)
}

// IOError represents a report-writing failure. It is surfaced only after
// aggregation has succeeded.
type IOError struct {
	// Path is the file path that could not be written.
	Path string
	// Cause is the underlying filesystem error.
	Cause error
}

// Error returns a formatted message describing the write failure.
func (e IOError) Error() string {
	return fmt.Sprintf("cannot write report %q: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying filesystem error.
func (e IOError) Unwrap() error { return e.Cause }

// TimeoutError represents an aggregation run timeout. It captures the
// operation name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
