// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidOrder     = errors.New("invalid order")
	ErrOrderRejected    = errors.New("order rejected")
	ErrOrderNotFound    = errors.New("order not found")
	ErrPositionNotFound = errors.New("position not found")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrDatabaseError    = errors.New("database error")
)

// IntegrityError reports a numeric field that passed the signal grammar
// but failed to parse as a number when the sizing engine consumed it.
// It indicates a parser/engine contract breach, not user error, and must
// never be silently swallowed.
type IntegrityError struct {
	Field string
	Value string
	Err   error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity error: field %s holds unparseable value %q: %v", e.Field, e.Value, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// NewIntegrityError creates a new IntegrityError.
func NewIntegrityError(field, value string, err error) *IntegrityError {
	return &IntegrityError{
		Field: field,
		Value: value,
		Err:   err,
	}
}

// BrokerError represents an error from the broker layer.
type BrokerError struct {
	Op      string
	Symbol  string
	Message string
	Err     error
}

func (e *BrokerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("broker error [%s] %s: %s: %v", e.Op, e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("broker error [%s] %s: %s", e.Op, e.Symbol, e.Message)
}

func (e *BrokerError) Unwrap() error {
	return e.Err
}

// NewBrokerError creates a new BrokerError.
func NewBrokerError(op, symbol, message string, err error) *BrokerError {
	return &BrokerError{
		Op:      op,
		Symbol:  symbol,
		Message: message,
		Err:     err,
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
