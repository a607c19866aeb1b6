package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // algorithms disagreed on a result
	ExitErrorConfig   = 4 // bad flag, config value or operand
	ExitErrorOverflow = 5
	ExitErrorCanceled = 130 // SIGINT
)

// ErrOverflow is the sentinel matched by every OverflowError.
var ErrOverflow = errors.New("integer overflow")

// ConfigError reports unusable user input: a bad flag, an invalid config
// value or a missing argument.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError marks a failure raised by a calculator. Its message is
// the cause's message.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports an operation that exceeded its time limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap lets errors.Is(err, context.DeadlineExceeded) match a TimeoutError.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError reports an operand or field that failed validation, for
// example a non-numeric operand or an unknown algorithm name.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// OverflowError reports an integer result that cannot be represented in the
// operation's result type. Numeric operations never wrap or saturate; they
// return this error instead.
type OverflowError struct {
	// Operation is the name of the operation that overflowed (e.g., "sum").
	Operation string
	// Detail describes the operands, for example "9223372036854775807 + 1".
	Detail string
}

// NewOverflowError creates an OverflowError with a formatted detail message.
func NewOverflowError(operation, format string, a ...any) error {
	return OverflowError{Operation: operation, Detail: fmt.Sprintf(format, a...)}
}

func (e OverflowError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Operation, ErrOverflow)
	}
	return fmt.Sprintf("%s: %v: %s", e.Operation, ErrOverflow, e.Detail)
}

// Unwrap returns ErrOverflow so callers can test with errors.Is.
func (e OverflowError) Unwrap() error { return ErrOverflow }

// WrapError prefixes err with a formatted message, keeping it in the chain.
// A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit code that represents it.
// A nil error maps to ExitSuccess.
func ExitCode(err error) int {
	var configErr ConfigError
	var validationErr ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrOverflow):
		return ExitErrorOverflow
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
