package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape sequences used when printing errors.
// It lets this package stay independent of the theme system.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// HandleCalculationError prints a user-facing description of err to out and
// returns the matching exit code. A nil colors value disables coloring.
//
// Parameters:
//   - err: The error returned by a calculation (nil means success).
//   - duration: The time spent before the failure, shown when non-zero.
//   - out: The writer for the status line.
//   - colors: The escape sequences to use, or nil.
//
// Returns:
//   - int: The exit code for err.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	code := ExitCode(err)
	var overflowErr OverflowError
	switch code {
	case ExitErrorOverflow:
		detail := err.Error()
		if errors.As(err, &overflowErr) && overflowErr.Detail != "" {
			detail = overflowErr.Detail
		}
		fmt.Fprintf(out, "Status: %sOverflow%s%s. The result does not fit the integer type (%s).\n",
			colors.Red(), colors.Reset(), suffix, detail)
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: %sFailure (Timeout)%s%s. The execution limit was reached.\n",
			colors.Red(), colors.Reset(), suffix)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "Status: %sCanceled%s%s.\n", colors.Yellow(), colors.Reset(), suffix)
	case ExitErrorConfig:
		fmt.Fprintf(out, "Status: %sInvalid input%s: %v\n", colors.Red(), colors.Reset(), err)
	default:
		fmt.Fprintf(out, "Status: %sFailure%s%s. Unexpected error: %v\n", colors.Red(), colors.Reset(), suffix, err)
	}
	return code
}
