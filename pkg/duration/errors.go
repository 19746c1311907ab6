package duration

import (
	"github.com/pkg/errors" // Wrap errors with stacktrace.
)

var (
	// ErrOverflow is the cause of panics raised by the unchecked arithmetic
	// methods, and is returned by Parse when a value is out of range.
	ErrOverflow = errors.New("duration overflow")

	// ErrConversionRange is returned when a value can't be represented
	// on the other side of a conversion.
	ErrConversionRange = errors.New("duration conversion out of range")

	// ErrDivisionByZero is returned by callers that surface a failed
	// CheckedDiv with a zero divisor as an error.
	ErrDivisionByZero = errors.New("duration division by zero")

	// ErrSyntax is returned by Parse for malformed input.
	ErrSyntax = errors.New("invalid duration syntax")
)

// overflowPanic panics with an error wrapping ErrOverflow.
func overflowPanic(msg string) {
	panic(errors.Wrap(ErrOverflow, msg))
}
