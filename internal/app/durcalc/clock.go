package durcalc

import (
	"strings"
	"time"

	"github.com/pkg/errors" // Wrap errors with stacktrace.

	"github.com/mintel/timespan/pkg/duration"
	ptime "github.com/mintel/timespan/pkg/time"
)

// Now is the instant "now" stands for in ParseInstant.
// Tests replace it.
var Now = time.Now

// ParseInstant parses s as an RFC 3339 timestamp, or the word "now".
func ParseInstant(s string) (time.Time, error) {
	if strings.EqualFold(s, "now") {
		return Now(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid time %q", s)
	}
	return t, nil
}

// AddInstant returns t+d, or an error wrapping duration.ErrOverflow if
// the result can't be represented.
func AddInstant(t time.Time, d duration.Duration) (res time.Time, err error) {
	defer recoverOverflow(&err)
	return ptime.Add(t, d), nil
}

// recoverOverflow stores a panic wrapping duration.ErrOverflow in err.
// Other panics are re-raised.
func recoverOverflow(err *error) {
	if p := recover(); p != nil {
		if perr, ok := p.(error); ok && errors.Is(perr, duration.ErrOverflow) {
			*err = perr
			return
		}
		panic(p)
	}
}

// Alignment is a way of moving an instant onto a multiple of a duration.
type Alignment string

// Alignments.
const (
	AlignFloor Alignment = "floor"
	AlignCeil  Alignment = "ceil"
	AlignPrev  Alignment = "prev"
	AlignNext  Alignment = "next"
)

// Alignments lists every Alignment, in the order shown in help text.
var Alignments = []string{string(AlignFloor), string(AlignCeil), string(AlignPrev), string(AlignNext)}

// Align moves t onto a multiple of d since the Unix epoch. A multiple
// outside the range of time.Time is an error wrapping duration.ErrOverflow.
func Align(t time.Time, d duration.Duration, a Alignment) (res time.Time, err error) {
	defer recoverOverflow(&err)
	if !d.IsPositive() {
		return time.Time{}, errors.Errorf("alignment interval must be positive, got %s", d)
	}
	switch a {
	case AlignFloor:
		return ptime.Truncate(t, d), nil
	case AlignCeil:
		return ptime.Ceil(t, d), nil
	case AlignPrev:
		return ptime.Prev(t, d), nil
	case AlignNext:
		return ptime.Next(t, d), nil
	}
	return time.Time{}, errors.Errorf("unknown alignment %q", a)
}
