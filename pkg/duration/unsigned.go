package duration

import (
	"math"

	"github.com/pkg/errors" // Wrap errors with stacktrace.
)

// Unsigned is a non-negative span of time: whole seconds plus nanoseconds
// in [0, 1e9). Its seconds range is twice that of Duration, so conversions
// between the two can fail in both directions.
type Unsigned struct {
	secs  uint64
	nanos uint32
}

// NewUnsigned returns an Unsigned of secs plus nanos. Nanoseconds beyond
// one second are carried into secs; it panics with an error wrapping
// ErrOverflow if that carry overflows.
func NewUnsigned(secs uint64, nanos uint32) Unsigned {
	if nanos >= nanosPerSecond {
		carry := uint64(nanos / nanosPerSecond)
		if secs > math.MaxUint64-carry {
			overflowPanic("overflow constructing unsigned duration")
		}
		secs += carry
		nanos %= nanosPerSecond
	}
	return Unsigned{secs, nanos}
}

// Secs returns the whole seconds of u.
func (u Unsigned) Secs() uint64 { return u.secs }

// SubsecNanos returns the fractional part of u in nanoseconds.
func (u Unsigned) SubsecNanos() uint32 { return u.nanos }

// IsZero returns true if u is zero.
func (u Unsigned) IsZero() bool { return u.secs == 0 && u.nanos == 0 }

// FromUnsigned converts u to a Duration. It returns an error wrapping
// ErrConversionRange if u's seconds exceed math.MaxInt64.
func FromUnsigned(u Unsigned) (Duration, error) {
	if u.secs > math.MaxInt64 {
		return Duration{}, errors.Wrapf(ErrConversionRange, "%d seconds overflows int64", u.secs)
	}
	return Duration{int64(u.secs), int32(u.nanos)}, nil
}

// ToUnsigned converts d to an Unsigned. It returns an error wrapping
// ErrConversionRange if d is negative.
func (d Duration) ToUnsigned() (Unsigned, error) {
	if d.seconds < 0 || d.nanoseconds < 0 {
		return Unsigned{}, errors.Wrapf(ErrConversionRange, "negative duration %s", d)
	}
	return Unsigned{uint64(d.seconds), uint32(d.nanoseconds)}, nil
}

// AddUnsigned returns d+u. It panics if u doesn't fit a Duration or the
// sum overflows.
func (d Duration) AddUnsigned(u Unsigned) Duration {
	return d.Add(mustFromUnsigned(u))
}

// SubUnsigned returns d-u. It panics if u doesn't fit a Duration or the
// difference overflows.
func (d Duration) SubUnsigned(u Unsigned) Duration {
	return d.Sub(mustFromUnsigned(u))
}

func mustFromUnsigned(u Unsigned) Duration {
	v, err := FromUnsigned(u)
	if err != nil {
		panic(err)
	}
	return v
}

// EqualUnsigned returns true if u converts to a Duration equal to d.
func (d Duration) EqualUnsigned(u Unsigned) bool {
	v, err := FromUnsigned(u)
	return err == nil && v == d
}

// CompareUnsigned returns -1, 0 or +1 as d is less than, equal to,
// or greater than u. An Unsigned too large for a Duration is greater
// than every Duration.
func (d Duration) CompareUnsigned(u Unsigned) int {
	v, err := FromUnsigned(u)
	if err != nil {
		return -1
	}
	return d.Compare(v)
}
