package duration

import (
	"math"
	"math/big"

	"github.com/JohnCGriffin/overflow" // Checked integer arithmetic.
)

const (
	nanosPerMicro  = 1000
	nanosPerMilli  = 1000000
	nanosPerSecond = 1000000000

	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerWeek   = 7 * secondsPerDay
)

// Duration is a signed span of time with nanosecond precision.
//
// The zero value is a zero-length span. Durations are comparable with ==
// and every method returns a new value instead of modifying the receiver.
type Duration struct {
	seconds int64

	// In (-1e9, 1e9), with the same sign as seconds when both are non-zero.
	nanoseconds int32
}

// Common durations.
var (
	Zero        = Duration{}
	Nanosecond  = Duration{0, 1}
	Microsecond = Duration{0, nanosPerMicro}
	Millisecond = Duration{0, nanosPerMilli}
	Second      = Duration{1, 0}
	Minute      = Duration{secondsPerMinute, 0}
	Hour        = Duration{secondsPerHour, 0}
	Day         = Duration{secondsPerDay, 0}
	Week        = Duration{secondsPerWeek, 0}

	// Min is the most negative representable Duration.
	Min = Duration{math.MinInt64, -999999999}

	// Max is the most positive representable Duration.
	Max = Duration{math.MaxInt64, 999999999}
)

// New returns a Duration of seconds plus nanoseconds.
// nanoseconds may be of any magnitude and sign; whole seconds are carried
// into the seconds part and the sign of the two parts is reconciled.
func New(seconds int64, nanoseconds int32) Duration {
	seconds += int64(nanoseconds / nanosPerSecond)
	nanoseconds %= nanosPerSecond

	if seconds > 0 && nanoseconds < 0 {
		seconds--
		nanoseconds += nanosPerSecond
	} else if seconds < 0 && nanoseconds > 0 {
		seconds++
		nanoseconds -= nanosPerSecond
	}
	return Duration{seconds, nanoseconds}
}

// scaled returns n units of the given size in seconds.
// It panics if the result overflows.
func scaled(n, unit int64) Duration {
	s, ok := overflow.Mul64(n, unit)
	if !ok {
		overflowPanic("overflow constructing duration")
	}
	return Duration{seconds: s}
}

// Weeks returns a Duration of n weeks. It panics if the result overflows.
func Weeks(n int64) Duration { return scaled(n, secondsPerWeek) }

// Days returns a Duration of n days. It panics if the result overflows.
func Days(n int64) Duration { return scaled(n, secondsPerDay) }

// Hours returns a Duration of n hours. It panics if the result overflows.
func Hours(n int64) Duration { return scaled(n, secondsPerHour) }

// Minutes returns a Duration of n minutes. It panics if the result overflows.
func Minutes(n int64) Duration { return scaled(n, secondsPerMinute) }

// Seconds returns a Duration of n seconds.
func Seconds(n int64) Duration { return Duration{seconds: n} }

// Truncated remainders share the sign of the dividend, so the
// sub-second constructors below never need New's sign fixup.

// Milliseconds returns a Duration of n milliseconds.
func Milliseconds(n int64) Duration {
	return Duration{n / 1000, int32(n%1000) * nanosPerMilli}
}

// Microseconds returns a Duration of n microseconds.
func Microseconds(n int64) Duration {
	return Duration{n / 1000000, int32(n%1000000) * nanosPerMicro}
}

// Nanoseconds returns a Duration of n nanoseconds.
func Nanoseconds(n int64) Duration {
	return Duration{n / nanosPerSecond, int32(n % nanosPerSecond)}
}

var bigNanosPerSecond = big.NewInt(nanosPerSecond)

// NanosecondsBig returns a Duration of n nanoseconds, or false if it
// is outside [Min, Max].
func NanosecondsBig(n *big.Int) (Duration, bool) {
	q, r := new(big.Int).QuoRem(n, bigNanosPerSecond, new(big.Int))
	if !q.IsInt64() {
		return Duration{}, false
	}
	return Duration{q.Int64(), int32(r.Int64())}, true
}

// nanosecondsBig is NanosecondsBig for the unchecked operators.
func nanosecondsBig(n *big.Int, msg string) Duration {
	d, ok := NanosecondsBig(n)
	if !ok {
		overflowPanic(msg)
	}
	return d
}

// SecondsF64 returns a Duration of s seconds. The whole part is truncated
// to seconds and the fraction to nanoseconds, so very small fractions may
// become zero. Results for NaN or out of range values are unspecified; use
// CheckedSecondsF64 when s is untrusted.
func SecondsF64(s float64) Duration {
	whole, frac := math.Modf(s)
	return Duration{int64(whole), int32(frac * nanosPerSecond)}
}

// SecondsF32 is like SecondsF64 but computes the fraction in float32.
func SecondsF32(s float32) Duration {
	whole, frac := math.Modf(float64(s))
	return Duration{int64(whole), int32(float32(frac) * nanosPerSecond)}
}

// float64(math.MaxInt64) rounds up to 2^63.
const twoTo63 = float64(1 << 63)

// CheckedSecondsF64 is like SecondsF64, but returns false if s is NaN or
// outside the representable range.
func CheckedSecondsF64(s float64) (Duration, bool) {
	if math.IsNaN(s) || s >= twoTo63 || s < -twoTo63 {
		return Duration{}, false
	}
	return SecondsF64(s), true
}

// SaturatingSecondsF64 is like SecondsF64, but returns Zero for NaN and
// clamps out of range values to Min or Max.
func SaturatingSecondsF64(s float64) Duration {
	switch {
	case math.IsNaN(s):
		return Zero
	case s >= twoTo63:
		return Max
	case s < -twoTo63:
		return Min
	}
	return SecondsF64(s)
}
