package duration

import (
	"math"

	"github.com/JohnCGriffin/overflow" // Checked integer arithmetic.
)

// Both parts of the operands are in (-1e9, 1e9), so summing the
// nanoseconds can't overflow an int32; only the seconds are checked.

// CheckedAdd returns d+rhs, or false if the result overflows.
func (d Duration) CheckedAdd(rhs Duration) (Duration, bool) {
	seconds, ok := overflow.Add64(d.seconds, rhs.seconds)
	if !ok {
		return Duration{}, false
	}
	return renormalize(seconds, d.nanoseconds+rhs.nanoseconds)
}

// CheckedSub returns d-rhs, or false if the result overflows.
func (d Duration) CheckedSub(rhs Duration) (Duration, bool) {
	seconds, ok := overflow.Sub64(d.seconds, rhs.seconds)
	if !ok {
		return Duration{}, false
	}
	return renormalize(seconds, d.nanoseconds-rhs.nanoseconds)
}

// renormalize moves at most one second across the split so that
// nanoseconds is back in range and agrees in sign with seconds.
func renormalize(seconds int64, nanoseconds int32) (Duration, bool) {
	var ok bool
	if nanoseconds >= nanosPerSecond || seconds < 0 && nanoseconds > 0 {
		nanoseconds -= nanosPerSecond
		if seconds, ok = overflow.Add64(seconds, 1); !ok {
			return Duration{}, false
		}
	} else if nanoseconds <= -nanosPerSecond || seconds > 0 && nanoseconds < 0 {
		nanoseconds += nanosPerSecond
		if seconds, ok = overflow.Sub64(seconds, 1); !ok {
			return Duration{}, false
		}
	}
	return Duration{seconds, nanoseconds}, true
}

// CheckedMul returns d*rhs, or false if the result overflows.
func (d Duration) CheckedMul(rhs int32) (Duration, bool) {
	// |nanoseconds * rhs| < 1e9 * 2^31, which fits an int64.
	totalNanos := int64(d.nanoseconds) * int64(rhs)
	carry := totalNanos / nanosPerSecond
	nanoseconds := int32(totalNanos % nanosPerSecond)

	seconds, ok := overflow.Mul64(d.seconds, int64(rhs))
	if !ok {
		return Duration{}, false
	}
	if seconds, ok = overflow.Add64(seconds, carry); !ok {
		return Duration{}, false
	}
	return Duration{seconds, nanoseconds}, true
}

// CheckedDiv returns d/rhs truncated to the nanosecond, or false if rhs is
// zero or the result overflows (Min.CheckedDiv(-1)).
func (d Duration) CheckedDiv(rhs int32) (Duration, bool) {
	if rhs == 0 || rhs == -1 && d.seconds == math.MinInt64 {
		return Duration{}, false
	}
	seconds := d.seconds / int64(rhs)
	// The seconds lost to truncation are spread over the nanoseconds.
	remainder := d.seconds - seconds*int64(rhs)
	extra, ok := overflow.Mul64(remainder, nanosPerSecond)
	if !ok {
		return Duration{}, false
	}
	nanoseconds := d.nanoseconds/rhs + int32(extra/int64(rhs))
	return Duration{seconds, nanoseconds}, true
}

// CheckedNeg returns -d, or false if d's seconds part is math.MinInt64
// and so has no positive counterpart.
func (d Duration) CheckedNeg() (Duration, bool) {
	if d.seconds == math.MinInt64 {
		return Duration{}, false
	}
	return Duration{-d.seconds, -d.nanoseconds}, true
}
