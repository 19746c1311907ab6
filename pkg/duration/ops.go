package duration

import (
	"math/big"
)

// Add returns d+rhs. It panics with an error wrapping ErrOverflow if the
// result overflows; use CheckedAdd or SaturatingAdd to avoid that.
func (d Duration) Add(rhs Duration) Duration {
	v, ok := d.CheckedAdd(rhs)
	if !ok {
		overflowPanic("overflow when adding durations")
	}
	return v
}

// Sub returns d-rhs. It panics with an error wrapping ErrOverflow if the
// result overflows; use CheckedSub or SaturatingSub to avoid that.
func (d Duration) Sub(rhs Duration) Duration {
	v, ok := d.CheckedSub(rhs)
	if !ok {
		overflowPanic("overflow when subtracting durations")
	}
	return v
}

// Neg returns -d. It panics with an error wrapping ErrOverflow when d's
// seconds part is math.MinInt64, which includes Min.
func (d Duration) Neg() Duration {
	v, ok := d.CheckedNeg()
	if !ok {
		overflowPanic("overflow when negating duration")
	}
	return v
}

// Mul returns d*rhs. rhs is an int64 so that every 8, 16 and 32-bit
// integer, signed or not, converts to it losslessly. It panics with an
// error wrapping ErrOverflow if the result overflows.
func (d Duration) Mul(rhs int64) Duration {
	n := d.WholeNanoseconds()
	n.Mul(n, big.NewInt(rhs))
	return nanosecondsBig(n, "overflow when multiplying duration")
}

// MulF64 returns d*rhs, computed on float64 seconds.
func (d Duration) MulF64(rhs float64) Duration {
	return SecondsF64(d.AsSecondsF64() * rhs)
}

// MulF32 returns d*rhs, computed on float32 seconds.
func (d Duration) MulF32(rhs float32) Duration {
	return SecondsF32(d.AsSecondsF32() * rhs)
}

// Div returns d/rhs truncated to the nanosecond.
// It panics if rhs is zero, and with an error wrapping ErrOverflow
// for Min.Div(-1).
func (d Duration) Div(rhs int64) Duration {
	n := d.WholeNanoseconds()
	n.Quo(n, big.NewInt(rhs))
	return nanosecondsBig(n, "overflow when dividing duration")
}

// DivF64 returns d/rhs, computed on float64 seconds. Division by zero
// follows IEEE-754, so the result for a zero rhs is unspecified.
func (d Duration) DivF64(rhs float64) Duration {
	return SecondsF64(d.AsSecondsF64() / rhs)
}

// DivF32 returns d/rhs, computed on float32 seconds.
func (d Duration) DivF32(rhs float32) Duration {
	return SecondsF32(d.AsSecondsF32() / rhs)
}

// DivDuration returns the ratio d/rhs.
func (d Duration) DivDuration(rhs Duration) float64 {
	return d.AsSecondsF64() / rhs.AsSecondsF64()
}

// Sum returns the total of ds. It panics with an error wrapping
// ErrOverflow if any partial sum overflows.
func Sum(ds ...Duration) Duration {
	var total Duration
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}
