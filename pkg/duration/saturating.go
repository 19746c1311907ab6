package duration

import (
	"github.com/JohnCGriffin/overflow" // Checked integer arithmetic.
)

// SaturatingAdd returns d+rhs, clamped to [Min, Max].
func (d Duration) SaturatingAdd(rhs Duration) Duration {
	seconds, ok := overflow.Add64(d.seconds, rhs.seconds)
	if !ok {
		// Addition only overflows when both operands share a sign.
		if d.seconds > 0 {
			return Max
		}
		return Min
	}
	return saturatingRenormalize(seconds, d.nanoseconds+rhs.nanoseconds)
}

// SaturatingSub returns d-rhs, clamped to [Min, Max].
func (d Duration) SaturatingSub(rhs Duration) Duration {
	seconds, ok := overflow.Sub64(d.seconds, rhs.seconds)
	if !ok {
		// Subtraction overflows upwards only when rhs is negative.
		if rhs.seconds < 0 {
			return Max
		}
		return Min
	}
	return saturatingRenormalize(seconds, d.nanoseconds-rhs.nanoseconds)
}

// saturatingRenormalize is renormalize with the carry clamped.
func saturatingRenormalize(seconds int64, nanoseconds int32) Duration {
	d, ok := renormalize(seconds, nanoseconds)
	if ok {
		return d
	}
	if seconds > 0 {
		return Max
	}
	return Min
}

// SaturatingMul returns d*rhs, clamped to [Min, Max].
func (d Duration) SaturatingMul(rhs int32) Duration {
	sameSign := d.seconds > 0 && rhs > 0 || d.seconds < 0 && rhs < 0

	seconds, ok := overflow.Mul64(d.seconds, int64(rhs))
	if !ok {
		if sameSign {
			return Max
		}
		return Min
	}

	totalNanos := int64(d.nanoseconds) * int64(rhs)
	carry := totalNanos / nanosPerSecond
	nanoseconds := int32(totalNanos % nanosPerSecond)

	if seconds, ok = overflow.Add64(seconds, carry); !ok {
		if sameSign {
			return Max
		}
		return Min
	}
	return Duration{seconds, nanoseconds}
}

// SaturatingNeg returns -d, or Max when d can't be negated.
func (d Duration) SaturatingNeg() Duration {
	if n, ok := d.CheckedNeg(); ok {
		return n
	}
	return Max
}
