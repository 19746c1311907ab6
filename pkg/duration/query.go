package duration

import (
	"math"
	"math/big"
)

// IsZero returns true if d is zero.
func (d Duration) IsZero() bool {
	return d.seconds == 0 && d.nanoseconds == 0
}

// IsNegative returns true if d is less than zero.
func (d Duration) IsNegative() bool {
	return d.seconds < 0 || d.nanoseconds < 0
}

// IsPositive returns true if d is greater than zero.
func (d Duration) IsPositive() bool {
	return d.seconds > 0 || d.nanoseconds > 0
}

// Abs returns the absolute value of d. Min.Abs() saturates to Max.
func (d Duration) Abs() Duration {
	s := d.seconds
	switch {
	case s == math.MinInt64:
		s = math.MaxInt64
	case s < 0:
		s = -s
	}
	n := d.nanoseconds
	if n < 0 {
		n = -n
	}
	return Duration{s, n}
}

// UnsignedAbs returns the magnitude of d. Unlike Abs it is exact for every
// Duration, including Min.
func (d Duration) UnsignedAbs() Unsigned {
	var s uint64
	if d.seconds < 0 {
		s = uint64(-(d.seconds + 1)) + 1
	} else {
		s = uint64(d.seconds)
	}
	n := d.nanoseconds
	if n < 0 {
		n = -n
	}
	return Unsigned{s, uint32(n)}
}

// WholeWeeks returns the number of whole weeks in d.
func (d Duration) WholeWeeks() int64 { return d.seconds / secondsPerWeek }

// WholeDays returns the number of whole days in d.
func (d Duration) WholeDays() int64 { return d.seconds / secondsPerDay }

// WholeHours returns the number of whole hours in d.
func (d Duration) WholeHours() int64 { return d.seconds / secondsPerHour }

// WholeMinutes returns the number of whole minutes in d.
func (d Duration) WholeMinutes() int64 { return d.seconds / secondsPerMinute }

// WholeSeconds returns the number of whole seconds in d.
func (d Duration) WholeSeconds() int64 { return d.seconds }

// AsSecondsF64 returns d as a floating point number of seconds.
func (d Duration) AsSecondsF64() float64 {
	return float64(d.seconds) + float64(d.nanoseconds)/nanosPerSecond
}

// AsSecondsF32 returns d as a float32 number of seconds.
func (d Duration) AsSecondsF32() float32 {
	return float32(d.seconds) + float32(d.nanoseconds)/nanosPerSecond
}

// The whole sub-second counts don't fit an int64 for large durations,
// so they are computed on big.Int:

// wholeUnits returns seconds*perSecond + nanoseconds/nanosPerUnit.
func (d Duration) wholeUnits(perSecond, nanosPerUnit int64) *big.Int {
	n := big.NewInt(d.seconds)
	n.Mul(n, big.NewInt(perSecond))
	return n.Add(n, big.NewInt(int64(d.nanoseconds)/nanosPerUnit))
}

// WholeMilliseconds returns the number of whole milliseconds in d.
func (d Duration) WholeMilliseconds() *big.Int {
	return d.wholeUnits(1000, nanosPerMilli)
}

// WholeMicroseconds returns the number of whole microseconds in d.
func (d Duration) WholeMicroseconds() *big.Int {
	return d.wholeUnits(1000000, nanosPerMicro)
}

// WholeNanoseconds returns the number of nanoseconds in d.
func (d Duration) WholeNanoseconds() *big.Int {
	return d.wholeUnits(nanosPerSecond, 1)
}

// SubsecMilliseconds returns the fractional part of d in whole milliseconds,
// in (-1000, 1000).
func (d Duration) SubsecMilliseconds() int32 { return d.nanoseconds / nanosPerMilli }

// SubsecMicroseconds returns the fractional part of d in whole microseconds,
// in (-1e6, 1e6).
func (d Duration) SubsecMicroseconds() int32 { return d.nanoseconds / nanosPerMicro }

// SubsecNanoseconds returns the fractional part of d in nanoseconds,
// in (-1e9, 1e9).
func (d Duration) SubsecNanoseconds() int32 { return d.nanoseconds }

// Compare returns -1, 0 or +1 as d is less than, equal to,
// or greater than other.
func (d Duration) Compare(other Duration) int {
	switch {
	case d.seconds < other.seconds:
		return -1
	case d.seconds > other.seconds:
		return 1
	case d.nanoseconds < other.nanoseconds:
		return -1
	case d.nanoseconds > other.nanoseconds:
		return 1
	}
	return 0
}
