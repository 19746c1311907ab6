package time

import (
	"math/big"
	"time"

	"github.com/pkg/errors" // Wrap errors with stacktrace.

	"github.com/mintel/timespan/pkg/duration"
)

var bigNanosPerSecond = big.NewInt(int64(time.Second))

// unixNanos returns t as nanoseconds since the Unix epoch.
func unixNanos(t time.Time) *big.Int {
	n := new(big.Int).Mul(big.NewInt(t.Unix()), bigNanosPerSecond)
	return n.Add(n, big.NewInt(int64(t.Nanosecond())))
}

// fromUnixNanos is the inverse of unixNanos, in location loc.
// It panics with an error wrapping duration.ErrOverflow if n is outside
// the range of time.Time.
func fromUnixNanos(n *big.Int, loc *time.Location) time.Time {
	secs, nsec := new(big.Int).DivMod(n, bigNanosPerSecond, new(big.Int))
	if !secs.IsInt64() || !inUnixRange(secs.Int64()) {
		panic(errors.Wrapf(duration.ErrOverflow, "%sns since the Unix epoch", n))
	}
	return time.Unix(secs.Int64(), nsec.Int64()).In(loc)
}

// offset returns t in nanoseconds and how far t is past the last
// multiple of d. ok is false if d isn't positive.
func offset(t time.Time, d duration.Duration) (n, span, rem *big.Int, ok bool) {
	if !d.IsPositive() {
		return nil, nil, nil, false
	}
	n, span = unixNanos(t), d.WholeNanoseconds()
	rem = new(big.Int).Mod(n, span)
	return n, span, rem, true
}

// Truncate returns the result of rounding t down to a multiple of d
// since the Unix epoch. If d <= 0, Truncate returns t unchanged.
//
// Truncate, Ceil, Prev and Next panic with an error wrapping
// duration.ErrOverflow if the multiple is outside the range of time.Time.
func Truncate(t time.Time, d duration.Duration) time.Time {
	n, _, rem, ok := offset(t, d)
	if !ok || rem.Sign() == 0 {
		return t
	}
	return fromUnixNanos(n.Sub(n, rem), t.Location())
}

// Ceil returns the result of rounding t up to a multiple of d
// since the Unix epoch. If d <= 0, Ceil returns t unchanged.
func Ceil(t time.Time, d duration.Duration) time.Time {
	n, span, rem, ok := offset(t, d)
	if !ok || rem.Sign() == 0 {
		return t
	}
	n.Sub(n, rem)
	return fromUnixNanos(n.Add(n, span), t.Location())
}

// Prev returns the nearest multiple of d before t (since the Unix epoch).
// If d <= 0, Prev returns t unchanged.
func Prev(t time.Time, d duration.Duration) time.Time {
	n, span, rem, ok := offset(t, d)
	if !ok {
		return t
	}
	if rem.Sign() == 0 {
		rem = span
	}
	return fromUnixNanos(n.Sub(n, rem), t.Location())
}

// Next returns the nearest multiple of d after t (since the Unix epoch).
// If d <= 0, Next returns t unchanged.
func Next(t time.Time, d duration.Duration) time.Time {
	n, span, rem, ok := offset(t, d)
	if !ok {
		return t
	}
	n.Sub(n, rem)
	return fromUnixNanos(n.Add(n, span), t.Location())
}

// IsMultiple returns true if t is some multiple of d (since the Unix epoch).
// If d <= 0, IsMultiple returns false.
func IsMultiple(t time.Time, d duration.Duration) bool {
	_, _, rem, ok := offset(t, d)
	return ok && rem.Sign() == 0
}
