package time

import (
	"math/big"
	"time"

	"github.com/mintel/timespan/pkg/duration"
)

// Between returns true if t falls in the span starting at start,
// inclusive of both ends. A negative span is the window ending at start.
// It is exact for every span, including duration.Min and duration.Max.
func Between(t, start time.Time, span duration.Duration) bool {
	off := new(big.Int).Sub(unixNanos(t), unixNanos(start))
	end := span.WholeNanoseconds()
	if span.IsNegative() {
		return off.Sign() <= 0 && off.Cmp(end) >= 0
	}
	return off.Sign() >= 0 && off.Cmp(end) <= 0
}
