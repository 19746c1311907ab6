// Package time bridges duration.Duration and time.Time.
//
// time.Time can represent instants billions of years apart, but
// time.Duration saturates after about 292 years. The functions here do
// the arithmetic on duration.Duration instead, so they stay exact across
// the whole range of time.Time.
package time

import (
	"math"
	"time"

	"github.com/JohnCGriffin/overflow" // Checked integer arithmetic.
	"github.com/pkg/errors"            // Wrap errors with stacktrace.

	"github.com/mintel/timespan/pkg/duration"
)

// Unix seconds a time.Time can hold. time.Time counts seconds from
// January 1, year 1 in an int64, so its range is offset from int64's.
const (
	unixToInternal int64 = (1969*365 + 1969/4 - 1969/100 + 1969/400) * 24 * 60 * 60

	minUnix = math.MinInt64 + unixToInternal
	maxUnix = math.MaxInt64 - unixToInternal
)

func inUnixRange(secs int64) bool {
	return secs >= minUnix && secs <= maxUnix
}

// Add returns t+d in t's location. It panics with an error wrapping
// duration.ErrOverflow if the result is outside the range of time.Time.
func Add(t time.Time, d duration.Duration) time.Time {
	secs, nsec, ok := addUnix(t, d)
	if !ok {
		panic(errors.Wrapf(duration.ErrOverflow, "adding %s to %s", d, t))
	}
	if td, err := d.ToTimeDuration(); err == nil {
		return t.Add(td)
	}
	return time.Unix(secs, nsec).In(t.Location())
}

// addUnix returns t+d as Unix seconds and nanoseconds in [0, 1e9).
// ok is false if the result doesn't fit a time.Time.
func addUnix(t time.Time, d duration.Duration) (secs, nsec int64, ok bool) {
	if secs, ok = overflow.Add64(t.Unix(), d.WholeSeconds()); !ok {
		return 0, 0, false
	}
	nsec = int64(t.Nanosecond()) + int64(d.SubsecNanoseconds())
	switch {
	case nsec >= int64(time.Second):
		secs, ok = overflow.Add64(secs, 1)
		nsec -= int64(time.Second)
	case nsec < 0:
		secs, ok = overflow.Sub64(secs, 1)
		nsec += int64(time.Second)
	}
	return secs, nsec, ok && inUnixRange(secs)
}

// Sub returns a-b. Unlike a.Sub(b) it doesn't saturate; the result is
// only clamped to duration.Min or duration.Max.
func Sub(a, b time.Time) duration.Duration {
	if td := a.Sub(b); td != minTimeDuration && td != maxTimeDuration {
		return duration.FromTimeDuration(td)
	}
	secs := duration.Seconds(a.Unix()).SaturatingSub(duration.Seconds(b.Unix()))
	return secs.SaturatingAdd(duration.Nanoseconds(int64(a.Nanosecond() - b.Nanosecond())))
}

const (
	minTimeDuration time.Duration = -1 << 63
	maxTimeDuration time.Duration = 1<<63 - 1
)

// Since returns the time elapsed since t.
func Since(t time.Time) duration.Duration {
	return Sub(time.Now(), t)
}

// Until returns the duration until t.
func Until(t time.Time) duration.Duration {
	return Sub(t, time.Now())
}
