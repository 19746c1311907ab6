package time

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintel/timespan/pkg/duration"
)

func TestAdd(t *testing.T) {
	base := time.Date(2019, time.June, 1, 12, 0, 0, 500, time.UTC)

	assert.Equal(t, base.Add(90*time.Minute), Add(base, duration.Minutes(90)))
	assert.Equal(t, base.Add(-time.Nanosecond), Add(base, duration.Nanoseconds(-1)))

	t.Run("beyond-time-duration", func(t *testing.T) {
		got := Add(base, duration.Days(1000*365))
		assert.Equal(t, base.AddDate(0, 0, 1000*365), got)
		assert.Equal(t, time.UTC, got.Location())

		got = Add(base, duration.Days(-1000*365).Sub(duration.Nanoseconds(501)))
		assert.Equal(t, base.AddDate(0, 0, -1000*365).Add(-501*time.Nanosecond), got)
	})

	t.Run("keeps-location", func(t *testing.T) {
		loc := time.FixedZone("X", 3600)
		got := Add(base.In(loc), duration.Weeks(100000))
		assert.Equal(t, loc, got.Location())
	})

	t.Run("overflow", func(t *testing.T) {
		assertOverflows(t, func() { Add(base, duration.Max) })
		// Fits int64 Unix seconds but not time.Time.
		assertOverflows(t, func() { Add(base, duration.Seconds(math.MaxInt64-1e10)) })
		assertOverflows(t, func() { Add(base, duration.Seconds(math.MinInt64+1e10)) })
	})

	t.Run("range-edges", func(t *testing.T) {
		last := time.Unix(maxUnix-10, 0).UTC()
		got := Add(last, duration.Seconds(10).Add(duration.Nanoseconds(999999999)))
		assert.Equal(t, maxUnix, got.Unix())
		assert.Equal(t, 999999999, got.Nanosecond())
		assertOverflows(t, func() { Add(last, duration.Seconds(11)) })
		assertOverflows(t, func() { Add(got, duration.Nanosecond) })

		first := time.Unix(minUnix+1, 0).UTC()
		got = Add(first, duration.Nanoseconds(-1))
		assert.Equal(t, minUnix, got.Unix())
		assert.Equal(t, 999999999, got.Nanosecond())
		assertOverflows(t, func() { Add(time.Unix(minUnix, 0), duration.Nanoseconds(-1)) })
	})
}

// assertOverflows asserts that f panics with an error wrapping
// duration.ErrOverflow.
func assertOverflows(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		p := recover()
		err, ok := p.(error)
		if assert.True(t, ok, "want panic with an error, got %v", p) {
			assert.ErrorIs(t, err, duration.ErrOverflow)
		}
	}()
	f()
}

func TestSub(t *testing.T) {
	a := time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2019, time.June, 2, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, duration.Days(1).Add(duration.Second), Sub(b, a))
	assert.Equal(t, duration.Days(-1).Sub(duration.Second), Sub(a, b))

	t.Run("beyond-time-duration", func(t *testing.T) {
		far := time.Date(3019, time.June, 1, 0, 0, 0, 5, time.UTC)
		got := Sub(far, a)
		assert.True(t, got.IsPositive())
		assert.Equal(t, far, Add(a, got))
		assert.Equal(t, got.Neg(), Sub(a, far))
	})

	t.Run("inverse-of-add", func(t *testing.T) {
		f := func(sec, nsec, span int64) bool {
			t0 := time.Unix(sec, nsec)
			d := duration.Nanoseconds(span).Mul(1000)
			return Sub(Add(t0, d), t0) == d
		}
		err := quick.Check(f, &quick.Config{
			Values: func(args []reflect.Value, r *rand.Rand) {
				args[0] = reflect.ValueOf(r.Int63n(1<<40) - 1<<39)
				args[1] = reflect.ValueOf(r.Int63n(int64(time.Second)))
				args[2] = reflect.ValueOf(r.Int63() - r.Int63())
			},
		})
		assert.NoError(t, err)
	})
}

func TestSinceUntil(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	since := Since(past)
	require.True(t, since.Compare(duration.Hour) >= 0)
	assert.True(t, since.Compare(duration.Hour.Add(duration.Minute)) < 0)

	future := time.Now().Add(time.Hour)
	until := Until(future)
	assert.True(t, until.Compare(duration.Hour) <= 0)
	assert.True(t, until.IsPositive())
}
