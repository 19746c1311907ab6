package duration

import (
	"math"
	"math/big"
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

// randomDuration returns a valid Duration, biased towards small values and
// values close to Min and Max.
func randomDuration(r *rand.Rand) Duration {
	var s int64
	switch r.Intn(4) {
	case 0:
		s = r.Int63n(2000) - 1000
	case 1:
		s = r.Int63()
		if r.Intn(2) == 0 {
			s = -s - r.Int63n(2)
		}
	case 2:
		s = math.MaxInt64 - r.Int63n(10)
	default:
		s = math.MinInt64 + r.Int63n(10)
	}
	n := int32(r.Int63n(nanosPerSecond))
	if s < 0 || s == 0 && r.Intn(2) == 0 {
		n = -n
	}
	return Duration{s, n}
}

// randomInt32 returns small factors most of the time.
func randomInt32(r *rand.Rand) int32 {
	if r.Intn(2) == 0 {
		return r.Int31n(21) - 10
	}
	return int32(r.Uint32())
}

type generator func(r *rand.Rand) interface{}

var (
	genDuration generator = func(r *rand.Rand) interface{} { return randomDuration(r) }
	genInt32    generator = func(r *rand.Rand) interface{} { return randomInt32(r) }
)

// quickConfig returns a quick.Config producing one argument per generator.
func quickConfig(gens ...generator) *quick.Config {
	return &quick.Config{
		MaxCount: 2000,
		Values: func(args []reflect.Value, r *rand.Rand) {
			for i, gen := range gens {
				args[i] = reflect.ValueOf(gen(r))
			}
		},
	}
}

// valid reports whether d satisfies the representation invariants.
func valid(d Duration) bool {
	return (d.seconds >= 0 || d.nanoseconds <= 0) &&
		(d.seconds <= 0 || d.nanoseconds >= 0) &&
		d.nanoseconds > -nanosPerSecond && d.nanoseconds < nanosPerSecond
}

func assertValid(t *testing.T, d Duration) bool {
	t.Helper()
	return assert.True(t, valid(d), "invalid duration {%d, %d}", d.seconds, d.nanoseconds)
}

var (
	bigMin = Min.WholeNanoseconds()
	bigMax = Max.WholeNanoseconds()
)

// exact returns the Duration of n nanoseconds, or false when out of range.
func exact(n *big.Int) (Duration, bool) {
	if n.Cmp(bigMin) < 0 || n.Cmp(bigMax) > 0 {
		return Duration{}, false
	}
	return NanosecondsBig(n)
}

// clamp returns the Duration of n nanoseconds clamped to [Min, Max].
func clamp(n *big.Int) Duration {
	switch {
	case n.Cmp(bigMin) < 0:
		return Min
	case n.Cmp(bigMax) > 0:
		return Max
	}
	d, _ := NanosecondsBig(n)
	return d
}
