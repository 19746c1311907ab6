package time

import (
	"sync"
	"time"

	"github.com/pkg/errors" // Wrap errors with stacktrace.

	"github.com/mintel/timespan/pkg/duration"
)

// RoundedTicker is like a time.Ticker, but its ticks fall on
// multiples of the interval since the Unix epoch.
// Ticks are dropped if the reader falls behind.
type RoundedTicker struct {
	C <-chan time.Time

	c        chan<- time.Time
	d        duration.Duration
	once     sync.Once
	stopping chan struct{}
}

// NewRoundedTicker returns a new RoundedTicker. It panics if d isn't
// positive or doesn't fit a time.Duration.
func NewRoundedTicker(d duration.Duration) *RoundedTicker {
	if !d.IsPositive() {
		panic(errors.New("non-positive interval for NewRoundedTicker"))
	}
	if _, err := d.ToTimeDuration(); err != nil {
		panic(errors.Wrap(err, "interval for NewRoundedTicker"))
	}
	c := make(chan time.Time)
	rt := &RoundedTicker{
		C:        c,
		c:        c,
		d:        d,
		stopping: make(chan struct{}),
	}
	go rt.run()
	return rt
}

func (rt *RoundedTicker) run() {
	nextTick := Next(time.Now(), rt.d)
	timer := time.NewTimer(time.Until(nextTick))
	for {
		select {
		case <-rt.stopping:
			timer.Stop()
			return
		case <-timer.C:
			// Non-blocking send.
			go func(t time.Time) {
				select {
				case rt.c <- t:
				default:
				}
			}(nextTick)
			nextTick = Next(time.Now(), rt.d)
			timer.Reset(time.Until(nextTick))
		}
	}
}

// Stop turns off a ticker. After Stop, no more ticks will be sent.
// Stop does not close the channel, so a concurrent reader won't see
// an erroneous tick.
func (rt *RoundedTicker) Stop() {
	rt.once.Do(func() {
		if rt.stopping != nil {
			close(rt.stopping)
		}
	})
}
