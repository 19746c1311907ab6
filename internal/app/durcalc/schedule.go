package durcalc

import (
	"time"

	"github.com/cenkalti/backoff" // Exponential backoff.

	"github.com/mintel/timespan/pkg/duration"
	ptime "github.com/mintel/timespan/pkg/time"
)

// virtualClock is a backoff.Clock that only moves when advanced.
type virtualClock struct {
	now time.Time
}

func (c *virtualClock) Now() time.Time { return c.now }

func (c *virtualClock) advance(d duration.Duration) { c.now = ptime.Add(c.now, d) }

// Schedule returns up to limit waits of the policy built by newBackOff,
// without sleeping. Time as seen by the policy advances by each wait.
func Schedule(newBackOff func(backoff.Clock) (backoff.BackOff, error), limit int) ([]Attempt, error) {
	clock := &virtualClock{now: time.Unix(0, 0).UTC()}
	b, err := newBackOff(clock)
	if err != nil {
		return nil, err
	}

	var (
		attempts []Attempt
		elapsed  duration.Duration
	)
	for i := 1; i <= limit; i++ {
		next := b.NextBackOff()
		if next == backoff.Stop {
			break
		}
		wait := duration.FromTimeDuration(next)
		elapsed = elapsed.SaturatingAdd(wait)
		clock.advance(wait)
		attempts = append(attempts, Attempt{Attempt: i, Wait: wait, Elapsed: elapsed})
	}
	return attempts, nil
}
