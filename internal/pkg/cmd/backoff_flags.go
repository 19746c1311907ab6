package cmd

import (
	"github.com/cenkalti/backoff" // Exponential backoff.
	"github.com/pkg/errors"       // Wrap errors with stacktrace.

	"github.com/mintel/timespan/pkg/duration"
)

// BackoffFlags represents a set of flags describing an exponential
// backoff policy.
type BackoffFlags struct {
	Initial       duration.Duration // First retry interval.
	Max           duration.Duration // Cap on a single retry interval.
	MaxElapsed    duration.Duration // Give up once this much time has passed. Zero never gives up.
	Multiplier    float64           // Growth factor between intervals.
	Randomization float64           // Jitter as a fraction of the interval.
	MaxRetries    uint64            // Give up after this many retries. Zero never gives up.
}

// NewBackoffFlags returns a new BackoffFlags with defaults matching
// backoff.NewExponentialBackOff.
func NewBackoffFlags(app Flagger) *BackoffFlags {
	var f BackoffFlags

	DurationVar(app.Flag("backoff.initial", "Initial retry interval.").
		Default(backoff.DefaultInitialInterval.String()), &f.Initial)

	DurationVar(app.Flag("backoff.max", "Max retry interval.").
		Default(backoff.DefaultMaxInterval.String()), &f.Max)

	DurationVar(app.Flag("backoff.max-elapsed", "Stop retrying after this much time. 0 retries forever.").
		Default(backoff.DefaultMaxElapsedTime.String()), &f.MaxElapsed)

	app.Flag("backoff.multiplier", "Factor by which each interval grows.").
		Default("1.5").
		Float64Var(&f.Multiplier)

	app.Flag("backoff.randomization", "Randomization factor applied to each interval.").
		Default("0").
		Float64Var(&f.Randomization)

	app.Flag("backoff.max-retries", "Stop after this many retries. 0 retries until max-elapsed.").
		Default("10").
		Uint64Var(&f.MaxRetries)

	return &f
}

// NewBackOff returns an exponential backoff policy configured with the
// flag values, reading the current time from clock.
func (f *BackoffFlags) NewBackOff(clock backoff.Clock) (backoff.BackOff, error) {
	var err error
	b := &backoff.ExponentialBackOff{
		RandomizationFactor: f.Randomization,
		Multiplier:          f.Multiplier,
		Clock:               clock,
	}
	if b.InitialInterval, err = f.Initial.ToTimeDuration(); err != nil {
		return nil, errors.Wrap(err, "backoff.initial")
	}
	if b.MaxInterval, err = f.Max.ToTimeDuration(); err != nil {
		return nil, errors.Wrap(err, "backoff.max")
	}
	if b.MaxElapsedTime, err = f.MaxElapsed.ToTimeDuration(); err != nil {
		return nil, errors.Wrap(err, "backoff.max-elapsed")
	}
	if !f.Initial.IsPositive() || f.Max.Compare(f.Initial) < 0 || f.MaxElapsed.IsNegative() {
		return nil, errors.Errorf("invalid backoff intervals: initial %s, max %s, max elapsed %s", f.Initial, f.Max, f.MaxElapsed)
	}
	if f.Multiplier < 1 || f.Randomization < 0 || f.Randomization > 1 {
		return nil, errors.Errorf("invalid backoff factors: multiplier %g, randomization %g", f.Multiplier, f.Randomization)
	}
	b.Reset()
	if f.MaxRetries > 0 {
		return backoff.WithMaxRetries(b, f.MaxRetries), nil
	}
	return b, nil
}
