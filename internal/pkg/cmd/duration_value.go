package cmd

import (
	"github.com/alecthomas/kingpin/v2" // Command line flag parsing.

	"github.com/mintel/timespan/pkg/duration"
)

// durationValue is a kingpin.Value for a duration.Duration.
type durationValue struct {
	d *duration.Duration
}

func (v durationValue) Set(s string) error {
	d, err := duration.Parse(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v durationValue) String() string {
	if v.d == nil {
		return duration.Zero.String()
	}
	return v.d.String()
}

// DurationVar binds a flag or arg to target. Values are read with
// duration.Parse, so both "1h30m" and "PT1H30M" are accepted.
//
// Example:
//
//	cmd.DurationVar(app.Flag("timeout", "Request timeout.").Default("30s"), &timeout)
func DurationVar(s kingpin.Settings, target *duration.Duration) {
	s.SetValue(durationValue{target})
}

// Duration is like DurationVar, but allocates the target.
func Duration(s kingpin.Settings) *duration.Duration {
	target := new(duration.Duration)
	DurationVar(s, target)
	return target
}
