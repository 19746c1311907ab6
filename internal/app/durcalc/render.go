package durcalc

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors" // Wrap errors with stacktrace.

	"github.com/mintel/timespan/pkg/duration"
)

// Format is an output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatISO  Format = "iso"
)

// Formats lists every Format, in the order shown in help text.
var Formats = []string{string(FormatText), string(FormatJSON), string(FormatISO)}

// Summary is every accessor of a Duration.
type Summary struct {
	Text string `json:"text"`
	ISO  string `json:"iso"`

	Seconds     int64 `json:"seconds"`
	Nanoseconds int32 `json:"nanoseconds"`

	WholeWeeks        int64    `json:"whole_weeks"`
	WholeDays         int64    `json:"whole_days"`
	WholeHours        int64    `json:"whole_hours"`
	WholeMinutes      int64    `json:"whole_minutes"`
	WholeMilliseconds *big.Int `json:"whole_milliseconds"`
	WholeMicroseconds *big.Int `json:"whole_microseconds"`
	WholeNanoseconds  *big.Int `json:"whole_nanoseconds"`

	SubsecMilliseconds int32 `json:"subsec_milliseconds"`
	SubsecMicroseconds int32 `json:"subsec_microseconds"`
	SubsecNanoseconds  int32 `json:"subsec_nanoseconds"`

	SecondsF64 float64 `json:"seconds_f64"`
}

// Summarize returns the Summary of d.
func Summarize(d duration.Duration) Summary {
	return Summary{
		Text:               d.String(),
		ISO:                d.FormatISO8601(),
		Seconds:            d.WholeSeconds(),
		Nanoseconds:        d.SubsecNanoseconds(),
		WholeWeeks:         d.WholeWeeks(),
		WholeDays:          d.WholeDays(),
		WholeHours:         d.WholeHours(),
		WholeMinutes:       d.WholeMinutes(),
		WholeMilliseconds:  d.WholeMilliseconds(),
		WholeMicroseconds:  d.WholeMicroseconds(),
		WholeNanoseconds:   d.WholeNanoseconds(),
		SubsecMilliseconds: d.SubsecMilliseconds(),
		SubsecMicroseconds: d.SubsecMicroseconds(),
		SubsecNanoseconds:  d.SubsecNanoseconds(),
		SecondsF64:         d.AsSecondsF64(),
	}
}

// Attempt is one step of a retry schedule.
type Attempt struct {
	Attempt int               `json:"attempt"`
	Wait    duration.Duration `json:"wait"`
	Elapsed duration.Duration `json:"elapsed"`
}

// renderer writes command output in a Format.
type renderer struct {
	w io.Writer
	f Format
}

func (r renderer) encode(v interface{}) error {
	enc := json.NewEncoder(r.w)
	return errors.Wrap(enc.Encode(v), "error encoding output")
}

func (r renderer) line(s string) error {
	_, err := fmt.Fprintln(r.w, s)
	return err
}

func (r renderer) duration(d duration.Duration) error {
	switch r.f {
	case FormatJSON:
		return r.encode(d)
	case FormatISO:
		return r.line(d.FormatISO8601())
	}
	return r.line(d.String())
}

func (r renderer) result(res Result) error {
	if res.Ratio == nil {
		return r.duration(res.Duration)
	}
	if r.f == FormatJSON {
		return r.encode(map[string]float64{"ratio": *res.Ratio})
	}
	return r.line(res.String())
}

func (r renderer) instant(t time.Time) error {
	s := t.Format(time.RFC3339Nano)
	if r.f == FormatJSON {
		return r.encode(map[string]string{"time": s})
	}
	return r.line(s)
}

func (r renderer) flag(key string, v bool) error {
	if r.f == FormatJSON {
		return r.encode(map[string]bool{key: v})
	}
	return r.line(fmt.Sprint(v))
}

func (r renderer) summary(s Summary) error {
	switch r.f {
	case FormatJSON:
		return r.encode(s)
	case FormatISO:
		return r.line(s.ISO)
	}
	tw := tabwriter.NewWriter(r.w, 0, 8, 2, ' ', 0)
	rows := []struct {
		name  string
		value interface{}
	}{
		{"text", s.Text},
		{"iso", s.ISO},
		{"seconds", s.Seconds},
		{"nanoseconds", s.Nanoseconds},
		{"whole weeks", s.WholeWeeks},
		{"whole days", s.WholeDays},
		{"whole hours", s.WholeHours},
		{"whole minutes", s.WholeMinutes},
		{"whole milliseconds", s.WholeMilliseconds},
		{"whole microseconds", s.WholeMicroseconds},
		{"whole nanoseconds", s.WholeNanoseconds},
		{"subsec milliseconds", s.SubsecMilliseconds},
		{"subsec microseconds", s.SubsecMicroseconds},
		{"subsec nanoseconds", s.SubsecNanoseconds},
		{"seconds (float)", s.SecondsF64},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%v\n", row.name, row.value)
	}
	return tw.Flush()
}

func (r renderer) schedule(attempts []Attempt) error {
	switch r.f {
	case FormatJSON:
		if attempts == nil {
			attempts = []Attempt{}
		}
		return r.encode(attempts)
	case FormatISO:
		for _, a := range attempts {
			if _, err := fmt.Fprintf(r.w, "%d %s %s\n", a.Attempt, a.Wait.FormatISO8601(), a.Elapsed.FormatISO8601()); err != nil {
				return err
			}
		}
		return nil
	}
	tw := tabwriter.NewWriter(r.w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ATTEMPT\tWAIT\tELAPSED")
	for _, a := range attempts {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", a.Attempt, a.Wait, a.Elapsed)
	}
	return tw.Flush()
}
