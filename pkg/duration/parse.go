package duration

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/pkg/errors" // Wrap errors with stacktrace.
)

const (
	// ISO 8601 Duration string parts
	iso8601Weeks   = "W"
	iso8601Years   = "Y"
	iso8601Months  = "M"
	iso8601Days    = "D"
	iso8601Hours   = "H"
	iso8601Minutes = "M"
	iso8601Seconds = "S"

	// ISO 8601 duration string part regexp pattern
	iso8601Group = `(?:(?P<%s>\d+(?:[,.]\d+)?)%s)?`

	// ISO 8601 duration string regexp group names
	iso8601GroupWeeks   = "W"
	iso8601GroupYears   = "Y"
	iso8601GroupMonths  = "m"
	iso8601GroupDays    = "d"
	iso8601GroupHours   = "H"
	iso8601GroupMinutes = "M"
	iso8601GroupSeconds = "S"
)

var iso8601Duration = regexp.MustCompile(fmt.Sprintf(`^[-+]?P(?:0|%s|%s)$`,
	fmt.Sprintf(iso8601Group, iso8601GroupWeeks, iso8601Weeks),
	fmt.Sprintf(`%s%s%s(?:T%s%s%s)?`,
		fmt.Sprintf(iso8601Group, iso8601GroupYears, iso8601Years),
		fmt.Sprintf(iso8601Group, iso8601GroupMonths, iso8601Months),
		fmt.Sprintf(iso8601Group, iso8601GroupDays, iso8601Days),
		fmt.Sprintf(iso8601Group, iso8601GroupHours, iso8601Hours),
		fmt.Sprintf(iso8601Group, iso8601GroupMinutes, iso8601Minutes),
		fmt.Sprintf(iso8601Group, iso8601GroupSeconds, iso8601Seconds),
	),
))

// Nanoseconds per unit. Months and years have no fixed length and are
// rejected rather than approximated.
var (
	iso8601Units = map[string]int64{
		iso8601GroupWeeks:   secondsPerWeek * nanosPerSecond,
		iso8601GroupDays:    secondsPerDay * nanosPerSecond,
		iso8601GroupHours:   secondsPerHour * nanosPerSecond,
		iso8601GroupMinutes: secondsPerMinute * nanosPerSecond,
		iso8601GroupSeconds: nanosPerSecond,
	}

	textUnits = map[string]int64{
		"ns": 1,
		"us": nanosPerMicro,
		"µs": nanosPerMicro, // U+00B5 micro sign
		"μs": nanosPerMicro, // U+03BC Greek mu
		"ms": nanosPerMilli,
		"s":  nanosPerSecond,
		"m":  secondsPerMinute * nanosPerSecond,
		"h":  secondsPerHour * nanosPerSecond,
		"d":  secondsPerDay * nanosPerSecond,
		"w":  secondsPerWeek * nanosPerSecond,
	}
)

// Parse parses a duration string in one of two forms:
//
//   - The String form: an optionally signed sequence of decimal numbers,
//     each with an optional fraction and a unit suffix, such as "300ms",
//     "-1.5h" or "1d2h45m". Valid units are "ns", "us" (or "µs"), "ms",
//     "s", "m", "h", "d" and "w". Days are 24 hours and weeks 7 days.
//   - An ISO 8601 duration such as "PT1H30M" or "-P1W". Years and months
//     are rejected because they have no fixed length.
//
// Fractions are exact down to the nanosecond and truncated beyond it.
// Errors wrap ErrSyntax for malformed input and ErrOverflow for values
// outside [Min, Max].
func Parse(s string) (Duration, error) {
	orig := s
	if s == "" {
		return Duration{}, errors.Wrap(ErrSyntax, "cannot parse a blank string as a duration")
	}
	body := strings.TrimLeft(s, "+-")
	if len(body) > 0 && body[0] == 'P' {
		return parseISO8601(orig)
	}

	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "0" {
		return Zero, nil
	}
	if s == "" {
		return Duration{}, errors.Wrapf(ErrSyntax, "%q", orig)
	}

	sum := new(big.Int)
	for s != "" {
		i := 0
		for i < len(s) && (s[i] == '.' || '0' <= s[i] && s[i] <= '9') {
			i++
		}
		number := s[:i]
		s = s[i:]
		i = 0
		for i < len(s) && s[i] != '.' && (s[i] < '0' || s[i] > '9') {
			i++
		}
		if i == 0 {
			return Duration{}, errors.Wrapf(ErrSyntax, "missing unit in duration %q", orig)
		}
		unit, ok := textUnits[s[:i]]
		if !ok {
			return Duration{}, errors.Wrapf(ErrSyntax, "unknown unit %q in duration %q", s[:i], orig)
		}
		s = s[i:]
		n, err := decimalNanos(number, unit)
		if err != nil {
			return Duration{}, errors.Wrapf(err, "duration %q", orig)
		}
		sum.Add(sum, n)
	}
	return fromParsedNanos(sum, neg, orig)
}

// parseISO8601 parses an ISO 8601 duration with an optional leading sign.
func parseISO8601(s string) (Duration, error) {
	matches := iso8601Duration.FindStringSubmatch(s)
	if matches == nil {
		return Duration{}, errors.Wrapf(ErrSyntax, "cannot parse ISO 8601 duration %q", s)
	}
	neg := s[0] == '-'
	groupNames := iso8601Duration.SubexpNames()
	sum := new(big.Int)
	found := strings.HasSuffix(s, "P0")
	for i := 1; i < len(groupNames); i++ {
		group, match := groupNames[i], matches[i]
		if match == "" {
			continue
		}
		found = true
		unit, ok := iso8601Units[group]
		if !ok {
			return Duration{}, errors.Wrapf(ErrSyntax, "calendar unit in ISO 8601 duration %q", s)
		}
		n, err := decimalNanos(strings.Replace(match, ",", ".", 1), unit)
		if err != nil {
			return Duration{}, errors.Wrapf(err, "duration %q", s)
		}
		sum.Add(sum, n)
	}
	if !found || strings.HasSuffix(s, "T") {
		return Duration{}, errors.Wrapf(ErrSyntax, "empty ISO 8601 duration %q", s)
	}
	return fromParsedNanos(sum, neg, s)
}

// decimalNanos returns the decimal number s times unit nanoseconds,
// truncated to a whole nanosecond.
func decimalNanos(s string, unit int64) (*big.Int, error) {
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" || strings.IndexByte(frac, '.') >= 0 {
		return nil, errors.Wrapf(ErrSyntax, "invalid number %q", s)
	}
	bigUnit := big.NewInt(unit)
	n := new(big.Int)
	if whole != "" {
		if _, ok := n.SetString(whole, 10); !ok {
			return nil, errors.Wrapf(ErrSyntax, "invalid number %q", s)
		}
		n.Mul(n, bigUnit)
	}
	if frac != "" {
		f, ok := new(big.Int).SetString(frac, 10)
		if !ok {
			return nil, errors.Wrapf(ErrSyntax, "invalid number %q", s)
		}
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(frac))), nil)
		f.Mul(f, bigUnit)
		f.Quo(f, scale)
		n.Add(n, f)
	}
	return n, nil
}

func fromParsedNanos(n *big.Int, neg bool, orig string) (Duration, error) {
	if neg {
		n.Neg(n)
	}
	d, ok := NanosecondsBig(n)
	if !ok {
		return Duration{}, errors.Wrapf(ErrOverflow, "duration %q", orig)
	}
	return d, nil
}

// MustParse is like Parse, but panics if there's an error.
func MustParse(s string) Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
