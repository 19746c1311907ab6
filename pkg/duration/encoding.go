package duration

import (
	"strconv"

	"github.com/pkg/errors"    // Wrap errors with stacktrace.
	"github.com/tidwall/gjson" // Dynamic JSON parsing.
)

// MarshalText implements encoding.TextMarshaler using String.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalJSON implements json.Marshaler.
// The output is an object: {"seconds":-1,"nanoseconds":-500000000}.
func (d Duration) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 48)
	buf = append(buf, `{"seconds":`...)
	buf = strconv.AppendInt(buf, d.seconds, 10)
	buf = append(buf, `,"nanoseconds":`...)
	buf = strconv.AppendInt(buf, int64(d.nanoseconds), 10)
	buf = append(buf, '}')
	return buf, nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts the object written
// by MarshalJSON (the two parts may disagree in sign, they are normalized
// as by New), a string in any form Parse accepts, or a number of seconds.
// null leaves d unchanged.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if !gjson.Valid(string(data)) {
		return errors.Wrap(ErrSyntax, "invalid JSON duration")
	}
	var (
		v   Duration
		err error
	)
	result := gjson.ParseBytes(data)
	switch {
	case result.Type == gjson.Null:
		return nil
	case result.Type == gjson.String:
		v, err = Parse(result.Str)
	case result.Type == gjson.Number:
		v, err = unmarshalJSONNumber(result)
	case result.IsObject():
		v, err = unmarshalJSONObject(result)
	default:
		err = errors.Wrapf(ErrSyntax, "can't unmarshal %s into a duration", result.Raw)
	}
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func unmarshalJSONNumber(result gjson.Result) (Duration, error) {
	// Decimal notation is parsed exactly; anything else, like
	// exponents, goes through float64.
	if v, err := Parse(result.Raw + "s"); err == nil {
		return v, nil
	}
	v, ok := CheckedSecondsF64(result.Num)
	if !ok {
		return Duration{}, errors.Wrapf(ErrOverflow, "%s seconds", result.Raw)
	}
	return v, nil
}

func unmarshalJSONObject(result gjson.Result) (Duration, error) {
	seconds, nanos := result.Get("seconds"), result.Get("nanoseconds")
	if !seconds.Exists() && !nanos.Exists() {
		return Duration{}, errors.Wrapf(ErrSyntax, "duration object %s has no seconds or nanoseconds", result.Raw)
	}
	for _, field := range []gjson.Result{seconds, nanos} {
		if field.Exists() && field.Type != gjson.Number {
			return Duration{}, errors.Wrapf(ErrSyntax, "non-numeric field in duration object %s", result.Raw)
		}
	}
	s, err := strconv.ParseInt(orZero(seconds), 10, 64)
	if err != nil {
		return Duration{}, errors.Wrapf(ErrSyntax, "seconds %s: %v", seconds.Raw, err)
	}
	n, err := strconv.ParseInt(orZero(nanos), 10, 32)
	if err != nil {
		return Duration{}, errors.Wrapf(ErrSyntax, "nanoseconds %s: %v", nanos.Raw, err)
	}
	if n <= -nanosPerSecond || n >= nanosPerSecond {
		return Duration{}, errors.Wrapf(ErrSyntax, "nanoseconds %d out of range", n)
	}
	return New(s, int32(n)), nil
}

func orZero(r gjson.Result) string {
	if !r.Exists() {
		return "0"
	}
	return r.Raw
}
