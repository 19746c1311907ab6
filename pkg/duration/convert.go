package duration

import (
	"time"

	"github.com/JohnCGriffin/overflow"                  // Checked integer arithmetic.
	"github.com/pkg/errors"                             // Wrap errors with stacktrace.
	"google.golang.org/protobuf/types/known/durationpb" // Protobuf well-known Duration.
)

// FromTimeDuration converts a time.Duration. It is always exact.
func FromTimeDuration(td time.Duration) Duration {
	return Duration{int64(td / time.Second), int32(td % time.Second)}
}

// ToTimeDuration converts d to a time.Duration. It returns an error
// wrapping ErrConversionRange if d is outside roughly ±292 years.
func (d Duration) ToTimeDuration() (time.Duration, error) {
	n, ok := overflow.Mul64(d.seconds, nanosPerSecond)
	if ok {
		n, ok = overflow.Add64(n, int64(d.nanoseconds))
	}
	if !ok {
		return 0, errors.Wrapf(ErrConversionRange, "%s overflows time.Duration", d)
	}
	return time.Duration(n), nil
}

// Limit of the protobuf Duration, about 10,000 years.
const maxProtoSeconds = 315576000000

// ToProto converts d to a protobuf Duration. It returns an error wrapping
// ErrConversionRange if d is outside the protobuf range of ±10,000 years.
func (d Duration) ToProto() (*durationpb.Duration, error) {
	if d.seconds > maxProtoSeconds || d.seconds < -maxProtoSeconds {
		return nil, errors.Wrapf(ErrConversionRange, "%s overflows protobuf duration", d)
	}
	// Both types keep seconds and nanos of the same sign.
	return &durationpb.Duration{Seconds: d.seconds, Nanos: d.nanoseconds}, nil
}

// FromProto converts a protobuf Duration. It returns an error wrapping
// ErrConversionRange if p is nil or invalid.
func FromProto(p *durationpb.Duration) (Duration, error) {
	if err := p.CheckValid(); err != nil {
		return Duration{}, errors.Wrap(ErrConversionRange, err.Error())
	}
	return Duration{p.GetSeconds(), p.GetNanos()}, nil
}
