package time

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mintel/timespan/pkg/duration"
)

func TestBetween(t *testing.T) {
	type args struct {
		t     time.Time
		start time.Time
		span  duration.Duration
	}
	june := time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "between",
			args: args{
				start: june,
				t:     time.Date(2019, time.June, 15, 0, 0, 0, 0, time.UTC),
				span:  duration.Days(30),
			},
			want: true,
		},
		{
			name: "before",
			args: args{
				start: june,
				t:     time.Date(2019, time.May, 20, 0, 0, 0, 0, time.UTC),
				span:  duration.Days(30),
			},
			want: false,
		},
		{
			name: "after",
			args: args{
				start: june,
				t:     time.Date(2019, time.July, 15, 0, 0, 0, 0, time.UTC),
				span:  duration.Days(30),
			},
			want: false,
		},
		{
			name: "inclusive_left",
			args: args{
				start: june,
				t:     june,
				span:  duration.Days(30),
			},
			want: true,
		},
		{
			name: "inclusive_right",
			args: args{
				start: june,
				t:     time.Date(2019, time.July, 1, 0, 0, 0, 0, time.UTC),
				span:  duration.Days(30),
			},
			want: true,
		},
		{
			name: "negative_span",
			args: args{
				start: june,
				t:     time.Date(2019, time.May, 20, 0, 0, 0, 0, time.UTC),
				span:  duration.Days(-30),
			},
			want: true,
		},
		{
			name: "zero_span",
			args: args{
				start: june,
				t:     june,
				span:  duration.Zero,
			},
			want: true,
		},
		{
			name: "max_span",
			args: args{
				start: june,
				t:     june.Add(time.Hour),
				span:  duration.Max,
			},
			want: true,
		},
		{
			name: "max_span_before_start",
			args: args{
				start: june,
				t:     june.Add(-time.Nanosecond),
				span:  duration.Max,
			},
			want: false,
		},
		{
			name: "min_span",
			args: args{
				start: june,
				t:     time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC),
				span:  duration.Min,
			},
			want: true,
		},
		{
			name: "min_span_after_start",
			args: args{
				start: june,
				t:     june.Add(time.Nanosecond),
				span:  duration.Min,
			},
			want: false,
		},
		{
			name: "beyond_time_duration",
			args: args{
				start: june,
				t:     time.Date(2500, time.January, 1, 0, 0, 0, 0, time.UTC),
				span:  duration.Weeks(52 * 1000),
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Between(tt.args.t, tt.args.start, tt.args.span)
			assert.Equal(t, tt.want, got,
				"Between(%s, %s, %s) = %v, want %v", tt.args.t, tt.args.start, tt.args.span, got, tt.want,
			)
		})
	}

	// A window and its mirror from the other end hold the same instants.
	t.Run("mirrored", func(t *testing.T) {
		f := func(tm, start time.Time, span duration.Duration) bool {
			return Between(tm, start, span) == Between(tm, Add(start, span), span.Neg())
		}
		err := quick.Check(f, &quick.Config{
			Values: func(args []reflect.Value, r *rand.Rand) {
				randomTime := func() time.Time {
					sec := r.Int63n(1 << 40)
					if r.Float64() > 0.5 {
						sec = -sec
					}
					return time.Unix(sec, r.Int63n(int64(time.Second)))
				}
				args[0] = reflect.ValueOf(randomTime()) // t
				args[1] = reflect.ValueOf(randomTime()) // start
				args[2] = reflect.ValueOf(duration.Seconds(r.Int63n(1<<41) - 1<<40).Add(duration.Nanoseconds(r.Int63n(int64(time.Second)))))
			},
		})
		assert.NoError(t, err)
	})
}
