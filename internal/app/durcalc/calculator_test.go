package durcalc

import (
	"testing"

	"github.com/stretchr/testify/assert" // Test assertions e.g. equality.
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mintel/timespan/pkg/duration"
)

func TestParseMode(t *testing.T) {
	for _, s := range Modes {
		m, err := ParseMode(s)
		assert.NoError(t, err)
		assert.Equal(t, Mode(s), m)
	}
	_, err := ParseMode("wrapping")
	assert.Error(t, err)
}

func TestExpr_String(t *testing.T) {
	assert.Equal(t, "add(1h0m0s, -1s)", Expr{Op: OpAdd, Durations: []duration.Duration{duration.Hour, duration.Seconds(-1)}}.String())
	assert.Equal(t, "mul(1m0s, 3)", Expr{Op: OpMul, Durations: []duration.Duration{duration.Minute}, Factor: 3}.String())
	assert.Equal(t, "neg(0s)", Expr{Op: OpNeg, Durations: []duration.Duration{duration.Zero}}.String())
}

func TestCalculator_Eval(t *testing.T) {
	var (
		d1     = duration.Hours(1)
		d2     = duration.Minutes(-30)
		halfNs = duration.Nanoseconds(-1)
	)
	testCases := []struct {
		desc      string
		op        Op
		durations []duration.Duration
		factor    int32
		// Results per mode. A nil error means want is the result.
		want map[Mode]duration.Duration
		err  map[Mode]error
	}{
		{
			desc:      "add",
			op:        OpAdd,
			durations: []duration.Duration{d1, d2},
			want:      map[Mode]duration.Duration{Checked: duration.Minutes(30), Saturating: duration.Minutes(30), Panicking: duration.Minutes(30)},
		},
		{
			desc:      "add-overflow",
			op:        OpAdd,
			durations: []duration.Duration{duration.Max, duration.Nanosecond},
			want:      map[Mode]duration.Duration{Saturating: duration.Max},
			err:       map[Mode]error{Checked: duration.ErrOverflow, Panicking: duration.ErrOverflow},
		},
		{
			desc:      "sub",
			op:        OpSub,
			durations: []duration.Duration{d2, d1},
			want:      map[Mode]duration.Duration{Checked: duration.Minutes(-90), Saturating: duration.Minutes(-90), Panicking: duration.Minutes(-90)},
		},
		{
			desc:      "sub-overflow",
			op:        OpSub,
			durations: []duration.Duration{duration.Min, duration.Nanosecond},
			want:      map[Mode]duration.Duration{Saturating: duration.Min},
			err:       map[Mode]error{Checked: duration.ErrOverflow, Panicking: duration.ErrOverflow},
		},
		{
			desc:      "mul",
			op:        OpMul,
			durations: []duration.Duration{d2},
			factor:    -3,
			want:      map[Mode]duration.Duration{Checked: duration.Minutes(90), Saturating: duration.Minutes(90), Panicking: duration.Minutes(90)},
		},
		{
			desc:      "mul-overflow",
			op:        OpMul,
			durations: []duration.Duration{duration.Max},
			factor:    -2,
			want:      map[Mode]duration.Duration{Saturating: duration.Min},
			err:       map[Mode]error{Checked: duration.ErrOverflow, Panicking: duration.ErrOverflow},
		},
		{
			desc:      "div",
			op:        OpDiv,
			durations: []duration.Duration{duration.Seconds(-7)},
			factor:    2,
			want:      map[Mode]duration.Duration{Checked: duration.Milliseconds(-3500), Saturating: duration.Milliseconds(-3500), Panicking: duration.Milliseconds(-3500)},
		},
		{
			desc:      "div-overflow",
			op:        OpDiv,
			durations: []duration.Duration{duration.Min},
			factor:    -1,
			want:      map[Mode]duration.Duration{Saturating: duration.Max},
			err:       map[Mode]error{Checked: duration.ErrOverflow, Panicking: duration.ErrOverflow},
		},
		{
			desc:      "div-by-zero",
			op:        OpDiv,
			durations: []duration.Duration{duration.Second},
			err:       map[Mode]error{Checked: duration.ErrDivisionByZero, Saturating: duration.ErrDivisionByZero, Panicking: duration.ErrDivisionByZero},
		},
		{
			desc:      "neg",
			op:        OpNeg,
			durations: []duration.Duration{halfNs},
			want:      map[Mode]duration.Duration{Checked: duration.Nanosecond, Saturating: duration.Nanosecond, Panicking: duration.Nanosecond},
		},
		{
			desc:      "neg-min",
			op:        OpNeg,
			durations: []duration.Duration{duration.Min},
			want:      map[Mode]duration.Duration{Saturating: duration.Max},
			err:       map[Mode]error{Checked: duration.ErrOverflow, Panicking: duration.ErrOverflow},
		},
		{
			desc:      "abs",
			op:        OpAbs,
			durations: []duration.Duration{d2},
			want:      map[Mode]duration.Duration{Checked: duration.Minutes(30), Saturating: duration.Minutes(30), Panicking: duration.Minutes(30)},
		},
		{
			desc:      "abs-min",
			op:        OpAbs,
			durations: []duration.Duration{duration.Min},
			want:      map[Mode]duration.Duration{Saturating: duration.Max},
			err:       map[Mode]error{Checked: duration.ErrOverflow, Panicking: duration.ErrOverflow},
		},
	}
	for _, tC := range testCases {
		for _, mode := range []Mode{Checked, Saturating, Panicking} {
			t.Run(tC.desc+"/"+string(mode), func(t *testing.T) {
				c := NewCalculator(nil)
				got, err := c.Eval(Expr{Op: tC.op, Mode: mode, Durations: tC.durations, Factor: tC.factor})
				if wantErr := tC.err[mode]; wantErr != nil {
					assert.ErrorIs(t, err, wantErr)
					return
				}
				require.NoError(t, err)
				assert.Nil(t, got.Ratio)
				assert.Equal(t, tC.want[mode], got.Duration)
			})
		}
	}
}

func TestCalculator_Eval_ratio(t *testing.T) {
	c := NewCalculator(nil)
	for _, mode := range []Mode{Checked, Saturating, Panicking} {
		got, err := c.Eval(Expr{Op: OpRatio, Mode: mode, Durations: []duration.Duration{duration.Seconds(90), duration.Minute}})
		require.NoError(t, err)
		require.NotNil(t, got.Ratio)
		assert.Equal(t, 1.5, *got.Ratio)
		assert.Equal(t, "1.5", got.String())

		_, err = c.Eval(Expr{Op: OpRatio, Mode: mode, Durations: []duration.Duration{duration.Second, duration.Zero}})
		assert.ErrorIs(t, err, duration.ErrDivisionByZero)
	}
}

func TestCalculator_Eval_invalid(t *testing.T) {
	c := NewCalculator(nil)
	for _, e := range []Expr{
		{Op: "pow", Mode: Checked, Durations: []duration.Duration{duration.Second}},
		{Op: OpAdd, Mode: Checked, Durations: []duration.Duration{duration.Second}},
		{Op: OpNeg, Mode: Checked},
		{Op: OpAdd, Mode: "wrapping", Durations: []duration.Duration{duration.Second, duration.Second}},
	} {
		_, err := c.Eval(e)
		assert.Error(t, err, e.String())
	}
}

func TestCalculator_Eval_logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewCalculator(zap.New(core))

	_, err := c.Eval(Expr{Op: OpAdd, Mode: Checked, Durations: []duration.Duration{duration.Second, duration.Second}})
	require.NoError(t, err)
	_, err = c.Eval(Expr{Op: OpNeg, Mode: Checked, Durations: []duration.Duration{duration.Min}})
	require.Error(t, err)

	ok := logs.FilterMessage("evaluated").All()
	if assert.Len(t, ok, 1) {
		assert.Equal(t, "2s", ok[0].ContextMap()["result"])
		assert.Equal(t, "add(1s, 1s)", ok[0].ContextMap()["expr"])
	}
	assert.Equal(t, 1, logs.FilterMessage("evaluation failed").Len())
}
