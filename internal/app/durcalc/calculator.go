package durcalc

import (
	"fmt"
	"strings"

	"github.com/pkg/errors" // Wrap errors with stacktrace.
	"go.uber.org/zap"       // Logging.

	"github.com/mintel/timespan/pkg/duration"
)

// Mode selects which family of duration arithmetic an Expr uses.
type Mode string

const (
	// Checked reports overflow as an error.
	Checked Mode = "checked"
	// Saturating clamps results to duration.Min or duration.Max.
	Saturating Mode = "saturating"
	// Panicking uses the panicking operators. The panic is recovered
	// and returned as an error wrapping duration.ErrOverflow.
	Panicking Mode = "panic"
)

// Modes lists every Mode, in the order shown in help text.
var Modes = []string{string(Checked), string(Saturating), string(Panicking)}

// ParseMode returns the Mode named s.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if s == m {
			return Mode(m), nil
		}
	}
	return "", errors.Errorf("unknown mode %q, want one of %s", s, strings.Join(Modes, ", "))
}

// Op is an operation on durations.
type Op string

// Operations. The number of operands each takes is given by Arity.
const (
	OpAdd   Op = "add"
	OpSub   Op = "sub"
	OpMul   Op = "mul"
	OpDiv   Op = "div"
	OpNeg   Op = "neg"
	OpAbs   Op = "abs"
	OpRatio Op = "ratio"
)

// Arity returns the number of duration operands op takes, and whether it
// takes an integer factor as well. ok is false for unknown operations.
func (op Op) Arity() (durations int, factor bool, ok bool) {
	switch op {
	case OpAdd, OpSub, OpRatio:
		return 2, false, true
	case OpMul, OpDiv:
		return 1, true, true
	case OpNeg, OpAbs:
		return 1, false, true
	}
	return 0, false, false
}

// Expr is a single operation and its operands.
type Expr struct {
	Op        Op
	Mode      Mode
	Durations []duration.Duration
	Factor    int32
}

func (e Expr) String() string {
	operands := make([]string, 0, len(e.Durations)+1)
	for _, d := range e.Durations {
		operands = append(operands, d.String())
	}
	if _, factor, _ := e.Op.Arity(); factor {
		operands = append(operands, fmt.Sprint(e.Factor))
	}
	return fmt.Sprintf("%s(%s)", e.Op, strings.Join(operands, ", "))
}

// Result is the outcome of evaluating an Expr. Ratio is set by OpRatio,
// Duration by every other operation.
type Result struct {
	Duration duration.Duration
	Ratio    *float64
}

// Calculator evaluates Exprs.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator returns a new Calculator. A nil logger disables logging.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Eval evaluates e. Overflow is reported as an error wrapping
// duration.ErrOverflow in Checked and Panicking mode, and division by zero
// as an error wrapping duration.ErrDivisionByZero in every mode.
func (c *Calculator) Eval(e Expr) (r Result, err error) {
	logger := c.logger.With(zap.Stringer("expr", e), zap.String("mode", string(e.Mode)))

	n, _, ok := e.Op.Arity()
	if !ok {
		return Result{}, errors.Errorf("unknown operation %q", e.Op)
	}
	if len(e.Durations) != n {
		return Result{}, errors.Errorf("%s takes %d duration operand(s), got %d", e.Op, n, len(e.Durations))
	}
	if e.Op == OpDiv && e.Factor == 0 {
		return Result{}, errors.Wrapf(duration.ErrDivisionByZero, "%s", e)
	}
	if e.Op == OpRatio && e.Durations[1].IsZero() {
		return Result{}, errors.Wrapf(duration.ErrDivisionByZero, "%s", e)
	}

	defer func() {
		if err != nil {
			logger.Debug("evaluation failed", zap.Error(err))
		} else {
			logger.Debug("evaluated", zap.Stringer("result", r))
		}
	}()

	switch e.Mode {
	case Checked:
		return checked(e)
	case Saturating:
		return saturating(e), nil
	case Panicking:
		return panicking(e)
	}
	return Result{}, errors.Errorf("unknown mode %q", e.Mode)
}

func (r Result) String() string {
	if r.Ratio != nil {
		return fmt.Sprint(*r.Ratio)
	}
	return r.Duration.String()
}

func ratio(e Expr) Result {
	v := e.Durations[0].DivDuration(e.Durations[1])
	return Result{Ratio: &v}
}

func checked(e Expr) (Result, error) {
	var (
		v  duration.Duration
		ok bool
	)
	switch e.Op {
	case OpAdd:
		v, ok = e.Durations[0].CheckedAdd(e.Durations[1])
	case OpSub:
		v, ok = e.Durations[0].CheckedSub(e.Durations[1])
	case OpMul:
		v, ok = e.Durations[0].CheckedMul(e.Factor)
	case OpDiv:
		v, ok = e.Durations[0].CheckedDiv(e.Factor)
	case OpNeg:
		v, ok = e.Durations[0].CheckedNeg()
	case OpAbs:
		v, ok = e.Durations[0], true
		if v.IsNegative() {
			v, ok = v.CheckedNeg()
		}
	case OpRatio:
		return ratio(e), nil
	}
	if !ok {
		return Result{}, errors.Wrapf(duration.ErrOverflow, "%s", e)
	}
	return Result{Duration: v}, nil
}

func saturating(e Expr) Result {
	d := e.Durations[0]
	switch e.Op {
	case OpAdd:
		return Result{Duration: d.SaturatingAdd(e.Durations[1])}
	case OpSub:
		return Result{Duration: d.SaturatingSub(e.Durations[1])}
	case OpMul:
		return Result{Duration: d.SaturatingMul(e.Factor)}
	case OpDiv:
		// Only Min/-1 overflows, and its true value is above Max.
		if v, ok := d.CheckedDiv(e.Factor); ok {
			return Result{Duration: v}
		}
		return Result{Duration: duration.Max}
	case OpNeg:
		return Result{Duration: d.SaturatingNeg()}
	case OpAbs:
		return Result{Duration: d.Abs()}
	}
	return ratio(e)
}

func panicking(e Expr) (r Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			if perr, ok := p.(error); ok && errors.Is(perr, duration.ErrOverflow) {
				err = errors.Wrapf(perr, "%s", e)
				return
			}
			panic(p)
		}
	}()

	d := e.Durations[0]
	switch e.Op {
	case OpAdd:
		return Result{Duration: d.Add(e.Durations[1])}, nil
	case OpSub:
		return Result{Duration: d.Sub(e.Durations[1])}, nil
	case OpMul:
		return Result{Duration: d.Mul(int64(e.Factor))}, nil
	case OpDiv:
		return Result{Duration: d.Div(int64(e.Factor))}, nil
	case OpNeg:
		return Result{Duration: d.Neg()}, nil
	case OpAbs:
		if d.IsNegative() {
			d = d.Neg()
		}
		return Result{Duration: d}, nil
	}
	return ratio(e), nil
}
