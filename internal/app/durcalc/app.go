package durcalc

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"                          // Command line flag parsing.
	"github.com/heptiolabs/healthcheck"                         // Healthchecks framework.
	"github.com/pkg/errors"                                     // Wrap errors with stacktrace.
	"github.com/prometheus/client_golang/prometheus"            // Prometheus metrics.
	"github.com/prometheus/client_golang/prometheus/collectors" // Go runtime metrics.
	"go.uber.org/zap"                                           // Logging.
	"gopkg.in/tomb.v2"                                          // Goroutine lifecycle.

	"github.com/mintel/timespan/internal/pkg/cmd"
	"github.com/mintel/timespan/internal/pkg/metrics"
	"github.com/mintel/timespan/pkg/client"
	"github.com/mintel/timespan/pkg/duration"
	ptime "github.com/mintel/timespan/pkg/time"
)

const (
	Name  = "durcalc"
	Usage = "Calculate with signed, nanosecond-precision durations.\n\n" +
		"Durations are written like 1h30m, 1d12h, 1.5s or PT1H30M. " +
		"Put -- before a negative operand so it isn't read as a flag: durcalc add -- -1h 30m"
)

// runFunc runs a parsed command.
type runFunc func(ctx context.Context, logger *zap.Logger, g prometheus.Gatherer) error

// App holds application state.
type App struct {
	*kingpin.Application

	flags  *Flags              // Command line flags
	health healthcheck.Handler // healthchecks HTTP handler
	inst   *Instrumentation    // App-specific Prometheus metrics
	reg    prometheus.Registerer

	out io.Writer // Command output
	run runFunc   // Set by the action of the parsed command
}

// NewApp returns a new App.
func NewApp(r prometheus.Registerer) (*App, error) {
	namespace := cmd.BuildPromFQName("", Name)

	m := NewInstrumentation(namespace)
	if err := r.Register(m); err != nil {
		return nil, err
	}
	// The default registry already has these.
	metrics.MustRegisterOnce(r,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := &App{
		Application: kingpin.New(filepath.Base(os.Args[0]), Usage),
		health:      cmd.NewHealthchecksHandler(r, Name),
		inst:        m,
		reg:         r,
		out:         os.Stdout,
	}
	app.flags = NewFlags(app.Application)

	app.arithmetic(OpAdd, "Add two durations.")
	app.arithmetic(OpSub, "Subtract the second duration from the first.")
	app.arithmetic(OpMul, "Multiply a duration by an integer.")
	app.arithmetic(OpDiv, "Divide a duration by an integer, truncating toward zero.")
	app.arithmetic(OpNeg, "Negate a duration.")
	app.arithmetic(OpAbs, "Absolute value of a duration.")
	app.arithmetic(OpRatio, "Ratio of two durations, as a float.")
	app.show()
	app.at()
	app.diff()
	app.align()
	app.within()
	app.tick()
	app.schedule()
	app.serve()

	return app, nil
}

// Main is the main method of App and should be called
// in main.main() after flag parsing. It returns the exit status.
func (app *App) Main(g prometheus.Gatherer) int {
	logger := app.flags.NewLogger()
	defer func() { _ = logger.Sync() }()
	defer cmd.SetGlobalLogger(logger)()

	ctx, cancel := cmd.WithInterrupt(context.Background())
	defer cancel()

	if err := app.Run(ctx, logger, g); err != nil {
		app.Errorf("%s", err)
		return 1
	}
	return 0
}

// Run runs the command chosen by Parse.
func (app *App) Run(ctx context.Context, logger *zap.Logger, g prometheus.Gatherer) error {
	if app.run == nil {
		return errors.New("no command parsed")
	}
	return app.run(ctx, logger, g)
}

func (app *App) render() renderer {
	return renderer{w: app.out, f: app.flags.Format}
}

// command adds a command whose action selects run.
func (app *App) command(name, help string, run runFunc) *kingpin.CmdClause {
	return app.Command(name, help).Action(func(*kingpin.ParseContext) error {
		app.run = run
		return nil
	})
}

var operandNames = []string{"a", "b"}

func (app *App) arithmetic(op Op, help string) {
	n, hasFactor, _ := op.Arity()
	operands := make([]duration.Duration, n)
	var factor int32

	c := app.command(string(op), help, func(ctx context.Context, logger *zap.Logger, g prometheus.Gatherer) error {
		e := Expr{Op: op, Mode: app.flags.Mode, Durations: operands, Factor: factor}
		if app.flags.Remote != "" {
			return app.evalRemote(ctx, logger, e)
		}
		res, err := NewCalculator(logger).Eval(e)
		if err != nil {
			return err
		}
		return app.render().result(res)
	})
	for i := range operands {
		cmd.DurationVar(c.Arg(operandNames[i], "Duration operand.").Required(), &operands[i])
	}
	if hasFactor {
		c.Arg("n", "Integer factor.").Required().Int32Var(&factor)
	}
}

func (app *App) evalRemote(ctx context.Context, logger *zap.Logger, e Expr) error {
	c, err := client.New(app.flags.Remote, client.WithLogger(logger))
	if err != nil {
		return err
	}
	resp, err := c.Eval(ctx, client.Request{
		Op:        string(e.Op),
		Mode:      string(e.Mode),
		Durations: e.Durations,
		Factor:    e.Factor,
	})
	if err != nil {
		return err
	}
	return app.render().result(Result{Duration: resp.Duration, Ratio: resp.Ratio})
}

func (app *App) show() {
	var d duration.Duration
	c := app.command("show", "Show every accessor of a duration.", func(context.Context, *zap.Logger, prometheus.Gatherer) error {
		return app.render().summary(Summarize(d))
	})
	cmd.DurationVar(c.Arg("duration", "Duration to show.").Required(), &d)
}

func (app *App) at() {
	var (
		at string
		d  duration.Duration
	)
	c := app.command("at", "Time a duration after an instant.", func(context.Context, *zap.Logger, prometheus.Gatherer) error {
		t, err := ParseInstant(at)
		if err != nil {
			return err
		}
		t, err = AddInstant(t, d)
		if err != nil {
			return err
		}
		return app.render().instant(t)
	})
	c.Arg("time", "RFC 3339 instant, or now.").Required().StringVar(&at)
	cmd.DurationVar(c.Arg("duration", "Duration to add.").Required(), &d)
}

func (app *App) diff() {
	var start, end string
	c := app.command("diff", "Exact duration from one instant to another.", func(context.Context, *zap.Logger, prometheus.Gatherer) error {
		s, err := ParseInstant(start)
		if err != nil {
			return err
		}
		e, err := ParseInstant(end)
		if err != nil {
			return err
		}
		return app.render().duration(ptime.Sub(e, s))
	})
	c.Arg("start", "RFC 3339 instant, or now.").Required().StringVar(&start)
	c.Arg("end", "RFC 3339 instant, or now.").Required().StringVar(&end)
}

func (app *App) align() {
	var (
		at string
		d  duration.Duration
		to string
	)
	c := app.command("align", "Move an instant onto a multiple of a duration since the Unix epoch.", func(context.Context, *zap.Logger, prometheus.Gatherer) error {
		t, err := ParseInstant(at)
		if err != nil {
			return err
		}
		t, err = Align(t, d, Alignment(to))
		if err != nil {
			return err
		}
		return app.render().instant(t)
	})
	c.Flag("to", "Which multiple to move to.").
		Default(string(AlignFloor)).
		EnumVar(&to, Alignments...)
	c.Arg("time", "RFC 3339 instant, or now.").Required().StringVar(&at)
	cmd.DurationVar(c.Arg("interval", "Positive interval.").Required(), &d)
}

func (app *App) within() {
	var (
		at, start string
		span      duration.Duration
	)
	c := app.command("within", "Report whether an instant falls within a span from a start instant.", func(context.Context, *zap.Logger, prometheus.Gatherer) error {
		t, err := ParseInstant(at)
		if err != nil {
			return err
		}
		s, err := ParseInstant(start)
		if err != nil {
			return err
		}
		return app.render().flag("within", ptime.Between(t, s, span))
	})
	c.Arg("time", "RFC 3339 instant, or now.").Required().StringVar(&at)
	c.Arg("start", "RFC 3339 instant, or now.").Required().StringVar(&start)
	cmd.DurationVar(c.Arg("span", "Span from start. Negative spans end at start.").Required(), &span)
}

func (app *App) tick() {
	var (
		interval duration.Duration
		count    int
	)
	c := app.command("tick", "Print instants aligned to multiples of an interval as they pass.", func(ctx context.Context, logger *zap.Logger, _ prometheus.Gatherer) error {
		if !interval.IsPositive() {
			return errors.Errorf("tick interval must be positive, got %s", interval)
		}
		if _, err := interval.ToTimeDuration(); err != nil {
			return errors.Wrap(err, "tick interval")
		}
		ticker := ptime.NewRoundedTicker(interval)
		defer ticker.Stop()
		for i := 0; count <= 0 || i < count; i++ {
			select {
			case <-ctx.Done():
				logger.Debug("stopped ticking", zap.Int("ticks", i))
				return nil
			case t := <-ticker.C:
				if err := app.render().instant(t); err != nil {
					return err
				}
			}
		}
		return nil
	})
	c.Flag("count", "Stop after this many ticks. 0 ticks until interrupted.").
		Short('n').
		Default("1").
		IntVar(&count)
	cmd.DurationVar(c.Arg("interval", "Positive interval.").Required(), &interval)
}

func (app *App) schedule() {
	var f *ScheduleFlags
	c := app.command("schedule", "List the waits of an exponential backoff policy.", func(context.Context, *zap.Logger, prometheus.Gatherer) error {
		attempts, err := Schedule(f.NewBackOff, f.Limit)
		if err != nil {
			return err
		}
		return app.render().schedule(attempts)
	})
	f = NewScheduleFlags(c)
}

func (app *App) serve() {
	var f *ServeFlags
	c := app.command("serve", "Serve the evaluator over HTTP, with healthchecks and Prometheus metrics.", func(ctx context.Context, logger *zap.Logger, g prometheus.Gatherer) error {
		return app.listenAndServe(ctx, logger, g, f)
	})
	f = NewServeFlags(c)
}

func (app *App) listenAndServe(ctx context.Context, logger *zap.Logger, g prometheus.Gatherer, f *ServeFlags) error {
	api, err := NewServer(logger.Named("server"), app.inst, f.CacheTTL)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/v1/", api.Handler())
	f.ConfigureMux(mux, app.health, g)

	h, err := metrics.InstrumentHandler(mux, app.reg, cmd.BuildPromFQName("", Name), nil)
	if err != nil {
		return err
	}
	srv, err := f.NewServer(h)
	if err != nil {
		return err
	}

	t, _ := tomb.WithContext(ctx)
	t.Go(func() error {
		<-t.Dying()
		sctx, cancel := f.ShutdownContext()
		defer cancel()
		logger.Info("shutting down server")
		return srv.Shutdown(sctx)
	})
	t.Go(func() error {
		logger.Info("serving", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return errors.Wrap(err, "error serving")
		}
		return nil
	})

	err = t.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
