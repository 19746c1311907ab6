package durcalc

import (
	"strings"

	"github.com/alecthomas/kingpin/v2" // Command line flag parsing.

	"github.com/mintel/timespan/internal/pkg/cmd"
	"github.com/mintel/timespan/pkg/duration"
)

const (
	defaultListenAddress = ":8080"
	defaultLogLevel      = "INFO"
	defaultCacheTTL      = "5m"
	defaultScheduleLimit = "100"
)

// Flags holds command line flags for the durcalc App.
type Flags struct {
	// Arithmetic family used by the arithmetic commands.
	Mode Mode

	// Output format.
	Format Format

	// URL of a durcalc server to evaluate arithmetic on. Empty evaluates locally.
	Remote string

	*cmd.LoggingFlags
}

// NewFlags returns a new Flags.
func NewFlags(app *kingpin.Application) *Flags {
	var f Flags

	app.Flag("mode", "Arithmetic on overflow: "+strings.Join(Modes, ", ")+".").
		Short('m').
		Default(string(Checked)).
		EnumVar((*string)(&f.Mode), Modes...)

	app.Flag("format", "Output format: "+strings.Join(Formats, ", ")+".").
		Short('o').
		Default(string(FormatText)).
		EnumVar((*string)(&f.Format), Formats...)

	app.Flag("remote", "Evaluate arithmetic on the durcalc server at this URL.").
		PlaceHolder("http://HOST:PORT").
		StringVar(&f.Remote)

	f.LoggingFlags = cmd.NewLoggingFlags(app, defaultLogLevel)

	return &f
}

// ServeFlags holds flags of the serve command.
type ServeFlags struct {
	// How long a parsed operand stays in the parse cache.
	CacheTTL duration.Duration

	*cmd.ServerFlags
}

// NewServeFlags returns a new ServeFlags attached to c.
func NewServeFlags(c *kingpin.CmdClause) *ServeFlags {
	var f ServeFlags

	cmd.DurationVar(c.Flag("serve.cache-ttl", "How long parsed duration operands are cached.").
		Default(defaultCacheTTL), &f.CacheTTL)

	f.ServerFlags = cmd.NewServerFlags(c, defaultListenAddress)

	return &f
}

// ScheduleFlags holds flags of the schedule command.
type ScheduleFlags struct {
	// Most attempts to list.
	Limit int

	*cmd.BackoffFlags
}

// NewScheduleFlags returns a new ScheduleFlags attached to c.
func NewScheduleFlags(c *kingpin.CmdClause) *ScheduleFlags {
	var f ScheduleFlags

	c.Flag("limit", "Most attempts to list.").
		Default(defaultScheduleLimit).
		IntVar(&f.Limit)

	f.BackoffFlags = cmd.NewBackoffFlags(c)

	return &f
}
