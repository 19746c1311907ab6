package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty" // Check if running in a terminal.
	"go.uber.org/zap"            // Logging.
	"go.uber.org/zap/zapcore"
)

// LoggingFlags represents a set of flags for setting up logging.
type LoggingFlags struct {
	LogLevel zapcore.Level // Logging level.
}

// NewLoggingFlags returns a new LoggingFlags.
func NewLoggingFlags(app Flagger, logLevel string) *LoggingFlags {
	var f LoggingFlags

	var levels []string
	for l := zapcore.DebugLevel; l <= zapcore.FatalLevel; l++ {
		levels = append(levels, l.CapitalString(), l.String())
	}

	app.Flag("log.level", "Set logging level.").
		HintOptions(levels...).
		Default(logLevel).
		SetValue(&f.LogLevel)

	return &f
}

// NewLogger returns a new logger based on the LogLevel flag.
// Logs go to stderr, leaving stdout for command output.
func (f *LoggingFlags) NewLogger() *zap.Logger {
	var conf zap.Config

	// In a terminal use the zap development config (console encoding),
	// else the production config (JSON).
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		conf = zap.NewDevelopmentConfig()
	} else {
		conf = zap.NewProductionConfig()
	}
	conf.OutputPaths = []string{"stderr"}
	conf.ErrorOutputPaths = []string{"stderr"}
	conf.Level.SetLevel(f.LogLevel)

	logger, err := conf.Build()
	if err != nil {
		panic(fmt.Sprintf("error building logger: %s", err))
	}

	return logger
}

// SetGlobalLogger sets the zap global logger and redirects the standard
// library's logger to it at debug level. The returned function restores
// both.
func SetGlobalLogger(logger *zap.Logger) func() {
	undoGlobals := zap.ReplaceGlobals(logger)
	undoStdLog, err := zap.RedirectStdLogAt(logger, zapcore.DebugLevel)
	if err != nil {
		panic(err)
	}
	return func() {
		undoStdLog()
		undoGlobals()
	}
}
