package cmd

import (
	"github.com/alecthomas/kingpin/v2" // Command line flag parsing.
)

// Flagger defines command line flags and args.
// Both kingpin.Application and kingpin.CmdClause are Flaggers, so flag
// sets can be attached to the whole app or to a single command.
type Flagger interface {
	Flag(name string, help string) *kingpin.FlagClause
	Arg(name string, help string) *kingpin.ArgClause
}

var (
	_ Flagger = (*kingpin.Application)(nil)
	_ Flagger = (*kingpin.CmdClause)(nil)
)
