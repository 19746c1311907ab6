package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"               // Command line flag parsing.
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.

	"github.com/mintel/timespan/internal/app/durcalc" // App implementation.
)

func main() {
	app, err := durcalc.NewApp(prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}
	kingpin.MustParse(app.Parse(os.Args[1:]))
	os.Exit(app.Main(prometheus.DefaultGatherer))
}
