package cmd

import (
	"context"
	"net/http"

	"github.com/heptiolabs/healthcheck"              // Healthchecks framework.
	"github.com/pkg/errors"                          // Wrap errors with stacktrace.
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mintel/timespan/pkg/duration"
)

// ServerFlags represents a set of flags for setting up
// a server with healthchecks and Prometheus metrics.
type ServerFlags struct {
	ListenAddress string // Address to serve the API, health checks and Prometheus metrics on.
	LivePath      string // HTTP path to serve the liveness healthcheck at.
	ReadyPath     string // HTTP path to serve the readiness healthcheck at.
	MetricsPath   string // HTTP path to serve Prometheus metrics at.

	ReadHeaderTimeout duration.Duration // Time allowed to read request headers.
	ShutdownTimeout   duration.Duration // Time allowed for in-flight requests on shutdown.
}

// NewServerFlags returns a new ServerFlags.
func NewServerFlags(app Flagger, listenAddress string) *ServerFlags {
	var f ServerFlags

	app.Flag("serve.address", "Address on which to expose the API, healthchecks and Prometheus metrics.").
		Default(listenAddress).
		StringVar(&f.ListenAddress)

	app.Flag("serve.metrics", "Path at which to serve Prometheus metrics.").
		Default("/metrics").
		StringVar(&f.MetricsPath)

	app.Flag("serve.live", "Path at which to serve liveness healthcheck.").
		Default("/livez").
		StringVar(&f.LivePath)

	app.Flag("serve.ready", "Path at which to serve readiness healthcheck.").
		Default("/readyz").
		StringVar(&f.ReadyPath)

	DurationVar(app.Flag("serve.read-header-timeout", "Time allowed to read request headers.").
		Default("10s"), &f.ReadHeaderTimeout)

	DurationVar(app.Flag("serve.shutdown-timeout", "Time allowed for in-flight requests to finish on shutdown.").
		Default("15s"), &f.ShutdownTimeout)

	return &f
}

// ConfigureMux sets a mux to serve healthchecks and Prometheus metrics
// based on the path flags in f. If mux is nil a new one is created.
func (f *ServerFlags) ConfigureMux(mux *http.ServeMux, h healthcheck.Handler, g prometheus.Gatherer) *http.ServeMux {
	if mux == nil {
		mux = http.NewServeMux()
	}
	mux.Handle(f.MetricsPath, promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc(f.LivePath, h.LiveEndpoint)
	mux.HandleFunc(f.ReadyPath, h.ReadyEndpoint)
	return mux
}

// NewServer returns a new HTTP server configured to listen on the
// address defined by the ListenAddress flag.
func (f *ServerFlags) NewServer(h http.Handler) (*http.Server, error) {
	timeout, err := f.ReadHeaderTimeout.ToTimeDuration()
	if err != nil {
		return nil, errors.Wrap(err, "serve.read-header-timeout")
	}
	return &http.Server{
		Addr:              f.ListenAddress,
		Handler:           h,
		ReadHeaderTimeout: timeout,
	}, nil
}

// ShutdownContext returns a context bounded by the ShutdownTimeout flag,
// for passing to http.Server.Shutdown.
func (f *ServerFlags) ShutdownContext() (context.Context, context.CancelFunc) {
	timeout, err := f.ShutdownTimeout.ToTimeDuration()
	if err != nil || !f.ShutdownTimeout.IsPositive() {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
