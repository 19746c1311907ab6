package cmd

import (
	"github.com/heptiolabs/healthcheck"              // Healthchecks framework.
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
)

// maxGoroutines fails the readiness check of a server that is leaking
// request goroutines.
const maxGoroutines = 10000

// NewHealthchecksHandler returns a new healthcheck.Handler with a basic
// liveness check, a goroutine count readiness check, and Prometheus
// healthcheck status metrics for a given app name.
func NewHealthchecksHandler(r prometheus.Registerer, appName string) healthcheck.Handler {
	h := healthcheck.NewMetricsHandler(r, BuildPromFQName("", appName))
	h.AddLivenessCheck("alive", func() error { return nil })
	h.AddReadinessCheck("goroutines", healthcheck.GoroutineCountCheck(maxGoroutines))
	return h
}
