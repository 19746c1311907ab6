// Package metrics holds constants and utilities for instrumenting
// timespan with Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
)

// DefaultObjectives are the quantiles and allowed errors of
// Summary metrics.
var DefaultObjectives = map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001}

// MustRegisterOnce registers collectors with r, ignoring
// AlreadyRegisteredErrors. Other errors cause a panic.
func MustRegisterOnce(r prometheus.Registerer, cs ...prometheus.Collector) {
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
}
