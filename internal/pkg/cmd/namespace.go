package cmd

import (
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
)

// Namespace is the namespace of Prometheus metrics throughout timespan.
const Namespace = "timespan"

// BuildPromFQName joins Namespace, subsystem and name into a metric name.
func BuildPromFQName(subsystem, name string) string {
	return prometheus.BuildFQName(Namespace, subsystem, name)
}
