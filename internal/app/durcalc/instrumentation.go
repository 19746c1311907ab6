package durcalc

import (
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.

	"github.com/mintel/timespan/internal/pkg/metrics"
)

// Instrumentation holds Prometheus metrics specific to
// the durcalc server.
type Instrumentation struct {
	// Count of evaluated expressions.
	Evaluations *prometheus.CounterVec

	// Time taken to evaluate an expression, including
	// parsing its operands.
	EvalDuration *prometheus.SummaryVec

	// Count of operand parses served from the parse cache.
	ParseCacheHits prometheus.Counter

	// Count of operand parses that missed the parse cache.
	ParseCacheMisses prometheus.Counter
}

// NewInstrumentation returns a new Instrumentation.
func NewInstrumentation(namespace string) *Instrumentation {
	return &Instrumentation{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Count of evaluated duration expressions.",
		}, []string{metrics.LabelOperation, metrics.LabelMode, metrics.LabelStatus}),
		EvalDuration: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace:  namespace,
			Name:       "evaluation_duration_seconds",
			Help:       "Time taken to parse and evaluate a duration expression.",
			Objectives: metrics.DefaultObjectives,
		}, []string{metrics.LabelStatus}),
		ParseCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parse_cache",
			Name:      "hits_total",
			Help:      "Count of duration operands served from the parse cache.",
		}),
		ParseCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parse_cache",
			Name:      "misses_total",
			Help:      "Count of duration operands that missed the parse cache.",
		}),
	}
}

// Describe implements the prometheus.Collector interface.
func (m *Instrumentation) Describe(c chan<- *prometheus.Desc) {
	m.Evaluations.Describe(c)
	m.EvalDuration.Describe(c)
	m.ParseCacheHits.Describe(c)
	m.ParseCacheMisses.Describe(c)
}

// Collect implements the prometheus.Collector interface.
func (m *Instrumentation) Collect(c chan<- prometheus.Metric) {
	m.Evaluations.Collect(c)
	m.EvalDuration.Collect(c)
	m.ParseCacheHits.Collect(c)
	m.ParseCacheMisses.Collect(c)
}
