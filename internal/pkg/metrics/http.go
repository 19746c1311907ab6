package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InstrumentHandler returns h wrapped with Prometheus metrics, which are
// registered with reg:
//
//   - a gauge of in-flight requests,
//   - a counter of requests by status code and method,
//   - a histogram of request latency by status code and method.
//
// Example:
//
//	h, err := InstrumentHandler(mux, prometheus.DefaultRegisterer, "timespan_durcalc", nil)
func InstrumentHandler(h http.Handler, reg prometheus.Registerer, namespace string, constLabels map[string]string) (http.Handler, error) {
	i := &httpHandlerInstrumentation{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "http",
				Name:        "requests_total",
				Help:        "A counter of served HTTP requests.",
				ConstLabels: constLabels,
			},
			[]string{LabelStatusCode, LabelMethod},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Subsystem:   "http",
				Name:        "request_duration_seconds",
				Help:        "A histogram of HTTP request latencies.",
				Buckets:     []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
				ConstLabels: constLabels,
			},
			[]string{LabelStatusCode, LabelMethod},
		),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "in_flight_requests",
			Help:        "A gauge of in-flight HTTP requests.",
			ConstLabels: constLabels,
		}),
	}
	if err := reg.Register(i); err != nil {
		return nil, err
	}

	h = promhttp.InstrumentHandlerCounter(i.requests, h)
	h = promhttp.InstrumentHandlerDuration(i.duration, h)
	h = promhttp.InstrumentHandlerInFlight(i.inflight, h)
	return h, nil
}

type httpHandlerInstrumentation struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

// Describe implements prometheus.Collector interface.
func (i *httpHandlerInstrumentation) Describe(c chan<- *prometheus.Desc) {
	i.requests.Describe(c)
	i.duration.Describe(c)
	i.inflight.Describe(c)
}

// Collect implements prometheus.Collector interface.
func (i *httpHandlerInstrumentation) Collect(c chan<- prometheus.Metric) {
	i.requests.Collect(c)
	i.duration.Collect(c)
	i.inflight.Collect(c)
}
