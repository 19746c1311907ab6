package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
	"github.com/stretchr/testify/assert"             // Test assertions e.g. equality.
)

func TestMustRegisterOnce(t *testing.T) {
	r := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "foo",
		Subsystem: "bar",
		Name:      "baz",
		Help:      "Example counter",
	})

	mfs, err := r.Gather()
	assert.NoError(t, err)
	assert.Empty(t, mfs)

	for i := 0; i < 2; i++ {
		MustRegisterOnce(r, c)
		mfs, err = r.Gather()
		assert.NoError(t, err)
		if assert.Len(t, mfs, 1) {
			assert.Equal(t, "Example counter", mfs[0].GetHelp())
		}
	}

	clash := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "foo",
		Subsystem: "bar",
		Name:      "baz",
		Help:      "Different help",
	})
	assert.Panics(t, func() { MustRegisterOnce(r, clash) })
}
