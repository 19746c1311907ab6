package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

// assertMetrics asserts that g gathers exactly the metric families in
// want, each with the given number of label sets.
func assertMetrics(t *testing.T, g prometheus.Gatherer, want map[string]int) {
	t.Helper()
	mfs, err := g.Gather()
	if !assert.NoError(t, err, "gathering metrics") {
		return
	}
	got := make(map[string]int, len(mfs))
	for _, mf := range mfs {
		got[mf.GetName()] = len(mf.GetMetric())
	}
	assert.Equal(t, want, got)
}
