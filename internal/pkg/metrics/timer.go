package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.

	"github.com/mintel/timespan/pkg/duration"
	ptime "github.com/mintel/timespan/pkg/time"
)

// VecTimer is a helper type to time functions.
// It is similar to prometheus.Timer, but takes a prometheus.ObserverVec
// and adds labels to it when the VecTimer is observed.
// Use NewVecTimer to create new instances.
type VecTimer struct {
	begin time.Time
	vec   prometheus.ObserverVec
}

// NewVecTimer creates a new VecTimer. The provided ObserverVec is used to
// observe a duration in seconds. A VecTimer is usually used to time a
// function call like this:
//
//	func TimeMe() (err error) {
//		timer := NewVecTimer(myHistogramVec)
//		defer func() { timer.ObserveErr(err) }()
//		// Do actual work.
//	}
func NewVecTimer(v prometheus.ObserverVec) *VecTimer {
	return &VecTimer{
		begin: time.Now(),
		vec:   v,
	}
}

// ObserveWithLabelValues records the time passed since the VecTimer was
// created, with the given label values. The observed duration is returned.
func (t *VecTimer) ObserveWithLabelValues(labels ...string) duration.Duration {
	d := ptime.Since(t.begin)
	if t.vec != nil {
		t.vec.WithLabelValues(labels...).Observe(d.AsSecondsF64())
	}
	return d
}

// ObserveWith records the time passed since the VecTimer was created,
// with the given labels. The observed duration is returned.
func (t *VecTimer) ObserveWith(labels prometheus.Labels) duration.Duration {
	d := ptime.Since(t.begin)
	if t.vec != nil {
		t.vec.With(labels).Observe(d.AsSecondsF64())
	}
	return d
}

// ObserveErr is like ObserveWith, with LabelStatus set from err.
func (t *VecTimer) ObserveErr(err error) duration.Duration {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	return t.ObserveWith(prometheus.Labels{LabelStatus: status})
}
