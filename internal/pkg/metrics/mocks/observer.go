// Package mocks holds testify mocks of Prometheus interfaces.
package mocks

import (
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
	"github.com/stretchr/testify/mock"               // Mocking for tests.
)

// Observer is a mock prometheus.Observer.
type Observer struct {
	prometheus.Observer
	mock.Mock
}

func (m *Observer) Observe(f float64) {
	m.Called(f)
}
