package resolver

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for open attempts.
type Metrics struct {
	OpenCounter *prometheus.CounterVec
	registry    *prometheus.Registry
}

var (
	metricsInstance *Metrics
	metricsOnce     sync.Once
)

// NewMetrics creates and registers the resolver metrics (singleton to
// avoid duplicate registration across tests).
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		registry := prometheus.NewRegistry()

		m := &Metrics{
			OpenCounter: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "inkforge_opens_total",
					Help: "Total open attempts by backend, operation, and outcome",
				},
				[]string{"backend", "operation", "outcome"},
			),
			registry: registry,
		}

		registry.MustRegister(m.OpenCounter)
		metricsInstance = m
	})

	return metricsInstance
}

// Registry returns the private registry the counters live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) record(backend, operation string, err error) {
	outcome := "success"
	switch {
	case IsNotAvailable(err):
		outcome = "not_available"
	case err != nil:
		outcome = "error"
	}
	m.OpenCounter.WithLabelValues(backend, operation, outcome).Inc()
}

// InstrumentedProvider wraps a provider and counts every open attempt
// against it.
type InstrumentedProvider struct {
	name    string
	inner   Provider
	metrics *Metrics
}

// Instrument wraps p so its opens are counted under the given backend
// name.
func Instrument(name string, p Provider, metrics *Metrics) *InstrumentedProvider {
	return &InstrumentedProvider{name: name, inner: p, metrics: metrics}
}

// InputOpenName counts and forwards a read open.
func (ip *InstrumentedProvider) InputOpenName(ctx context.Context, name string) (*InputHandle, error) {
	h, err := ip.inner.InputOpenName(ctx, name)
	ip.metrics.record(ip.name, "input_open", err)
	return h, err
}

// OutputOpenName counts and forwards a write open.
func (ip *InstrumentedProvider) OutputOpenName(ctx context.Context, name string) (*OutputHandle, error) {
	h, err := ip.inner.OutputOpenName(ctx, name)
	ip.metrics.record(ip.name, "output_open", err)
	return h, err
}

// OutputOpenStdout counts and forwards a stdout open.
func (ip *InstrumentedProvider) OutputOpenStdout(ctx context.Context) (*OutputHandle, error) {
	h, err := ip.inner.OutputOpenStdout(ctx)
	ip.metrics.record(ip.name, "output_stdout", err)
	return h, err
}
