/*
Package observability provides Prometheus instrumentation for the
provisioning sequence. Metrics are fed through domain.ProvisionHooks so the
core stays free of any metrics dependency.
*/
package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stepbook/flownote/pkg/domain"
)

// Metrics holds the provisioning collectors.
type Metrics struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	outcomes    *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flownote_provision_transitions_total",
				Help: "Total number of provisioning state transitions",
			},
			[]string{"state"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flownote_provision_outcomes_total",
				Help: "Total number of completed provisioning sequences",
			},
			[]string{"state"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "flownote_provision_duration_seconds",
				Help: "Duration of provisioning sequences",
			},
		),
	}
	m.registry.MustRegister(m.transitions, m.outcomes, m.duration)
	return m
}

// Hooks returns lifecycle hooks that record every transition and count
// terminal outcomes.
func (m *Metrics) Hooks() domain.ProvisionHooks {
	return domain.ProvisionHooks{
		OnTransition: func(_ context.Context, e *domain.ProvisionEvent) {
			m.transitions.WithLabelValues(string(e.State)).Inc()
			if e.State.Terminal() {
				m.outcomes.WithLabelValues(string(e.State)).Inc()
			}
		},
	}
}

// ObserveDuration records the wall time of one provisioning sequence.
func (m *Metrics) ObserveDuration(d time.Duration) {
	m.duration.Observe(d.Seconds())
}

// Handler exposes the collectors in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
