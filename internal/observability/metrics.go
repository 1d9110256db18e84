package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "automation"

// CapabilityMetrics records per-capability, per-operation execution counts,
// error kinds and latency.
type CapabilityMetrics struct {
	executions *prometheus.CounterVec
	errors     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewCapabilityMetrics creates the collectors and registers them with the
// provided registerer. If registerer is nil, prometheus.DefaultRegisterer is used.
func NewCapabilityMetrics(registerer prometheus.Registerer) (*CapabilityMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &CapabilityMetrics{
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "capability",
			Name:      "executions_total",
			Help:      "Total number of capability executions by outcome.",
		}, []string{"capability", "operation", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "capability",
			Name:      "errors_total",
			Help:      "Total number of failed capability executions by error kind.",
		}, []string{"capability", "operation", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "capability",
			Name:      "duration_seconds",
			Help:      "Capability execution latency in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"capability", "operation"}),
	}

	for _, c := range []prometheus.Collector{m.executions, m.errors, m.duration} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordExecution records one finished execution. kind is empty on success.
func (m *CapabilityMetrics) RecordExecution(capability, operation string, duration time.Duration, kind string) {
	if m == nil {
		return
	}
	status := "success"
	if kind != "" {
		status = "error"
		m.errors.WithLabelValues(capability, operation, kind).Inc()
	}
	m.executions.WithLabelValues(capability, operation, status).Inc()
	m.duration.WithLabelValues(capability, operation).Observe(duration.Seconds())
}
