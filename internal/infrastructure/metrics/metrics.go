package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	LedgerEvents   *prometheus.CounterVec
	OutboxFailures prometheus.Counter
	OutboxPending  prometheus.Gauge
}

var (
	once     sync.Once
	registry *Metrics
)

// Default returns the process-wide collectors, registering them on first use.
func Default() *Metrics {
	once.Do(func() {
		registry = newMetrics()
		prometheus.MustRegister(
			registry.HTTPRequests,
			registry.HTTPDuration,
			registry.LedgerEvents,
			registry.OutboxFailures,
			registry.OutboxPending,
		)
	})
	return registry
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lending",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status class.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lending",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LedgerEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lending",
			Subsystem: "ledger",
			Name:      "events_total",
			Help:      "Domain events appended to the outbox by type.",
		}, []string{"type"}),
		OutboxFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lending",
			Subsystem: "outbox",
			Name:      "publish_failures_total",
			Help:      "Outbox relay batches that failed to publish.",
		}),
		OutboxPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lending",
			Subsystem: "outbox",
			Name:      "pending_events",
			Help:      "Unpublished events seen by the last relay poll.",
		}),
	}
}
