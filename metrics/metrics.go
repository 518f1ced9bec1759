// Package metrics exposes the library's Prometheus collectors. The Handler
// takes a *Metrics as an optional dependency; passing nil disables
// collection entirely.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcome label values.
const (
	OutcomeCacheHit = "cache_hit"
	OutcomeNetwork  = "network"
	OutcomeQuota    = "quota"
	OutcomeError    = "error"
)

// Metrics holds all Prometheus metrics for the library and the daemon.
type Metrics struct {
	// Lookup metrics (recorded by the Handler)
	LookupsTotal       *prometheus.CounterVec
	APIRequestDuration prometheus.Histogram

	// HTTP metrics (recorded by the daemon middleware)
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registerer. Call it
// once per process.
func New() *Metrics {
	return &Metrics{
		LookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ipmeta_lookups_total",
				Help: "Total number of IP metadata lookups by outcome",
			},
			[]string{"outcome"},
		),

		APIRequestDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ipmeta_api_request_duration_seconds",
				Help:    "Latency of requests to the upstream metadata API",
				Buckets: prometheus.DefBuckets,
			},
		),

		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests served by the daemon",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),
	}
}

// CountLookup increments the lookup counter; safe to call on a nil receiver.
func (m *Metrics) CountLookup(outcome string) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(outcome).Inc()
}

// ObserveAPIRequest records an upstream request duration in seconds; safe to
// call on a nil receiver.
func (m *Metrics) ObserveAPIRequest(seconds float64) {
	if m == nil {
		return
	}
	m.APIRequestDuration.Observe(seconds)
}
