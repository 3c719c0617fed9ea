package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the service.
type MetricsRegistry struct {
	// HTTP metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// External provider metrics
	UpstreamRequestsTotal   prometheus.CounterVec
	UpstreamRequestDuration prometheus.HistogramVec

	// Business metrics
	QueriesCreatedTotal prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all
// metrics registered on the default Prometheus registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cepdist_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cepdist_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cepdist_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),
		UpstreamRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cepdist_upstream_requests_total",
				Help: "Total calls to external providers by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		UpstreamRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cepdist_upstream_request_duration_seconds",
				Help:    "External provider call latency distribution in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
			},
			[]string{"provider"},
		),
		QueriesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "cepdist_queries_created_total",
				Help: "Total distance query records created",
			},
		),
	}
}

// ObserveUpstream records one external provider call. Safe to call on a nil
// registry so adapters can be constructed without metrics in tests.
func (m *MetricsRegistry) ObserveUpstream(provider string, start time.Time, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	m.UpstreamRequestsTotal.WithLabelValues(provider, outcome).Inc()
	m.UpstreamRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
