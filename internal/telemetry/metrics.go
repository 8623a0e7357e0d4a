package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CarrierErrors   *prometheus.CounterVec
}

// NewMetrics creates metrics registered on the default registerer.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates metrics registered on the given registerer. Tests
// pass a fresh registry so multiple instances never collide.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carrier_bridge_requests_total",
				Help: "Total number of requests by operation, carrier, and status",
			},
			[]string{"operation", "carrier", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carrier_bridge_request_duration_seconds",
				Help:    "Request duration in seconds by operation and carrier",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "carrier"},
		),
		CarrierErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carrier_bridge_carrier_errors_total",
				Help: "Total carrier API errors by carrier, severity, and code",
			},
			[]string{"carrier", "severity", "code"},
		),
	}
}

// RecordRequest records a request metric.
func (m *Metrics) RecordRequest(operation, carrier, status string, duration float64) {
	m.RequestsTotal.WithLabelValues(operation, carrier, status).Inc()
	m.RequestDuration.WithLabelValues(operation, carrier).Observe(duration)
}

// RecordError records a carrier error metric.
func (m *Metrics) RecordError(carrier, severity, code string) {
	m.CarrierErrors.WithLabelValues(carrier, severity, code).Inc()
}
