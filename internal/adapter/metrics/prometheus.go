// Package metrics exposes operational measurements to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"energy-marketplace/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus implements ports.Metrics.
type Prometheus struct {
	registry *prometheus.Registry

	ledgerDuration  *prometheus.HistogramVec
	ledgerErrors    *prometheus.CounterVec
	lifecycle       *prometheus.CounterVec
	cascadeAttempts *prometheus.HistogramVec
	aggregateSize   prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewPrometheus registers the collectors on a fresh registry.
func NewPrometheus() *Prometheus {
	m := &Prometheus{
		registry: prometheus.NewRegistry(),
		ledgerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sem_ledger_source_duration_seconds",
			Help:    "Duration of listing discovery requests by source.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		ledgerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sem_ledger_source_errors_total",
			Help: "Failed listing discovery requests by source.",
		}, []string{"source"}),
		lifecycle: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sem_lifecycle_transitions_total",
			Help: "Lifecycle phase transitions by action.",
		}, []string{"action", "phase"}),
		cascadeAttempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sem_refetch_cascade_attempts",
			Help:    "Refetch attempts until the action's effect was observed.",
			Buckets: []float64{1, 2, 3, 4, 5, 8},
		}, []string{"action", "observed"}),
		aggregateSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sem_listing_aggregate_size",
			Help: "Active listings in the last complete aggregate.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sem_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sem_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.ledgerDuration,
		m.ledgerErrors,
		m.lifecycle,
		m.cascadeAttempts,
		m.aggregateSize,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// ObserveLedgerSource records one discovery source request.
func (m *Prometheus) ObserveLedgerSource(source string, took time.Duration, err error) {
	m.ledgerDuration.WithLabelValues(source).Observe(took.Seconds())
	if err != nil {
		m.ledgerErrors.WithLabelValues(source).Inc()
	}
}

// ObserveLifecycle counts a phase transition.
func (m *Prometheus) ObserveLifecycle(action domain.ActionKind, phase domain.Phase) {
	m.lifecycle.WithLabelValues(string(action), string(phase)).Inc()
}

// ObserveCascade records how many refetches a cascade took.
func (m *Prometheus) ObserveCascade(action domain.ActionKind, attempts int, observed bool) {
	m.cascadeAttempts.WithLabelValues(string(action), strconv.FormatBool(observed)).Observe(float64(attempts))
}

// SetAggregateSize records the size of the latest aggregate.
func (m *Prometheus) SetAggregateSize(n int) {
	m.aggregateSize.Set(float64(n))
}

// ObserveHTTP records one served request.
func (m *Prometheus) ObserveHTTP(route string, status int, took time.Duration) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Prometheus) Registry() *prometheus.Registry {
	return m.registry
}
