// Package metrics provides Prometheus metrics collection for CARTX.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for CARTX.
type Collector struct {
	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Store metrics
	DocumentsInserted *prometheus.CounterVec
	StoreOperations   *prometheus.CounterVec

	// Validation metrics
	ValidationFailures *prometheus.CounterVec

	// Seed metrics
	SeedRuns *prometheus.CounterVec

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter
	ConfigLastReload   prometheus.Gauge
}

// New creates a new metrics collector registered on the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		// Request metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cartx",
				Name:      "requests_total",
				Help:      "Total number of requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cartx",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "cartx",
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),

		// Store metrics
		DocumentsInserted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cartx",
				Name:      "documents_inserted_total",
				Help:      "Total number of documents inserted per collection",
			},
			[]string{"collection"},
		),
		StoreOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cartx",
				Name:      "store_operations_total",
				Help:      "Total number of document store operations",
			},
			[]string{"operation", "collection", "outcome"},
		),

		// Validation metrics
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cartx",
				Name:      "validation_failures_total",
				Help:      "Total number of payload validation failures",
			},
			[]string{"schema", "reason"},
		),

		// Seed metrics
		SeedRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cartx",
				Name:      "seed_runs_total",
				Help:      "Total number of seed runs by outcome",
			},
			[]string{"outcome"},
		),

		// Config metrics
		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "cartx",
				Name:      "config_reloads_total",
				Help:      "Total number of successful config reloads",
			},
		),
		ConfigReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "cartx",
				Name:      "config_reload_errors_total",
				Help:      "Total number of config reload errors",
			},
		),
		ConfigLastReload: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "cartx",
				Name:      "config_last_reload_timestamp",
				Help:      "Unix timestamp of last successful config reload",
			},
		),
	}
}

// NormalizePath caps the path label length so arbitrary request paths cannot
// explode metric cardinality.
func NormalizePath(path string) string {
	if len(path) > 50 {
		return path[:50] + "..."
	}
	return path
}
