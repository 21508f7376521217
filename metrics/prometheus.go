// Package metrics provides Prometheus metrics for the dashboard server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every collector, registered on its own registry.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	recordsLoaded      prometheus.Gauge
	recordsDiscarded   prometheus.Gauge
	undefinedTrends    prometheus.Gauge
	filterSelections   *prometheus.CounterVec
	aggregationLatency *prometheus.HistogramVec
	chartCache         *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) { m.namespace = ns }
}

// WithHistogramBuckets sets latency buckets in milliseconds.
func WithHistogramBuckets(b []float64) Option {
	return func(m *Manager) { m.buckets = b }
}

var global = NewManager() //nolint:gochecknoglobals // process-wide metrics

// NewManager creates a Manager with a fresh registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "crimestats",
		buckets:   []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.init()
	return m
}

func (m *Manager) init() {
	auto := promauto.With(m.registry)

	m.recordsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "records_loaded",
		Help:      "Incident records kept after year filtering",
	})
	m.recordsDiscarded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "records_discarded",
		Help:      "Incident records dropped as unreliable",
	})
	m.undefinedTrends = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "undefined_trend_categories",
		Help:      "Categories left out of the trend panel for lack of base-year incidents",
	})
	m.filterSelections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "filter_selections_total",
		Help:      "Yearly panel recomputations by selected category",
	}, []string{"category"})
	m.aggregationLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "aggregation_duration_milliseconds",
		Help:      "Time spent aggregating a panel",
		Buckets:   m.buckets,
	}, []string{"panel"})
	m.chartCache = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "chart_cache_total",
		Help:      "Chart cache lookups by result",
	}, []string{"result"})
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.buckets,
	}, []string{"endpoint", "method", "status_code"})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Manager) SetRecords(kept, discarded int) {
	m.recordsLoaded.Set(float64(kept))
	m.recordsDiscarded.Set(float64(discarded))
}

func (m *Manager) SetUndefinedTrends(n int) { m.undefinedTrends.Set(float64(n)) }

func (m *Manager) RecordSelection(category string) {
	m.filterSelections.WithLabelValues(category).Inc()
}

func (m *Manager) RecordAggregation(panel string, ms float64) {
	m.aggregationLatency.WithLabelValues(panel).Observe(ms)
}

func (m *Manager) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.chartCache.WithLabelValues(result).Inc()
}

func (m *Manager) RecordHTTPRequest(endpoint, method, status string, ms float64) {
	m.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// Package-level helpers use the process-wide manager.

func Handler() http.Handler                      { return global.Handler() }
func SetRecords(kept, discarded int)             { global.SetRecords(kept, discarded) }
func SetUndefinedTrends(n int)                   { global.SetUndefinedTrends(n) }
func RecordSelection(category string)            { global.RecordSelection(category) }
func RecordAggregation(panel string, ms float64) { global.RecordAggregation(panel, ms) }
func RecordCacheLookup(hit bool)                 { global.RecordCacheLookup(hit) }
func RecordHTTPRequest(endpoint, method, status string, ms float64) {
	global.RecordHTTPRequest(endpoint, method, status, ms)
}
