// Package metrics provides Prometheus metrics for the classrank registry service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the classrank service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Registry metrics - the record store itself
	registryInserts       prometheus.Counter
	registryInsertErrors  *prometheus.CounterVec
	registryLookups       prometheus.Counter
	registryLookupMisses  prometheus.Counter
	registryRecordsTotal  prometheus.Gauge
	registryInsertLatency prometheus.Histogram
	registryQueryLatency  prometheus.Histogram
	registryFinalizations prometheus.Counter

	// Roster metrics - file loads and watch-triggered reloads
	rosterLoads        prometheus.Counter
	rosterLoadFailures prometheus.Counter
	rosterReloads      prometheus.Counter
	rosterLastLoadUnix prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorRateByComponent *prometheus.CounterVec

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "classrank",
		subsystem:        "registry",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.registryInserts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "inserts_total",
		Help:      "Total number of records accepted into the store",
	})

	m.registryInsertErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "insert_errors_total",
		Help:      "Total number of rejected inserts by validation kind",
	}, []string{"kind"})

	m.registryLookups = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookups_total",
		Help:      "Total number of key lookups served",
	})

	m.registryLookupMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookup_misses_total",
		Help:      "Total number of lookups for unknown keys",
	})

	m.registryRecordsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_total",
		Help:      "Current number of records held by the store",
	})

	m.registryInsertLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "insert_latency_milliseconds",
		Help:      "Histogram of insert latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.registryQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_latency_milliseconds",
		Help:      "Histogram of lookup and leaderboard latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.registryFinalizations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "finalizations_total",
		Help:      "Total number of rank finalization passes",
	})

	m.rosterLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "roster",
		Name:      "loads_total",
		Help:      "Total number of roster files loaded",
	})

	m.rosterLoadFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "roster",
		Name:      "load_failures_total",
		Help:      "Total number of roster loads that failed validation or parsing",
	})

	m.rosterReloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "roster",
		Name:      "reloads_total",
		Help:      "Total number of watch-triggered roster reloads",
	})

	m.rosterLastLoadUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "roster",
		Name:      "last_load_unix",
		Help:      "Unix timestamp of the last successful roster load",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method, and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Total errors by component and error type",
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordInsert increments the accepted-inserts counter.
func RecordInsert() {
	globalManager.registryInserts.Inc()
}

// RecordInsertError increments the rejected-inserts counter for a kind.
func RecordInsertError(kind string) {
	globalManager.registryInsertErrors.WithLabelValues(kind).Inc()
}

// RecordLookup increments the lookups counter.
func RecordLookup() {
	globalManager.registryLookups.Inc()
}

// RecordLookupMiss increments the unknown-key lookups counter.
func RecordLookupMiss() {
	globalManager.registryLookupMisses.Inc()
}

// UpdateRecordsTotal sets the current record count gauge.
func UpdateRecordsTotal(count int) {
	globalManager.registryRecordsTotal.Set(float64(count))
}

// RecordInsertLatency records insert latency in milliseconds.
func RecordInsertLatency(latencyMs float64) {
	globalManager.registryInsertLatency.Observe(latencyMs)
}

// RecordQueryLatency records lookup/leaderboard latency in milliseconds.
func RecordQueryLatency(latencyMs float64) {
	globalManager.registryQueryLatency.Observe(latencyMs)
}

// RecordFinalization increments the finalization-pass counter.
func RecordFinalization() {
	globalManager.registryFinalizations.Inc()
}

// RecordRosterLoad increments the roster loads counter and stamps the time.
func RecordRosterLoad() {
	globalManager.rosterLoads.Inc()
	globalManager.rosterLastLoadUnix.Set(float64(time.Now().Unix()))
}

// RecordRosterLoadFailure increments the failed roster loads counter.
func RecordRosterLoadFailure() {
	globalManager.rosterLoadFailures.Inc()
}

// RecordRosterReload increments the watch-triggered reloads counter.
func RecordRosterReload() {
	globalManager.rosterReloads.Inc()
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent increments the error counter for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
