package metrics

import (
	"sync"

	"github.com/barkhaaroraa/million-go-client/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metrics are registered lazily on first use so that constructing a collector
// never panics on duplicate registration before the client is actually used.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Cache metrics
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheStores    prometheus.Counter
	cacheEvictions prometheus.Counter
	cacheSize      prometheus.Gauge

	// Request pipeline metrics
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "million" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "million"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment_cache",
			Name:      "hits_total",
			Help:      "Total cache reads that returned a live assignment.",
		})
		p.cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment_cache",
			Name:      "misses_total",
			Help:      "Total cache reads that found no live assignment.",
		})
		p.cacheStores = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment_cache",
			Name:      "stores_total",
			Help:      "Total assignments written to the cache.",
		})
		p.cacheEvictions = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment_cache",
			Name:      "evictions_total",
			Help:      "Total entries removed by expiry, sweep, or clear.",
		})
		p.cacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment_cache",
			Name:      "entries_current",
			Help:      "Current number of live cache entries.",
		})

		p.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "request",
			Name:      "duration_seconds",
			Help:      "Latency of API request exchanges in seconds by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 11), // 10ms .. ~10s
		}, []string{"operation"})
		p.requestErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "request",
			Name:      "errors_total",
			Help:      "Total failed API requests by operation and kind (network|service).",
		}, []string{"operation", "kind"})

		p.reg.MustRegister(p.cacheHits)
		p.reg.MustRegister(p.cacheMisses)
		p.reg.MustRegister(p.cacheStores)
		p.reg.MustRegister(p.cacheEvictions)
		p.reg.MustRegister(p.cacheSize)
		p.reg.MustRegister(p.requestDuration)
		p.reg.MustRegister(p.requestErrors)
	})
}

// CacheMetrics implementation

// RecordCacheHit increments the cache hit counter.
func (p *PrometheusCollector) RecordCacheHit() {
	p.ensureRegistered()
	p.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func (p *PrometheusCollector) RecordCacheMiss() {
	p.ensureRegistered()
	p.cacheMisses.Inc()
}

// RecordCacheStore increments the cache store counter.
func (p *PrometheusCollector) RecordCacheStore() {
	p.ensureRegistered()
	p.cacheStores.Inc()
}

// RecordCacheEviction adds removed entries to the eviction counter.
func (p *PrometheusCollector) RecordCacheEviction(count int) {
	p.ensureRegistered()
	p.cacheEvictions.Add(float64(count))
}

// RecordCacheSize sets the current entry count gauge.
func (p *PrometheusCollector) RecordCacheSize(size int) {
	p.ensureRegistered()
	p.cacheSize.Set(float64(size))
}

// RequestMetrics implementation

// RecordRequestDuration observes one exchange's latency for the operation.
func (p *PrometheusCollector) RecordRequestDuration(operation string, seconds float64) {
	p.ensureRegistered()
	p.requestDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordRequestError increments the error counter for the operation and kind.
func (p *PrometheusCollector) RecordRequestError(operation, kind string) {
	p.ensureRegistered()
	p.requestErrors.WithLabelValues(operation, kind).Inc()
}
