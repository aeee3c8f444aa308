// Package metrics provides metrics collector implementations for the Million client.
package metrics

import "github.com/barkhaaroraa/million-go-client/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	client, err := million.New(&cfg, million.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// CacheMetrics implementation

// RecordCacheHit discards the cache hit counter.
func (n *NopMetrics) RecordCacheHit() {
	// No-op
}

// RecordCacheMiss discards the cache miss counter.
func (n *NopMetrics) RecordCacheMiss() {
	// No-op
}

// RecordCacheStore discards the cache store counter.
func (n *NopMetrics) RecordCacheStore() {
	// No-op
}

// RecordCacheEviction discards the cache eviction counter.
func (n *NopMetrics) RecordCacheEviction(_ /* count */ int) {
	// No-op
}

// RecordCacheSize discards the cache size gauge.
func (n *NopMetrics) RecordCacheSize(_ /* size */ int) {
	// No-op
}

// RequestMetrics implementation

// RecordRequestDuration discards the request duration metric.
func (n *NopMetrics) RecordRequestDuration(_ /* operation */ string, _ /* seconds */ float64) {
	// No-op
}

// RecordRequestError discards the request error counter.
func (n *NopMetrics) RecordRequestError(_ /* operation */, _ /* kind */ string) {
	// No-op
}
