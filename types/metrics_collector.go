package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations must be non-blocking and safe for concurrent use; methods
// are called inline from cache and pipeline operations.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	CacheMetrics
	RequestMetrics
}

// CacheMetrics defines metrics for assignment cache operations.
type CacheMetrics interface {
	// RecordCacheHit records a cache read that returned a live assignment.
	RecordCacheHit()

	// RecordCacheMiss records a cache read that found no live assignment,
	// including reads that evicted an expired entry.
	RecordCacheMiss()

	// RecordCacheStore records an assignment being written to the cache.
	RecordCacheStore()

	// RecordCacheEviction records entries removed by lazy expiry, a sweep,
	// or an explicit clear.
	//
	// Parameters:
	//   - count: Number of entries removed
	RecordCacheEviction(count int)

	// RecordCacheSize sets the current number of live entries (gauge metric).
	RecordCacheSize(size int)
}

// RequestMetrics defines metrics for request pipeline operations.
type RequestMetrics interface {
	// RecordRequestDuration records one completed network exchange.
	//
	// Parameters:
	//   - operation: Logical operation ("get_prompt", "track_event", "get_events")
	//   - seconds: Wall time of the exchange in seconds
	RecordRequestDuration(operation string, seconds float64)

	// RecordRequestError records a failed network exchange.
	//
	// Parameters:
	//   - operation: Logical operation name
	//   - kind: Failure classification ("network" or "service")
	RecordRequestError(operation, kind string)
}
