package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNop(t *testing.T) {
	metrics := NewNop()

	require.NotNil(t, metrics)
	require.IsType(t, &NopMetrics{}, metrics)
}

func TestNopMetrics_CacheMetrics(t *testing.T) {
	metrics := NewNop()

	// Should not panic with various inputs
	require.NotPanics(t, func() {
		metrics.RecordCacheHit()
		metrics.RecordCacheMiss()
		metrics.RecordCacheStore()
		metrics.RecordCacheEviction(0)
		metrics.RecordCacheEviction(100)
		metrics.RecordCacheSize(-1)
		metrics.RecordCacheSize(42)
	})
}

func TestNopMetrics_RequestMetrics(t *testing.T) {
	metrics := NewNop()

	// Should not panic with various inputs
	require.NotPanics(t, func() {
		metrics.RecordRequestDuration("get_prompt", 0.25)
		metrics.RecordRequestDuration("", -1.0)
		metrics.RecordRequestError("track_event", "network")
		metrics.RecordRequestError("", "")
	})
}

func BenchmarkNopMetrics_RecordCacheHit(b *testing.B) {
	metrics := NewNop()
	for b.Loop() {
		metrics.RecordCacheHit()
	}
}

func BenchmarkNopMetrics_RecordRequestDuration(b *testing.B) {
	metrics := NewNop()
	for b.Loop() {
		metrics.RecordRequestDuration("get_prompt", 0.25)
	}
}
