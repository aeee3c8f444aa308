package cache

import (
	"time"

	"github.com/barkhaaroraa/million-go-client/types"
)

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithClock overrides the time source used for expiry stamps and checks.
// Tests use this to control TTL behavior deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger for cache activity.
func WithLogger(logger types.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector for cache activity.
func WithMetrics(m types.CacheMetrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
		}
	}
}
