// Package cache implements the in-memory, time-bounded assignment cache.
package cache

import (
	"time"

	"github.com/barkhaaroraa/million-go-client/internal/logger"
	"github.com/barkhaaroraa/million-go-client/internal/metrics"
	"github.com/barkhaaroraa/million-go-client/types"
	"github.com/puzpuzpuz/xsync/v4"
)

// Key identifies one cached assignment by its split identity.
//
// The empty string marks an absent identifier. Because Key is a comparable
// struct rather than a concatenated string, ("e", "u", "") and ("e", "", "s")
// can never collide.
type Key struct {
	ExperimentID string
	UserID       string
	SessionID    string
}

// entry wraps one assignment with its absolute expiry timestamp.
type entry struct {
	assignment *types.Assignment
	expiresAt  time.Time
}

// Cache stores assignments keyed by (experiment, user-or-absent,
// session-or-absent), each entry expiring TTL after its last write.
//
// Semantics:
//   - One live entry per key; a Store overwrites any previous entry.
//   - Get never returns a stale entry: expiry is checked lazily on every
//     read, so correctness does not depend on sweep timing.
//   - Sweep exists only to bound memory for entries that are written but
//     never re-read; the facade runs it on a fixed timer.
//   - Concurrent first-reads for the same key are NOT deduplicated. Two
//     simultaneous misses both reach the network and the second response to
//     land overwrites the first. The cache optimizes repeat-read consistency
//     within the TTL window, not first-read deduplication.
//
// All methods are safe for concurrent use.
type Cache struct {
	entries *xsync.Map[Key, entry]
	ttl     time.Duration
	now     func() time.Time
	logger  types.Logger
	metrics types.CacheMetrics
}

// New creates a Cache whose entries live for ttl after each write.
//
// Parameters:
//   - ttl: Time-to-live applied to every stored assignment
//   - opts: Optional clock, logger, and metrics overrides
//
// Returns:
//   - *Cache: An empty cache ready for use
func New(ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries: xsync.NewMap[Key, entry](),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger.NewNop(),
		metrics: metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Store inserts or overwrites the assignment for the given identity,
// stamping it with a fresh expiry. Last write wins.
func (c *Cache) Store(experimentID, userID, sessionID string, assignment *types.Assignment) {
	key := Key{ExperimentID: experimentID, UserID: userID, SessionID: sessionID}
	c.entries.Store(key, entry{
		assignment: assignment,
		expiresAt:  c.now().Add(c.ttl),
	})

	c.metrics.RecordCacheStore()
	c.metrics.RecordCacheSize(c.entries.Size())
	c.logger.Debug("assignment cached",
		"experimentID", experimentID,
		"userID", userID,
		"sessionID", sessionID,
		"assignmentID", assignment.AssignmentID,
		"ttl", c.ttl,
	)
}

// Get returns the live assignment for the given identity.
//
// An entry past its expiry is deleted on the spot and reported as a miss,
// so a caller never observes a stale assignment even between sweeps.
//
// Returns:
//   - *types.Assignment: The cached assignment, nil on miss
//   - bool: true on a live hit
func (c *Cache) Get(experimentID, userID, sessionID string) (*types.Assignment, bool) {
	key := Key{ExperimentID: experimentID, UserID: userID, SessionID: sessionID}

	e, ok := c.entries.Load(key)
	if !ok {
		c.metrics.RecordCacheMiss()

		return nil, false
	}

	if c.now().After(e.expiresAt) {
		c.entries.Delete(key)
		c.metrics.RecordCacheMiss()
		c.metrics.RecordCacheEviction(1)
		c.metrics.RecordCacheSize(c.entries.Size())
		c.logger.Debug("expired assignment evicted on read",
			"experimentID", experimentID,
			"assignmentID", e.assignment.AssignmentID,
		)

		return nil, false
	}

	c.metrics.RecordCacheHit()

	return e.assignment, true
}

// Sweep removes every expired entry and returns the number removed.
//
// Invoked on a recurring timer owned by the facade, independent of
// read/write traffic.
func (c *Cache) Sweep() int {
	now := c.now()
	removed := 0

	c.entries.Range(func(key Key, e entry) bool {
		if now.After(e.expiresAt) {
			c.entries.Delete(key)
			removed++
		}

		return true
	})

	if removed > 0 {
		c.metrics.RecordCacheEviction(removed)
		c.metrics.RecordCacheSize(c.entries.Size())
		c.logger.Debug("cache sweep completed", "removed", removed, "remaining", c.entries.Size())
	}

	return removed
}

// Clear drops all entries immediately.
func (c *Cache) Clear() {
	size := c.entries.Size()
	c.entries.Clear()

	if size > 0 {
		c.metrics.RecordCacheEviction(size)
	}
	c.metrics.RecordCacheSize(0)
}

// Len returns the number of entries currently held, including any expired
// entries not yet evicted by a read or sweep.
func (c *Cache) Len() int {
	return c.entries.Size()
}
