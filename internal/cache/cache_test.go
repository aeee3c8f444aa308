package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/barkhaaroraa/million-go-client/types"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newAssignment(id string) *types.Assignment {
	return &types.Assignment{AssignmentID: id, Prompt: "prompt text", VariantID: "v1"}
}

func TestKeyInjective(t *testing.T) {
	// The struct key must keep distinct triples distinct even when the same
	// identifier value appears in different positions.
	require.NotEqual(t,
		Key{ExperimentID: "e1", UserID: "u1"},
		Key{ExperimentID: "e1", SessionID: "u1"},
	)
	require.NotEqual(t,
		Key{ExperimentID: "e1", UserID: "u1", SessionID: "s1"},
		Key{ExperimentID: "e1", UserID: "u1"},
	)

	// The empty string is the absent marker, so absent and "" are one value.
	require.Equal(t,
		Key{ExperimentID: "e1"},
		Key{ExperimentID: "e1", UserID: ""},
	)
}

func TestStoreThenGet(t *testing.T) {
	c := New(time.Minute)
	a := newAssignment("a1")

	c.Store("e1", "u1", "", a)

	got, ok := c.Get("e1", "u1", "")
	require.True(t, ok)
	require.Same(t, a, got)
}

func TestGet_DistinctTriplesDoNotCollide(t *testing.T) {
	c := New(time.Minute)
	c.Store("e1", "u1", "", newAssignment("user"))
	c.Store("e1", "", "u1", newAssignment("session"))

	got, ok := c.Get("e1", "u1", "")
	require.True(t, ok)
	require.Equal(t, "user", got.AssignmentID)

	got, ok = c.Get("e1", "", "u1")
	require.True(t, ok)
	require.Equal(t, "session", got.AssignmentID)

	_, ok = c.Get("e1", "u1", "u1")
	require.False(t, ok)
}

func TestStore_LastWriteWins(t *testing.T) {
	c := New(time.Minute)
	c.Store("e1", "u1", "", newAssignment("first"))
	c.Store("e1", "u1", "", newAssignment("second"))

	require.Equal(t, 1, c.Len())

	got, ok := c.Get("e1", "u1", "")
	require.True(t, ok)
	require.Equal(t, "second", got.AssignmentID)
}

func TestGet_LazyExpiry(t *testing.T) {
	clock := newFakeClock()
	c := New(100*time.Millisecond, WithClock(clock.Now))

	c.Store("e1", "u1", "", newAssignment("a1"))

	// Still live exactly at the expiry boundary.
	clock.Advance(100 * time.Millisecond)
	_, ok := c.Get("e1", "u1", "")
	require.True(t, ok)

	// One tick past the boundary: evicted on read, even with no sweep.
	clock.Advance(time.Millisecond)
	_, ok = c.Get("e1", "u1", "")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestStore_RefreshesExpiry(t *testing.T) {
	clock := newFakeClock()
	c := New(100*time.Millisecond, WithClock(clock.Now))

	c.Store("e1", "u1", "", newAssignment("a1"))
	clock.Advance(80 * time.Millisecond)
	c.Store("e1", "u1", "", newAssignment("a2"))
	clock.Advance(80 * time.Millisecond)

	// 160ms after the first write but only 80ms after the overwrite.
	got, ok := c.Get("e1", "u1", "")
	require.True(t, ok)
	require.Equal(t, "a2", got.AssignmentID)
}

func TestSweep(t *testing.T) {
	clock := newFakeClock()
	c := New(100*time.Millisecond, WithClock(clock.Now))

	c.Store("e1", "u1", "", newAssignment("a1"))
	c.Store("e1", "u2", "", newAssignment("a2"))
	clock.Advance(150 * time.Millisecond)
	c.Store("e1", "u3", "", newAssignment("a3"))

	removed := c.Sweep()

	require.Equal(t, 2, removed)
	require.Equal(t, 1, c.Len())

	_, ok := c.Get("e1", "u3", "")
	require.True(t, ok)
}

func TestSweep_NothingExpired(t *testing.T) {
	c := New(time.Minute)
	c.Store("e1", "u1", "", newAssignment("a1"))

	require.Equal(t, 0, c.Sweep())
	require.Equal(t, 1, c.Len())
}

func TestClear(t *testing.T) {
	c := New(time.Minute)
	c.Store("e1", "u1", "", newAssignment("a1"))
	c.Store("e2", "", "s1", newAssignment("a2"))

	c.Clear()

	require.Equal(t, 0, c.Len())
	_, ok := c.Get("e1", "u1", "")
	require.False(t, ok)
}

// countingMetrics records cache metric calls for assertions.
type countingMetrics struct {
	mu        sync.Mutex
	hits      int
	misses    int
	stores    int
	evictions int
}

func (m *countingMetrics) RecordCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits++
}

func (m *countingMetrics) RecordCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
}

func (m *countingMetrics) RecordCacheStore() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores++
}

func (m *countingMetrics) RecordCacheEviction(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictions += count
}

func (m *countingMetrics) RecordCacheSize(_ int) {}

func TestMetricsRecorded(t *testing.T) {
	clock := newFakeClock()
	m := &countingMetrics{}
	c := New(100*time.Millisecond, WithClock(clock.Now), WithMetrics(m))

	c.Store("e1", "u1", "", newAssignment("a1"))
	c.Get("e1", "u1", "")  // hit
	c.Get("e1", "u2", "")  // miss
	clock.Advance(time.Second)
	c.Get("e1", "u1", "") // expired: miss + eviction

	require.Equal(t, 1, m.stores)
	require.Equal(t, 1, m.hits)
	require.Equal(t, 2, m.misses)
	require.Equal(t, 1, m.evictions)
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Store("e1", "u1", "", newAssignment("a"))
				c.Get("e1", "u1", "")
				c.Sweep()
			}
		}()
	}
	wg.Wait()

	_, ok := c.Get("e1", "u1", "")
	require.True(t, ok)
}
