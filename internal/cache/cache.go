// Package cache provides the in-process TTL cache fronting every pipeline.
// Concurrent lookups for the same key collapse into a single producer run,
// and a failed producer stores nothing, so an expired entry is never served
// stale past its window.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"actcal/internal/metrics"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process TTL cache with per-key producer coalescing.
// Construct one per process and inject it; tests get a fresh instance each.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewStore builds an empty store. Metrics may be nil.
func NewStore(m *metrics.Metrics) *Store {
	return &Store{
		entries: make(map[string]entry),
		metrics: m,
		now:     time.Now,
	}
}

// GetOrSet returns the live value for key, or runs producer to make one.
// While a producer for key is in flight, later callers attach to it and
// receive the same result instead of starting their own. On producer
// failure the error propagates to every waiter and nothing is stored, so
// the next call tries again. A non-positive ttl effectively disables reuse
// while still coalescing concurrent callers.
func (s *Store) GetOrSet(key string, ttl time.Duration, producer func() (any, error)) (any, error) {
	if v, ok := s.lookup(key); ok {
		s.metrics.CacheHit(key)
		return v, nil
	}

	ran := false
	v, err, _ := s.group.Do(key, func() (any, error) {
		ran = true
		// The previous flight may have settled between our lookup and
		// joining the group.
		if v, ok := s.lookup(key); ok {
			return v, nil
		}
		s.metrics.CacheMiss(key)
		value, err := producer()
		if err != nil {
			return nil, err
		}
		s.store(key, value, ttl)
		return value, nil
	})
	if !ran {
		s.metrics.CacheCoalescedWait(key)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Peek returns the live value for key without producing anything.
func (s *Store) Peek(key string) (any, bool) {
	return s.lookup(key)
}

// Invalidate drops the entry for key so the next lookup produces afresh.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) lookup(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !s.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (s *Store) store(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
}
