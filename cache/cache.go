// Package cache provides an in-memory key/value store with per-entry TTL,
// used as a read-through cache in front of the movie providers.
package cache

import (
	"sync"
	"time"
)

// Store defines the cache operations the fetch layer depends on.
type Store interface {
	// Get returns the value for key, or false if the key is absent or expired.
	Get(key string) (any, bool)
	// Set stores value under key for the given TTL.
	Set(key string, value any, ttl time.Duration)
}

// entry is a cached value with its expiry deadline.
type entry struct {
	value     any
	expiresAt time.Time
}

// Memory is a thread-safe in-memory Store.
type Memory struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

// NewMemoryWithClock creates a store with a custom clock for testing.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{
		items: make(map[string]entry),
		now:   now,
	}
}

// Get retrieves a value from the store. Expired entries are treated as absent
// and removed lazily.
func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, ok := m.items[key]; ok && m.now().After(cur.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores a value with the given TTL. A non-positive TTL is a no-op since
// the entry would be born expired.
func (m *Memory) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	m.mu.Lock()
	m.items[key] = entry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
	m.mu.Unlock()
}

// Delete removes a key from the store.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
}

// Len returns the number of entries currently held, including any that have
// expired but not yet been evicted.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}
