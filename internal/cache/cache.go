// Package cache provides a small in-memory key cache with optional
// expiry.
package cache

import (
	"sync"
	"time"
)

// entry pairs a cached value with the time it was stored.
type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache maps string keys to values. A zero TTL keeps entries forever;
// there is no size bound, which matches the workload: a bounded set of
// session ids per deployment.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache with the given TTL. ttl <= 0 disables expiry.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value for key, if present and unexpired.
// Expired entries are dropped on read.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}

	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a fresh Set may have raced.
		if cur, stillThere := c.entries[key]; stillThere && cur.storedAt.Equal(e.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}

	return e.value, true
}

// Set stores a value for key.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
}

// Len returns the number of stored entries, including any not yet
// swept expired ones.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
