package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Cache is an in-memory store with a TTL per entry. Expired entries are dropped when
// they are read or when SweepExpired runs; there is no background sweeper.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	clone   func(T) T
	now     func() time.Time
}

func New[T any](clone func(T) T) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		clone:   clone,
		now:     time.Now,
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().After(entry.expiry) {
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && current.expiry.Equal(entry.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	return c.cloneValue(entry.value), true
}

func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	if key == "" || ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry[T]{value: c.cloneValue(value), expiry: c.now().Add(ttl)}
	c.mu.Unlock()
}

// SweepExpired removes every expired entry and reports how many were removed.
func (c *Cache[T]) SweepExpired() int {
	now := c.now()
	removed := 0
	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()
	return removed
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[T]) cloneValue(value T) T {
	if c.clone == nil {
		return value
	}
	return c.clone(value)
}
