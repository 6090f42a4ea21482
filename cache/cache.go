// Package cache provides a small generic LRU cache used for rasterized
// glyph masks.
package cache

import (
	"slices"
	"sync"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// Cache is a thread-safe LRU cache with a soft limit. When an insertion
// pushes the cache past its capacity, the least recently used quarter of
// the entries is evicted.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[V]
	capacity int
	tick     int64

	hits   uint64
	misses uint64
}

type entry[V any] struct {
	value V
	atime int64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// New creates a cache holding roughly capacity entries.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[K, V]{
		entries:  make(map[K]*entry[V]),
		capacity: capacity,
	}
}

// Capacity returns the soft limit.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Get returns the cached value for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// Set stores value under key, evicting old entries if needed.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store(key, value)
}

// GetOrCreate returns the cached value or stores the result of create.
// create runs under the lock, so it is called at most once per missing key.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.hits++
		c.tick++
		e.atime = c.tick
		return e.value
	}
	c.misses++
	v := create()
	c.store(key, v)
	return v
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Clear drops every entry and resets the counters.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[V])
	c.tick = 0
	c.hits = 0
	c.misses = 0
}

// Stats returns the current counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{Len: len(c.entries), Hits: c.hits, Misses: c.misses}
}

// store inserts an entry. Caller must hold c.mu.
func (c *Cache[K, V]) store(key K, value V) {
	c.tick++
	c.entries[key] = &entry[V]{value: value, atime: c.tick}
	if len(c.entries) > c.capacity {
		c.evictOldest()
	}
}

// evictOldest trims the cache to three quarters of its capacity.
// Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	target := max(c.capacity*3/4, 1)
	toEvict := len(c.entries) - target
	if toEvict <= 0 {
		return
	}

	type aged struct {
		key   K
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, atime: e.atime})
	}
	slices.SortFunc(all, func(a, b aged) int {
		switch {
		case a.atime < b.atime:
			return -1
		case a.atime > b.atime:
			return 1
		}
		return 0
	})

	for _, a := range all[:toEvict] {
		delete(c.entries, a.key)
	}
}
