// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package cache

import (
	"sync"
	"time"
)

// EvictReason says why an LRU entry left the cache.
type EvictReason int

const (
	// EvictRemoved means the caller removed the entry explicitly.
	EvictRemoved EvictReason = iota
	// EvictExpired means the entry outlived its idle TTL.
	EvictExpired
	// EvictCapacity means the entry was the least recently used one when the cache was full.
	EvictCapacity
)

// String returns the metric label for the reason.
func (r EvictReason) String() string {
	switch r {
	case EvictExpired:
		return "expire"
	case EvictCapacity:
		return "evict"
	default:
		return "unmount"
	}
}

type lruEntry[V any] struct {
	key       string
	value     V
	prev      *lruEntry[V]
	next      *lruEntry[V]
	expiresAt time.Time
}

// LRU is a thread-safe least-recently-used cache with sliding idle TTL:
// every Get or Put pushes the entry's expiry forward.
//
// A doubly-linked list keeps recency order and a map gives O(1) lookup.
// head.next is the most recently used entry, tail.prev the least.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time
	onEvict  func(key string, value V, reason EvictReason)

	items map[string]*lruEntry[V]
	head  *lruEntry[V]
	tail  *lruEntry[V]
}

// NewLRU creates an LRU with the given capacity and idle TTL. onEvict may be
// nil; when set it is called (with the cache lock released) for every entry
// that leaves the cache.
func NewLRU[V any](capacity int, ttl time.Duration, onEvict func(key string, value V, reason EvictReason)) *LRU[V] {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		onEvict:  onEvict,
		items:    make(map[string]*lruEntry[V]),
		head:     &lruEntry[V]{},
		tail:     &lruEntry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

type eviction[V any] struct {
	key    string
	value  V
	reason EvictReason
}

func (c *LRU[V]) notify(evicted []eviction[V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range evicted {
		c.onEvict(e.key, e.value, e.reason)
	}
}

// Get returns the value for key and refreshes its recency and expiry.
func (c *LRU[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	entry, exists := c.items[key]
	if !exists {
		c.mu.Unlock()
		return zero, false
	}

	now := c.now()
	if now.After(entry.expiresAt) {
		c.removeEntry(entry)
		c.mu.Unlock()
		c.notify([]eviction[V]{{key, entry.value, EvictExpired}})
		return zero, false
	}

	entry.expiresAt = now.Add(c.ttl)
	c.moveToFront(entry)
	value := entry.value
	c.mu.Unlock()

	return value, true
}

// Put inserts or replaces the value for key. When the cache is over capacity
// the least recently used entries are evicted.
func (c *LRU[V]) Put(key string, value V) {
	c.mu.Lock()

	expiresAt := c.now().Add(c.ttl)
	if entry, exists := c.items[key]; exists {
		entry.value = value
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		c.mu.Unlock()
		return
	}

	entry := &lruEntry[V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(entry)
	c.items[key] = entry

	var evicted []eviction[V]
	for len(c.items) > c.capacity {
		oldest := c.tail.prev
		c.removeEntry(oldest)
		evicted = append(evicted, eviction[V]{oldest.key, oldest.value, EvictCapacity})
	}
	c.mu.Unlock()

	c.notify(evicted)
}

// Update atomically replaces the value for an existing, unexpired key using fn.
// It reports false when the key is absent.
func (c *LRU[V]) Update(key string, fn func(V) V) (V, bool) {
	var zero V

	c.mu.Lock()
	entry, exists := c.items[key]
	if !exists {
		c.mu.Unlock()
		return zero, false
	}

	now := c.now()
	if now.After(entry.expiresAt) {
		c.removeEntry(entry)
		c.mu.Unlock()
		c.notify([]eviction[V]{{key, entry.value, EvictExpired}})
		return zero, false
	}

	entry.value = fn(entry.value)
	entry.expiresAt = now.Add(c.ttl)
	c.moveToFront(entry)
	value := entry.value
	c.mu.Unlock()

	return value, true
}

// Remove deletes key and reports whether it was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	entry, exists := c.items[key]
	if !exists {
		c.mu.Unlock()
		return false
	}
	c.removeEntry(entry)
	c.mu.Unlock()

	c.notify([]eviction[V]{{key, entry.value, EvictRemoved}})
	return true
}

// Len returns the current number of entries, expired ones included until swept.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CleanupExpired removes all expired entries and returns how many were removed.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()

	now := c.now()
	var evicted []eviction[V]
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
			evicted = append(evicted, eviction[V]{entry.key, entry.value, EvictExpired})
		}
		entry = prev
	}
	c.mu.Unlock()

	c.notify(evicted)
	return len(evicted)
}

// Internal methods (must be called with lock held)

func (c *LRU[V]) addToFront(entry *lruEntry[V]) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRU[V]) moveToFront(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *LRU[V]) removeEntry(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}
