// Package cache provides a thread-safe memo for pure functions.
package cache

import (
	"sync"
	"sync/atomic"
)

// Memo is a thread-safe cache of the results of a pure function.
// When a bounded memo is full the whole table is dropped and refilled, which
// keeps memory flat on corpora with a long tail of keys.
type Memo[K comparable, V any] struct {
	mu     sync.RWMutex
	data   map[K]V
	limit  int
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates an empty memo holding at most limit entries. A limit of zero
// or less means unbounded.
func New[K comparable, V any](limit int) *Memo[K, V] {
	return &Memo[K, V]{
		data:  make(map[K]V),
		limit: limit,
	}
}

// Get retrieves a value from the memo.
func (c *Memo[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.data[key]
	return value, ok
}

// Set stores a value in the memo.
func (c *Memo[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data == nil {
		c.data = make(map[K]V)
	}
	if _, ok := c.data[key]; !ok && c.limit > 0 && len(c.data) >= c.limit {
		clear(c.data)
	}
	c.data[key] = value
}

// Do returns the memoized value for key, computing it with fn on a miss.
// Concurrent misses on the same key may call fn more than once; fn must be
// pure.
func (c *Memo[K, V]) Do(key K, fn func(K) V) V {
	if v, ok := c.Get(key); ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)
	v := fn(key)
	c.Set(key, v)
	return v
}

// Func wraps fn so every call goes through the memo.
func (c *Memo[K, V]) Func(fn func(K) V) func(K) V {
	return func(key K) V { return c.Do(key, fn) }
}

// Len returns the number of items currently in the memo.
func (c *Memo[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Stats returns the hit and miss counts of Do.
func (c *Memo[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
