package collection

import (
	"maps"
	"slices"
	"sync"
)

// Collection is a goroutine-safe map of string keys to values of type V.
type Collection[V any] struct {
	mu   sync.RWMutex
	data map[string]V
}

// New creates a collection seeded with a copy of data. A nil map is allowed.
func New[V any](data map[string]V) *Collection[V] {
	c := &Collection[V]{data: make(map[string]V, len(data))}
	maps.Copy(c.data, data)
	return c
}

// Set stores a single value.
func (c *Collection[V]) Set(key string, value V) *Collection[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	c.data[key] = value
	return c
}

// SetMany merges data into the collection, overwriting existing keys.
func (c *Collection[V]) SetMany(data map[string]V) *Collection[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	maps.Copy(c.data, data)
	return c
}

// SetAll replaces the whole data set with a copy of data.
func (c *Collection[V]) SetAll(data map[string]V) *Collection[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]V, len(data))
	maps.Copy(c.data, data)
	return c
}

// Get returns the value stored under key.
func (c *Collection[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[key]
	return v, ok
}

// GetOr returns the value stored under key or def when the key is missing.
func (c *Collection[V]) GetOr(key string, def V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// GetMany returns the subset of the requested keys that exist.
func (c *Collection[V]) GetMany(keys ...string) map[string]V {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]V, len(keys))
	for _, key := range keys {
		if v, ok := c.data[key]; ok {
			out[key] = v
		}
	}
	return out
}

// GetAll returns a copy of the collection data.
func (c *Collection[V]) GetAll() map[string]V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.data)
}

// Has reports whether every given key is present.
// Calling Has without keys returns true.
func (c *Collection[V]) Has(keys ...string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, key := range keys {
		if _, ok := c.data[key]; !ok {
			return false
		}
	}
	return true
}

// Keys returns the stored keys in sorted order.
func (c *Collection[V]) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.data))
}

// Len returns the number of stored items.
func (c *Collection[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear removes a single key.
func (c *Collection[V]) Clear(key string) *Collection[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return c
}

// ClearMany removes every given key.
func (c *Collection[V]) ClearMany(keys ...string) *Collection[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
	}
	return c
}

// ClearAll removes all items.
func (c *Collection[V]) ClearAll() *Collection[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]V)
	return c
}

// init lazily allocates the map so the zero Collection is usable.
// Must be called with the write lock held.
func (c *Collection[V]) init() {
	if c.data == nil {
		c.data = make(map[string]V)
	}
}
