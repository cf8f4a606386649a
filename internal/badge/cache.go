// Package badge produces worker badge images for board display: photos
// loaded from the photo directory, scaled per size, with a deterministic
// initials card when no usable photo exists. Rendered badges sit in a
// bounded FIFO cache.
package badge

import "image"

// Cache is a bounded insertion-order cache. When full, inserting a new key
// evicts the oldest inserted entry. Lookups never affect eviction order,
// so this is FIFO, not LRU.
//
// A Cache is owned by a single Manager and is not safe for concurrent use.
type Cache struct {
	capacity int
	keys     []string
	entries  map[string]image.Image
}

// NewCache creates a cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]image.Image, capacity),
	}
}

// Get returns the cached image for key, if present.
func (c *Cache) Get(key string) (image.Image, bool) {
	img, ok := c.entries[key]
	return img, ok
}

// Put inserts an entry, evicting the oldest inserted entry when the cache
// is full. Re-putting an existing key replaces the value but keeps the
// key's original position in the eviction order.
func (c *Cache) Put(key string, img image.Image) {
	if _, ok := c.entries[key]; ok {
		c.entries[key] = img
		return
	}

	if len(c.keys) >= c.capacity {
		oldest := c.keys[0]
		c.keys = c.keys[1:]
		delete(c.entries, oldest)
	}

	c.keys = append(c.keys, key)
	c.entries[key] = img
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return len(c.keys) }

// Cap returns the cache capacity.
func (c *Cache) Cap() int { return c.capacity }
