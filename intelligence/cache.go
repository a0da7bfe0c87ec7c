package intelligence

import "sync"

// Cache is a session-lifetime text cache for generated content, keyed by
// request kind and record id (e.g. "explain-<biasID>").
//
// It is unbounded: entries live as long as the cache does, which matches the
// lifetime of the narratives it stores (a bias explanation never changes for
// a given bias id). It is an explicit dependency of the Service rather than
// ambient package state so callers control sharing and tests control
// isolation.
type Cache struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{entries: make(map[string]string)} }

// Get returns the cached text for key, if present.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.entries[key]
	return text, ok
}

// Put stores text under key, overwriting any previous entry.
func (c *Cache) Put(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = text
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
