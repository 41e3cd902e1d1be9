package browse

import (
	"slices"
	"sync"
)

// ResultCache holds the last non-empty child list per identifier. Entries
// never expire; Clear drops everything and Close stops further writes.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string][]Node
	closed  bool
}

// NewResultCache returns an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{entries: make(map[string][]Node)}
}

// Get returns a copy of the cached list. Empty entries count as misses.
func (c *ResultCache) Get(id string) ([]Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	nodes, ok := c.entries[id]
	if !ok || len(nodes) == 0 {
		return nil, false
	}
	return slices.Clone(nodes), true
}

// Put stores nodes under id. Empty lists and writes after Close are dropped.
func (c *ResultCache) Put(id string, nodes []Node) bool {
	if len(nodes) == 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.entries[id] = slices.Clone(nodes)
	return true
}

// Invalidate drops a single entry.
func (c *ResultCache) Invalidate(id string) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// Close clears the cache and rejects later writes.
func (c *ResultCache) Close() {
	c.mu.Lock()
	c.closed = true
	clear(c.entries)
	c.mu.Unlock()
}

// Len reports the number of entries.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
