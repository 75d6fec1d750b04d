package cache

import (
	"strings"
	"sync"
)

// Cache maps a normalized final user message to a previously produced
// reply. It is unbounded and lives for the process lifetime; two
// conversations ending in the same final message share an entry.
type Cache struct {
	mu      sync.RWMutex
	replies map[string]string
}

// New returns an empty reply cache.
func New() *Cache {
	return &Cache{replies: make(map[string]string)}
}

// Normalize produces the lookup key for a final user message.
func Normalize(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

// Get returns the cached reply for key, if any.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	reply, ok := c.replies[key]
	return reply, ok
}

// Set stores a reply under key. Concurrent writers for the same key are
// last-write-wins.
func (c *Cache) Set(key, reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies[key] = reply
}

// Len reports the number of cached replies.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.replies)
}
