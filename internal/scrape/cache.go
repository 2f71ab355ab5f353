package scrape

import (
	"sync"
	"time"
)

type cacheEntry struct {
	text      string
	expiresAt time.Time
}

// contentCache is a small TTL cache for extracted article bodies, separate
// from the news-listing cache because bodies live much longer.
type contentCache struct {
	mu    sync.RWMutex
	items map[string]cacheEntry
	ttl   time.Duration
}

func newContentCache(ttl time.Duration) *contentCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &contentCache{items: make(map[string]cacheEntry), ttl: ttl}
}

func (c *contentCache) get(key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return "", false
	}
	return e.text, true
}

func (c *contentCache) set(key, text string) {
	c.mu.Lock()
	c.items[key] = cacheEntry{text: text, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *contentCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
