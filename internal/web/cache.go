package web

import (
	"sync"
	"time"
)

// responseTTL is how long a rendered response is served from memory.
const responseTTL = 30 * time.Minute

type cachedResponse struct {
	body         []byte
	contentType  string
	cacheControl string
	disposition  string
	expires      time.Time
}

// responseCache keeps rendered responses keyed by path and sorted query.
type responseCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]cachedResponse
	now   func() time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{ttl: ttl, items: make(map[string]cachedResponse), now: time.Now}
}

func (c *responseCache) get(key string) (cachedResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.items[key]
	if !ok || !c.now().Before(r.expires) {
		return cachedResponse{}, false
	}
	return r, true
}

func (c *responseCache) put(key string, r cachedResponse) {
	r.expires = c.now().Add(c.ttl)
	c.mu.Lock()
	c.items[key] = r
	c.mu.Unlock()
}

// purge drops expired entries and returns how many were removed.
func (c *responseCache) purge() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, r := range c.items {
		if !now.Before(r.expires) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

func (c *responseCache) clear() {
	c.mu.Lock()
	c.items = make(map[string]cachedResponse)
	c.mu.Unlock()
}

func (c *responseCache) count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
