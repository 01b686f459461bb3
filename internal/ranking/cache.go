package ranking

import (
	"sync"
	"time"
)

// DefaultCacheTTL is how long an unfiltered ranking is served from the cache.
const DefaultCacheTTL = 30 * time.Second

// Cache holds the most recent unfiltered ranking. Writes elsewhere do not
// evict it; readers that need fresh data force a refresh.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	ranked   []PlayerStats
	storedAt time.Time
	filled   bool
}

// NewCache creates a cache with the given TTL. A nil clock uses time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{ttl: ttl, now: now}
}

// Get returns the cached ranking while it is younger than the TTL.
func (c *Cache) Get() ([]PlayerStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.filled || c.now().Sub(c.storedAt) >= c.ttl {
		return nil, false
	}
	return c.ranked, true
}

// Set stores ranked as the current result.
func (c *Cache) Set(ranked []PlayerStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ranked = ranked
	c.storedAt = c.now()
	c.filled = true
}

