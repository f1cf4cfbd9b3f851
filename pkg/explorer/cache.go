package explorer

import (
	"sync"
	"time"

	"wikigraph/pkg/common"
)

// cacheEntry is immutable once stored. A refetch after expiry stores a
// replacement entry instead of mutating this one, so concurrent readers of a
// handed-out record never observe a partial update.
type cacheEntry struct {
	content   *common.PageContent
	fetchedAt time.Time
	expiresAt time.Time
}

// contentCache holds fetched article content for a fixed TTL, keyed by
// canonical article id. Process-wide and shared by all concurrent
// explorations.
type contentCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*cacheEntry
	now     func() time.Time
}

func newContentCache(ttl time.Duration) *contentCache {
	return &contentCache{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
	}
}

// get returns the cached content for id when present and unexpired. Expired
// entries are evicted on the spot.
func (c *contentCache) get(id string) (*common.PageContent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, id)
		return nil, false
	}
	return entry.content, true
}

// put stores content under id with a fresh TTL, replacing any prior entry.
func (c *contentCache) put(id string, content *common.PageContent) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = &cacheEntry{
		content:   content,
		fetchedAt: now,
		expiresAt: now.Add(c.ttl),
	}
}

func (c *contentCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *contentCache) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}
