package cache

import (
	"context"
	"sync"
	"time"
)

// Entry is a cached rendered feed with its validation tag.
type Entry struct {
	Body string `json:"body"`
	ETag string `json:"etag"`
}

// ResponseCache stores rendered calendar documents keyed by request URL.
type ResponseCache interface {
	Get(ctx context.Context, url string) (Entry, bool, error)
	Put(ctx context.Context, url string, entry Entry) error
}

type responseEntry struct {
	entry    Entry
	storedAt time.Time
}

// MemoryResponseCache is the in-process ResponseCache. TTL is checked on
// read; there is no eviction goroutine.
type MemoryResponseCache struct {
	mu      sync.Mutex
	entries map[string]responseEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryResponseCache builds an empty in-process response cache.
func NewMemoryResponseCache(ttl time.Duration) *MemoryResponseCache {
	return &MemoryResponseCache{
		entries: make(map[string]responseEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the live entry for a URL, evicting it when expired.
func (c *MemoryResponseCache) Get(_ context.Context, url string) (Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, ok := c.entries[url]
	if !ok {
		return Entry{}, false, nil
	}
	if c.now().Sub(cached.storedAt) > c.ttl {
		delete(c.entries, url)
		return Entry{}, false, nil
	}
	return cached.entry, true, nil
}

// Put stores a rendered document for a URL.
func (c *MemoryResponseCache) Put(_ context.Context, url string, entry Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = responseEntry{entry: entry, storedAt: c.now()}
	return nil
}
