// Package cache holds the process-lifetime caches: per-job operation
// lists and fully rendered feed responses.
package cache

import (
	"sync"
	"time"

	"job-calendar-feed/internal/models"
)

type operationEntry struct {
	ops      []models.Operation
	storedAt time.Time
}

// OperationCache is a TTL-expiring, capacity-bounded store of per-job
// operation lists. Expired entries are evicted lazily on read; when an
// insert would exceed capacity, the single oldest entry (by insertion
// time) is dropped.
type OperationCache struct {
	mu      sync.Mutex
	entries map[string]operationEntry
	ttl     time.Duration
	max     int
	now     func() time.Time
}

// NewOperationCache builds an empty cache. max <= 0 means unbounded.
func NewOperationCache(ttl time.Duration, max int) *OperationCache {
	return &OperationCache{
		entries: make(map[string]operationEntry),
		ttl:     ttl,
		max:     max,
		now:     time.Now,
	}
}

// Get returns the cached operations for a job, treating expired entries
// as absent.
func (c *OperationCache) Get(jobID string) ([]models.Operation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[jobID]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, jobID)
		return nil, false
	}
	return entry.ops, true
}

// Put stores the operations for a job, evicting the oldest entry first
// when the capacity bound would be exceeded.
func (c *OperationCache) Put(jobID string, ops []models.Operation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[jobID]; !exists && c.max > 0 && len(c.entries) >= c.max {
		c.evictOldestLocked()
	}
	c.entries[jobID] = operationEntry{ops: ops, storedAt: c.now()}
}

// Len reports the current entry count.
func (c *OperationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *OperationCache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for key, entry := range c.entries {
		if first || entry.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.storedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
