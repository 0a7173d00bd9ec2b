package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache implements the Cache interface with a bounded in-process LRU.
// It serves single-instance deployments and stands in when Redis is unavailable.
type MemoryCache struct {
	lru *expirable.LRU[string, memoryEntry]
	now func() time.Time
}

// NewMemoryCache creates a cache holding at most size entries
func NewMemoryCache(size int) *MemoryCache {
	// Entries carry their own deadline, the LRU TTL is disabled.
	return &MemoryCache{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, 0),
		now: time.Now,
	}
}

// Get retrieves a value that has not expired yet
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := c.lru.Get(key)

	if !ok {
		return nil, ErrCacheMiss
	}

	if !c.now().Before(entry.expiresAt) {
		c.lru.Remove(key)
		return nil, ErrCacheMiss
	}

	return entry.value, nil
}

// Set stores a copy of value for ttl
// If ttl is 0, the value will not be cached
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	c.lru.Add(key, memoryEntry{value: stored, expiresAt: c.now().Add(ttl)})

	return nil
}

// Close drops all entries
func (c *MemoryCache) Close() error {
	c.lru.Purge()
	return nil
}
