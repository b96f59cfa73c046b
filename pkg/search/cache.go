package search

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache stores successful search responses keyed by query. Implementations
// must be safe for concurrent use. A cached empty slice is a valid answer.
type Cache interface {
	Get(ctx context.Context, query string) ([]Hit, bool)
	Set(ctx context.Context, query string, hits []Hit)
}

// MemoryCache is an in-process TTL cache.
type MemoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache creates a MemoryCache whose entries expire after ttl.
// A non-positive ttl keeps entries for the life of the process.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		return &MemoryCache{c: gocache.New(gocache.NoExpiration, 0)}
	}
	return &MemoryCache{c: gocache.New(ttl, 2*ttl)}
}

// Get returns a copy of the cached hits for query.
func (m *MemoryCache) Get(_ context.Context, query string) ([]Hit, bool) {
	v, ok := m.c.Get(CacheKey(query))
	if !ok {
		return nil, false
	}
	hits, ok := v.([]Hit)
	if !ok {
		return nil, false
	}
	return cloneHits(hits), true
}

// Set stores a copy of hits for query.
func (m *MemoryCache) Set(_ context.Context, query string, hits []Hit) {
	m.c.Set(CacheKey(query), cloneHits(hits), gocache.DefaultExpiration)
}

// Len returns the number of unexpired entries.
func (m *MemoryCache) Len() int {
	return m.c.ItemCount()
}

// ChainCache consults caches in order. A hit in a later cache is written back
// to the earlier ones; Set writes through to all of them.
type ChainCache []Cache

// Get implements Cache.
func (cc ChainCache) Get(ctx context.Context, query string) ([]Hit, bool) {
	for i, c := range cc {
		if c == nil {
			continue
		}
		hits, ok := c.Get(ctx, query)
		if !ok {
			continue
		}
		for _, earlier := range cc[:i] {
			if earlier != nil {
				earlier.Set(ctx, query, hits)
			}
		}
		return hits, true
	}
	return nil, false
}

// Set implements Cache.
func (cc ChainCache) Set(ctx context.Context, query string, hits []Hit) {
	for _, c := range cc {
		if c != nil {
			c.Set(ctx, query, hits)
		}
	}
}
