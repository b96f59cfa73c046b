package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/profile-finder/pkg/search"
)

// HitCache adapts a Store to search.Cache. Store errors are logged and
// treated as misses so a flaky database never fails a resolution.
type HitCache struct {
	store Store
	ttl   time.Duration
}

// NewHitCache creates a HitCache whose entries live for ttl.
func NewHitCache(st Store, ttl time.Duration) *HitCache {
	return &HitCache{store: st, ttl: ttl}
}

// Get implements search.Cache.
func (c *HitCache) Get(ctx context.Context, query string) ([]search.Hit, bool) {
	hits, ok, err := c.store.GetCachedHits(ctx, search.CacheKey(query))
	if err != nil {
		zap.L().Warn("store: hit cache read failed", zap.String("query", query), zap.Error(err))
		return nil, false
	}
	return hits, ok
}

// Set implements search.Cache.
func (c *HitCache) Set(ctx context.Context, query string, hits []search.Hit) {
	if err := c.store.SetCachedHits(ctx, search.CacheKey(query), hits, c.ttl); err != nil {
		zap.L().Warn("store: hit cache write failed", zap.String("query", query), zap.Error(err))
	}
}
