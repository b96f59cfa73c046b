// Package store persists batch runs and a durable search hit cache.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/profile-finder/internal/config"
	"github.com/sells-group/profile-finder/internal/model"
	"github.com/sells-group/profile-finder/pkg/search"
)

// ErrNotFound is wrapped by lookups that match no row.
var ErrNotFound = eris.New("store: not found")

// DefaultSQLitePath is used when the sqlite driver has no database_url.
const DefaultSQLitePath = "profile-finder.db"

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for batch runs and cached hits.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, queries []model.Query) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, results []model.SearchResult) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Hit cache. Keys are search.CacheKey values.
	GetCachedHits(ctx context.Context, key string) ([]search.Hit, bool, error)
	SetCachedHits(ctx context.Context, key string, hits []search.Hit, ttl time.Duration) error
	DeleteExpiredHits(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open connects to the configured backend and migrates it. The "none"
// driver returns a nil Store and no error.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "sqlite":
		path := cfg.DatabaseURL
		if path == "" {
			path = DefaultSQLitePath
		}
		st, err = NewSQLite(path)
	case "postgres":
		st, err = NewPostgres(ctx, cfg.DatabaseURL, &PoolConfig{MaxConns: cfg.MaxConns, MinConns: cfg.MinConns})
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}
