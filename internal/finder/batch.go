package finder

import (
	"context"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/profile-finder/internal/model"
)

// ProgressFunc is called once per finished query, in completion order.
// Calls are serialized.
type ProgressFunc func(done, total, index int, result model.SearchResult)

// Scheduler resolves a batch of queries on a bounded worker pool.
type Scheduler struct {
	resolver *Resolver
	workers  int
	progress ProgressFunc
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) SchedulerOption {
	return func(s *Scheduler) { s.progress = fn }
}

// NewScheduler creates a Scheduler running at most workers resolutions at a
// time. Values below 1 mean 1.
func NewScheduler(resolver *Resolver, workers int, opts ...SchedulerOption) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	s := &Scheduler{resolver: resolver, workers: workers}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run resolves every query and returns the results in input order:
// out[i] belongs to queries[i]. It returns only once all queries finished.
// A failing query never affects its siblings.
func (s *Scheduler) Run(ctx context.Context, queries []model.Query) []model.SearchResult {
	out := make([]model.SearchResult, len(queries))
	if len(queries) == 0 {
		return out
	}

	var (
		mu   sync.Mutex
		done int
	)

	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	for i, q := range queries {
		g.Go(func() error {
			res := s.resolveOne(ctx, i, q)
			out[i] = res

			if s.progress != nil {
				mu.Lock()
				done++
				s.progress(done, len(queries), i, res)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	zap.L().Info("finder: batch complete",
		zap.Int("total", len(queries)),
		zap.Int("found", model.CountFound(out)),
	)
	return out
}

func (s *Scheduler) resolveOne(ctx context.Context, index int, q model.Query) (res model.SearchResult) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("finder: resolution panicked",
				zap.Int("index", index),
				zap.String("name", q.Name),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			res = model.Failed(model.ErrInternal)
		}
	}()
	return s.resolver.Resolve(ctx, q)
}
