package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/profile-finder/internal/config"
	"github.com/sells-group/profile-finder/internal/finder"
	"github.com/sells-group/profile-finder/internal/judge"
	"github.com/sells-group/profile-finder/internal/resilience"
	"github.com/sells-group/profile-finder/internal/store"
	"github.com/sells-group/profile-finder/pkg/duckduckgo"
	"github.com/sells-group/profile-finder/pkg/jina"
	"github.com/sells-group/profile-finder/pkg/search"
)

// finderEnv holds everything the find, batch and serve commands share.
type finderEnv struct {
	Store    store.Store // nil when store.driver is none
	Resolver *finder.Resolver
	Options  finder.Options
}

// Close releases resources held by the environment.
func (fe *finderEnv) Close() {
	if fe.Store != nil {
		_ = fe.Store.Close()
	}
}

// initFinder validates c for mode, opens the store and builds the resolver.
// Callers should defer env.Close().
func initFinder(ctx context.Context, c *config.Config, mode string) (*finderEnv, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, c.Store)
	if err != nil {
		return nil, err
	}

	env := &finderEnv{Store: st, Options: finderOptions(c)}

	resolver, err := buildResolver(ctx, c, env.Options, st)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.Resolver = resolver
	return env, nil
}

// finderOptions maps config onto finder.Options.
func finderOptions(c *config.Config) finder.Options {
	f := c.Finder
	opts := finder.Options{
		DelayBetweenRequests:       time.Duration(f.DelayBetweenRequests * float64(time.Second)),
		CompanySimilarityThreshold: f.CompanySimilarityThreshold,
		NameSimilarityThreshold:    f.NameSimilarityThreshold,
		MaxWorkers:                 f.MaxWorkers,
		UseSemanticValidation:      f.UseSemanticValidation,
		SemanticTimeout:            time.Duration(c.Semantic.TimeoutSecs) * time.Second,
		Keywords:                   f.Keywords,
		TopK:                       f.TopK,
		SiteFilter:                 f.SiteFilter,
		ProfileURLPattern:          f.ProfileURLPattern,
		IncludeCompanyVariants:     f.IncludeCompanyVariants,
	}
	if opts.SemanticTimeout <= 0 {
		opts.SemanticTimeout = finder.DefaultOptions().SemanticTimeout
	}
	return opts
}

func buildResolver(ctx context.Context, c *config.Config, opts finder.Options, st store.Store) (*finder.Resolver, error) {
	client, err := newSearchClient(c)
	if err != nil {
		return nil, err
	}

	var cache search.Cache
	if c.Search.CacheTTLMins > 0 {
		cache = search.NewMemoryCache(time.Duration(c.Search.CacheTTLMins) * time.Minute)
	}
	if st != nil && c.Store.HitCacheTTLHours > 0 {
		persistent := store.NewHitCache(st, time.Duration(c.Store.HitCacheTTLHours)*time.Hour)
		if cache != nil {
			cache = search.ChainCache{cache, persistent}
		} else {
			cache = persistent
		}
	}

	ropts := []finder.ResolverOption{
		finder.WithCircuitBreaker(resilience.FromCircuitConfig(
			c.Search.Backend, c.Search.CircuitFailureThreshold, c.Search.CircuitResetSecs)),
	}
	if cache != nil {
		ropts = append(ropts, finder.WithHitCache(cache))
	}

	if opts.UseSemanticValidation {
		j, err := judge.New(ctx, c)
		if err != nil {
			zap.L().Warn("semantic judge unavailable, using fuzzy name matching",
				zap.String("provider", c.Semantic.Provider), zap.Error(err))
		} else {
			ropts = append(ropts, finder.WithJudge(j))
		}
	}

	zap.L().Debug("finder configured",
		zap.String("backend", c.Search.Backend),
		zap.Duration("delay", opts.DelayBetweenRequests),
		zap.Bool("semantic", opts.UseSemanticValidation),
		zap.Bool("store", st != nil),
	)

	return finder.NewResolver(client, finder.NewPacer(opts.DelayBetweenRequests), opts, ropts...), nil
}

// newSearchClient builds the configured search backend.
func newSearchClient(c *config.Config) (search.Client, error) {
	hc := &http.Client{Timeout: time.Duration(c.Search.TimeoutSecs) * time.Second}

	switch c.Search.Backend {
	case "duckduckgo":
		return duckduckgo.NewClient(
			duckduckgo.WithBaseURL(c.DuckDuckGo.BaseURL),
			duckduckgo.WithUserAgent(c.DuckDuckGo.UserAgent),
			duckduckgo.WithMaxResults(c.Search.MaxResults),
			duckduckgo.WithRegion(c.Search.Region),
			duckduckgo.WithHTTPClient(hc),
		), nil
	case "jina":
		return jina.NewClient(c.Jina.Key,
			jina.WithSearchBaseURL(c.Jina.SearchBaseURL),
			jina.WithMaxResults(c.Search.MaxResults),
			jina.WithHTTPClient(hc),
		), nil
	default:
		return nil, eris.Errorf("unsupported search backend: %s", c.Search.Backend)
	}
}
