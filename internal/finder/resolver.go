package finder

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/profile-finder/internal/judge"
	"github.com/sells-group/profile-finder/internal/model"
	"github.com/sells-group/profile-finder/internal/resilience"
	"github.com/sells-group/profile-finder/pkg/search"
)

// Resolver states, logged at debug level as a resolution progresses.
const (
	statePlanning     = "PLANNING"
	stateSearching    = "SEARCHING"
	stateExtracting   = "EXTRACTING"
	stateValidating   = "VALIDATING"
	stateAccepted     = "ACCEPTED"
	stateNextStrategy = "NEXT_STRATEGY"
	stateFound        = "FOUND"
	stateExhausted    = "EXHAUSTED"
)

// excludedProfilePaths are listing pages that match the profile pattern's
// host but are not a single person's profile.
var excludedProfilePaths = []string{"/search", "/company", "/groups", "/jobs", "/feed"}

// Resolver turns one Query into one SearchResult by trying planner
// strategies in order until a candidate validates.
type Resolver struct {
	client    search.Client
	pacer     *Pacer
	planner   *Planner
	validator *Validator
	opts      Options

	retry   resilience.RetryConfig
	cache   search.Cache
	breaker *resilience.CircuitBreaker
	judge   judge.Judge
	names   NameMatcher
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHitCache consults c before pacing and searching, and stores every
// successful response in it.
func WithHitCache(c search.Cache) ResolverOption {
	return func(r *Resolver) { r.cache = c }
}

// WithCircuitBreaker guards the search client. An open circuit counts as a
// failed call.
func WithCircuitBreaker(cb *resilience.CircuitBreaker) ResolverOption {
	return func(r *Resolver) { r.breaker = cb }
}

// WithJudge supplies the semantic judge used when UseSemanticValidation is set.
func WithJudge(j judge.Judge) ResolverOption {
	return func(r *Resolver) { r.judge = j }
}

// WithNameMatcher overrides the name check entirely.
func WithNameMatcher(m NameMatcher) ResolverOption {
	return func(r *Resolver) { r.names = m }
}

// WithRetryConfig replaces the search retry policy (default: one immediate
// retry of transient errors).
func WithRetryConfig(cfg resilience.RetryConfig) ResolverOption {
	return func(r *Resolver) { r.retry = cfg }
}

// NewResolver wires a Resolver. pacer is shared by every resolver in the
// process; nil disables pacing.
func NewResolver(client search.Client, pacer *Pacer, opts Options, ropts ...ResolverOption) *Resolver {
	r := &Resolver{
		client: client,
		pacer:  pacer,
		opts:   opts,
		retry:  resilience.ImmediateRetry(1),
	}
	for _, o := range ropts {
		o(r)
	}

	r.planner = NewPlanner(PlannerOptions{
		SiteFilter:             opts.SiteFilter,
		IncludeCompanyVariants: opts.IncludeCompanyVariants,
	})

	names := r.names
	if names == nil {
		fuzzy := FuzzyMatcher{Threshold: opts.NameSimilarityThreshold}
		names = fuzzy
		if opts.UseSemanticValidation {
			if r.judge != nil {
				names = SemanticMatcher{
					Judge:    r.judge,
					Fallback: fuzzy,
					Timeout:  opts.SemanticTimeout,
					Breaker:  resilience.FromCircuitConfig("judge", 3, 60),
				}
			} else {
				zap.L().Warn("finder: semantic validation enabled without a judge, using fuzzy matcher")
			}
		}
	}
	r.validator = NewValidator(opts.CompanySimilarityThreshold, opts.NameSimilarityThreshold, names)

	return r
}

// Resolve runs the strategy loop for q. It never returns an error: failures
// are reported in the result's Error field.
func (r *Resolver) Resolve(ctx context.Context, q model.Query) model.SearchResult {
	if !q.Valid() {
		return model.Failed(model.ErrInvalidQuery)
	}
	q = q.WithDefaultKeywords(r.opts.Keywords)
	log := zap.L().With(zap.String("name", q.Name), zap.String("company", q.Company))

	log.Debug("finder: state", zap.String("state", statePlanning))
	strategies := r.planner.Plan(q)

	failed := 0
	for i, s := range strategies {
		if ctx.Err() != nil {
			failed += len(strategies) - i
			break
		}
		log.Debug("finder: state",
			zap.String("state", stateSearching),
			zap.Int("strategy", s.Index),
			zap.String("query", s.Query),
		)

		hits, err := r.search(ctx, s.Query)
		if err != nil {
			failed++
			log.Warn("finder: search failed",
				zap.Int("strategy", s.Index),
				zap.String("class", resilience.Classify(err)),
				zap.Error(err),
			)
			continue
		}

		for _, h := range r.candidates(hits) {
			raw := model.RawHit{Title: h.Title, URL: h.URL, Snippet: h.Snippet}

			log.Debug("finder: state", zap.String("state", stateExtracting), zap.String("url", raw.URL))
			profile := r.validator.Reconcile(q, Extract(raw))
			verdict := r.validator.Validate(ctx, q, profile)
			log.Debug("finder: state",
				zap.String("state", stateValidating),
				zap.String("url", raw.URL),
				zap.Bool("accepted", verdict.Accepted),
				zap.String("reason", verdict.Reason),
			)
			if verdict.Accepted {
				log.Debug("finder: state", zap.String("state", stateAccepted), zap.Int("strategy", s.Index))
				log.Info("finder: profile found",
					zap.String("state", stateFound),
					zap.String("url", raw.URL),
					zap.Int("strategy", s.Index),
				)
				return model.Found(s, raw, profile)
			}
		}
		log.Debug("finder: state", zap.String("state", stateNextStrategy), zap.Int("strategy", s.Index))
	}

	if len(strategies) > 0 && failed == len(strategies) {
		log.Info("finder: search unavailable", zap.String("state", stateExhausted), zap.Int("strategies", len(strategies)))
		return model.Failed(model.ErrSearchUnavailable)
	}
	log.Info("finder: no profile found", zap.String("state", stateExhausted), zap.Int("strategies", len(strategies)))
	return model.Failed(model.ErrNotFound)
}

// search runs one strategy query through the cache, pacer, breaker and
// retry policy. Every attempt, retries included, waits for the pacer.
func (r *Resolver) search(ctx context.Context, query string) ([]search.Hit, error) {
	if r.cache != nil {
		if hits, ok := r.cache.Get(ctx, query); ok {
			return hits, nil
		}
	}

	hits, err := resilience.DoVal(ctx, r.retry, func(ctx context.Context) ([]search.Hit, error) {
		if err := r.pacer.Acquire(ctx); err != nil {
			return nil, err
		}
		return resilience.Execute(ctx, r.breaker, func(ctx context.Context) ([]search.Hit, error) {
			return r.client.Search(ctx, query)
		})
	})
	if err != nil {
		return nil, eris.Wrapf(err, "finder: search %q", query)
	}

	if r.cache != nil {
		r.cache.Set(ctx, query, hits)
	}
	return hits, nil
}

// candidates filters hits to profile URLs and keeps the top K in rank order.
func (r *Resolver) candidates(hits []search.Hit) []search.Hit {
	out := make([]search.Hit, 0, len(hits))
	for _, h := range hits {
		if !isProfileURL(h.URL, r.opts.ProfileURLPattern) {
			continue
		}
		out = append(out, h)
		if r.opts.TopK > 0 && len(out) >= r.opts.TopK {
			break
		}
	}
	return out
}

func isProfileURL(u, pattern string) bool {
	if pattern == "" {
		return u != ""
	}
	lu := strings.ToLower(u)
	if !strings.Contains(lu, strings.ToLower(pattern)) {
		return false
	}
	for _, ex := range excludedProfilePaths {
		if strings.Contains(lu, ex) {
			return false
		}
	}
	return true
}
