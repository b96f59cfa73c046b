package finder

import "time"

// Options is every tunable the resolver and scheduler read. Values are
// fixed at construction.
type Options struct {
	// DelayBetweenRequests is the minimum spacing between search calls
	// process-wide. Default 1s.
	DelayBetweenRequests time.Duration
	// CompanySimilarityThreshold is the minimum company score in [0,1].
	// Zero disables the company check. Default 0.6.
	CompanySimilarityThreshold float64
	// NameSimilarityThreshold is the minimum name score in [0,1]. Zero
	// disables the name check. Default 0.7.
	NameSimilarityThreshold float64
	// MaxWorkers bounds concurrent resolutions in a batch. Default 3.
	MaxWorkers int
	// UseSemanticValidation routes the name check through a judge, with the
	// fuzzy matcher as fallback. Default false.
	UseSemanticValidation bool
	// SemanticTimeout bounds each judge call. Default 10s.
	SemanticTimeout time.Duration
	// Keywords are used for queries that carry none of their own.
	Keywords []string
	// TopK is how many filtered hits per strategy are validated. Zero means
	// all of them. Default 5.
	TopK int
	// SiteFilter restricts the first strategy. Default "linkedin.com/in".
	SiteFilter string
	// ProfileURLPattern keeps only hits whose URL contains it. Empty keeps
	// every hit. Default "linkedin.com/in/".
	ProfileURLPattern string
	// IncludeCompanyVariants adds a first-company-word strategy. Default false.
	IncludeCompanyVariants bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		DelayBetweenRequests:       time.Second,
		CompanySimilarityThreshold: 0.6,
		NameSimilarityThreshold:    0.7,
		MaxWorkers:                 3,
		SemanticTimeout:            10 * time.Second,
		TopK:                       5,
		SiteFilter:                 "linkedin.com/in",
		ProfileURLPattern:          "linkedin.com/in/",
	}
}
