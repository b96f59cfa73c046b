// Package search defines the web search abstraction used to look up public
// profiles, plus in-process caching of search responses.
package search

import (
	"context"
	"strings"
)

// Hit is one ranked search engine result.
type Hit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Client runs a web search and returns hits in rank order.
//
// Implementations report retryable failures (timeouts, throttling, 5xx) as
// *resilience.TransientError so callers can retry them.
type Client interface {
	Search(ctx context.Context, query string) ([]Hit, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, query string) ([]Hit, error)

// Search calls f.
func (f ClientFunc) Search(ctx context.Context, query string) ([]Hit, error) {
	return f(ctx, query)
}

// CacheKey normalizes a query string for cache lookups.
func CacheKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

func cloneHits(hits []Hit) []Hit {
	if hits == nil {
		return []Hit{}
	}
	out := make([]Hit, len(hits))
	copy(out, hits)
	return out
}
