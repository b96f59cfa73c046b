// Package jina provides a search backend on top of the Jina AI Search API.
package jina

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/profile-finder/internal/resilience"
	"github.com/sells-group/profile-finder/pkg/search"
)

// SearchResponse is the parsed Jina Search API response.
type SearchResponse struct {
	Code int            `json:"code"`
	Data []SearchResult `json:"data"`
}

// SearchResult represents a single search result.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

// Option configures the Jina client.
type Option func(*Client)

// WithSearchBaseURL sets a custom search base URL (for testing).
func WithSearchBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.searchBaseURL = u
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithMaxResults caps the number of hits returned per query.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		c.maxResults = n
	}
}

// Client implements search.Client against s.jina.ai.
type Client struct {
	apiKey        string
	searchBaseURL string
	maxResults    int
	http          *http.Client
}

var _ search.Client = (*Client)(nil)

// NewClient creates a new Jina search client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:        apiKey,
		searchBaseURL: "https://s.jina.ai",
		maxResults:    10,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs one query. Retrying is left to the caller: 408/5xx and
// connection failures come back as *resilience.TransientError.
func (c *Client) Search(ctx context.Context, query string) ([]search.Hit, error) {
	reqURL := fmt.Sprintf("%s/%s", c.searchBaseURL, url.PathEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "jina: create search request")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Respond-With", "no-content")

	resp, err := c.http.Do(req)
	if err != nil {
		wrapped := eris.Wrap(err, "jina: search request failed")
		if ctx.Err() != nil {
			return nil, wrapped
		}
		return nil, resilience.NewTransientError(wrapped, 0)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrap(err, "jina: read response body"), resp.StatusCode)
	}

	// Jina returns 422 when no results are available for the query.
	// Treat this as empty results rather than an error.
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return []search.Hit{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resilience.StatusError(
			eris.Errorf("jina: search unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200)),
			resp.StatusCode)
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "jina: unmarshal search response")
	}

	return toHits(result.Data, c.maxResults), nil
}

func toHits(results []SearchResult, limit int) []search.Hit {
	hits := make([]search.Hit, 0, len(results))
	for _, r := range results {
		if limit > 0 && len(hits) >= limit {
			break
		}
		if r.URL == "" {
			continue
		}
		snippet := r.Description
		if snippet == "" {
			snippet = truncate(r.Content, 500)
		}
		hits = append(hits, search.Hit{
			Title:   strings.TrimSpace(r.Title),
			URL:     r.URL,
			Snippet: strings.Join(strings.Fields(snippet), " "),
		})
	}
	return hits
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
