// Package duckduckgo searches the DuckDuckGo HTML endpoint and parses the
// result page into ranked hits.
package duckduckgo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/profile-finder/internal/resilience"
	"github.com/sells-group/profile-finder/pkg/search"
)

const (
	defaultBaseURL    = "https://html.duckduckgo.com/html"
	defaultUserAgent  = "Mozilla/5.0 (compatible; profile-finder/1.0)"
	defaultMaxResults = 10
)

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom endpoint (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxResults caps the number of hits returned per query.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithRegion sets the kl region parameter, e.g. "us-en".
func WithRegion(region string) Option {
	return func(c *Client) {
		c.region = region
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// Client implements search.Client against DuckDuckGo.
type Client struct {
	baseURL    string
	userAgent  string
	region     string
	maxResults int
	http       *http.Client
}

var _ search.Client = (*Client)(nil)

// NewClient creates a DuckDuckGo search client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		maxResults: defaultMaxResults,
		http:       &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search posts the query and returns at most maxResults organic hits.
// DuckDuckGo answers 202 when it throttles a caller; that and 5xx are
// returned as transient errors. A 429 quota refusal is permanent.
func (c *Client) Search(ctx context.Context, query string) ([]search.Hit, error) {
	form := url.Values{}
	form.Set("q", query)
	form.Set("b", "")
	form.Set("kl", c.region)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == nil {
			return nil, resilience.NewTransientError(eris.Wrap(err, "duckduckgo: request failed"), 0)
		}
		return nil, eris.Wrap(err, "duckduckgo: request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrap(err, "duckduckgo: read response body"), resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusAccepted:
		return nil, resilience.NewTransientError(eris.New("duckduckgo: rate limited"), resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, resilience.StatusError(
			eris.Errorf("duckduckgo: unexpected status %d", resp.StatusCode), resp.StatusCode)
	}

	return parseResults(body, c.maxResults)
}

func parseResults(body []byte, limit int) ([]search.Hit, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: parse html")
	}

	hits := []search.Hit{}
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if limit > 0 && len(hits) >= limit {
			return false
		}
		if s.HasClass("result--ad") {
			return true
		}

		link := s.Find(".result__title a").First()
		if link.Length() == 0 {
			link = s.Find("a.result__a").First()
		}
		href, ok := link.Attr("href")
		title := cleanText(link.Text())
		if !ok || title == "" {
			return true
		}
		if strings.Contains(href, "y.js") {
			return true
		}

		hits = append(hits, search.Hit{
			Title:   title,
			URL:     resolveRedirect(href),
			Snippet: cleanText(s.Find(".result__snippet").First().Text()),
		})
		return true
	})
	return hits, nil
}

// resolveRedirect unwraps DuckDuckGo's //duckduckgo.com/l/?uddg=<target> links.
func resolveRedirect(href string) string {
	if !strings.Contains(href, "uddg=") {
		return href
	}
	raw := href
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// String identifies the backend in logs.
func (c *Client) String() string {
	return fmt.Sprintf("duckduckgo(%s)", c.baseURL)
}
