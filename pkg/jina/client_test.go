package jina

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/profile-finder/internal/resilience"
)

func TestSearch_Success(t *testing.T) {
	t.Parallel()

	want := SearchResponse{
		Code: 200,
		Data: []SearchResult{
			{Title: "Jane Doe - Engineer - Acme | LinkedIn", URL: "https://www.linkedin.com/in/janedoe", Description: "Experience:  Acme · Austin"},
			{Title: "Jane Doe", URL: "https://example.com/jane", Content: "A long\nbody of text"},
			{Title: "no url"},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, `/linkedin "Jane Doe"`, r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithSearchBaseURL(srv.URL))
	hits, err := client.Search(context.Background(), `linkedin "Jane Doe"`)

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "https://www.linkedin.com/in/janedoe", hits[0].URL)
	assert.Equal(t, "Experience: Acme · Austin", hits[0].Snippet)
	assert.Equal(t, "A long body of text", hits[1].Snippet)
}

func TestSearch_MaxResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(SearchResponse{Code: 200, Data: []SearchResult{
			{URL: "https://a"}, {URL: "https://b"}, {URL: "https://c"},
		}})
	}))
	defer srv.Close()

	hits, err := NewClient("k", WithSearchBaseURL(srv.URL), WithMaxResults(2)).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestSearch_NoAPIKeyOmitsAuthorization(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(SearchResponse{Code: 200})
	}))
	defer srv.Close()

	hits, err := NewClient("", WithSearchBaseURL(srv.URL)).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_422IsEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	hits, err := NewClient("k", WithSearchBaseURL(srv.URL)).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestSearch_HTTPErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status    int
		transient bool
	}{
		{http.StatusTooManyRequests, false},
		{http.StatusServiceUnavailable, true},
		{http.StatusUnauthorized, false},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
		}))

		_, err := NewClient("k", WithSearchBaseURL(srv.URL)).Search(context.Background(), "q")
		srv.Close()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status")
		assert.Equal(t, tt.transient, resilience.IsTransient(err), "status %d", tt.status)
	}
}

func TestSearch_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := NewClient("k", WithSearchBaseURL(srv.URL)).Search(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
	assert.False(t, resilience.IsTransient(err))
}

func TestSearch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient("k", WithSearchBaseURL(srv.URL)).Search(ctx, "q")
	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("k")
	assert.Equal(t, "https://s.jina.ai", c.searchBaseURL)
	assert.Equal(t, 10, c.maxResults)

	hc := &http.Client{Timeout: time.Second}
	assert.Same(t, hc, NewClient("k", WithHTTPClient(hc)).http)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, strings.Repeat("a", 5), truncate(strings.Repeat("a", 10), 5))
}
