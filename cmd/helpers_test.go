package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/profile-finder/internal/config"
)

const janePage = `<html><body>
<div class="result results_links">
  <h2 class="result__title">
    <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.linkedin.com%2Fin%2Fjanedoe&amp;rut=abc">Jane Doe - Senior Software Engineer - Acme Inc. | LinkedIn</a>
  </h2>
  <a class="result__snippet">Experience: Acme Inc. · Location: Austin, Texas · 500+ connections</a>
</div>
</body></html>`

const emptyPage = `<html><body><div class="no-results">No results.</div></body></html>`

// fakeDuckDuckGo serves janePage for any query mentioning Jane Doe and an
// empty result page otherwise.
func fakeDuckDuckGo(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		if strings.Contains(r.PostForm.Get("q"), "Jane Doe") {
			_, _ = w.Write([]byte(janePage))
			return
		}
		_, _ = w.Write([]byte(emptyPage))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

// testConfig loads defaults and points the search backend at baseURL with
// pacing and caches off.
func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())

	c, err := config.Load()
	require.NoError(t, err)

	c.DuckDuckGo.BaseURL = baseURL
	c.Search.Backend = "duckduckgo"
	c.Search.TimeoutSecs = 5
	c.Search.CacheTTLMins = 0
	c.Finder.DelayBetweenRequests = 0
	c.Finder.UseSemanticValidation = false
	c.Store.Driver = "none"
	return c
}
