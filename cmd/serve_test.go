package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/profile-finder/internal/api"
	"github.com/sells-group/profile-finder/internal/model"
)

func TestNewAPIServer_Resolve(t *testing.T) {
	srv, _ := fakeDuckDuckGo(t)
	c := testConfig(t, srv.URL)

	env, err := initFinder(context.Background(), c, "serve")
	require.NoError(t, err)
	defer env.Close()

	hs := newAPIServer(env, ":0")
	ts := httptest.NewServer(hs.Handler)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/resolve", "application/json", strings.NewReader(`{"name":"Jane Doe","company":"Acme"}`))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got model.SearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.Success)
	assert.Equal(t, "https://www.linkedin.com/in/janedoe", got.ProfileURL)

	batch, err := http.Post(ts.URL+"/v1/batch", "application/json",
		strings.NewReader(`{"queries":[{"name":"John Smith"},{"name":"Jane Doe","company":"Acme"}]}`))
	require.NoError(t, err)
	defer batch.Body.Close() //nolint:errcheck

	var br api.BatchResponse
	require.NoError(t, json.NewDecoder(batch.Body).Decode(&br))
	require.Len(t, br.Results, 2)
	assert.False(t, br.Results[0].Success)
	assert.True(t, br.Results[1].Success)
	assert.Equal(t, 1, br.Found)
}

func TestRunServer_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv := &http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
		ReadHeaderTimeout: time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunServer_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close() //nolint:errcheck

	srv := &http.Server{Addr: ln.Addr().String(), ReadHeaderTimeout: time.Second}
	err = runServer(context.Background(), srv)
	assert.Error(t, err)
}
