// Package api serves profile resolution over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/profile-finder/internal/model"
	"github.com/sells-group/profile-finder/internal/store"
)

// DefaultMaxBatch caps the queries accepted by one POST /v1/batch.
const DefaultMaxBatch = 500

// Resolver resolves a single query.
type Resolver interface {
	Resolve(ctx context.Context, q model.Query) model.SearchResult
}

// BatchRunner resolves many queries, returning results in input order.
type BatchRunner interface {
	Run(ctx context.Context, queries []model.Query) []model.SearchResult
}

// Server holds the handler dependencies.
type Server struct {
	resolver Resolver
	batch    BatchRunner
	store    store.Store
	maxBatch int
}

// Option configures a Server.
type Option func(*Server)

// WithStore records batches as runs and enables the /v1/runs endpoints.
func WithStore(st store.Store) Option {
	return func(s *Server) { s.store = st }
}

// WithMaxBatch overrides DefaultMaxBatch.
func WithMaxBatch(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBatch = n
		}
	}
}

// NewServer creates a Server.
func NewServer(resolver Resolver, batch BatchRunner, opts ...Option) *Server {
	s := &Server{resolver: resolver, batch: batch, maxBatch: DefaultMaxBatch}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Router builds the chi router with CORS, request logging and panic recovery.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/resolve", s.handleResolve)
		r.Post("/batch", s.handleBatch)
		if s.store != nil {
			r.Get("/runs", s.handleListRuns)
			r.Get("/runs/{runID}", s.handleGetRun)
		}
	})

	return r
}

// HTTPServer wraps the router in an http.Server with conservative timeouts.
// Batch requests can run for minutes, so there is no write timeout.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
