// Package server exposes the claim catalog and the prover over HTTP.
//
// Routes:
//
//	GET  /healthz                 build information
//	GET  /claims                  catalog summary, in proof order
//	GET  /claims/{name}           one claim
//	GET  /claims/{name}/seed.svg  drawing of the claim's seed
//	POST /claims/{name}/prove     run the prover and return the report
//	GET  /claims/{name}/runs      recent runs of a claim
//	GET  /runs/{id}               one stored run report
//
// Proofs run one at a time; the engine is single-threaded and a second
// request waits for the first.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/claims"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/httputil"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/store"
)

// Server serves one catalog.
type Server struct {
	catalog      *claims.Catalog
	runs         store.Store
	logger       *log.Logger
	proveTimeout time.Duration

	// proving serialises runs of the engine.
	proving sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithProveTimeout bounds each proof. Zero means no bound.
func WithProveTimeout(d time.Duration) Option {
	return func(s *Server) { s.proveTimeout = d }
}

// New returns a server for cat that records runs in runs. A nil store
// keeps runs in memory.
func New(cat *claims.Catalog, runs store.Store, opts ...Option) *Server {
	if runs == nil {
		runs = store.NewMemoryStore()
	}
	s := &Server{catalog: cat, runs: runs, logger: log.New(nil)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httputil.Observe)

	r.Get("/healthz", s.health)
	r.Route("/claims", func(r chi.Router) {
		r.Get("/", s.listClaims)
		r.Route("/{name}", func(r chi.Router) {
			r.Use(s.claimCtx)
			r.Get("/", s.getClaim)
			r.Get("/seed.svg", s.seedSVG)
			r.Post("/prove", s.prove)
			r.Get("/runs", s.claimRuns)
		})
	})
	r.Get("/runs/{id}", s.getRun)
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("Listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
