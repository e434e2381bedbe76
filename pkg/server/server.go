// Package server exposes the layout pipeline over HTTP.
//
// # Endpoints
//
//   - POST /v1/layout: place the labels of a scene, optionally rendering it
//   - GET /healthz: liveness probe
//   - GET /version: build information
//
// A layout request wraps a scene with render options:
//
//	{
//	  "scene": {"chart": "line", "container": {...}, "series": [...]},
//	  "interaction": {"hovered": ["de"]},
//	  "formats": ["svg"]
//	}
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with the error code of pkg/errors and a matching HTTP status.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/labeler/pkg/config"
	"github.com/matzehuels/labeler/pkg/pipeline"
)

// Server serves layout requests through a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    config.Server
	router chi.Router
}

// New creates a server. Zero config values take the config defaults.
func New(runner *pipeline.Runner, logger *log.Logger, cfg config.Server) *Server {
	def := config.Default().Server
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.Timeout.Duration <= 0 {
		cfg.Timeout = def.Timeout
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{runner: runner, logger: logger, cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout.Duration))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
	})
	r.NotFound(s.handleNotFound)
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
