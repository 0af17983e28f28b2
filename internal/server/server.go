// Package server exposes validation and rendering over HTTP.
//
// Routes:
//
//	GET  /health                           build info
//	POST /api/v1/validate                  passage JSON in, report JSON out
//	POST /api/v1/render                    passage JSON in, diagram out
//	GET  /api/v1/reports/{id}              persisted report (needs a store)
//	GET  /api/v1/passages/{id}/reports     report history (needs a store)
//
// Validation options come from query parameters (linkage, multigraph, max,
// refresh) and default to the server's configured options.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/uccalint/pkg/pipeline"
	"github.com/matzehuels/uccalint/pkg/store"
)

// DefaultMaxBody limits request bodies to 10 MiB.
const DefaultMaxBody = 10 << 20

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Runner *pipeline.Runner
	Logger *log.Logger

	// Store backs the report lookup routes. Nil disables them.
	Store store.ReportStore

	// Defaults apply when a request omits an option.
	Defaults pipeline.Options

	MaxBody int64
}

// New creates a server around runner. The runner's store, if any, also
// serves the report routes.
func New(runner *pipeline.Runner, logger *log.Logger, defaults pipeline.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Runner:   runner,
		Logger:   logger,
		Store:    runner.Store,
		Defaults: defaults,
		MaxBody:  DefaultMaxBody,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.Logger))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/render", s.handleRender)
		r.Get("/reports/{id}", s.handleReport)
		r.Get("/passages/{id}/reports", s.handleHistory)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.Logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
