// Package server exposes the parse/diff/patch core and its collaborators
// over HTTP.
//
// Routes:
//
//	POST   /v1/parse           diagram text -> graph JSON
//	POST   /v1/diff            two texts -> structural delta
//	POST   /v1/patch           text + operations -> patched text + op log
//	POST   /v1/validate        proxied to the validation service
//	POST   /v1/share           proxied to the render/share service
//	GET    /v1/diagrams/{id}   load a saved diagram
//	PUT    /v1/diagrams/{id}   save a diagram
//	DELETE /v1/diagrams/{id}   delete a saved diagram
//
// The 50,000-character diagram ceiling is enforced here, at the boundary.
// The core packages below never re-check it.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/laneweave/laneweave/pkg/diagram"
	"github.com/laneweave/laneweave/pkg/remote"
	"github.com/laneweave/laneweave/pkg/store"
)

// Server wires the HTTP routes to the core packages and collaborators.
type Server struct {
	router   chi.Router
	logger   *log.Logger
	store    store.Store
	validate *remote.ValidateClient
	share    *remote.ShareClient
	maxBytes int
}

// Options configures a Server. Store is required; the remote clients may be
// nil, in which case the proxy routes answer 503.
type Options struct {
	Logger   *log.Logger
	Store    store.Store
	Validate *remote.ValidateClient
	Share    *remote.ShareClient
	MaxBytes int // 0 means the standard 50,000-character ceiling
}

// New creates a Server with its routes mounted.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = diagram.MaxDiagramBytes
	}

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		store:    opts.Store,
		validate: opts.Validate,
		share:    opts.Share,
		maxBytes: maxBytes,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestID)
	s.router.Use(s.logRequests)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/diff", s.handleDiff)
		r.Post("/patch", s.handlePatch)
		r.Post("/validate", s.handleValidate)
		r.Post("/share", s.handleShare)

		r.Route("/diagrams", func(r chi.Router) {
			r.Get("/{id}", s.handleGetDiagram)
			r.Put("/{id}", s.handlePutDiagram)
			r.Delete("/{id}", s.handleDeleteDiagram)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully with a 10-second drain window.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
