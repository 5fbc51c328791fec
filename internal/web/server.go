// Package web provides the HTTP admin API: collection CRUD plus the
// workbook import/export pipeline endpoints.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/brahimakil/balagh-admin-sub001/internal/config"
	"github.com/brahimakil/balagh-admin-sub001/internal/core"
	"github.com/brahimakil/balagh-admin-sub001/internal/store"
	"github.com/brahimakil/balagh-admin-sub001/internal/web/middleware"
)

// Server is the HTTP server for the admin console API.
type Server struct {
	pipeline *core.Pipeline
	store    store.Store
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a Server wired to the pipeline and its store.
func NewServer(pipeline *core.Pipeline, st store.Store, cfg *config.Config) *Server {
	s := &Server{
		pipeline: pipeline,
		store:    st,
		cfg:      cfg,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(10 * time.Minute)) // workbook imports run in-request
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Schema listing
		r.Get("/collections", s.handleListCollections)

		// Record CRUD
		r.Get("/collections/{key}", s.handleListRecords)
		r.Post("/collections/{key}", s.handleCreateRecord)
		r.Get("/collections/{key}/{id}", s.handleGetRecord)
		r.Put("/collections/{key}/{id}", s.handleUpdateRecord)
		r.Delete("/collections/{key}/{id}", s.handleDeleteRecord)

		// Workbook exchange
		r.Post("/import", s.handleImportWorkbook)
		r.Post("/import/{key}", s.handleImportSheet)
		r.Get("/export", s.handleExportWorkbook)
		r.Get("/export/{key}", s.handleExportSheet)
		r.Post("/drift", s.handleDrift)

		// Provenance cleanup
		r.Delete("/imported", s.handlePurgeAll)
		r.Delete("/imported/{key}", s.handlePurge)
	})
}

// Start begins listening for HTTP requests.
// Blocks until the server stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router exposes the mux for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
