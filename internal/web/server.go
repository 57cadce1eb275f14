// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the interactive dashboard: sidebar controls, charts,
// the top-words table, a sample of the filtered rows, and downloads.
package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pdiddy/cord19-explorer/internal/analysis"
	"github.com/pdiddy/cord19-explorer/internal/dataset"
	"github.com/pdiddy/cord19-explorer/internal/store"
	"github.com/pdiddy/cord19-explorer/internal/web/middleware"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Server is the dashboard HTTP server. It owns the session cache of the
// cleaned table; every request reads the same snapshot.
type Server struct {
	id       string
	cache    *dataset.Cache
	opts     analysis.Options
	defaults Selection
	tmpl     *template.Template
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a Server for cfg. The input file is not read until the
// first request needs it.
func NewServer(cfg types.ServerConfig) (*Server, error) {
	opts, err := analysis.OptionsFrom(cfg.AnalysisConfig)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	dataFile := cfg.DataFile
	if dataFile == "" {
		dataFile = "metadata.csv"
	}

	cache := dataset.NewCache(dataFile)
	if cfg.SQLitePath != "" {
		cache = dataset.NewCacheWith(cfg.SQLitePath, store.LoadSnapshot)
	}

	s := &Server{
		id:    uuid.NewString(),
		cache: cache,
		opts:  opts,
		defaults: Selection{
			TopJournals: clamp(opts.TopJournals, types.MinTopJournals, types.MaxTopJournals),
			TopWords:    clamp(opts.TopWords, types.MinTopWords, types.MaxTopWords),
		},
		tmpl:   tmpl,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(securityHeaders)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/charts", func(r chi.Router) {
		r.Get("/years.png", s.handleYearsChart)
		r.Get("/journals.png", s.handleJournalsChart)
	})

	s.router.Get("/export.csv", s.handleExportCSV)
	s.router.Get("/export.xlsx", s.handleExportXLSX)

	s.router.Get("/api/summary", s.handleSummary)
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("dashboard listening", "addr", addr, "session", s.id, "data_file", s.cache.Path())
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
