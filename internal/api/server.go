// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/ortheo/internal/core/assessment"
	"github.com/taibuivan/ortheo/internal/core/locale"
	"github.com/taibuivan/ortheo/internal/core/resource"
	"github.com/taibuivan/ortheo/internal/core/search"
	"github.com/taibuivan/ortheo/internal/core/taxonomy"
	"github.com/taibuivan/ortheo/internal/core/tool"
	"github.com/taibuivan/ortheo/internal/platform/config"
	"github.com/taibuivan/ortheo/internal/platform/constants"
	"github.com/taibuivan/ortheo/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Assessment handles the standardized test catalogue.
	Assessment *assessment.Handler

	// Resource handles downloadable clinical material.
	Resource *resource.Handler

	// Tool handles the digital tool directory.
	Tool *tool.Handler

	// Taxonomy manages domains, tags, and pathologies.
	Taxonomy *taxonomy.Handler

	// Locale exposes the registry of publishing languages.
	Locale *locale.Handler

	// Search serves the grouped, faceted search index.
	Search *search.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, limiter middleware.ClientLimiter, handlers Handlers) *Server {
	router := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(log))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(limiter))
	router.Use(middleware.PanicRecovery(log))
	router.Use(middleware.Locale(cfg, cfg.DefaultLocale))
	router.Use(middleware.CORS(cfg))
	router.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/assessments", handlers.Assessment.RegisterRoutes)
		api.Route("/resources", handlers.Resource.RegisterRoutes)
		api.Route("/tools", handlers.Tool.RegisterRoutes)
		api.Route("/taxonomy", handlers.Taxonomy.RegisterRoutes)
		api.Route("/locales", handlers.Locale.RegisterRoutes)
		api.Route("/search", handlers.Search.RegisterRoutes)
	})

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
