// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Ortheo HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/ortheo/internal/api"
	"github.com/taibuivan/ortheo/internal/core/assessment"
	"github.com/taibuivan/ortheo/internal/core/locale"
	"github.com/taibuivan/ortheo/internal/core/resource"
	"github.com/taibuivan/ortheo/internal/core/search"
	"github.com/taibuivan/ortheo/internal/core/taxonomy"
	"github.com/taibuivan/ortheo/internal/core/tool"
	"github.com/taibuivan/ortheo/internal/platform/config"
	"github.com/taibuivan/ortheo/internal/platform/constants"
	"github.com/taibuivan/ortheo/internal/platform/middleware"
	"github.com/taibuivan/ortheo/internal/platform/migration"
	pgstore "github.com/taibuivan/ortheo/internal/platform/postgres"
	redisstore "github.com/taibuivan/ortheo/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "ortheo"))
	slog.SetDefault(log)

	log.Info("[Ortheo] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "ortheo"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("default_locale", cfg.DefaultLocale),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	searchCache := search.NewRedisIndexCache(rdb, cfg.SupportedLocales)

	taxonomyRepository := taxonomy.NewPostgresRepository(pool)
	taxonomyService := taxonomy.NewService(taxonomyRepository, cfg.DefaultLocale, searchCache, log)
	taxonomyHandler := taxonomy.NewHandler(taxonomyService)

	assessmentRepository := assessment.NewPostgresRepository(pool)
	assessmentService := assessment.NewService(assessmentRepository, cfg.DefaultLocale, cfg.SupportedLocales, searchCache, log)
	assessmentHandler := assessment.NewHandler(assessmentService)

	resourceRepository := resource.NewPostgresRepository(pool)
	resourceService := resource.NewService(resourceRepository, cfg.DefaultLocale, cfg.SupportedLocales, searchCache, log)
	resourceHandler := resource.NewHandler(resourceService)

	toolRepository := tool.NewPostgresRepository(pool)
	toolService := tool.NewService(toolRepository, cfg.DefaultLocale, cfg.SupportedLocales, searchCache, log)
	toolHandler := tool.NewHandler(toolService)

	localeRepository := locale.NewPostgresRepository(pool)
	localeService := locale.NewService(localeRepository, log)
	localeHandler := locale.NewHandler(localeService)

	searchService := search.NewService(assessmentService, resourceService, toolService, searchCache, log)
	searchHandler := search.NewHandler(searchService)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	limiterCtx, limiterCancel := context.WithCancel(context.Background())
	defer limiterCancel()
	limiter := middleware.NewTokenBucketLimiter(limiterCtx)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Assessment: assessmentHandler,
		Resource:   resourceHandler,
		Tool:       toolHandler,
		Taxonomy:   taxonomyHandler,
		Locale:     localeHandler,
		Search:     searchHandler,
	}

	server := api.NewServer(cfg, log, limiter, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
