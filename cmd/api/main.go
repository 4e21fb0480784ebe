// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Foodgram HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire stores, services and HTTP handlers.
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

	"github.com/taibuivan/foodgram/internal/api"
	"github.com/taibuivan/foodgram/internal/core/ingredient"
	"github.com/taibuivan/foodgram/internal/core/recipe"
	"github.com/taibuivan/foodgram/internal/core/relation"
	"github.com/taibuivan/foodgram/internal/core/shopping"
	"github.com/taibuivan/foodgram/internal/core/tag"
	"github.com/taibuivan/foodgram/internal/platform/cache"
	"github.com/taibuivan/foodgram/internal/platform/config"
	"github.com/taibuivan/foodgram/internal/platform/constants"
	"github.com/taibuivan/foodgram/internal/platform/migration"
	pgstore "github.com/taibuivan/foodgram/internal/platform/postgres"
	redisstore "github.com/taibuivan/foodgram/internal/platform/redis"
	"github.com/taibuivan/foodgram/internal/platform/sec"
	"github.com/taibuivan/foodgram/internal/users/account"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context of the process. Cancelled on shutdown to stop background work.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Identity ───────────────────────────────────────────────────────
	verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, cfg.JWTIssuer)
	must(log, err, "load identity public key")

	// ── 7. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	catalogCache := cache.New(rdb, cfg.CatalogCacheTTL, log)

	ingredientService := ingredient.NewService(ingredient.NewPostgresRepository(pool), catalogCache, log)
	tagService := tag.NewService(tag.NewPostgresRepository(pool), catalogCache, log)

	relationService := relation.NewService(relation.NewPostgresRepository(pool), log)
	shoppingService := shopping.NewService(shopping.NewPostgresRepository(pool), log)
	recipeService := recipe.NewService(recipe.NewPostgresRepository(pool), relationService, log)
	accountService := account.NewService(account.NewPostgresRepository(pool), relationService, log)

	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Provisioner: accountService,
		Ingredient:  ingredient.NewHandler(ingredientService),
		Tag:         tag.NewHandler(tagService),
		Recipe:      recipe.NewHandler(recipeService, shopping.NewHandler(shoppingService)),
		Account:     account.NewHandler(accountService, cfg.DefaultRecipesLimit),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, verifier, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON process logger at level.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
