// Command server runs the classifieds marketplace HTTP API.
//
// Startup order:
//  1. Load .env (best-effort) and the environment configuration.
//  2. Configure zerolog (level, optional pretty console output).
//  3. Open SQLite, run migrations, and optionally seed reference data.
//  4. Set up OpenTelemetry tracing when enabled.
//  5. Wire the Gin router and serve with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkarpov/go-ads-backend/docs"
	"github.com/mkarpov/go-ads-backend/internal/config"
	httpapi "github.com/mkarpov/go-ads-backend/internal/http"
	"github.com/mkarpov/go-ads-backend/internal/observability"
	"github.com/mkarpov/go-ads-backend/internal/repo"
	"github.com/mkarpov/go-ads-backend/internal/seed"
	"github.com/mkarpov/go-ads-backend/internal/storage"
	"github.com/mkarpov/go-ads-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// @title        Go Ads Backend API
// @version      1.0
// @description  Classifieds marketplace REST API: advertisements, cities, categories, tags, and responses.
// @BasePath     /
func main() {
	// Local development convenience; production sets real env vars.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	docs.SwaggerInfo.Version = version

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	ctx := context.Background()
	if cfg.SeedData {
		if err := seed.Load(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("seed reference data")
		}
	}

	if cfg.OTEL.Enabled {
		shutdown, err := observability.SetupOTel(ctx, cfg.OTEL, version)
		if err != nil {
			log.Fatal().Err(err).Msg("setup tracing")
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				log.Warn().Err(err).Msg("tracer shutdown")
			}
		}()
		if err := repo.EnableTracing(db); err != nil {
			log.Fatal().Err(err).Msg("enable db tracing")
		}
	}

	covers, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("init cover store")
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, db, covers, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM: stop accepting, drain in-flight
	// requests, then close the database handle.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("bye")
}
