// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/headline/internal/api"
	"github.com/tomtom215/headline/internal/cache"
	"github.com/tomtom215/headline/internal/config"
	"github.com/tomtom215/headline/internal/database"
	"github.com/tomtom215/headline/internal/logging"
	"github.com/tomtom215/headline/internal/recommend/storage"
	"github.com/tomtom215/headline/internal/supervisor"
	"github.com/tomtom215/headline/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("model_dir", cfg.Models.Dir).
		Str("history_path", cfg.Models.HistoryPath).
		Msg("Starting Headline")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Headline stopped with error")
		stop()
		os.Exit(1)
	}

	logging.Info().Msg("Application stopped gracefully")
}

// run wires every component and blocks until ctx is canceled. Any startup
// failure is returned before the HTTP server binds.
func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.Logger()

	if err := syncArtifacts(ctx, cfg, logger); err != nil {
		return err
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	store, err := storage.NewStore(cfg.Models.Dir)
	if err != nil {
		return err
	}

	history := database.NewHistoryLoader(db, cfg.Models.HistoryPath, cfg.Models.ResolvedHistoryFormat())
	rec, err := initRecommend(ctx, cfg, artifactSources(cfg, store, history), logger)
	if err != nil {
		return err
	}
	if rec.Cache != nil {
		defer func() {
			if err := rec.Cache.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing cache")
			}
		}()
	}

	handler := api.NewHandler(rec.Engine, db, rec.Status, cfg.Models)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	// Maintenance layer
	if lru, ok := rec.Cache.(*cache.LRUCache); ok {
		tree.AddMaintenanceService(services.NewCacheJanitorService(lru, cfg.Cache.TTL))
		logging.Info().Dur("interval", cfg.Cache.TTL).Msg("Cache janitor added to supervisor tree")
	}

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The channel carries exactly one value once the root supervisor returns.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	return nil
}
