// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/headline/internal/cache"
	"github.com/tomtom215/headline/internal/config"
	"github.com/tomtom215/headline/internal/recommend"
	"github.com/tomtom215/headline/internal/recommend/algorithms"
	"github.com/tomtom215/headline/internal/recommend/storage"
)

// startupLoadTimeout bounds registry loading at startup.
const startupLoadTimeout = 5 * time.Minute

// historyReader is satisfied by *database.HistoryLoader.
type historyReader interface {
	LoadWithTimeout(ctx context.Context) ([]recommend.Interaction, error)
}

// RecommendComponents holds the recommendation components built at startup.
type RecommendComponents struct {
	Engine *recommend.Engine
	Status *recommend.LoadResult
	Cache  cache.Cacher
}

// artifactSources binds the registry loaders to the artifact store and the
// history reader. Each model is tagged with its stored checksum so the
// registry fingerprint changes whenever an artifact does.
func artifactSources(cfg *config.Config, store *storage.Store, history historyReader) recommend.Sources {
	m := cfg.Models
	latentCfg := algorithms.LatentConfig{
		Alpha:          cfg.Latent.Alpha,
		Regularization: cfg.Latent.Regularization,
	}

	return recommend.Sources{
		Latent: func(ctx context.Context) (recommend.LatentRecommender, error) {
			state, meta, err := storage.LoadLatent(ctx, store, m.LatentName, m.Version)
			if err != nil {
				return nil, err
			}
			model, err := algorithms.NewLatentFactor(state, latentCfg)
			if err != nil {
				return nil, err
			}
			return model.WithFingerprint(meta.Fingerprint()), nil
		},
		Cluster: func(ctx context.Context) (recommend.ClusterRecommender, error) {
			state, meta, err := storage.LoadCluster(ctx, store, m.ClusterName, m.Version)
			if err != nil {
				return nil, err
			}
			model, err := algorithms.NewCluster(state)
			if err != nil {
				return nil, err
			}
			return model.WithFingerprint(meta.Fingerprint()), nil
		},
		Heuristic: func(ctx context.Context) (recommend.HeuristicRanker, error) {
			state, meta, err := storage.LoadHeuristic(ctx, store, m.HeuristicName, m.Version)
			if err != nil {
				return nil, err
			}
			model, err := algorithms.NewHeuristic(state)
			if err != nil {
				return nil, err
			}
			return model.WithFingerprint(meta.Fingerprint()), nil
		},
		History: history.LoadWithTimeout,
	}
}

// syncArtifacts mirrors the remote bucket into the model directory when
// remote artifacts are enabled.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func syncArtifacts(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	a := cfg.Artifacts
	if !a.RemoteEnabled {
		return nil
	}
	remote, err := storage.NewRemoteSync(storage.RemoteConfig{
		Endpoint:  a.Endpoint,
		Bucket:    a.Bucket,
		Prefix:    a.Prefix,
		AccessKey: a.AccessKey,
		SecretKey: a.SecretKey,
		UseSSL:    a.UseSSL,
	}, cfg.Models.Dir, logger)
	if err != nil {
		return err
	}
	n, err := remote.Sync(ctx)
	if err != nil {
		return fmt.Errorf("artifact sync: %w", err)
	}
	logger.Info().Int("files", n).Str("bucket", a.Bucket).Msg("artifacts synced from remote")
	return nil
}

// newCache returns the configured response cache, or nil when caching is
// disabled.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cacher, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	return cache.New(ctx, cache.Config{
		Backend:       cfg.Cache.Backend,
		Capacity:      cfg.Cache.Capacity,
		TTL:           cfg.Cache.TTL,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		KeyPrefix:     "headline",
		Breaker: cache.BreakerConfig{
			MaxFailures: uint32(cfg.Redis.BreakerFailures), //nolint:gosec // validated >= 1
			Timeout:     cfg.Redis.BreakerTimeout,
		},
	})
}

// initRecommend loads the registry and builds the engine. It returns an
// error when any artifact is unavailable; the caller exits.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(ctx context.Context, cfg *config.Config, src recommend.Sources, logger zerolog.Logger) (*RecommendComponents, error) {
	loadCtx, cancel := context.WithTimeout(ctx, startupLoadTimeout)
	defer cancel()

	reg, result := recommend.LoadRegistry(loadCtx, src, logger)
	if reg == nil {
		return nil, result.Err()
	}

	cacher, err := newCache(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("response cache: %w", err)
	}

	engine, err := recommend.NewEngine(&recommend.Config{
		CacheKeyPrefix:       "rec",
		SlowRequestThreshold: 250 * time.Millisecond,
	}, reg, cacher, logger)
	if err != nil {
		if cacher != nil {
			_ = cacher.Close() //nolint:errcheck // engine error takes precedence
		}
		return nil, err
	}

	logger.Info().
		Str("model_dir", cfg.Models.Dir).
		Int("model_version", cfg.Models.Version).
		Dur("load_duration", result.Duration).
		Bool("cache", cacher != nil).
		Msg("recommendation engine ready")

	return &RecommendComponents{Engine: engine, Status: result, Cache: cacher}, nil
}
