// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/headline/internal/cache"
	"github.com/tomtom215/headline/internal/logging"
	"github.com/tomtom215/headline/internal/metrics"
)

// Engine is the request-facing entry point. It validates the request,
// consults the response cache, dispatches and records metrics.
// It is safe for concurrent use.
type Engine struct {
	config     *Config
	registry   *Registry
	dispatcher *Dispatcher
	cache      cache.Cacher
	logger     zerolog.Logger
}

// NewEngine creates an engine over reg. reg may be nil, in which case every
// request fails with ErrModelUnavailable. cacher may be nil to disable caching.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, reg *Registry, cacher cache.Cacher, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:     cfg,
		registry:   reg,
		dispatcher: NewDispatcher(reg),
		cache:      cacher,
		logger:     logging.WithComponent(logger, "recommend"),
	}, nil
}

// Ready reports whether the registry is loaded.
func (e *Engine) Ready() bool {
	return e.registry != nil
}

// Registry returns the loaded registry, or nil.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// GetRecommendations returns up to count item ids for userID.
func (e *Engine) GetRecommendations(ctx context.Context, userID UserID, count int) ([]ItemID, error) {
	res, err := e.Recommend(ctx, userID, count)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// Recommend is GetRecommendations plus the tier that served the request.
func (e *Engine) Recommend(ctx context.Context, userID UserID, count int) (Result, error) {
	if e.registry == nil {
		return Result{}, ErrModelUnavailable
	}
	if count <= 0 {
		return Result{}, ErrInvalidCount
	}

	start := time.Now()
	key := e.cacheKey(userID, count)

	if res, ok := e.cacheGet(ctx, key); ok {
		metrics.RecordRecommendation(string(res.Tier), len(res.Items), time.Since(start))
		return res, nil
	}

	res, err := e.dispatcher.Recommend(userID, count)
	if err != nil {
		return Result{}, err
	}
	duration := time.Since(start)
	metrics.RecordRecommendation(string(res.Tier), len(res.Items), duration)

	e.cacheSet(ctx, key, res)

	event := e.logger.Debug()
	if e.config.SlowRequestThreshold > 0 && duration > e.config.SlowRequestThreshold {
		event = e.logger.Warn()
	}
	event.
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("user_id", string(userID)).
		Str("tier", string(res.Tier)).
		Int("count", count).
		Int("returned", len(res.Items)).
		Dur("duration", duration).
		Msg("Recommendations served")

	return res, nil
}

// cacheKey scopes entries to the registry fingerprint so a reload with new
// artifacts never serves results computed from the old ones.
func (e *Engine) cacheKey(userID UserID, count int) string {
	return e.config.CacheKeyPrefix + ":" + e.registry.Fingerprint() + ":" + string(userID) + ":" + strconv.Itoa(count)
}

// cacheGet treats any cache error as a miss.
func (e *Engine) cacheGet(ctx context.Context, key string) (Result, bool) {
	if e.cache == nil {
		return Result{}, false
	}

	entry, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		metrics.RecordCacheError(e.cache.Backend(), "get")
		e.logger.Warn().Err(err).Str("key", key).Msg("Cache lookup failed")
		return Result{}, false
	}
	metrics.RecordCacheLookup(e.cache.Backend(), ok)
	if !ok {
		return Result{}, false
	}

	items := make([]ItemID, len(entry.Items))
	for i, id := range entry.Items {
		items[i] = ItemID(id)
	}
	return Result{Tier: Tier(entry.Tier), Items: items}, true
}

func (e *Engine) cacheSet(ctx context.Context, key string, res Result) {
	if e.cache == nil {
		return
	}

	items := make([]string, len(res.Items))
	for i, id := range res.Items {
		items[i] = string(id)
	}
	if err := e.cache.Set(ctx, key, cache.Entry{Tier: string(res.Tier), Items: items}); err != nil {
		metrics.RecordCacheError(e.cache.Backend(), "set")
		e.logger.Warn().Err(err).Str("key", key).Msg("Cache store failed")
	}
}
