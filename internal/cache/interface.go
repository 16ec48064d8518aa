// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is a cached recommendation result.
type Entry struct {
	Tier  string   `json:"tier"`
	Items []string `json:"items"`
}

// clone returns a copy whose Items slice does not alias e.Items.
func (e Entry) clone() Entry {
	items := make([]string, len(e.Items))
	copy(items, e.Items)
	return Entry{Tier: e.Tier, Items: items}
}

// Cacher is implemented by every cache backend.
type Cacher interface {
	// Get returns the entry and true if found and not expired.
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Set stores an entry with the backend's TTL.
	Set(ctx context.Context, key string, entry Entry) error

	// Backend names the implementation for metrics labels.
	Backend() string

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and sizes a cache backend.
type Config struct {
	Backend  string
	Capacity int
	TTL      time.Duration

	// Redis settings, used when Backend is "redis".
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
	Breaker       BreakerConfig
}

// New creates the configured backend. The redis backend is pinged before it
// is returned.
func New(ctx context.Context, cfg Config) (Cacher, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewLRUCache(cfg.Capacity, cfg.TTL), nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		rc := NewRedisCache(client, cfg.KeyPrefix, cfg.TTL, cfg.Breaker)
		if err := rc.Ping(ctx); err != nil {
			_ = client.Close() //nolint:errcheck // ping error takes precedence
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Verify interface implementations at compile time
var (
	_ Cacher = (*LRUCache)(nil)
	_ Cacher = (*RedisCache)(nil)
)
