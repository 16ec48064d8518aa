// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/headline/internal/logging"
	"github.com/tomtom215/headline/internal/metrics"
)

// breakerName labels the redis circuit breaker in logs and metrics.
const breakerName = "redis-cache"

// BreakerConfig tunes the circuit breaker in front of redis.
type BreakerConfig struct {
	// MaxFailures consecutive failures open the breaker. Default 5.
	MaxFailures uint32

	// Timeout is how long the breaker stays open before a single trial
	// request is let through. Default 30s.
	Timeout time.Duration
}

// RedisCache stores entries as JSON strings in redis.
//
// Every call goes through a circuit breaker. While it is open, Get reports a
// miss and Set does nothing, both without touching the network, so a dead
// redis costs requests nothing beyond the dispatch itself.
type RedisCache struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewRedisCache wraps an existing client. Keys are namespaced with prefix.
// A zero BreakerConfig uses the defaults.
func NewRedisCache(client redis.UniversalClient, prefix string, ttl time.Duration, bc BreakerConfig) *RedisCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl, breaker: newBreaker(bc)}
}

func newBreaker(bc BreakerConfig) *gobreaker.CircuitBreaker[[]byte] {
	if bc.MaxFailures == 0 {
		bc.MaxFailures = 5
	}
	if bc.Timeout <= 0 {
		bc.Timeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // 0 = closed

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bc.MaxFailures
		},
		// A canceled request says nothing about redis health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String(), stateToFloat(to))
		},
	})
}

// Ping verifies connectivity. It bypasses the breaker.
func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Get implements Cacher.
func (r *RedisCache) Get(ctx context.Context, key string) (Entry, bool, error) {
	val, err := r.breaker.Execute(func() ([]byte, error) {
		val, err := r.client.Get(ctx, r.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return val, err
	})
	if rejected(err) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get: %w", err)
	}
	if val == nil {
		return Entry{}, false, nil
	}

	var entry Entry
	if err := json.Unmarshal(val, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("decode cache entry: %w", err)
	}
	return entry, true, nil
}

// Set implements Cacher.
func (r *RedisCache) Set(ctx context.Context, key string, entry Entry) error {
	if entry.Items == nil {
		entry.Items = []string{}
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	_, err = r.breaker.Execute(func() ([]byte, error) {
		return nil, r.client.Set(ctx, r.key(key), b, r.ttl).Err()
	})
	if rejected(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Backend implements Cacher.
func (r *RedisCache) Backend() string {
	return BackendRedis
}

// Close implements Cacher.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

// rejected records the breaker outcome of err and reports whether the
// breaker refused the call without running it.
func rejected(err error) bool {
	switch {
	case err == nil:
		metrics.RecordCircuitBreakerRequest(breakerName, "success")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordCircuitBreakerRequest(breakerName, "rejected")
		return true
	default:
		metrics.RecordCircuitBreakerRequest(breakerName, "failure")
	}
	return false
}

// stateToFloat converts a breaker state to its gauge value.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
