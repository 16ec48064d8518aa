// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateModels(); err != nil {
		return err
	}
	if err := c.validateLatent(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateArtifacts(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
	}
	return nil
}

func (c *Config) validateModels() error {
	m := c.Models
	if m.Dir == "" {
		return fmt.Errorf("MODEL_DIR is required")
	}
	if m.Version < 0 {
		return fmt.Errorf("MODEL_VERSION must be >= 0")
	}
	if m.LatentName == "" || m.ClusterName == "" || m.HeuristicName == "" {
		return fmt.Errorf("artifact names must not be empty")
	}
	if m.LatentName == m.ClusterName || m.LatentName == m.HeuristicName || m.ClusterName == m.HeuristicName {
		return fmt.Errorf("artifact names must be distinct")
	}
	if m.HistoryPath == "" {
		return fmt.Errorf("HISTORY_PATH is required")
	}
	if !validHistoryFormats[m.HistoryFormat] {
		return fmt.Errorf("HISTORY_FORMAT must be one of: parquet, csv (or empty)")
	}
	if m.DefaultCount < 1 {
		return fmt.Errorf("DEFAULT_NUM_RECS must be at least 1")
	}
	if m.MaxCount < 0 {
		return fmt.Errorf("MAX_NUM_RECS must be >= 0")
	}
	if m.MaxCount > 0 && m.MaxCount < m.DefaultCount {
		return fmt.Errorf("MAX_NUM_RECS must be 0 or >= DEFAULT_NUM_RECS")
	}
	return nil
}

func (c *Config) validateLatent() error {
	if c.Latent.Alpha <= 0 {
		return fmt.Errorf("LATENT_ALPHA must be positive")
	}
	if c.Latent.Regularization < 0 {
		return fmt.Errorf("LATENT_REGULARIZATION must not be negative")
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	switch c.Cache.Backend {
	case "memory":
		if c.Cache.Capacity < 1 {
			return fmt.Errorf("CACHE_CAPACITY must be at least 1")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
		if c.Redis.BreakerFailures < 1 {
			return fmt.Errorf("REDIS_BREAKER_FAILURES must be at least 1")
		}
		if c.Redis.BreakerTimeout <= 0 {
			return fmt.Errorf("REDIS_BREAKER_TIMEOUT must be positive")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	a := c.Artifacts
	if !a.RemoteEnabled {
		return nil
	}
	if a.Endpoint == "" {
		return fmt.Errorf("ARTIFACTS_ENDPOINT is required when ARTIFACTS_REMOTE_ENABLED=true")
	}
	if a.Bucket == "" {
		return fmt.Errorf("ARTIFACTS_BUCKET is required when ARTIFACTS_REMOTE_ENABLED=true")
	}
	return nil
}

var validHistoryFormats = map[string]bool{
	"":        true,
	"parquet": true,
	"csv":     true,
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
