// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package recommend

import (
	"fmt"
	"time"
)

// Config contains the serving limits of the engine.
type Config struct {
	// CacheKeyPrefix namespaces response cache keys.
	CacheKeyPrefix string `json:"cache_key_prefix"`

	// SlowRequestThreshold logs requests that take longer at warn level.
	// Zero disables the warning.
	SlowRequestThreshold time.Duration `json:"slow_request_threshold"`
}

// DefaultConfig returns the serving defaults.
func DefaultConfig() *Config {
	return &Config{
		CacheKeyPrefix:       "rec",
		SlowRequestThreshold: 250 * time.Millisecond,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.CacheKeyPrefix == "" {
		return fmt.Errorf("cache_key_prefix must not be empty")
	}
	if c.SlowRequestThreshold < 0 {
		return fmt.Errorf("slow_request_threshold must be non-negative, got %v", c.SlowRequestThreshold)
	}
	return nil
}
