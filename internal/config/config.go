// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Models    ModelsConfig    `koanf:"models"`
	Latent    LatentConfig    `koanf:"latent"`
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	Redis     RedisConfig     `koanf:"redis"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// ModelsConfig locates the trained artifacts and the interaction history.
type ModelsConfig struct {
	// Dir is the artifact store directory.
	Dir string `koanf:"dir"`

	// Version selects the artifact version to load. 0 loads the latest.
	Version int `koanf:"version"`

	LatentName    string `koanf:"latent_name"`
	ClusterName   string `koanf:"cluster_name"`
	HeuristicName string `koanf:"heuristic_name"`

	// HistoryPath is the interaction history export (parquet or csv).
	HistoryPath string `koanf:"history_path"`

	// HistoryFormat forces the reader: parquet, csv, or empty to pick by extension.
	HistoryFormat string `koanf:"history_format"`

	// EvaluationPath is the offline evaluation metrics CSV.
	EvaluationPath string `koanf:"evaluation_path"`

	// DefaultCount is used when a request omits num_recs.
	DefaultCount int `koanf:"default_count"`

	// MaxCount caps num_recs on the HTTP API. 0 means no limit.
	MaxCount int `koanf:"max_count"`
}

// LatentConfig holds the implicit-feedback parameters used when a user's
// vector is recalculated at request time. Values stored with the trained
// artifact take precedence when they are set.
type LatentConfig struct {
	Alpha          float64 `koanf:"alpha"`
	Regularization float64 `koanf:"regularization"`
}

// DatabaseConfig tunes the embedded DuckDB used to read history and
// evaluation files.
type DatabaseConfig struct {
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = DuckDB default
}

// CacheConfig controls the recommendation response cache.
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Backend  string        `koanf:"backend"` // memory or redis
	Capacity int           `koanf:"capacity"`
	TTL      time.Duration `koanf:"ttl"`
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`

	// BreakerFailures consecutive failures open the circuit breaker; it
	// stays open for BreakerTimeout and every lookup is a miss meanwhile.
	BreakerFailures int           `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// ArtifactsConfig enables pulling artifacts from an S3-compatible bucket into
// Models.Dir before the registry loads.
type ArtifactsConfig struct {
	RemoteEnabled bool   `koanf:"remote_enabled"`
	Endpoint      string `koanf:"endpoint"`
	Bucket        string `koanf:"bucket"`
	Prefix        string `koanf:"prefix"`
	AccessKey     string `koanf:"access_key"`
	SecretKey     string `koanf:"secret_key"`
	UseSSL        bool   `koanf:"use_ssl"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ResolvedHistoryFormat returns the configured history format, falling back to the
// file extension.
func (m ModelsConfig) ResolvedHistoryFormat() string {
	if m.HistoryFormat != "" {
		return m.HistoryFormat
	}
	switch filepath.Ext(m.HistoryPath) {
	case ".csv":
		return "csv"
	default:
		return "parquet"
	}
}

// Load reads configuration from defaults, the optional config file, .env and
// the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
