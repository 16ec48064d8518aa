// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/headline/config.yaml",
	"/etc/headline/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPath is the .env file read before the environment layer.
var DotEnvPath = ".env"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Models: ModelsConfig{
			Dir:            "/data/models",
			Version:        0,
			LatentName:     "latent",
			ClusterName:    "cluster",
			HeuristicName:  "heuristic",
			HistoryPath:    "/data/refined/users_logged.parquet",
			HistoryFormat:  "",
			EvaluationPath: "/data/evaluation/evaluation_metrics.csv",
			DefaultCount:   5,
			MaxCount:       0,
		},
		Latent: LatentConfig{
			Alpha:          1.0,
			Regularization: 0.04,
		},
		Database: DatabaseConfig{
			MaxMemory: "1GB",
			Threads:   0,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Backend:  "memory",
			Capacity: 10000,
			TTL:      5 * time.Minute,
		},
		Redis: RedisConfig{
			Addr:            "localhost:6379",
			DB:              0,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Artifacts: ArtifactsConfig{
			RemoteEnabled: false,
			Prefix:        "models",
			UseSSL:        true,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Optional YAML config file
//  3. .env file (does not override variables already set)
//  4. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := loadDotEnv(DotEnvPath); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads path into the process environment. A missing file is not
// an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Models
	"model_dir":            "models.dir",
	"model_version":        "models.version",
	"latent_model_name":    "models.latent_name",
	"cluster_model_name":   "models.cluster_name",
	"heuristic_model_name": "models.heuristic_name",
	"history_path":         "models.history_path",
	"history_format":       "models.history_format",
	"evaluation_path":      "models.evaluation_path",
	"default_num_recs":     "models.default_count",
	"max_num_recs":         "models.max_count",

	// Latent factor recalculation
	"latent_alpha":          "latent.alpha",
	"latent_regularization": "latent.regularization",

	// DuckDB
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Cache
	"cache_enabled":  "cache.enabled",
	"cache_backend":  "cache.backend",
	"cache_capacity": "cache.capacity",
	"cache_ttl":      "cache.ttl",
	"redis_addr":     "redis.addr",
	"redis_password": "redis.password",
	"redis_db":       "redis.db",

	"redis_breaker_failures": "redis.breaker_failures",
	"redis_breaker_timeout":  "redis.breaker_timeout",

	// Remote artifacts
	"artifacts_remote_enabled": "artifacts.remote_enabled",
	"artifacts_endpoint":       "artifacts.endpoint",
	"artifacts_bucket":         "artifacts.bucket",
	"artifacts_prefix":         "artifacts.prefix",
	"artifacts_access_key":     "artifacts.access_key",
	"artifacts_secret_key":     "artifacts.secret_key",
	"artifacts_use_ssl":        "artifacts.use_ssl",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are skipped.
//
//   - HTTP_PORT -> server.port
//   - MODEL_DIR -> models.dir
//   - REDIS_ADDR -> redis.addr
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
