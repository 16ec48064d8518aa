// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package config loads Headline's runtime configuration.
//
// Configuration is layered with Koanf v2, highest priority last:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/headline/config.yaml)
//  3. Environment variables, mapped explicitly by envTransformFunc
//
// A .env file in the working directory is read before the environment layer so
// local development can keep settings next to the binary.
//
// # Environment Variables
//
// Server:
//   - HTTP_HOST, HTTP_PORT (default 8000), HTTP_TIMEOUT, SHUTDOWN_TIMEOUT
//
// Models:
//   - MODEL_DIR: directory holding the versioned artifact store
//   - MODEL_VERSION: artifact version to load (0 = latest)
//   - HISTORY_PATH, HISTORY_FORMAT (parquet, csv or empty for extension based)
//   - EVALUATION_PATH: offline evaluation metrics CSV
//   - DEFAULT_NUM_RECS (default 5), MAX_NUM_RECS (default 0, unlimited)
//
// Cache:
//   - CACHE_ENABLED, CACHE_BACKEND (memory or redis), CACHE_CAPACITY, CACHE_TTL
//   - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB
//   - REDIS_BREAKER_FAILURES (default 5), REDIS_BREAKER_TIMEOUT (default 30s)
//
// Remote artifacts:
//   - ARTIFACTS_REMOTE_ENABLED, ARTIFACTS_ENDPOINT, ARTIFACTS_BUCKET,
//     ARTIFACTS_PREFIX, ARTIFACTS_ACCESS_KEY, ARTIFACTS_SECRET_KEY, ARTIFACTS_USE_SSL
//
// Logging:
//   - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
package config
