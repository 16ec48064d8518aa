// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package main is the entry point for the Headline recommendation server.
//
// Headline serves article recommendations from three pre-trained artifacts:
// a latent-factor model for users with enough history, a cluster model for
// users assigned to a segment, and a global popularity ranking for everyone
// else. Training happens offline; the server only loads and serves.
//
// # Startup Order
//
//  1. Configuration: defaults, optional config.yaml, .env, environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Artifacts: optional mirror from an S3-compatible bucket into MODEL_DIR
//  4. DuckDB: in-memory database for reading history and evaluation files
//  5. Registry: latent, cluster, heuristic and history loaded concurrently
//  6. Cache: in-memory LRU or redis response cache
//  7. Supervisor tree: HTTP server and cache janitor under suture
//
// The process exits non-zero when any artifact fails to load. There is no
// degraded mode.
//
// # Configuration
//
// Common environment variables:
//
//	HTTP_PORT=8000
//	MODEL_DIR=/data/models
//	MODEL_VERSION=0                  # 0 = latest
//	HISTORY_PATH=/data/refined/users_logged.parquet
//	EVALUATION_PATH=/data/evaluation/evaluation_metrics.csv
//	DEFAULT_NUM_RECS=5
//	CACHE_BACKEND=memory             # or redis
//	ARTIFACTS_REMOTE_ENABLED=false
//
// # Signals
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains within
// SHUTDOWN_TIMEOUT and services that fail to stop are reported before exit.
package main
