// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package database reads the offline pipeline's exports with an embedded,
// in-memory DuckDB.
//
// # Overview
//
// The service owns no tables. DuckDB is used as a query engine over files:
//
//   - history.go: the refined interaction history (parquet or csv), one row
//     per (user, item) read with its engagement score
//   - evaluation.go: the offline evaluation metrics csv
//
// # Architecture
//
//   - database.go: connection lifecycle and DuckDB settings
//   - errors.go: sentinel errors and close helpers
//
// # Dependencies
//
//   - github.com/duckdb/duckdb-go/v2: DuckDB driver (CGO-based)
package database
