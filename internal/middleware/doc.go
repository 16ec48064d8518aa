// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package middleware provides chi-compatible HTTP middleware shared by the API
// router: request id propagation with access logging, and Prometheus request
// metrics labelled by route pattern.
package middleware
