// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package api exposes the recommendation engine over HTTP.
//
// Routes are served by chi with CORS (go-chi/cors), per-IP rate limiting
// (go-chi/httprate), request ids, panic recovery and Prometheus request
// metrics. Every JSON endpoint except the legacy /recommendations alias wraps
// its payload in APIResponse.
//
// # Endpoints
//
//	GET /api/v1/recommendations?user_id=<id>&num_recs=<n>
//	GET /recommendations?user_id=<id>&num_recs=<n>    bare JSON array of ids
//	GET /api/v1/evaluation/metrics
//	GET /api/v1/health
//	GET /api/v1/health/ready
//	GET /metrics
//
// # Errors
//
//	400 VALIDATION_ERROR     missing user_id, num_recs not in 1..max
//	503 SERVICE_UNAVAILABLE  model registry not loaded
//	500 INTERNAL_ERROR       anything else
package api
