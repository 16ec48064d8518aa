// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package services adapts server components to suture.Service.
//
//   - HTTPServerService: binds the listener, serves, and shuts down gracefully
//     when the context is canceled.
//   - CacheJanitorService: periodically evicts expired entries from the
//     in-process response cache.
package services
