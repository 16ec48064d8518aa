// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package recommend serves news recommendations from pre-trained artifacts.
//
// # Architecture
//
// Three recommenders of decreasing personalization are loaded once into an
// immutable Registry together with the interaction history:
//
//   - Latent factor: recomputes the user's vector from their history
//     against fixed item factors, then scores every item
//   - Cluster profile: returns the popular items of the user's cluster
//   - Heuristic: returns the global ranking
//
// # Tier Selection
//
// The Dispatcher picks exactly one tier per request, first match wins:
//
//  1. user known to the latent-factor model
//  2. user assigned to a cluster
//  3. everyone else
//
// There is no fallback between tiers once one is chosen. A selected tier
// that has nothing to offer (no usable history, an empty cluster) returns
// an empty list, which is a valid answer and never an error.
//
// # Readiness
//
// LoadRegistry loads every artifact and the history concurrently and reports
// a LoadResult. If anything is missing, corrupt or empty the registry is not
// built and every request fails with ErrModelUnavailable; the server refuses
// to start in that state.
//
// # Usage
//
//	reg, result := recommend.LoadRegistry(ctx, sources, logger)
//	if err := result.Err(); err != nil {
//	    return err
//	}
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), reg, cacher, logger)
//	items, err := engine.GetRecommendations(ctx, "u1", 5)
package recommend
