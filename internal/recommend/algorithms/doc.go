// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package algorithms implements the three serving tiers over trained
// artifacts from the storage package.
//
// # Tiers
//
//   - LatentFactor: implicit-feedback ALS. The user's vector is recomputed
//     at request time from their current history against the fixed item
//     factors, so new reads are reflected without retraining
//   - Cluster: popular items of the user's cluster
//   - Heuristic: a global ranking for everyone else
//
// # Determinism
//
// All three are pure functions of the loaded artifact and their inputs.
// LatentFactor breaks score ties by ascending item row index and
// accumulates history in row order, so repeated calls return identical
// lists.
//
// # Thread Safety
//
// Values are immutable after construction and safe for concurrent use.
package algorithms
