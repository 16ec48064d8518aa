// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package algorithms

import (
	"github.com/tomtom215/headline/internal/recommend"
	"github.com/tomtom215/headline/internal/recommend/storage"
)

// Heuristic serves a static global ranking, most relevant first.
type Heuristic struct {
	ranking     []recommend.ItemID
	fingerprint string
}

// NewHeuristic builds the ranker from a stored artifact.
func NewHeuristic(state *storage.HeuristicState) (*Heuristic, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	ranking := make([]recommend.ItemID, len(state.Items))
	for i, id := range state.Items {
		ranking[i] = recommend.ItemID(id)
	}
	return &Heuristic{ranking: ranking}, nil
}

// TopK returns the first n items, or all of them if fewer exist.
func (h *Heuristic) TopK(n int) []recommend.ItemID {
	if n <= 0 {
		return []recommend.ItemID{}
	}
	n = min(n, len(h.ranking))
	out := make([]recommend.ItemID, n)
	copy(out, h.ranking[:n])
	return out
}

// WithFingerprint records the identity of the artifact the ranker was built
// from and returns h.
func (h *Heuristic) WithFingerprint(fp string) *Heuristic {
	h.fingerprint = fp
	return h
}

// Fingerprint implements recommend.Fingerprinter.
func (h *Heuristic) Fingerprint() string { return h.fingerprint }

// Len returns the ranking length.
func (h *Heuristic) Len() int {
	return len(h.ranking)
}

var _ recommend.HeuristicRanker = (*Heuristic)(nil)
