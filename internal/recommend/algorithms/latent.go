// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package algorithms

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/headline/internal/recommend"
	"github.com/tomtom215/headline/internal/recommend/storage"
)

// LatentConfig holds the implicit-feedback parameters used to recompute a
// user vector. Values recorded in the artifact take precedence.
type LatentConfig struct {
	// Alpha scales the confidence transformation.
	// c = 1 + alpha * r, where r is the summed engagement score.
	Alpha float64

	// Regularization is the L2 penalty lambda.
	Regularization float64
}

// DefaultLatentConfig returns the serving defaults.
func DefaultLatentConfig() LatentConfig {
	return LatentConfig{
		Alpha:          1.0,
		Regularization: 0.04,
	}
}

// LatentFactor recommends from an implicit-feedback ALS model.
// Reference: "Collaborative Filtering for Implicit Feedback Datasets" (Hu, Koren, Volinsky, 2008)
//
// The stored user factors only decide membership of the tier. At request
// time the user's vector is solved afresh against the fixed item factors Y:
//
//	(YᵀY + Yᵀ(Cᵘ − I)Y + λI) xᵤ = YᵀCᵘp(u)
//
// where p(u) is 1 for every item in the user's history and Cᵘ holds the
// confidences 1 + alpha * r.
type LatentFactor struct {
	config LatentConfig

	// userIndex maps user ID to stored row
	userIndex map[recommend.UserID]int

	// itemIndex maps item ID to matrix row
	itemIndex map[recommend.ItemID]int

	// indexToItem maps matrix row to item ID
	indexToItem []recommend.ItemID

	// Y is the item factor matrix (numItems x numFactors)
	Y [][]float64

	// YtY is precomputed once since Y never changes.
	YtY [][]float64

	numFactors int

	fingerprint string
}

// NewLatentFactor builds the recommender from a stored artifact.
func NewLatentFactor(state *storage.LatentFactorState, cfg LatentConfig) (*LatentFactor, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	defaults := DefaultLatentConfig()
	if cfg.Alpha <= 0 {
		cfg.Alpha = defaults.Alpha
	}
	if cfg.Regularization <= 0 {
		cfg.Regularization = defaults.Regularization
	}
	if state.Alpha > 0 {
		cfg.Alpha = state.Alpha
	}
	if state.Regularization > 0 {
		cfg.Regularization = state.Regularization
	}

	k := state.Factors()
	lf := &LatentFactor{
		config:      cfg,
		userIndex:   make(map[recommend.UserID]int, len(state.UserIDs)),
		itemIndex:   make(map[recommend.ItemID]int, len(state.ItemIDs)),
		indexToItem: make([]recommend.ItemID, len(state.ItemIDs)),
		Y:           state.ItemFactors,
		numFactors:  k,
	}
	for row, id := range state.UserIDs {
		lf.userIndex[recommend.UserID(id)] = row
	}
	for row, id := range state.ItemIDs {
		lf.itemIndex[recommend.ItemID(id)] = row
		lf.indexToItem[row] = recommend.ItemID(id)
	}
	lf.YtY = gramMatrix(lf.Y, k)

	return lf, nil
}

// Config returns the effective parameters.
func (lf *LatentFactor) Config() LatentConfig {
	return lf.config
}

// WithFingerprint records the identity of the artifact and returns lf. The
// effective config is folded in since it changes the ranking.
func (lf *LatentFactor) WithFingerprint(fp string) *LatentFactor {
	lf.fingerprint = ""
	if fp != "" {
		lf.fingerprint = fmt.Sprintf("%s/a=%g/l=%g", fp, lf.config.Alpha, lf.config.Regularization)
	}
	return lf
}

// Fingerprint implements recommend.Fingerprinter.
func (lf *LatentFactor) Fingerprint() string {
	return lf.fingerprint
}

// HasUser reports whether the user has a trained row.
func (lf *LatentFactor) HasUser(userID recommend.UserID) bool {
	_, ok := lf.userIndex[userID]
	return ok
}

// NumItems returns the size of the item index.
func (lf *LatentFactor) NumItems() int {
	return len(lf.indexToItem)
}

// Recommend returns up to topK items ranked by the recomputed user vector.
// Rows of history that belong to other users or to untrained items are
// ignored. An unknown user or no usable history yields an empty list.
func (lf *LatentFactor) Recommend(userID recommend.UserID, history []recommend.Interaction, topK int) []recommend.ItemID {
	if topK <= 0 || !lf.HasUser(userID) {
		return []recommend.ItemID{}
	}

	rows, scores := lf.interactionVector(userID, history)
	if len(rows) == 0 {
		return []recommend.ItemID{}
	}

	x := lf.recalculateUser(rows, scores)
	return lf.rank(x, topK)
}

// interactionVector sums scores per trained item row. Rows are returned in
// ascending order so the solve is independent of history order.
func (lf *LatentFactor) interactionVector(userID recommend.UserID, history []recommend.Interaction) ([]int, []float64) {
	sums := make(map[int]float64)
	for _, in := range history {
		if in.UserID != userID {
			continue
		}
		row, ok := lf.itemIndex[in.ItemID]
		if !ok {
			continue
		}
		sums[row] += in.Score
	}

	rows := make([]int, 0, len(sums))
	for row := range sums {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	scores := make([]float64, len(rows))
	for i, row := range rows {
		scores[i] = sums[row]
	}
	return rows, scores
}

// recalculateUser solves the one-sided ALS normal equations for one user.
func (lf *LatentFactor) recalculateUser(rows []int, scores []float64) []float64 {
	k := lf.numFactors
	lambda := lf.config.Regularization
	alpha := lf.config.Alpha

	// A = YᵀY + λI
	A := make([][]float64, k)
	for f := range A {
		A[f] = make([]float64, k)
		copy(A[f], lf.YtY[f])
		A[f][f] += lambda
	}

	b := make([]float64, k)
	for n, row := range rows {
		// A += (c - 1) * y yᵀ
		// b += c * y
		y := lf.Y[row]
		conf := 1 + alpha*scores[n]
		cMinus1 := conf - 1.0

		for f1 := 0; f1 < k; f1++ {
			for f2 := f1; f2 < k; f2++ {
				delta := cMinus1 * y[f1] * y[f2]
				A[f1][f2] += delta
				if f1 != f2 {
					A[f2][f1] += delta
				}
			}
			b[f1] += conf * y[f1]
		}
	}

	return solveLinearSystem(A, b)
}

// rank scores every item against x and returns the best topK, ties broken
// by ascending row index. NaN scores rank last.
func (lf *LatentFactor) rank(x []float64, topK int) []recommend.ItemID {
	n := len(lf.Y)
	scores := make([]float64, n)
	order := make([]int, n)
	for i, y := range lf.Y {
		s := dot(x, y)
		if math.IsNaN(s) {
			s = math.Inf(-1)
		}
		scores[i] = s
		order[i] = i
	}

	sort.Slice(order, func(a, b int) bool {
		sa, sb := scores[order[a]], scores[order[b]]
		if sa != sb {
			return sa > sb
		}
		return order[a] < order[b]
	})

	topK = min(topK, n)
	out := make([]recommend.ItemID, topK)
	for i := 0; i < topK; i++ {
		out[i] = lf.indexToItem[order[i]]
	}
	return out
}

var _ recommend.LatentRecommender = (*LatentFactor)(nil)
