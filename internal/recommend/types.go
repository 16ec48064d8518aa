// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package recommend

import "time"

// UserID identifies a reader. It is an opaque key.
type UserID string

// ItemID identifies a news item. It is an opaque key.
type ItemID string

// Interaction is one row of the interaction history.
type Interaction struct {
	UserID UserID `json:"user_id"`
	ItemID ItemID `json:"item_id"`

	// Score is the engagement score computed by the offline pipeline.
	// Scores of repeated (user, item) rows are summed.
	Score float64 `json:"score"`

	// Timestamp is informational; zero when the export has none.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Tier names the recommender that served a request.
type Tier string

const (
	TierLatent    Tier = "latent"
	TierCluster   Tier = "cluster"
	TierHeuristic Tier = "heuristic"
)

// String implements fmt.Stringer.
func (t Tier) String() string {
	return string(t)
}

// Result is a dispatched recommendation list and the tier that produced it.
type Result struct {
	Tier  Tier     `json:"tier"`
	Items []ItemID `json:"items"`
}

// LatentRecommender is the latent-factor tier.
type LatentRecommender interface {
	// HasUser reports whether the user has a row in the trained user index.
	HasUser(userID UserID) bool

	// Recommend scores all items for the user's history and returns the best
	// topK. Seen items are not excluded.
	Recommend(userID UserID, history []Interaction, topK int) []ItemID
}

// ClusterRecommender is the cluster-profile tier.
type ClusterRecommender interface {
	// HasUser reports whether the user is assigned to a cluster.
	HasUser(userID UserID) bool

	// Recommend returns up to topK popular items of the user's cluster.
	Recommend(userID UserID, topK int) []ItemID
}

// HeuristicRanker is the non-personalized tier.
type HeuristicRanker interface {
	// TopK returns the first n items of the global ranking.
	TopK(n int) []ItemID
}

// Fingerprinter is implemented by artifacts that can name the exact data
// they were built from. Two artifacts with equal fingerprints must serve
// identical results.
type Fingerprinter interface {
	Fingerprint() string
}
