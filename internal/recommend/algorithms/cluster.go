// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package algorithms

import (
	"github.com/tomtom215/headline/internal/recommend"
	"github.com/tomtom215/headline/internal/recommend/storage"
)

// Cluster serves the popular items of a user's cluster.
type Cluster struct {
	userCluster  map[recommend.UserID]int
	clusterItems map[int][]recommend.ItemID
	fingerprint  string
}

// NewCluster builds the recommender from a stored artifact.
func NewCluster(state *storage.ClusterState) (*Cluster, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	c := &Cluster{
		userCluster:  make(map[recommend.UserID]int, len(state.UserClusters)),
		clusterItems: make(map[int][]recommend.ItemID, len(state.ClusterItems)),
	}
	for user, label := range state.UserClusters {
		c.userCluster[recommend.UserID(user)] = label
	}
	for label, items := range state.ClusterItems {
		list := make([]recommend.ItemID, len(items))
		for i, id := range items {
			list[i] = recommend.ItemID(id)
		}
		c.clusterItems[label] = list
	}
	return c, nil
}

// WithFingerprint records the identity of the artifact and returns c.
func (c *Cluster) WithFingerprint(fp string) *Cluster {
	c.fingerprint = fp
	return c
}

// Fingerprint implements recommend.Fingerprinter.
func (c *Cluster) Fingerprint() string { return c.fingerprint }

// HasUser reports whether the user is assigned to a cluster.
func (c *Cluster) HasUser(userID recommend.UserID) bool {
	_, ok := c.userCluster[userID]
	return ok
}

// ClusterOf returns the user's cluster label.
func (c *Cluster) ClusterOf(userID recommend.UserID) (int, bool) {
	label, ok := c.userCluster[userID]
	return label, ok
}

// Recommend returns up to topK items of the user's cluster. The list is
// never padded; an unknown user or a cluster without items yields an empty
// list.
func (c *Cluster) Recommend(userID recommend.UserID, topK int) []recommend.ItemID {
	label, ok := c.userCluster[userID]
	if !ok || topK <= 0 {
		return []recommend.ItemID{}
	}
	items := c.clusterItems[label]
	n := min(topK, len(items))
	out := make([]recommend.ItemID, n)
	copy(out, items[:n])
	return out
}

var _ recommend.ClusterRecommender = (*Cluster)(nil)
