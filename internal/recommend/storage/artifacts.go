// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package storage

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidArtifact is returned when a decoded artifact violates its shape
// invariants. Callers treat it the same as a corrupt file.
var ErrInvalidArtifact = errors.New("invalid artifact")

// LatentFactorState is the serializable state of the latent-factor model.
//
// Row i of UserFactors belongs to UserIDs[i] and row j of ItemFactors belongs
// to ItemIDs[j]; the id slices are the frozen row indexes in both directions.
type LatentFactorState struct {
	UserIDs     []string    `json:"user_ids"`
	ItemIDs     []string    `json:"item_ids"`
	UserFactors [][]float64 `json:"user_factors"`
	ItemFactors [][]float64 `json:"item_factors"`

	// Alpha and Regularization are the training hyperparameters; zero means
	// "not recorded" and the serving defaults apply.
	Alpha          float64 `json:"alpha,omitempty"`
	Regularization float64 `json:"regularization,omitempty"`
}

// Factors returns the latent dimension.
func (s *LatentFactorState) Factors() int {
	if len(s.ItemFactors) == 0 {
		return 0
	}
	return len(s.ItemFactors[0])
}

// Validate checks row counts, dimensions, id uniqueness and finiteness.
func (s *LatentFactorState) Validate() error {
	if len(s.ItemIDs) == 0 {
		return fmt.Errorf("%w: latent model has no items", ErrInvalidArtifact)
	}
	if len(s.ItemFactors) != len(s.ItemIDs) {
		return fmt.Errorf("%w: %d item factor rows for %d item ids",
			ErrInvalidArtifact, len(s.ItemFactors), len(s.ItemIDs))
	}
	if len(s.UserFactors) != len(s.UserIDs) {
		return fmt.Errorf("%w: %d user factor rows for %d user ids",
			ErrInvalidArtifact, len(s.UserFactors), len(s.UserIDs))
	}

	k := s.Factors()
	if k == 0 {
		return fmt.Errorf("%w: latent dimension is zero", ErrInvalidArtifact)
	}
	if err := checkMatrix("item", s.ItemFactors, k); err != nil {
		return err
	}
	if err := checkMatrix("user", s.UserFactors, k); err != nil {
		return err
	}
	if err := checkUnique("item", s.ItemIDs); err != nil {
		return err
	}
	if err := checkUnique("user", s.UserIDs); err != nil {
		return err
	}
	if s.Alpha < 0 || s.Regularization < 0 {
		return fmt.Errorf("%w: negative hyperparameter", ErrInvalidArtifact)
	}
	return nil
}

func checkMatrix(kind string, rows [][]float64, k int) error {
	for i, row := range rows {
		if len(row) != k {
			return fmt.Errorf("%w: %s row %d has %d factors, want %d", ErrInvalidArtifact, kind, i, len(row), k)
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s row %d is not finite", ErrInvalidArtifact, kind, i)
			}
		}
	}
	return nil
}

func checkUnique(kind string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate %s id %q", ErrInvalidArtifact, kind, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ClusterState is the serializable state of the cluster profile model.
type ClusterState struct {
	// UserClusters maps a user id to its cluster label.
	UserClusters map[string]int `json:"user_clusters"`

	// ClusterItems maps a cluster label to its items, most popular first.
	ClusterItems map[int][]string `json:"cluster_items"`
}

// Validate rejects empty tables, negative labels and users assigned to a
// label with no ClusterItems entry. An entry with an empty item list is
// allowed; users in it receive no recommendations.
func (s *ClusterState) Validate() error {
	if len(s.UserClusters) == 0 {
		return fmt.Errorf("%w: cluster model has no users", ErrInvalidArtifact)
	}
	for user, label := range s.UserClusters {
		if label < 0 {
			return fmt.Errorf("%w: user %q has negative cluster %d", ErrInvalidArtifact, user, label)
		}
		if _, ok := s.ClusterItems[label]; !ok {
			return fmt.Errorf("%w: user %q is in cluster %d which has no item list", ErrInvalidArtifact, user, label)
		}
	}
	for label := range s.ClusterItems {
		if label < 0 {
			return fmt.Errorf("%w: negative cluster label %d", ErrInvalidArtifact, label)
		}
	}
	return nil
}

// HeuristicState is the serializable global ranking.
type HeuristicState struct {
	Items []string `json:"items"`
}

// Validate rejects an empty ranking.
func (s *HeuristicState) Validate() error {
	if len(s.Items) == 0 {
		return fmt.Errorf("%w: heuristic ranking is empty", ErrInvalidArtifact)
	}
	return nil
}

// SaveLatent validates and stores a latent-factor artifact.
func SaveLatent(ctx context.Context, s *Store, name string, version int, state *LatentFactorState, trainedAt time.Time) error {
	if err := state.Validate(); err != nil {
		return err
	}
	return s.Save(ctx, name, version, state, ModelMetadata{
		TrainedAt: trainedAt,
		ItemCount: len(state.ItemIDs),
		UserCount: len(state.UserIDs),
	})
}

// LoadLatent loads and validates a latent-factor artifact.
func LoadLatent(ctx context.Context, s *Store, name string, version int) (*LatentFactorState, *ModelMetadata, error) {
	var state LatentFactorState
	meta, err := s.Load(ctx, name, version, &state)
	if err != nil {
		return nil, nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, nil, err
	}
	return &state, meta, nil
}

// SaveCluster validates and stores a cluster profile artifact.
func SaveCluster(ctx context.Context, s *Store, name string, version int, state *ClusterState, trainedAt time.Time) error {
	if err := state.Validate(); err != nil {
		return err
	}
	items := make(map[string]struct{})
	for _, list := range state.ClusterItems {
		for _, id := range list {
			items[id] = struct{}{}
		}
	}
	return s.Save(ctx, name, version, state, ModelMetadata{
		TrainedAt: trainedAt,
		ItemCount: len(items),
		UserCount: len(state.UserClusters),
	})
}

// LoadCluster loads and validates a cluster profile artifact.
func LoadCluster(ctx context.Context, s *Store, name string, version int) (*ClusterState, *ModelMetadata, error) {
	var state ClusterState
	meta, err := s.Load(ctx, name, version, &state)
	if err != nil {
		return nil, nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, nil, err
	}
	return &state, meta, nil
}

// SaveHeuristic validates and stores a heuristic ranking artifact.
func SaveHeuristic(ctx context.Context, s *Store, name string, version int, state *HeuristicState, trainedAt time.Time) error {
	if err := state.Validate(); err != nil {
		return err
	}
	return s.Save(ctx, name, version, state, ModelMetadata{
		TrainedAt: trainedAt,
		ItemCount: len(state.Items),
	})
}

// LoadHeuristic loads and validates a heuristic ranking artifact.
func LoadHeuristic(ctx context.Context, s *Store, name string, version int) (*HeuristicState, *ModelMetadata, error) {
	var state HeuristicState
	meta, err := s.Load(ctx, name, version, &state)
	if err != nil {
		return nil, nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, nil, err
	}
	return &state, meta, nil
}

//nolint:gochecknoinits // gob.Register must be called in init for type registration
func init() {
	gob.Register(LatentFactorState{})
	gob.Register(ClusterState{})
	gob.Register(HeuristicState{})
}
