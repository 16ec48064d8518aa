// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package recommend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

type fakeLatent struct {
	users map[UserID]bool
	items []ItemID
	calls int
	seen  []Interaction
	fp    string
}

func (f *fakeLatent) Fingerprint() string { return f.fp }

func (f *fakeLatent) HasUser(userID UserID) bool { return f.users[userID] }

func (f *fakeLatent) Recommend(_ UserID, history []Interaction, topK int) []ItemID {
	f.calls++
	f.seen = history
	if len(history) == 0 {
		return nil
	}
	return f.items[:min(topK, len(f.items))]
}

type fakeCluster struct {
	users map[UserID][]ItemID
	fp    string
}

func (f *fakeCluster) Fingerprint() string { return f.fp }

func (f *fakeCluster) HasUser(userID UserID) bool {
	_, ok := f.users[userID]
	return ok
}

func (f *fakeCluster) Recommend(userID UserID, topK int) []ItemID {
	items := f.users[userID]
	return items[:min(topK, len(items))]
}

type fakeHeuristic struct {
	items []ItemID
	fp    string
}

func (f *fakeHeuristic) Fingerprint() string { return f.fp }

func (f *fakeHeuristic) TopK(n int) []ItemID {
	return f.items[:min(n, len(f.items))]
}

type fixture struct {
	latent    *fakeLatent
	cluster   *fakeCluster
	heuristic *fakeHeuristic
	history   []Interaction
}

func newFixture() *fixture {
	return &fixture{
		latent: &fakeLatent{
			users: map[UserID]bool{"lat": true, "lat-cold": true, "both": true},
			items: []ItemID{"l1", "l2", "l3"},
		},
		cluster: &fakeCluster{users: map[UserID][]ItemID{
			"clu":  {"c1", "c2"},
			"both": {"c9"},
		}},
		heuristic: &fakeHeuristic{items: []ItemID{"a", "b", "c", "d"}},
		history: []Interaction{
			{UserID: "lat", ItemID: "l1", Score: 1},
			{UserID: "both", ItemID: "l2", Score: 2},
			{UserID: "someone", ItemID: "l3", Score: 3},
		},
	}
}

func (f *fixture) sources() Sources {
	return Sources{
		Latent:    func(context.Context) (LatentRecommender, error) { return f.latent, nil },
		Cluster:   func(context.Context) (ClusterRecommender, error) { return f.cluster, nil },
		Heuristic: func(context.Context) (HeuristicRanker, error) { return f.heuristic, nil },
		History:   func(context.Context) ([]Interaction, error) { return f.history, nil },
	}
}

func (f *fixture) registry(t *testing.T) *Registry {
	t.Helper()
	reg, result := LoadRegistry(context.Background(), f.sources(), zerolog.Nop())
	if err := result.Err(); err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	return reg
}
