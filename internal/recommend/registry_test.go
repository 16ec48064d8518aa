// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadRegistry_Ready(t *testing.T) {
	f := newFixture()
	reg, result := LoadRegistry(context.Background(), f.sources(), zerolog.Nop())

	if !result.Ready() || result.Err() != nil {
		t.Fatalf("result not ready: %v", result.Err())
	}
	if reg == nil {
		t.Fatal("registry is nil")
	}
	if len(result.Artifacts) != 4 {
		t.Fatalf("artifacts = %d, want 4", len(result.Artifacts))
	}
	for _, a := range result.Artifacts {
		if !a.Loaded || a.Error != "" {
			t.Errorf("artifact %s = %+v", a.Name, a)
		}
	}
	if reg.History().Len() != 3 || reg.History().Users() != 3 {
		t.Errorf("history = %d rows, %d users", reg.History().Len(), reg.History().Users())
	}
	if reg.Status() != result {
		t.Error("Status() does not return the load result")
	}
}

func TestLoadRegistry_Failures(t *testing.T) {
	boom := errors.New("file is corrupt")

	tests := []struct {
		name         string
		mutate       func(s *Sources)
		wantArtifact string
		wantIs       error
	}{
		{
			name: "latent missing",
			mutate: func(s *Sources) {
				s.Latent = func(context.Context) (LatentRecommender, error) { return nil, boom }
			},
			wantArtifact: ArtifactLatent,
			wantIs:       boom,
		},
		{
			name: "cluster source absent",
			mutate: func(s *Sources) {
				s.Cluster = nil
			},
			wantArtifact: ArtifactCluster,
			wantIs:       errNoSource,
		},
		{
			name: "heuristic returns nil",
			mutate: func(s *Sources) {
				s.Heuristic = func(context.Context) (HeuristicRanker, error) { return nil, nil }
			},
			wantArtifact: ArtifactHeuristic,
			wantIs:       errNilArtifact,
		},
		{
			name: "empty history",
			mutate: func(s *Sources) {
				s.History = func(context.Context) ([]Interaction, error) { return nil, nil }
			},
			wantArtifact: ArtifactHistory,
			wantIs:       ErrEmptyHistory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFixture().sources()
			tt.mutate(&src)

			reg, result := LoadRegistry(context.Background(), src, zerolog.Nop())
			if reg != nil {
				t.Error("registry built despite failure")
			}
			if result.Ready() {
				t.Fatal("result reports ready")
			}

			err := result.Err()
			if !errors.Is(err, ErrModelUnavailable) {
				t.Errorf("Err() = %v, want ErrModelUnavailable", err)
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("Err() = %v, want wrapped %v", err, tt.wantIs)
			}

			var loadErr *LoadError
			if !errors.As(err, &loadErr) || loadErr.Artifact != tt.wantArtifact {
				t.Errorf("LoadError = %+v, want artifact %s", loadErr, tt.wantArtifact)
			}

			for _, a := range result.Artifacts {
				if a.Name == tt.wantArtifact && (a.Loaded || a.Error == "") {
					t.Errorf("status of %s = %+v", a.Name, a)
				}
				if a.Name != tt.wantArtifact && !a.Loaded {
					t.Errorf("unrelated artifact %s failed: %s", a.Name, a.Error)
				}
			}
		})
	}
}

func TestLoadRegistry_ReportsEveryFailure(t *testing.T) {
	reg, result := LoadRegistry(context.Background(), Sources{}, zerolog.Nop())
	if reg != nil {
		t.Fatal("registry built from empty sources")
	}
	failed := 0
	for _, a := range result.Artifacts {
		if !a.Loaded {
			failed++
		}
	}
	if failed != 4 {
		t.Errorf("failed artifacts = %d, want 4", failed)
	}
}

func TestLoadResult_NilIsUnavailable(t *testing.T) {
	var r *LoadResult
	if r.Ready() {
		t.Error("nil result is ready")
	}
	if !errors.Is(r.Err(), ErrModelUnavailable) {
		t.Errorf("nil Err() = %v", r.Err())
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory([]Interaction{
		{UserID: "u1", ItemID: "a", Score: 1},
		{UserID: "u2", ItemID: "b", Score: 2},
		{UserID: "u1", ItemID: "c", Score: 3},
	})

	rows := h.ForUser("u1")
	if len(rows) != 2 || rows[0].ItemID != "a" || rows[1].ItemID != "c" {
		t.Errorf("ForUser(u1) = %+v", rows)
	}
	if len(h.ForUser("nobody")) != 0 {
		t.Error("ForUser(nobody) is not empty")
	}
	if h.Len() != 3 || h.Users() != 2 {
		t.Errorf("Len() = %d, Users() = %d", h.Len(), h.Users())
	}
}

func TestRegistry_Fingerprint(t *testing.T) {
	tagged := func() *fixture {
		f := newFixture()
		f.latent.fp, f.cluster.fp, f.heuristic.fp = "latent@1", "cluster@1", "heuristic@1"
		return f
	}

	base := tagged().registry(t)
	if got := base.Fingerprint(); len(got) != fingerprintLen || base.Status().Fingerprint != got {
		t.Fatalf("Fingerprint() = %q, status %q", got, base.Status().Fingerprint)
	}
	if again := tagged().registry(t); again.Fingerprint() != base.Fingerprint() {
		t.Errorf("same artifacts gave %q and %q", base.Fingerprint(), again.Fingerprint())
	}

	tests := []struct {
		name   string
		mutate func(*fixture)
	}{
		{"new heuristic version", func(f *fixture) { f.heuristic.fp = "heuristic@2" }},
		{"new history row", func(f *fixture) { f.history = append(f.history, Interaction{UserID: "x", ItemID: "l1", Score: 1}) }},
		{"changed score", func(f *fixture) { f.history[0].Score = 9 }},
		{"untagged artifact", func(f *fixture) { f.cluster.fp = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tagged()
			tt.mutate(f)
			if got := f.registry(t).Fingerprint(); got == base.Fingerprint() {
				t.Errorf("Fingerprint() unchanged: %q", got)
			}
		})
	}

	untagged := newFixture()
	if a, b := untagged.registry(t).Fingerprint(), untagged.registry(t).Fingerprint(); a == b {
		t.Errorf("untagged registries share fingerprint %q", a)
	}
}
