// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package algorithms

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/headline/internal/recommend"
	"github.com/tomtom215/headline/internal/recommend/storage"
)

func newTestLatent(t *testing.T) *LatentFactor {
	t.Helper()
	lf, err := NewLatentFactor(&storage.LatentFactorState{
		UserIDs:     []string{"u1", "u2"},
		ItemIDs:     []string{"p1", "p2", "p3"},
		UserFactors: [][]float64{{0.3, 0.1}, {0.2, 0.2}},
		ItemFactors: [][]float64{{1, 0}, {0, 1}, {0.5, 0.5}},
	}, LatentConfig{Alpha: 1.0, Regularization: 0.04})
	if err != nil {
		t.Fatalf("NewLatentFactor() error = %v", err)
	}
	return lf
}

func interactions(user recommend.UserID, pairs ...any) []recommend.Interaction {
	var out []recommend.Interaction
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, recommend.Interaction{
			UserID: user,
			ItemID: recommend.ItemID(pairs[i].(string)),
			Score:  pairs[i+1].(float64),
		})
	}
	return out
}

func TestLatentFactor_Recommend(t *testing.T) {
	lf := newTestLatent(t)

	// With alpha 1 and lambda 0.04 a single read of p1 solves to
	// x ≈ (0.961, -0.186): p1 0.961, p3 0.388, p2 -0.186.
	got := lf.Recommend("u2", interactions("u2", "p1", 5.0), 3)
	want := []recommend.ItemID{"p1", "p3", "p2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend() = %v, want %v", got, want)
	}

	if got := lf.Recommend("u2", interactions("u2", "p1", 5.0), 1); !reflect.DeepEqual(got, want[:1]) {
		t.Errorf("Recommend(topK=1) = %v, want %v", got, want[:1])
	}
}

func TestLatentFactor_EdgeCases(t *testing.T) {
	lf := newTestLatent(t)

	tests := []struct {
		name    string
		userID  recommend.UserID
		history []recommend.Interaction
		topK    int
	}{
		{"unknown user", "ghost", interactions("ghost", "p1", 1.0), 3},
		{"no history", "u1", nil, 3},
		{"only untrained items", "u1", interactions("u1", "zzz", 3.0), 3},
		{"rows of another user", "u1", interactions("u2", "p1", 3.0), 3},
		{"non-positive topK", "u1", interactions("u1", "p1", 1.0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lf.Recommend(tt.userID, tt.history, tt.topK)
			if got == nil || len(got) != 0 {
				t.Errorf("Recommend() = %#v, want empty non-nil list", got)
			}
		})
	}
}

func TestLatentFactor_TieBreakByRowIndex(t *testing.T) {
	lf, err := NewLatentFactor(&storage.LatentFactorState{
		UserIDs:     []string{"u"},
		ItemIDs:     []string{"a", "b", "c"},
		UserFactors: [][]float64{{0, 0}},
		ItemFactors: [][]float64{{1, 0}, {1, 0}, {0, 1}},
	}, LatentConfig{})
	if err != nil {
		t.Fatal(err)
	}

	// a and b have identical factors, so their scores are equal.
	got := lf.Recommend("u", interactions("u", "c", 5.0), 3)
	want := []recommend.ItemID{"c", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend() = %v, want %v", got, want)
	}
}

func TestLatentFactor_AggregatesAndIsOrderIndependent(t *testing.T) {
	lf := newTestLatent(t)

	split := []recommend.Interaction{
		{UserID: "u1", ItemID: "p2", Score: 1.0},
		{UserID: "u1", ItemID: "p3", Score: 0.5},
		{UserID: "u1", ItemID: "p2", Score: 2.0},
		{UserID: "u1", ItemID: "unknown", Score: 9.0},
	}
	summed := []recommend.Interaction{
		{UserID: "u1", ItemID: "p3", Score: 0.5},
		{UserID: "u1", ItemID: "p2", Score: 3.0},
	}

	a := lf.Recommend("u1", split, 3)
	b := lf.Recommend("u1", summed, 3)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("split history %v != summed history %v", a, b)
	}
	if a[0] != "p2" {
		t.Errorf("top item = %q, want p2", a[0])
	}

	for i := 0; i < 10; i++ {
		if again := lf.Recommend("u1", split, 3); !reflect.DeepEqual(again, a) {
			t.Fatalf("call %d returned %v, want %v", i, again, a)
		}
	}
}

func TestLatentFactor_ResultsComeFromIndex(t *testing.T) {
	lf := newTestLatent(t)
	valid := map[recommend.ItemID]bool{"p1": true, "p2": true, "p3": true}

	for count := 1; count <= 5; count++ {
		got := lf.Recommend("u1", interactions("u1", "p3", 2.0), count)
		if len(got) > count {
			t.Errorf("count %d: got %d items", count, len(got))
		}
		for _, id := range got {
			if !valid[id] {
				t.Errorf("count %d: item %q not in index", count, id)
			}
		}
	}
}

func TestNewLatentFactor_Config(t *testing.T) {
	state := &storage.LatentFactorState{
		ItemIDs:     []string{"p1"},
		ItemFactors: [][]float64{{1}},
	}

	lf, err := NewLatentFactor(state, LatentConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if lf.Config() != DefaultLatentConfig() {
		t.Errorf("Config() = %+v, want defaults", lf.Config())
	}

	state.Alpha = 40
	state.Regularization = 0.1
	lf, err = NewLatentFactor(state, LatentConfig{Alpha: 2, Regularization: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if got := lf.Config(); got.Alpha != 40 || got.Regularization != 0.1 {
		t.Errorf("Config() = %+v, want artifact values", got)
	}
}

func TestNewLatentFactor_RejectsCorrupt(t *testing.T) {
	_, err := NewLatentFactor(&storage.LatentFactorState{
		ItemIDs:     []string{"p1", "p2"},
		ItemFactors: [][]float64{{1, 0}},
	}, LatentConfig{})
	if err == nil {
		t.Error("NewLatentFactor() accepted mismatched item rows")
	}
}

func TestLatentFactor_Fingerprint(t *testing.T) {
	lf := newTestLatent(t)
	if got := lf.WithFingerprint("").Fingerprint(); got != "" {
		t.Errorf("empty artifact fingerprint became %q", got)
	}

	tagged := lf.WithFingerprint("latent@2:abc").Fingerprint()
	if !strings.HasPrefix(tagged, "latent@2:abc") {
		t.Errorf("Fingerprint() = %q, want artifact prefix", tagged)
	}

	other, err := NewLatentFactor(&storage.LatentFactorState{
		UserIDs:     []string{"u1", "u2"},
		ItemIDs:     []string{"p1", "p2", "p3"},
		UserFactors: [][]float64{{0.3, 0.1}, {0.2, 0.2}},
		ItemFactors: [][]float64{{1, 0}, {0, 1}, {0.5, 0.5}},
	}, LatentConfig{Alpha: 40, Regularization: 0.04})
	if err != nil {
		t.Fatal(err)
	}
	if got := other.WithFingerprint("latent@2:abc").Fingerprint(); got == tagged {
		t.Errorf("different alpha shares fingerprint %q", got)
	}
}
