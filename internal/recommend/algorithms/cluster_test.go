// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package algorithms

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/headline/internal/recommend"
	"github.com/tomtom215/headline/internal/recommend/storage"
)

func TestCluster_Recommend(t *testing.T) {
	c, err := NewCluster(&storage.ClusterState{
		UserClusters: map[string]int{"u1": 2, "u2": 0},
		ClusterItems: map[int][]string{
			2: {"x", "y", "z"},
			0: {},
		},
	})
	if err != nil {
		t.Fatalf("NewCluster() error = %v", err)
	}

	tests := []struct {
		name   string
		userID recommend.UserID
		topK   int
		want   []recommend.ItemID
	}{
		{"shorter list is not padded", "u1", 5, []recommend.ItemID{"x", "y", "z"}},
		{"truncated", "u1", 2, []recommend.ItemID{"x", "y"}},
		{"empty cluster", "u2", 3, []recommend.ItemID{}},
		{"unknown user", "nobody", 3, []recommend.ItemID{}},
		{"non-positive topK", "u1", 0, []recommend.ItemID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Recommend(tt.userID, tt.topK)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommend(%q, %d) = %v, want %v", tt.userID, tt.topK, got, tt.want)
			}
		})
	}
}

func TestCluster_HasUser(t *testing.T) {
	c, err := NewCluster(&storage.ClusterState{
		UserClusters: map[string]int{"u1": 1},
		ClusterItems: map[int][]string{1: {"x"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !c.HasUser("u1") || c.HasUser("u2") {
		t.Error("HasUser() mismatch")
	}
	if label, ok := c.ClusterOf("u1"); !ok || label != 1 {
		t.Errorf("ClusterOf(u1) = %d, %v", label, ok)
	}
}

func TestNewCluster_RejectsOrphanLabel(t *testing.T) {
	_, err := NewCluster(&storage.ClusterState{
		UserClusters: map[string]int{"u1": 2, "u3": 7},
		ClusterItems: map[int][]string{2: {"x"}},
	})
	if !errors.Is(err, storage.ErrInvalidArtifact) {
		t.Errorf("NewCluster() error = %v, want ErrInvalidArtifact", err)
	}
}

func TestCluster_Fingerprint(t *testing.T) {
	c, err := NewCluster(&storage.ClusterState{
		UserClusters: map[string]int{"u1": 1},
		ClusterItems: map[int][]string{1: {"x"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.Fingerprint() != "" {
		t.Errorf("untagged Fingerprint() = %q", c.Fingerprint())
	}
	if got := c.WithFingerprint("cluster@3:abc").Fingerprint(); got != "cluster@3:abc" {
		t.Errorf("Fingerprint() = %q", got)
	}
}
