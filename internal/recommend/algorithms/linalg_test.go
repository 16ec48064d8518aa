// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package algorithms

import (
	"math"
	"testing"
)

func TestSolveLinearSystem(t *testing.T) {
	tests := []struct {
		name string
		A    [][]float64
		b    []float64
		want []float64
	}{
		{
			name: "identity",
			A:    [][]float64{{1, 0}, {0, 1}},
			b:    []float64{3, -2},
			want: []float64{3, -2},
		},
		{
			name: "symmetric positive definite",
			A:    [][]float64{{4, 2}, {2, 3}},
			b:    []float64{2, 1},
			want: []float64{0.5, 0},
		},
		{
			name: "three by three",
			A:    [][]float64{{2, 0, 0}, {0, 4, 0}, {0, 0, 8}},
			b:    []float64{2, 2, 2},
			want: []float64{1, 0.5, 0.25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := solveLinearSystem(tt.A, tt.b)
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Fatalf("solveLinearSystem() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSolveLinearSystem_SingularStaysFinite(t *testing.T) {
	got := solveLinearSystem([][]float64{{0, 0}, {0, 0}}, []float64{1, 1})
	for _, v := range got {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("solveLinearSystem() = %v, want finite values", got)
		}
	}
}

func TestGramMatrix(t *testing.T) {
	Y := [][]float64{{1, 2}, {3, 4}}
	got := gramMatrix(Y, 2)
	want := [][]float64{{10, 14}, {14, 20}}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("gramMatrix() = %v, want %v", got, want)
			}
		}
	}
}
