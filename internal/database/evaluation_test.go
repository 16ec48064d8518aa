// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestEvaluationMetrics(t *testing.T) {
	db := setupTestDB(t)
	path := writeFile(t, "evaluation_metrics.csv", `type_model,mean_recall,mean_ndcg,timestamp
als,0.125,0.09,2025-03-01 10:00:00
cluster,0.08,0.051,2025-03-01 10:00:00
popularity,0.05,0.03,2025-03-01 10:00:00
`)

	got, err := db.EvaluationMetrics(context.Background(), path)
	if err != nil {
		t.Fatalf("EvaluationMetrics() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("EvaluationMetrics() returned %d rows, want 3", len(got))
	}

	want := EvaluationMetric{TypeModel: "als", MeanRecall: 0.125, MeanNDCG: 0.09, Timestamp: "2025-03-01 10:00:00"}
	if got[0] != want {
		t.Errorf("first row = %+v, want %+v", got[0], want)
	}
	if got[2].TypeModel != "popularity" {
		t.Errorf("row order not preserved: %+v", got)
	}
}

func TestEvaluationMetrics_Errors(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.EvaluationMetrics(ctx, filepath.Join(t.TempDir(), "missing.csv")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing file error = %v, want ErrFileNotFound", err)
	}

	path := writeFile(t, "partial.csv", "type_model,mean_recall\nals,0.1\n")
	if _, err := db.EvaluationMetrics(ctx, path); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("missing column error = %v, want ErrMissingColumn", err)
	}

	path = writeFile(t, "bad.csv", "type_model,mean_recall,mean_ndcg,timestamp\nals,not-a-number,0.1,x\n")
	if _, err := db.EvaluationMetrics(ctx, path); err == nil {
		t.Error("non-numeric recall accepted")
	}
}
