// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package database

import (
	"context"
	"fmt"
)

// EvaluationMetric is one row of the offline evaluation report.
type EvaluationMetric struct {
	TypeModel  string  `json:"type_model"`
	MeanRecall float64 `json:"mean_recall"`
	MeanNDCG   float64 `json:"mean_ndcg"`
	Timestamp  string  `json:"timestamp"`
}

var evaluationColumns = []string{"type_model", "mean_recall", "mean_ndcg", "timestamp"}

// EvaluationMetrics reads the evaluation csv at path in file order.
// The file is read on every call so a new report is picked up without a
// restart.
func (db *DB) EvaluationMetrics(ctx context.Context, path string) ([]EvaluationMetric, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}
	// all_varchar keeps the timestamp exactly as written.
	source := "read_csv_auto(" + quoteLiteral(path) + ", header = true, all_varchar = true)"

	columns, err := db.describe(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("read evaluation schema: %w", err)
	}
	for _, required := range evaluationColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	query := `
		SELECT
			type_model,
			CAST(mean_recall AS DOUBLE),
			CAST(mean_ndcg AS DOUBLE),
			COALESCE("timestamp", '')
		FROM ` + source

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query evaluation metrics: %w", err)
	}
	defer closeWithLog(rows, "rows")

	metrics := []EvaluationMetric{}
	for rows.Next() {
		var m EvaluationMetric
		if err := rows.Scan(&m.TypeModel, &m.MeanRecall, &m.MeanNDCG, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan evaluation row: %w", err)
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluation metrics: %w", err)
	}
	return metrics, nil
}
