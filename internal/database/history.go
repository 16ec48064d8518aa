// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/headline/internal/recommend"
)

// Column names of the refined history export.
const (
	HistoryUserColumn      = "userId"
	HistoryItemColumn      = "history"
	HistoryScoreColumn     = "final_score"
	HistoryTimestampColumn = "timestampHistory"
)

// HistoryLoader reads the interaction history export.
type HistoryLoader struct {
	db     *DB
	path   string
	format string
}

// NewHistoryLoader creates a loader for path in format ("parquet" or "csv").
func NewHistoryLoader(db *DB, path, format string) *HistoryLoader {
	return &HistoryLoader{db: db, path: path, format: format}
}

// Load returns every row with a user and an item, in file order. A missing
// score counts as zero. The timestamp column is optional; integer values are
// read as epoch milliseconds.
func (l *HistoryLoader) Load(ctx context.Context) ([]recommend.Interaction, error) {
	if err := checkFile(l.path); err != nil {
		return nil, err
	}
	source, err := fileSource(l.path, l.format)
	if err != nil {
		return nil, err
	}

	columns, err := l.db.describe(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("read history schema: %w", err)
	}
	for _, required := range []string{HistoryUserColumn, HistoryItemColumn, HistoryScoreColumn} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	query := fmt.Sprintf(`
		SELECT
			CAST(%s AS VARCHAR),
			CAST(%s AS VARCHAR),
			COALESCE(TRY_CAST(%s AS DOUBLE), 0),
			%s
		FROM %s
		WHERE %s IS NOT NULL AND %s IS NOT NULL`,
		quoteIdent(HistoryUserColumn),
		quoteIdent(HistoryItemColumn),
		quoteIdent(HistoryScoreColumn),
		timestampExpr(columns),
		source,
		quoteIdent(HistoryUserColumn),
		quoteIdent(HistoryItemColumn),
	)

	rows, err := l.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var out []recommend.Interaction
	for rows.Next() {
		var (
			user, item string
			score      float64
			ts         sql.NullTime
		)
		if err := rows.Scan(&user, &item, &score, &ts); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		in := recommend.Interaction{
			UserID: recommend.UserID(user),
			ItemID: recommend.ItemID(item),
			Score:  score,
		}
		if ts.Valid {
			in.Timestamp = ts.Time.UTC()
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return out, nil
}

// timestampExpr selects the timestamp column as TIMESTAMP, or NULL.
func timestampExpr(columns map[string]string) string {
	typ, ok := columns[HistoryTimestampColumn]
	if !ok {
		return "CAST(NULL AS TIMESTAMP)"
	}
	col := quoteIdent(HistoryTimestampColumn)
	switch {
	case strings.Contains(typ, "INT"):
		return "epoch_ms(CAST(" + col + " AS BIGINT))"
	case strings.HasPrefix(typ, "TIMESTAMP"):
		return "CAST(" + col + " AS TIMESTAMP)"
	default:
		return "COALESCE(TRY_CAST(" + col + " AS TIMESTAMP), epoch_ms(TRY_CAST(" + col + " AS BIGINT)))"
	}
}

// historyTimeout bounds a full history read at startup.
const historyTimeout = 5 * time.Minute

// LoadWithTimeout is Load bounded by a startup timeout.
func (l *HistoryLoader) LoadWithTimeout(ctx context.Context) ([]recommend.Interaction, error) {
	ctx, cancel := context.WithTimeout(ctx, historyTimeout)
	defer cancel()
	return l.Load(ctx)
}
