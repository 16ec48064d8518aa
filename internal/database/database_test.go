// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/headline/internal/config"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(&config.DatabaseConfig{MaxMemory: "256MB", Threads: 2})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if db.Conn() == nil {
		t.Error("Conn() is nil")
	}
}

func TestOpenNilConfig(t *testing.T) {
	db, err := Open(nil)
	if err != nil {
		t.Fatalf("Open(nil) error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestQuoting(t *testing.T) {
	if got := quoteLiteral("/data/o'brien.csv"); got != `'/data/o''brien.csv'` {
		t.Errorf("quoteLiteral() = %s", got)
	}
	if got := quoteIdent(`we"ird`); got != `"we""ird"` {
		t.Errorf("quoteIdent() = %s", got)
	}
}

func TestFileSource(t *testing.T) {
	if _, err := fileSource("x.json", "json"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("fileSource(json) error = %v, want ErrUnsupportedFormat", err)
	}
	for _, format := range []string{"csv", "parquet"} {
		if _, err := fileSource("x", format); err != nil {
			t.Errorf("fileSource(%s) error = %v", format, err)
		}
	}
}
