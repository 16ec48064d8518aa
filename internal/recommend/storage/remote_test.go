// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
)

type fakeObjectStore struct {
	objects  map[string][]byte
	listErr  error
	fetched  []string
	gotOpts  minio.ListObjectsOptions
	getError error
}

func (f *fakeObjectStore) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	f.gotOpts = opts
	ch := make(chan minio.ObjectInfo, len(f.objects)+1)
	if f.listErr != nil {
		ch <- minio.ObjectInfo{Err: f.listErr}
	}
	for key, data := range f.objects {
		ch <- minio.ObjectInfo{Key: key, Size: int64(len(data))}
	}
	close(ch)
	return ch
}

func (f *fakeObjectStore) FGetObject(_ context.Context, _, objectName, filePath string, _ minio.GetObjectOptions) error {
	if f.getError != nil {
		return f.getError
	}
	f.fetched = append(f.fetched, objectName)
	return os.WriteFile(filePath, f.objects[objectName], 0o600)
}

func TestRemoteSync_Sync(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeObjectStore{objects: map[string][]byte{
		"models/latent_v2.gob.gz":    []byte("latent"),
		"models/cluster_v1.gob.gz":   []byte("cluster"),
		"models/heuristic_v1.gob.gz": []byte("heuristic"),
		"models/README.md":           []byte("ignored"),
	}}

	// Already present with the same size: skipped.
	if err := os.WriteFile(filepath.Join(dir, "cluster_v1.gob.gz"), []byte("cluster"), 0o600); err != nil {
		t.Fatal(err)
	}

	rs := newRemoteSync(fake, "artifacts", "models", dir, zerolog.Nop())
	n, err := rs.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Sync() downloaded %d files, want 2 (fetched %v)", n, fake.fetched)
	}
	if fake.gotOpts.Prefix != "models/" {
		t.Errorf("list prefix = %q, want %q", fake.gotOpts.Prefix, "models/")
	}

	data, err := os.ReadFile(filepath.Join(dir, "latent_v2.gob.gz"))
	if err != nil || string(data) != "latent" {
		t.Errorf("latent artifact = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "README.md")); !os.IsNotExist(err) {
		t.Error("non-artifact object was downloaded")
	}
}

func TestRemoteSync_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		fake *fakeObjectStore
	}{
		{"list error", &fakeObjectStore{listErr: boom}},
		{"get error", &fakeObjectStore{
			objects:  map[string][]byte{"latent_v1.gob.gz": []byte("x")},
			getError: boom,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := newRemoteSync(tt.fake, "artifacts", "", t.TempDir(), zerolog.Nop())
			if _, err := rs.Sync(context.Background()); !errors.Is(err, boom) {
				t.Errorf("Sync() error = %v, want wrapped boom", err)
			}
		})
	}
}

func TestListPrefix(t *testing.T) {
	for in, want := range map[string]string{"": "", "models": "models/", "models/": "models/"} {
		if got := listPrefix(in); got != want {
			t.Errorf("listPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}
