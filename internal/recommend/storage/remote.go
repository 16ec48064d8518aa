// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/tomtom215/headline/internal/logging"
)

// RemoteConfig holds S3-compatible connection settings.
type RemoteConfig struct {
	Endpoint  string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// objectStore is the subset of *minio.Client used by RemoteSync.
type objectStore interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	FGetObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error
}

// RemoteSync mirrors artifact files from a bucket into a local directory.
type RemoteSync struct {
	client objectStore
	bucket string
	prefix string
	dir    string
	logger zerolog.Logger
}

// NewRemoteSync creates a MinIO client for cfg that downloads into dir.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRemoteSync(cfg RemoteConfig, dir string, logger zerolog.Logger) (*RemoteSync, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return newRemoteSync(mc, cfg.Bucket, cfg.Prefix, dir, logger), nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newRemoteSync(client objectStore, bucket, prefix, dir string, logger zerolog.Logger) *RemoteSync {
	return &RemoteSync{
		client: client,
		bucket: bucket,
		prefix: prefix,
		dir:    dir,
		logger: logging.WithComponent(logger, "storage").With().Str("bucket", bucket).Logger(),
	}
}

// Sync downloads every artifact file under the prefix that is not already
// present locally with the same size. It returns the number of files
// downloaded. Objects that are not artifact files are ignored.
func (r *RemoteSync) Sync(ctx context.Context) (int, error) {
	if err := os.MkdirAll(r.dir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return 0, fmt.Errorf("create storage directory: %w", err)
	}

	opts := minio.ListObjectsOptions{
		Prefix:    listPrefix(r.prefix),
		Recursive: false,
	}

	downloaded := 0
	for obj := range r.client.ListObjects(ctx, r.bucket, opts) {
		if obj.Err != nil {
			return downloaded, fmt.Errorf("list %s: %w", r.bucket, obj.Err)
		}

		filename := path.Base(obj.Key)
		if _, _, ok := ParseModelFilename(filename); !ok {
			continue
		}

		local := filepath.Join(r.dir, filename)
		if info, err := os.Stat(local); err == nil && info.Size() == obj.Size {
			r.logger.Debug().Str("object", obj.Key).Msg("Artifact already present")
			continue
		}

		if err := r.client.FGetObject(ctx, r.bucket, obj.Key, local, minio.GetObjectOptions{}); err != nil {
			return downloaded, fmt.Errorf("get %s/%s: %w", r.bucket, obj.Key, err)
		}
		downloaded++

		r.logger.Info().Str("object", obj.Key).Int64("size", obj.Size).Msg("Artifact downloaded")
	}

	return downloaded, nil
}

func listPrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	if prefix[len(prefix)-1] != '/' {
		return prefix + "/"
	}
	return prefix
}
