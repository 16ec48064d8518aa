// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package testinfra starts throwaway containers for integration tests.
//
// It wraps testcontainers-go to run the two external services Headline can
// talk to: Redis for the shared response cache and MinIO for remote model
// artifacts. Every file carries the integration build tag, so the package is
// only compiled with:
//
//	go test -tags integration ./...
//
// # Redis
//
//	rc, err := testinfra.NewRedisContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, rc)
//
//	c, err := cache.New(ctx, cache.Config{Backend: cache.BackendRedis, RedisAddr: rc.Addr})
//
// # MinIO
//
//	mc, err := testinfra.NewMinIOContainer(ctx)
//	...
//	remote, err := storage.NewRemoteSync(storage.RemoteConfig{
//	    Endpoint:  mc.Endpoint,
//	    AccessKey: mc.AccessKey,
//	    SecretKey: mc.SecretKey,
//	    Bucket:    "models",
//	}, dir, logger)
//
// Tests are skipped when Docker is not available. The first run pulls images.
package testinfra
