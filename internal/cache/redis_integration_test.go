// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

//go:build integration

package cache

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/headline/internal/testinfra"
)

func TestRedisCache_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rc, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("Failed to start redis container: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, rc)

	c, err := New(ctx, Config{
		Backend:   BackendRedis,
		RedisAddr: rc.Addr,
		KeyPrefix: "headline",
		TTL:       time.Second,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = c.Close() }()

	if c.Backend() != BackendRedis {
		t.Errorf("Backend() = %q, want %q", c.Backend(), BackendRedis)
	}

	if _, ok, err := c.Get(ctx, "rec:u1:5"); err != nil || ok {
		t.Fatalf("Get() on empty cache = %v, %v", ok, err)
	}

	want := Entry{Tier: "cluster", Items: []string{"x", "y"}}
	if err := c.Set(ctx, "rec:u1:5", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(ctx, "rec:u1:5")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	time.Sleep(1500 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "rec:u1:5"); ok {
		t.Error("entry survived its TTL")
	}
}
