// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package services

import (
	"context"
	"time"

	"github.com/tomtom215/headline/internal/logging"
)

// ExpiredCleaner removes expired entries and reports how many it removed.
// *cache.LRUCache implements it.
type ExpiredCleaner interface {
	CleanupExpired() int
}

// CacheJanitorService calls CleanupExpired on a fixed interval so expired
// entries do not hold memory until they are next read.
type CacheJanitorService struct {
	cleaner  ExpiredCleaner
	interval time.Duration
}

// NewCacheJanitorService creates the janitor. A non-positive interval
// becomes one minute.
func NewCacheJanitorService(cleaner ExpiredCleaner, interval time.Duration) *CacheJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitorService{cleaner: cleaner, interval: interval}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.cleaner.CleanupExpired(); removed > 0 {
				logging.Debug().
					Str("component", "cache").
					Int("removed", removed).
					Msg("Expired cache entries removed")
			}
		}
	}
}

func (s *CacheJanitorService) String() string {
	return "cache-janitor"
}
