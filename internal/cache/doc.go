// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

/*
Package cache provides the recommendation response cache.

Recommendation results are a pure function of (user, count) once the model
registry is loaded, so they can be cached until the process restarts. The TTL
bounds memory use and staleness across a rolling deploy where replicas share a
redis backend.

# Backends

  - LRUCache: in-process, bounded by capacity, O(1) get/add/evict
  - RedisCache: shared between replicas, values JSON-encoded with goccy/go-json

Both implement Cacher. A cache failure is never fatal to a request; callers
log it and treat it as a miss.

# Usage

	c := cache.NewLRUCache(10000, 5*time.Minute)
	_ = c.Set(ctx, "rec:u1:5", cache.Entry{Tier: "cluster", Items: items})
	if entry, ok, err := c.Get(ctx, "rec:u1:5"); err == nil && ok {
	    // use entry.Items
	}
*/
package cache
