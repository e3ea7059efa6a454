// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// section.go provides a Valkey-backed cache for content section JSON.
// GET /api/content responses are served from Valkey when possible;
// every content or version mutation invalidates the affected keys, so
// readers never observe stale sections after a save. The cache is
// strictly optional — a nil *SectionCache disables it.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// sectionKeyPrefix is the Valkey key prefix for cached sections.
	sectionKeyPrefix = "section:"

	// allSectionsKey caches the full content map of the active version.
	// It lives outside the section: keyspace so no section key, however
	// named, can collide with it.
	allSectionsKey = "sections_all"

	// DefaultSectionTTL bounds staleness if an invalidation is ever
	// missed (e.g. a concurrent writer without cache access).
	DefaultSectionTTL = 5 * time.Minute
)

// SectionCache caches marshaled content-section responses in Valkey.
type SectionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSectionCache creates a section cache backed by the given Valkey client.
func NewSectionCache(client *redis.Client, ttl time.Duration) *SectionCache {
	if ttl == 0 {
		ttl = DefaultSectionTTL
	}
	return &SectionCache{client: client, ttl: ttl}
}

// Get retrieves the cached JSON for a section key. Returns false on miss.
func (sc *SectionCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := sc.client.Get(ctx, sectionKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("section cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("section cache hit", "key", key)
	return val, true
}

// Set stores marshaled JSON for a section key with the configured TTL.
func (sc *SectionCache) Set(ctx context.Context, key string, body []byte) {
	if err := sc.client.Set(ctx, sectionKeyPrefix+key, body, sc.ttl).Err(); err != nil {
		slog.Warn("section cache set error", "key", key, "error", err)
	}
}

// GetAll retrieves the cached full content map. Returns false on miss.
func (sc *SectionCache) GetAll(ctx context.Context) ([]byte, bool) {
	val, err := sc.client.Get(ctx, allSectionsKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("section cache get error", "key", allSectionsKey, "error", err)
		return nil, false
	}
	slog.Debug("section cache hit", "key", allSectionsKey)
	return val, true
}

// SetAll stores the marshaled full content map with the configured TTL.
func (sc *SectionCache) SetAll(ctx context.Context, body []byte) {
	if err := sc.client.Set(ctx, allSectionsKey, body, sc.ttl).Err(); err != nil {
		slog.Warn("section cache set error", "key", allSectionsKey, "error", err)
	}
}

// Invalidate removes a single section and the full-map entry. Used after
// a content write, which changes that section and the aggregate map.
func (sc *SectionCache) Invalidate(ctx context.Context, key string) {
	if err := sc.client.Del(ctx, sectionKeyPrefix+key, allSectionsKey).Err(); err != nil {
		slog.Warn("section cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("section cache invalidated", "key", key)
}

// InvalidateAll removes the full-map entry and every cached section by
// scanning for the prefix. Used when the active version changes, since
// every section could be affected.
func (sc *SectionCache) InvalidateAll(ctx context.Context) {
	if err := sc.client.Del(ctx, allSectionsKey).Err(); err != nil {
		slog.Warn("section cache invalidate error", "key", allSectionsKey, "error", err)
	}

	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := sc.client.Scan(ctx, cursor, sectionKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("section cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := sc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("section cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("section cache fully cleared", "deleted", deleted)
	}
}
