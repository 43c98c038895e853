// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed full-page HTML cache for anonymous
// reader pages. Signed-in pages carry per-user state and are never cached.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute

	homePrefix    = "home:"
	articlePrefix = "news:"
)

// PageCache manages full-page HTML caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a page key.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// InvalidateArticle drops the cached article page and every home page,
// since any of them may list the article.
func (pc *PageCache) InvalidateArticle(ctx context.Context, id string) {
	if err := pc.client.Del(ctx, pageKeyPrefix+ArticleKey(id)).Err(); err != nil {
		slog.Warn("page cache invalidate error", "article", id, "error", err)
	}
	pc.invalidatePrefix(ctx, homePrefix)
}

// InvalidateAll removes all cached pages. Used when settings change, since
// every page shows the site name.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	pc.invalidatePrefix(ctx, "")
}

// invalidatePrefix removes every cached page whose key starts with prefix.
func (pc *PageCache) invalidatePrefix(ctx context.Context, prefix string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("page cache cleared", "prefix", prefix, "deleted", deleted)
	}
}

// HomeKey returns the cache key for the reader home of a category.
func HomeKey(category string) string {
	return homePrefix + category
}

// ArticleKey returns the cache key for an article page.
func ArticleKey(id string) string {
	return articlePrefix + id
}
