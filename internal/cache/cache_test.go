// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// testValkey returns a client for an in-process Valkey.
func testValkey(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestConnectValkey(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectValkey(context.Background(), mr.Addr(), "")
	if err != nil {
		t.Fatalf("ConnectValkey: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil || pong != "PONG" {
		t.Errorf("Ping: %q, %v", pong, err)
	}
}

func TestConnectValkeyUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := ConnectValkey(context.Background(), addr, ""); err == nil {
		t.Error("expected error for unreachable valkey")
	}
}

func TestPageCacheSetAndGet(t *testing.T) {
	client, _ := testValkey(t)
	pc := NewPageCache(client, time.Minute)
	ctx := context.Background()

	if data, ok := pc.Get(ctx, HomeKey("all")); ok || data != nil {
		t.Error("expected cache miss")
	}

	html := []byte("<html><body>Front page</body></html>")
	pc.Set(ctx, HomeKey("all"), html)

	data, ok := pc.Get(ctx, HomeKey("all"))
	if !ok || string(data) != string(html) {
		t.Errorf("hit: got %q, %v", data, ok)
	}
}

func TestPageCacheExpires(t *testing.T) {
	client, mr := testValkey(t)
	pc := NewPageCache(client, time.Minute)
	ctx := context.Background()

	pc.Set(ctx, ArticleKey("1"), []byte("x"))
	mr.FastForward(2 * time.Minute)
	if _, ok := pc.Get(ctx, ArticleKey("1")); ok {
		t.Error("expected entry to expire")
	}
}

func TestInvalidateArticle(t *testing.T) {
	client, _ := testValkey(t)
	pc := NewPageCache(client, time.Minute)
	ctx := context.Background()

	pc.Set(ctx, ArticleKey("1"), []byte("one"))
	pc.Set(ctx, ArticleKey("2"), []byte("two"))
	pc.Set(ctx, HomeKey("all"), []byte("home"))
	pc.Set(ctx, HomeKey("Sports"), []byte("sports"))

	pc.InvalidateArticle(ctx, "1")

	for _, key := range []string{ArticleKey("1"), HomeKey("all"), HomeKey("Sports")} {
		if _, ok := pc.Get(ctx, key); ok {
			t.Errorf("expected miss for %q", key)
		}
	}
	if _, ok := pc.Get(ctx, ArticleKey("2")); !ok {
		t.Error("unrelated article should stay cached")
	}
}

func TestInvalidateAll(t *testing.T) {
	client, mr := testValkey(t)
	pc := NewPageCache(client, time.Minute)
	ctx := context.Background()

	pc.Set(ctx, ArticleKey("1"), []byte("a"))
	pc.Set(ctx, HomeKey("all"), []byte("b"))
	mr.Set("session:keep", "not a page")

	pc.InvalidateAll(ctx)

	if _, ok := pc.Get(ctx, ArticleKey("1")); ok {
		t.Error("article survived InvalidateAll")
	}
	if !mr.Exists("session:keep") {
		t.Error("InvalidateAll must only touch page keys")
	}
}

func TestCacheKeys(t *testing.T) {
	if HomeKey("Sports") != "home:Sports" || ArticleKey("7") != "news:7" {
		t.Errorf("keys: %q %q", HomeKey("Sports"), ArticleKey("7"))
	}
}

func TestNewPageCacheDefaultTTL(t *testing.T) {
	client, _ := testValkey(t)
	if pc := NewPageCache(client, 0); pc.ttl != DefaultPageTTL {
		t.Errorf("expected DefaultPageTTL (%v), got %v", DefaultPageTTL, pc.ttl)
	}
}
