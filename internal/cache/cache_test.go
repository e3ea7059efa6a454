// cache_test.go provides integration tests for the section cache.
// Tests are skipped when Valkey is unavailable.
package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkey returns a client on DB 15, skipping if unreachable.
func testValkey(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("skipping integration test: valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func TestSectionCacheSetGet(t *testing.T) {
	sc := NewSectionCache(testValkey(t), time.Minute)
	ctx := context.Background()

	if _, ok := sc.Get(ctx, "hero_title"); ok {
		t.Fatal("expected miss on empty cache")
	}

	body := []byte(`{"content":{"en":"X","tr":"Y"}}`)
	sc.Set(ctx, "hero_title", body)

	got, ok := sc.Get(ctx, "hero_title")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(got) != string(body) {
		t.Errorf("cached body: got %s", got)
	}
}

func TestSectionCacheInvalidate(t *testing.T) {
	sc := NewSectionCache(testValkey(t), time.Minute)
	ctx := context.Background()

	sc.Set(ctx, "hero_title", []byte(`"a"`))
	sc.SetAll(ctx, []byte(`{"hero_title":"a"}`))
	sc.Set(ctx, "pricing", []byte(`"b"`))

	// A single-section invalidation drops the section and the full map,
	// but leaves unrelated sections alone.
	sc.Invalidate(ctx, "hero_title")
	if _, ok := sc.Get(ctx, "hero_title"); ok {
		t.Error("hero_title still cached after invalidate")
	}
	if _, ok := sc.GetAll(ctx); ok {
		t.Error("full map still cached after invalidate")
	}
	if _, ok := sc.Get(ctx, "pricing"); !ok {
		t.Error("unrelated section evicted by single invalidation")
	}

	sc.SetAll(ctx, []byte(`{}`))
	sc.InvalidateAll(ctx)
	if _, ok := sc.Get(ctx, "pricing"); ok {
		t.Error("pricing still cached after InvalidateAll")
	}
	if _, ok := sc.GetAll(ctx); ok {
		t.Error("full map still cached after InvalidateAll")
	}
}

func TestSectionCacheAllKeyDoesNotShadowSection(t *testing.T) {
	sc := NewSectionCache(testValkey(t), time.Minute)
	ctx := context.Background()

	// A section may legitimately be keyed "_all" or "sections_all"; the
	// aggregate entry must stay separate from any section key.
	for _, key := range []string{"_all", "sections_all"} {
		sc.SetAll(ctx, []byte(`{"hero_title":"a"}`))
		sc.Set(ctx, key, []byte(`"section value"`))

		got, ok := sc.Get(ctx, key)
		if !ok || string(got) != `"section value"` {
			t.Errorf("section %q: got %s, ok=%v", key, got, ok)
		}
		all, ok := sc.GetAll(ctx)
		if !ok || string(all) != `{"hero_title":"a"}` {
			t.Errorf("full map after caching section %q: got %s, ok=%v", key, all, ok)
		}
	}
}

func TestSectionCacheDefaultTTL(t *testing.T) {
	sc := NewSectionCache(testValkey(t), 0)
	if sc.ttl != DefaultSectionTTL {
		t.Errorf("ttl: got %v, want %v", sc.ttl, DefaultSectionTTL)
	}
}
