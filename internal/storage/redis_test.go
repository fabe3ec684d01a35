package storage

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRateLimitKey(t *testing.T) {
	now := time.Date(2024, time.June, 3, 17, 0, 30, 0, time.UTC)
	same := now.Add(20 * time.Second)
	next := now.Add(40 * time.Second)

	if RateLimitKey("abc", now) != RateLimitKey("abc", same) {
		t.Error("requests in the same minute should share a key")
	}
	if RateLimitKey("abc", now) == RateLimitKey("abc", next) {
		t.Error("next minute should use a new key")
	}
	if !strings.HasPrefix(RateLimitKey("abc", now), "ratelimit:abc:") {
		t.Errorf("unexpected key %s", RateLimitKey("abc", now))
	}
}

// Needs a running Redis; skipped otherwise.
func TestCache_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping integration test")
	}

	cache, err := NewCache(addr, os.Getenv("REDIS_PASSWORD"), 0, zap.NewNop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	key := "hhdeals:test:" + time.Now().Format(time.RFC3339Nano)
	defer cache.Delete(ctx, key)

	if _, err := cache.GetBytes(ctx, key); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := cache.SetBytes(ctx, key, []byte("hello"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := cache.GetBytes(ctx, key)
	if err != nil || string(got) != "hello" {
		t.Fatalf("get: %q %v", got, err)
	}

	counter := key + ":n"
	defer cache.Delete(ctx, counter)
	for i := int64(1); i <= 3; i++ {
		n, err := cache.IncrementWithExpiry(ctx, counter, time.Minute)
		if err != nil || n != i {
			t.Fatalf("increment %d: got %d %v", i, n, err)
		}
	}
}
