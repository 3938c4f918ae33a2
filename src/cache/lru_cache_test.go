package cache

import (
	"context"
	"testing"
	"time"
)

func TestLRUCacheSetGet(t *testing.T) {
	c := NewLRUCache(4, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "k", "digest text")
	if got, ok := c.Get(ctx, "k"); !ok || got != "digest text" {
		t.Fatalf("Get = %q, %v", got, ok)
	}
	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	c := NewLRUCache(2, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "a", "1")
	c.Set(ctx, "b", "2")
	c.Set(ctx, "c", "3") // evicts a

	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatal("expected oldest entry to be evicted")
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
}

func TestLRUCacheExpires(t *testing.T) {
	c := NewLRUCache(4, 10*time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "k", "v")
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestHashKeyStable(t *testing.T) {
	a := HashKey("payload")
	b := HashKey("payload")
	if a != b {
		t.Fatalf("HashKey not stable: %s vs %s", a, b)
	}
	if a == HashKey("other") {
		t.Fatal("distinct payloads collided")
	}
}

func TestLRUCacheRefreshOnAccess(t *testing.T) {
	c := NewLRUCache(2, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "a", "1")
	c.Set(ctx, "b", "2")
	c.Get(ctx, "a")     // a becomes most recently used
	c.Set(ctx, "c", "3") // evicts b

	if _, ok := c.Get(ctx, "a"); !ok {
		t.Fatal("recently used entry evicted")
	}
	if _, ok := c.Get(ctx, "b"); ok {
		t.Fatal("expected least recently used entry to be evicted")
	}
}
