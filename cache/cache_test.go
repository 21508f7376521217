package cache

import (
	"context"
	"testing"
	"time"
)

func TestLRU(t *testing.T) {
	ctx := context.Background()
	c := NewLRU(2, time.Minute)

	_ = c.Set(ctx, "a", []byte("A"))
	_ = c.Set(ctx, "b", []byte("B"))
	if v, ok, _ := c.Get(ctx, "a"); !ok || string(v) != "A" {
		t.Fatalf("Get(a) = %q, %v", v, ok)
	}

	// a was used most recently, so b is evicted.
	_ = c.Set(ctx, "c", []byte("C"))
	if _, ok, _ := c.Get(ctx, "b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok, _ := c.Get(ctx, "a"); !ok {
		t.Error("a should still be cached")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}

	_ = c.Set(ctx, "a", []byte("A2"))
	if v, _, _ := c.Get(ctx, "a"); string(v) != "A2" {
		t.Errorf("Get(a) after update = %q", v)
	}
}

func TestLRU_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRU(4, time.Minute)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"))
	now = now.Add(30 * time.Second)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatal("entry expired too early")
	}
	now = now.Add(time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("entry should have expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed, Len = %d", c.Len())
	}

	forever := NewLRU(1, 0)
	forever.now = func() time.Time { return now }
	_ = forever.Set(ctx, "k", []byte("v"))
	now = now.Add(24 * time.Hour)
	if _, ok, _ := forever.Get(ctx, "k"); !ok {
		t.Error("zero ttl must not expire")
	}
}

func TestNewRedis_BadURL(t *testing.T) {
	if _, err := NewRedis(context.Background(), "not a url", time.Minute); err == nil {
		t.Error("expected error for invalid redis url")
	}
}
