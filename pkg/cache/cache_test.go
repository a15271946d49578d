package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "Columbus, OH")
	if err != nil || hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, "Columbus, OH", []byte("svg-bytes"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, "Columbus, OH")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "svg-bytes" {
		t.Errorf("Get = %q, want %q", data, "svg-bytes")
	}

	// Empty values round-trip too: the normalizer stores "" to mark a
	// known-bad location, and that marker must read back as a hit.
	if err := c.Set(ctx, "Atlantis, Lost Kingdom", []byte(""), 0); err != nil {
		t.Fatalf("Set empty: %v", err)
	}
	data, hit, err = c.Get(ctx, "Atlantis, Lost Kingdom")
	if err != nil || !hit {
		t.Fatalf("failure marker should be a hit, got hit=%v err=%v", hit, err)
	}
	if len(data) != 0 {
		t.Errorf("failure marker should be empty, got %q", data)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("deleting a missing key should not error: %v", err)
	}

	_ = c.Set(ctx, "key", []byte("v"), 0)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, hit, _ := c.Get(ctx, "key")
	if hit {
		t.Error("deleted key should miss")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Different raw locations produce different normalization keys.
	n1 := k.NormalizationKey("Short North, Columbus, OH")
	n2 := k.NormalizationKey("Columbus, OH")
	if n1 == n2 {
		t.Error("different raw locations should produce different keys")
	}

	// Graphic keys include the canvas size.
	g1 := k.GraphicKey("Columbus, OH", 144)
	g2 := k.GraphicKey("Columbus, OH", 288)
	if g1 == g2 {
		t.Error("different canvas sizes should produce different keys")
	}

	// Namespaces must not collide even for identical inputs.
	if k.NormalizationKey("x") == k.GraphicKey("x", 144) {
		t.Error("normalization and graphic keys should be namespaced apart")
	}
}
