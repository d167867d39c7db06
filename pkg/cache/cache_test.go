package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "missing"); err != nil || found {
		t.Errorf("Get(missing) = found=%v err=%v, want miss", found, err)
	}

	if err := c.Set(ctx, "key1", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, found, err := c.Get(ctx, "key1")
	if err != nil || !found {
		t.Fatalf("Get after Set: found=%v err=%v", found, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get = %q, want %q", data, "payload")
	}

	if err := c.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "key1"); found {
		t.Error("entry survived Delete")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "ttl", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found, err := c.Get(ctx, "ttl"); err != nil || found {
		t.Errorf("expired entry: found=%v err=%v, want miss", found, err)
	}
}

func TestFileCacheStatsAndClear(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte("data-"+key), 0); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}

	entries, size, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if entries != 3 {
		t.Errorf("entries = %d, want 3", entries)
	}
	if size == 0 {
		t.Error("size = 0, want > 0")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, _, err = c.Stats()
	if err != nil {
		t.Fatalf("Stats after Clear: %v", err)
	}
	if entries != 0 {
		t.Errorf("entries after Clear = %d, want 0", entries)
	}
	// Cache stays usable after Clear.
	if err := c.Set(ctx, "again", []byte("x"), 0); err != nil {
		t.Errorf("Set after Clear: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Errorf("Set: %v", err)
	}
	if _, found, err := c.Get(ctx, "key"); err != nil || found {
		t.Errorf("NullCache stored a value: found=%v err=%v", found, err)
	}
}

func TestKeyerDistinctness(t *testing.T) {
	k := NewDefaultKeyer()

	p1 := k.PlacementKey("hash-a")
	p2 := k.PlacementKey("hash-b")
	if p1 == p2 {
		t.Error("different config hashes produced the same placement key")
	}
	if p1 != k.PlacementKey("hash-a") {
		t.Error("same config hash produced different placement keys")
	}
	if !strings.HasPrefix(p1, "placement:"+KeyVersion) {
		t.Errorf("placement key %q missing versioned prefix", p1)
	}

	a1 := k.ArtifactKey("hash-a", ArtifactKeyOpts{Format: "svg"})
	a2 := k.ArtifactKey("hash-a", ArtifactKeyOpts{Format: "svg", Labels: true})
	if a1 == a2 {
		t.Error("different render options produced the same artifact key")
	}
	if a1 == p1 {
		t.Error("artifact and placement keys collide")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "run:abc:")

	key := scoped.PlacementKey("hash")
	if !strings.HasPrefix(key, "run:abc:") {
		t.Errorf("key %q missing scope prefix", key)
	}
	if strings.TrimPrefix(key, "run:abc:") != inner.PlacementKey("hash") {
		t.Error("scoped key does not wrap the inner key")
	}
}

func TestHashJSON(t *testing.T) {
	type payload struct {
		A int    `json:"a"`
		B string `json:"b"`
	}

	h1, err := HashJSON(payload{A: 1, B: "x"})
	if err != nil {
		t.Fatalf("HashJSON: %v", err)
	}
	h2, _ := HashJSON(payload{A: 1, B: "x"})
	if h1 != h2 {
		t.Error("identical values hashed differently")
	}
	h3, _ := HashJSON(payload{A: 2, B: "x"})
	if h1 == h3 {
		t.Error("different values hashed identically")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("success path: err=%v calls=%d", err, calls)
	}

	calls = 0
	permanent := errors.New("bad input")
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("non-retryable error retried: err=%v calls=%d", err, calls)
	}

	if !IsRetryable(Retryable(errors.New("net"))) {
		t.Error("Retryable error not detected")
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
}
