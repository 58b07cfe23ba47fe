package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	t.Run("MissOnEmpty", func(t *testing.T) {
		_, ok, err := c.Get(ctx, "absent")
		if err != nil || ok {
			t.Errorf("Get = ok=%v err=%v, want miss", ok, err)
		}
	})

	t.Run("SetGet", func(t *testing.T) {
		if err := c.Set(ctx, "k1", []byte("value"), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
		data, ok, err := c.Get(ctx, "k1")
		if err != nil || !ok {
			t.Fatalf("Get = ok=%v err=%v, want hit", ok, err)
		}
		if string(data) != "value" {
			t.Errorf("data = %q, want value", data)
		}
	})

	t.Run("Expiry", func(t *testing.T) {
		if err := c.Set(ctx, "k2", []byte("stale"), time.Nanosecond); err != nil {
			t.Fatalf("Set: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
		_, ok, err := c.Get(ctx, "k2")
		if err != nil || ok {
			t.Errorf("expired entry returned ok=%v err=%v, want miss", ok, err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := c.Set(ctx, "k3", []byte("x"), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := c.Delete(ctx, "k3"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, ok, _ := c.Get(ctx, "k3"); ok {
			t.Error("entry survived Delete")
		}
		// Deleting again is not an error.
		if err := c.Delete(ctx, "k3"); err != nil {
			t.Errorf("Delete absent key: %v", err)
		}
	})
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("NullCache must always miss, got ok=%v err=%v", ok, err)
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	t.Run("Deterministic", func(t *testing.T) {
		if k.ValidationKey("abc") != k.ValidationKey("abc") {
			t.Error("same input must produce the same key")
		}
	})

	t.Run("DistinctInputs", func(t *testing.T) {
		if k.ValidationKey("a") == k.ValidationKey("b") {
			t.Error("different inputs must produce different keys")
		}
		if k.ShareKey("a", "workflow") == k.ShareKey("a", "sequence") {
			t.Error("view must participate in the share key")
		}
	})

	t.Run("Prefixes", func(t *testing.T) {
		if !strings.HasPrefix(k.ValidationKey("x"), "validate:") {
			t.Errorf("validation key = %q", k.ValidationKey("x"))
		}
		if !strings.HasPrefix(k.ShareKey("x", ""), "share:") {
			t.Errorf("share key = %q", k.ShareKey("x", ""))
		}
	})

	t.Run("Scoped", func(t *testing.T) {
		scoped := NewScopedKeyer(k, "tenant:a:")
		if !strings.HasPrefix(scoped.ValidationKey("x"), "tenant:a:validate:") {
			t.Errorf("scoped key = %q", scoped.ValidationKey("x"))
		}
	})
}

func TestHash(t *testing.T) {
	h := Hash([]byte("input"))
	if len(h) != 64 {
		t.Errorf("hash length = %d, want 64", len(h))
	}
	if h != Hash([]byte("input")) {
		t.Error("hash must be deterministic")
	}
}
