package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPlanKey(t *testing.T) {
	scanData := []byte(`{"modules": []}`)

	k1 := PlanKey(scanData, 10, 3)
	k2 := PlanKey(scanData, 10, 3)
	if k1 != k2 {
		t.Error("same inputs produced different keys")
	}

	if k1 == PlanKey(scanData, 5, 3) {
		t.Error("max unit size not reflected in the key")
	}
	if k1 == PlanKey(scanData, 10, 4) {
		t.Error("parallelism not reflected in the key")
	}
	if k1 == PlanKey([]byte(`{"modules": [1]}`), 10, 3) {
		t.Error("scan content not reflected in the key")
	}
}

func TestFileCache_SetGetDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "missing"); err != nil || found {
		t.Errorf("Get(missing) = found=%v, err=%v, want miss", found, err)
	}

	want := []byte("cached plan bytes")
	if err := c.Set(ctx, "plan-key", want, 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, found, err := c.Get(ctx, "plan-key")
	if err != nil || !found {
		t.Fatalf("Get() = found=%v, err=%v, want hit", found, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}

	if err := c.Delete(ctx, "plan-key"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, found, _ := c.Get(ctx, "plan-key"); found {
		t.Error("Get() found a deleted key")
	}
	if err := c.Delete(ctx, "plan-key"); err != nil {
		t.Errorf("Delete() on a missing key: %v", err)
	}
}

func TestFileCache_TTLExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found, err := c.Get(ctx, "short"); err != nil || found {
		t.Errorf("Get() after expiry = found=%v, err=%v, want miss", found, err)
	}
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("key"), []byte("not json"), 0644); err != nil {
		t.Fatalf("corrupt entry: %v", err)
	}

	if _, found, err := c.Get(ctx, "key"); err != nil || found {
		t.Errorf("Get() on corrupt entry = found=%v, err=%v, want silent miss", found, err)
	}
}

func TestFileCache_ShardedLayout(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	if err := c.Set(context.Background(), "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "??", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("found %d sharded entries, want 1", len(matches))
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, found, err := c.Get(ctx, "key"); err != nil || found {
		t.Errorf("Get() = found=%v, err=%v, want always miss", found, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
