package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func testRedisStorage(t *testing.T, dataDir string) *RedisStorage {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewRedisStorage(mr.Addr(), dataDir, time.Hour, testLogger())
}

func testSnapshotBundle() *content.Bundle {
	return &content.Bundle{
		ID:   "harbor",
		Name: "Old Harbor",
		Regions: []content.Region{
			{ID: "harbor", Pool: []content.SpawnWeight{{FishID: "perch", Weight: 1}}},
		},
		Fish: []content.Fish{
			{ID: "perch", Stamina: 80, Pressure: 10, XP: 30},
		},
		Actions: []content.Action{
			{ID: "reel", Kind: "reel", StaminaTake: 20, Tension: 12},
		},
		BaseActions: []string{"reel"},
	}
}

func TestRedisStorage_SaveAndLoadSnapshot(t *testing.T) {
	rs := testRedisStorage(t, t.TempDir())
	ctx := context.Background()

	s := state.NewSnapshot(testSnapshotBundle())
	s.Player.Tension = 24
	s.Currency = 15

	if err := rs.SaveSnapshot(ctx, s.ID, s); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, err := rs.LoadSnapshot(ctx, s.ID)
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected non-nil snapshot")
	}
	if loaded.ID != s.ID {
		t.Errorf("Expected ID %v, got %v", s.ID, loaded.ID)
	}
	if loaded.Player.Tension != 24 {
		t.Errorf("Expected tension 24, got %d", loaded.Player.Tension)
	}
	if loaded.Currency != 15 {
		t.Errorf("Expected currency 15, got %d", loaded.Currency)
	}
}

func TestRedisStorage_LoadMissingSnapshot(t *testing.T) {
	rs := testRedisStorage(t, t.TempDir())

	loaded, err := rs.LoadSnapshot(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error for missing snapshot, got: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil for missing snapshot")
	}
}

func TestRedisStorage_DeleteSnapshot(t *testing.T) {
	rs := testRedisStorage(t, t.TempDir())
	ctx := context.Background()

	s := state.NewSnapshot(testSnapshotBundle())
	if err := rs.SaveSnapshot(ctx, s.ID, s); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}
	if err := rs.DeleteSnapshot(ctx, s.ID); err != nil {
		t.Fatalf("Failed to delete snapshot: %v", err)
	}

	loaded, err := rs.LoadSnapshot(ctx, s.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if loaded != nil {
		t.Error("Expected snapshot to be gone")
	}
}

func TestRedisStorage_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	rs := NewRedisStorage(mr.Addr(), t.TempDir(), time.Hour, testLogger())

	if err := rs.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	mr.Close()
	if err := rs.Ping(context.Background()); err == nil {
		t.Error("Expected ping to fail after close")
	}
}

func writeBundleFile(t *testing.T, dir string, b *content.Bundle) {
	t.Helper()
	bundlesDir := filepath.Join(dir, "bundles")
	if err := os.MkdirAll(bundlesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bundlesDir, b.ID+".json"), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRedisStorage_Bundles(t *testing.T) {
	dir := t.TempDir()
	writeBundleFile(t, dir, testSnapshotBundle())
	rs := testRedisStorage(t, dir)
	ctx := context.Background()

	bundles, err := rs.ListBundles(ctx)
	if err != nil {
		t.Fatalf("Failed to list bundles: %v", err)
	}
	if bundles["harbor"] != "Old Harbor" {
		t.Errorf("Bundles = %v", bundles)
	}

	b, err := rs.GetBundle(ctx, "harbor")
	if err != nil {
		t.Fatalf("Failed to get bundle: %v", err)
	}
	if b.ID != "harbor" || len(b.Fish) != 1 {
		t.Errorf("Bundle = %+v", b)
	}

	if _, err := rs.GetBundle(ctx, "abyss"); err == nil {
		t.Error("Expected error for missing bundle")
	}
}
