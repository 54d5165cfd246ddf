package database

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "gallery.db")
	db, err := New(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("New(%s) failed: %v", dbPath, err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return db
}

func TestNewCreatesSchema(t *testing.T) {
	t.Parallel()

	db := newTestDatabase(t)

	count, err := db.CountImages(context.Background())
	if err != nil {
		t.Fatalf("CountImages on fresh database failed: %v", err)
	}
	if count != 0 {
		t.Errorf("CountImages = %d on fresh database, want 0", count)
	}
}

func TestPing(t *testing.T) {
	t.Parallel()

	db := newTestDatabase(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNewFailsWithBadPath(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), "/nonexistent-dir/sub/gallery.db")
	if err == nil {
		t.Error("New with unwritable path succeeded, want error")
	}
}
