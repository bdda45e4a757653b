package storage

import (
	"path/filepath"
	"testing"
)

func TestOpen_NilConfig(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestOpen_InMemory(t *testing.T) {
	db, err := Open(DefaultConfig(":memory:"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}()

	if err := db.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if db.Conn() == nil {
		t.Error("Conn returned nil")
	}
}

func TestOpen_AutoMigrate(t *testing.T) {
	config := DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	config.AutoMigrate = true

	db, err := Open(config)
	if err != nil {
		t.Fatalf("Open with auto-migrate failed: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}()

	// The migrated schema should have all three tables.
	for _, table := range []string{"collection", "decks", "deck_cards"} {
		var name string
		err := db.Conn().QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after migration: %v", table, err)
		}
	}
}

func TestMigrationManager_UpAndVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	mgr, err := NewMigrationManager(path)
	if err != nil {
		t.Fatalf("NewMigrationManager failed: %v", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}()

	if err := mgr.Up(); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	// Up is idempotent.
	if err := mgr.Up(); err != nil {
		t.Fatalf("second Up failed: %v", err)
	}

	version, dirty, err := mgr.Version()
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if dirty {
		t.Error("migration left the database dirty")
	}
	if version == 0 {
		t.Error("expected nonzero migration version")
	}
}
