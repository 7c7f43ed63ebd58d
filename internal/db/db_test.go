package db

import (
	"path/filepath"
	"testing"
)

func TestEnsureSchemaIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}

	tables := []string{
		"users", "platform_accounts", "vendors", "families", "variants", "assets",
		"asset_assignees", "asset_active_users", "assignment_history", "history_users",
		"requests", "tasks", "settings", "revoked_tokens", "table_views",
	}
	for _, table := range tables {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestMemoryDatabaseSharedAcrossQueries(t *testing.T) {
	database := NewTestDB(t)

	if _, err := database.Exec(`INSERT INTO settings (key, value) VALUES ('k', 'v')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// A second connection to :memory: would see an empty database.
	var v string
	if err := database.QueryRow(`SELECT value FROM settings WHERE key = 'k'`).Scan(&v); err != nil {
		t.Fatalf("select: %v", err)
	}
	if v != "v" {
		t.Errorf("expected 'v', got %q", v)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desk.sqlite3")
	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	var mode string
	if err := database.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected wal journal mode, got %q", mode)
	}
}

func TestIsMemory(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"", true},
		{":memory:", true},
		{"desk.sqlite3", false},
	}
	for _, tt := range tests {
		if got := IsMemory(tt.path); got != tt.want {
			t.Errorf("IsMemory(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
