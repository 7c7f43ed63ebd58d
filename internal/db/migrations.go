package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: Record which users a history entry concerns so a user's
	// own assignment log can be listed.
	`CREATE TABLE IF NOT EXISTS history_users (
	     history_id TEXT NOT NULL REFERENCES assignment_history(id),
	     user_id    TEXT NOT NULL,
	     PRIMARY KEY (history_id, user_id)
	 )`,
	`CREATE INDEX IF NOT EXISTS idx_history_users_user ON history_users(user_id)`,

	// Migration 2: Per-user column configuration of data tables.
	`CREATE TABLE IF NOT EXISTS table_views (
	     user_id    TEXT NOT NULL,
	     table_name TEXT NOT NULL,
	     columns    TEXT NOT NULL DEFAULT '[]',
	     settings   TEXT NOT NULL DEFAULT '{}',
	     updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	     PRIMARY KEY (user_id, table_name)
	 )`,

	// Migration 3: Requests are listed per requester for non-admins.
	`CREATE INDEX IF NOT EXISTS idx_requests_requested_by ON requests(requested_by)`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}
	return nil
}
