package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/erazemk/assetdesk/internal/model"
)

// GetJWTSecret retrieves the JWT secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses INSERT OR IGNORE + re-SELECT so concurrent startups agree on one value.
func GetJWTSecret(ctx context.Context, db DBTX) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('jwt_secret', ?)`,
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'jwt_secret'`,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying jwt_secret: %w", err)
	}

	return secret, nil
}

// GetConfig returns the stored desk configuration, or the built-in defaults
// if none was saved yet.
func GetConfig(ctx context.Context, db DBTX) (*model.Config, error) {
	var data string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'config'`,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return model.DefaultConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("querying config: %w", err)
	}

	var cfg model.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig replaces the stored desk configuration.
func SaveConfig(ctx context.Context, db DBTX, cfg *model.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES ('config', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("storing config: %w", err)
	}
	return nil
}
