package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftsight/internal/models"
)

// GetSplitConfig loads a user's training split configuration. Returns
// nil without error when no split is configured or the stored value is
// unreadable, so callers fall back to plain weekday grouping.
func (db *DB) GetSplitConfig(ctx context.Context, userID int) (*models.SplitConfig, error) {
	var raw []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT value FROM settings WHERE user_id = $1 AND key = 'split_config'`,
		userID).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying split config: %w", err)
	}

	var cfg models.SplitConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		slog.Warn("ignoring malformed split config", "user_id", userID, "error", err)
		return nil, nil
	}
	return &cfg, nil
}

// SetSplitConfig stores a user's training split configuration,
// replacing any existing one.
func (db *DB) SetSplitConfig(ctx context.Context, userID int, cfg *models.SplitConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding split config: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO settings (user_id, key, value)
		 VALUES ($1, 'split_config', $2)
		 ON CONFLICT (user_id, key) DO UPDATE SET value = $2, updated_at = NOW()`,
		userID, raw)
	if err != nil {
		return fmt.Errorf("storing split config: %w", err)
	}
	return nil
}
