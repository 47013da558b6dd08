package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cesargomez89/meting-gateway/internal/constants"
)

// SettingsRepo is a key/value view over the settings table.
type SettingsRepo struct {
	db *DB
}

func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the stored value, or "" when the key is unset.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM settings WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	return err
}

func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	return err
}

// PlaylistRetry returns the stored retry budget for playlist batches, or def
// when none is stored. A corrupt value yields def together with the error.
func (r *SettingsRepo) PlaylistRetry(ctx context.Context, def uint8) (uint8, error) {
	value, err := r.Get(ctx, constants.SettingPlaylistRetry)
	if err != nil || value == "" {
		return def, err
	}
	n, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		return def, fmt.Errorf("setting %s=%q: %w", constants.SettingPlaylistRetry, value, err)
	}
	return uint8(n), nil
}

func (r *SettingsRepo) SetPlaylistRetry(ctx context.Context, n uint8) error {
	return r.Set(ctx, constants.SettingPlaylistRetry, strconv.FormatUint(uint64(n), 10))
}
