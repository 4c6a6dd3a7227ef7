// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"zamzam/internal/models"
)

// SettingStore handles key-value settings. Every read and write goes to the
// database; nothing is cached in process.
type SettingStore struct {
	db *sql.DB
}

// NewSettingStore creates a new SettingStore.
func NewSettingStore(db *sql.DB) *SettingStore {
	return &SettingStore{db: db}
}

const settingColumns = `id, key, value, description, created_at, updated_at`

func scanSetting(scanner interface{ Scan(...any) error }) (*models.Setting, error) {
	var (
		st    models.Setting
		value sql.NullString
	)
	if err := scanner.Scan(&st.ID, &st.Key, &value, &st.Description, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}
	if value.Valid {
		st.Value = models.DecodeSettingValue(&value.String)
	}
	st.CreatedAt = st.CreatedAt.UTC()
	st.UpdatedAt = st.UpdatedAt.UTC()
	return &st, nil
}

// List returns all settings ordered by key.
func (s *SettingStore) List(ctx context.Context) ([]models.Setting, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+settingColumns+` FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	items := []models.Setting{}
	for rows.Next() {
		st, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		items = append(items, *st)
	}
	return items, rows.Err()
}

// Get returns the setting stored under key. Returns nil if not found.
func (s *SettingStore) Get(ctx context.Context, key string) (*models.Setting, error) {
	st, err := scanSetting(s.db.QueryRowContext(ctx,
		`SELECT `+settingColumns+` FROM settings WHERE key = $1`, key))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get setting %s: %w", key, err)
	}
	return st, nil
}

// Set upserts value under key. Structured values are JSON-encoded and
// scalars stored in their string form. created_at is kept from the first
// insert; the description only changes when a non-empty one is given.
func (s *SettingStore) Set(ctx context.Context, key string, value any, description *string) (*models.Setting, error) {
	encoded, err := models.EncodeSettingValue(value)
	if err != nil {
		return nil, err
	}
	if description != nil && *description == "" {
		description = nil
	}

	ts := now()
	st, err := scanSetting(s.db.QueryRowContext(ctx, `
		INSERT INTO settings (id, key, value, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			description = COALESCE(excluded.description, settings.description),
			updated_at = excluded.updated_at
		RETURNING `+settingColumns,
		uuid.New(), key, encoded, description, ts,
	))
	if err != nil {
		return nil, fmt.Errorf("set setting %s: %w", key, err)
	}
	return st, nil
}

// Delete removes the setting under key and reports whether it existed.
func (s *SettingStore) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return false, fmt.Errorf("delete setting %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete setting %s: %w", key, err)
	}
	return n > 0, nil
}
