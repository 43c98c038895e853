// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newsdesk/internal/models"
)

// SiteSettingStore keeps the site settings as key/value rows.
type SiteSettingStore struct {
	db *sql.DB
}

// NewSiteSettingStore returns a new SiteSettingStore backed by the given database.
func NewSiteSettingStore(db *sql.DB) *SiteSettingStore {
	return &SiteSettingStore{db: db}
}

// Load returns the stored settings. Keys that were never saved keep their
// default values.
func (s *SiteSettingStore) Load(ctx context.Context) (models.Settings, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value, updated_at FROM site_settings`)
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	var latest time.Time
	for rows.Next() {
		var k, v string
		var at time.Time
		if err := rows.Scan(&k, &v, &at); err != nil {
			return models.Settings{}, fmt.Errorf("scan setting: %w", err)
		}
		kv[k] = v
		if at.After(latest) {
			latest = at
		}
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	settings := models.SettingsFromMap(kv)
	settings.UpdatedAt = latest
	return settings, nil
}

// Save upserts every setting in a single transaction.
func (s *SiteSettingStore) Save(ctx context.Context, settings models.Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	defer stmt.Close()

	at := settings.UpdatedAt
	if at.IsZero() {
		at = time.Now()
	}
	for k, v := range settings.SettingsMap() {
		if _, err := stmt.ExecContext(ctx, k, v, at); err != nil {
			return fmt.Errorf("save setting %s: %w", k, err)
		}
	}

	return tx.Commit()
}
