// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

// ListSettings returns all settings ordered by key.
func (q *Queries) ListSettings(ctx context.Context) ([]model.AppSetting, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT setting_key, setting_value, setting_type, description, updated_at
		FROM app_settings ORDER BY setting_key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var settings []model.AppSetting
	for rows.Next() {
		var s model.AppSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.Type, &s.Description, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// GetSetting returns a single setting by key.
func (q *Queries) GetSetting(ctx context.Context, key string) (model.AppSetting, error) {
	var s model.AppSetting
	err := q.db.QueryRowContext(ctx, `SELECT setting_key, setting_value, setting_type, description, updated_at
		FROM app_settings WHERE setting_key = ?`, key).
		Scan(&s.Key, &s.Value, &s.Type, &s.Description, &s.UpdatedAt)
	return s, err
}

// UpsertSetting writes a setting value, creating the row if absent. Callers
// go through the settings service, never through this method directly from
// a handler, so key and type validation has already happened.
func (q *Queries) UpsertSetting(ctx context.Context, key, value, settingType string) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO app_settings (setting_key, setting_value, setting_type, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(setting_key) DO UPDATE SET setting_value = excluded.setting_value, updated_at = excluded.updated_at`,
		key, value, settingType, time.Now().UTC())
	return err
}
