// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pennaFedele/gambarie-summer-events/internal/cache"
	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
)

// settingsCacheKey holds the full settings list as JSON.
const settingsCacheKey = "app_settings"

// ErrUnknownSetting is returned when an update targets a key that is not
// part of the fixed settings schema.
var ErrUnknownSetting = errors.New("unknown setting key")

// SettingsService reads application settings through a cache and writes
// them through a validated update path that invalidates the cache.
// All reads go through List/Get so a write is visible on the next read.
type SettingsService struct {
	queries *store.Queries
	cache   cache.Cache
	audit   *AuditService
	ttl     time.Duration
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(db *sql.DB, c cache.Cache, audit *AuditService) *SettingsService {
	return &SettingsService{
		queries: store.New(db),
		cache:   c,
		audit:   audit,
		ttl:     5 * time.Minute,
	}
}

// List returns all settings, served from cache when possible.
func (s *SettingsService) List(ctx context.Context) ([]model.AppSetting, error) {
	if data, err := s.cache.Get(ctx, settingsCacheKey); err == nil {
		var settings []model.AppSetting
		if err := json.Unmarshal(data, &settings); err == nil {
			return settings, nil
		}
		// Corrupt cache entry, fall through to the database.
		_ = s.cache.Delete(ctx, settingsCacheKey)
	}

	settings, err := s.queries.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(settings); err == nil {
		_ = s.cache.Set(ctx, settingsCacheKey, data, s.ttl)
	}
	return settings, nil
}

// Get returns a single setting by key, or the schema default when the row
// is missing.
func (s *SettingsService) Get(ctx context.Context, key string) (model.AppSetting, error) {
	settings, err := s.List(ctx)
	if err != nil {
		return model.AppSetting{}, err
	}
	for _, setting := range settings {
		if setting.Key == key {
			return setting, nil
		}
	}
	if def, ok := model.DefaultSetting(key); ok {
		return def, nil
	}
	return model.AppSetting{}, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
}

// PublicVisible reports whether the public site is enabled. Errors fall
// back to visible so a cache or database hiccup never locks visitors out.
func (s *SettingsService) PublicVisible(ctx context.Context) bool {
	setting, err := s.Get(ctx, model.SettingKeyAppPublicVisible)
	if err != nil {
		return true
	}
	return setting.BoolValue()
}

// Update validates and persists one setting, writes an audit entry and
// invalidates the cache. Only keys in the fixed schema are accepted, and
// the value must match the key's declared type.
func (s *SettingsService) Update(ctx context.Context, key string, value json.RawMessage, userID int64) (model.AppSetting, error) {
	settingType, ok := model.KnownSettings[key]
	if !ok {
		return model.AppSetting{}, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	normalized, err := normalizeSettingValue(settingType, value)
	if err != nil {
		return model.AppSetting{}, err
	}

	if err := s.queries.UpsertSetting(ctx, key, normalized, settingType); err != nil {
		return model.AppSetting{}, err
	}

	s.audit.Log(ctx, model.AuditActionSettingSet, model.ResourceSetting, key, &userID, map[string]any{
		"setting_key": key,
		"new_value":   json.RawMessage(normalized),
	})

	// Invalidate after the write so the next read re-fetches.
	_ = s.cache.Delete(ctx, settingsCacheKey)

	return s.queries.GetSetting(ctx, key)
}

func normalizeSettingValue(settingType string, value json.RawMessage) (string, error) {
	switch settingType {
	case model.SettingTypeBool:
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			return "", fmt.Errorf("setting value must be a boolean: %w", err)
		}
		out, _ := json.Marshal(b)
		return string(out), nil
	case model.SettingTypeString:
		var str string
		if err := json.Unmarshal(value, &str); err != nil {
			return "", fmt.Errorf("setting value must be a string: %w", err)
		}
		out, _ := json.Marshal(str)
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported setting type %q", settingType)
	}
}
