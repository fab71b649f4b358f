// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"
)

// Setting value types.
const (
	SettingTypeString = "string"
	SettingTypeBool   = "boolean"
)

// Setting keys. The update path rejects anything not listed here.
const (
	SettingKeyAppPublicVisible = "app_public_visible"
	SettingKeyMaintenanceMsg   = "maintenance_message"
	SettingKeyMaintenanceBtn   = "maintenance_admin_button_text"
)

// Defaults for the maintenance copy when the rows are absent.
const (
	DefaultMaintenanceMsg = "Stiamo lavorando per Voi. App in aggiornamento"
	DefaultMaintenanceBtn = "Sei admin? Accedi"
)

// KnownSettings maps each settable key to its value type.
var KnownSettings = map[string]string{
	SettingKeyAppPublicVisible: SettingTypeBool,
	SettingKeyMaintenanceMsg:   SettingTypeString,
	SettingKeyMaintenanceBtn:   SettingTypeString,
}

// DefaultSetting returns the built-in default row for a known key, so
// reads keep working before the seed rows exist.
func DefaultSetting(key string) (AppSetting, bool) {
	switch key {
	case SettingKeyAppPublicVisible:
		return AppSetting{Key: key, Value: "true", Type: SettingTypeBool}, true
	case SettingKeyMaintenanceMsg:
		v, _ := json.Marshal(DefaultMaintenanceMsg)
		return AppSetting{Key: key, Value: string(v), Type: SettingTypeString}, true
	case SettingKeyMaintenanceBtn:
		v, _ := json.Marshal(DefaultMaintenanceBtn)
		return AppSetting{Key: key, Value: string(v), Type: SettingTypeString}, true
	}
	return AppSetting{}, false
}

// AppSetting is a single key-value configuration row. Values are stored as
// JSON so booleans and strings share one column. Rows are singletons per
// key and are only ever written through the settings service.
type AppSetting struct {
	Key         string
	Value       string // JSON-encoded
	Type        string
	Description string
	UpdatedAt   time.Time
}

// BoolValue decodes the value as a boolean, false on any decode failure.
func (s AppSetting) BoolValue() bool {
	var v bool
	if err := json.Unmarshal([]byte(s.Value), &v); err != nil {
		return false
	}
	return v
}

// StringValue decodes the value as a string. Non-string JSON falls back to
// the raw stored text.
func (s AppSetting) StringValue() string {
	var v string
	if err := json.Unmarshal([]byte(s.Value), &v); err != nil {
		return s.Value
	}
	return v
}
