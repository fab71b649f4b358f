// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Audit levels.
const (
	AuditLevelInfo    = "info"
	AuditLevelWarning = "warning"
	AuditLevelError   = "error"
)

// Audit resource types.
const (
	ResourceEvent     = "event"
	ResourceLongEvent = "long_event"
	ResourceActivity  = "activity"
	ResourceSetting   = "setting"
	ResourceUser      = "user"
	ResourceSystem    = "system"
)

// Well-known audit actions.
const (
	AuditActionCSVImport   = "CSV_IMPORT_EVENT_CREATED"
	AuditActionFirstAdmin  = "FIRST_ADMIN_ASSIGNED"
	AuditActionSettingSet  = "APP_SETTING_UPDATED"
	AuditActionImageUpload = "EVENT_IMAGE_UPLOADED"
)

// AuditEntry is a row in the audit log. Admin mutations and WARN-or-above
// application logs both land here.
type AuditEntry struct {
	ID           int64
	Level        string
	Action       string
	ResourceType string
	ResourceID   sql.NullString
	UserID       sql.NullInt64
	Metadata     string // JSON string
	CreatedAt    time.Time
}
