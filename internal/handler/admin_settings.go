// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/service"
)

// SettingDTO is the admin JSON shape of a settings row. The stored value
// is already JSON and is embedded as-is.
type SettingDTO struct {
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func settingToDTO(s model.AppSetting) SettingDTO {
	value := json.RawMessage(s.Value)
	if s.Value == "" {
		value = json.RawMessage("null")
	}
	return SettingDTO{
		Key:         s.Key,
		Value:       value,
		Type:        s.Type,
		Description: s.Description,
		UpdatedAt:   s.UpdatedAt,
	}
}

// AuditEntryDTO is the admin JSON shape of an audit log row.
type AuditEntryDTO struct {
	ID           int64           `json:"id"`
	Level        string          `json:"level"`
	Action       string          `json:"action"`
	ResourceType string          `json:"resource_type"`
	ResourceID   string          `json:"resource_id,omitempty"`
	UserID       *int64          `json:"user_id,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func auditEntryToDTO(e model.AuditEntry) AuditEntryDTO {
	dto := AuditEntryDTO{
		ID:           e.ID,
		Level:        e.Level,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID.String,
		UserID:       nullableID(e.UserID),
		CreatedAt:    e.CreatedAt,
	}
	if e.Metadata != "" {
		dto.Metadata = json.RawMessage(e.Metadata)
	}
	return dto
}

// AdminListSettings returns all settings rows.
func (h *Handler) AdminListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.List(r.Context())
	if err != nil {
		WriteInternalError(w, "failed to load settings")
		return
	}
	dtos := make([]SettingDTO, 0, len(settings))
	for _, s := range settings {
		dtos = append(dtos, settingToDTO(s))
	}
	WriteSuccess(w, dtos, nil)
}

// AdminUpdateSetting writes one setting through the guarded update path:
// unknown keys and wrong value types are rejected, the write is audited
// and the settings cache is invalidated.
func (h *Handler) AdminUpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}

	user, _ := middleware.CurrentUser(r)
	setting, err := h.settings.Update(r.Context(), req.Key, req.Value, user.ID)
	if errors.Is(err, service.ErrUnknownSetting) {
		WriteBadRequest(w, "unknown setting key", map[string]string{"key": req.Key})
		return
	}
	if err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}
	WriteSuccess(w, settingToDTO(setting), nil)
}

// AdminListAudit serves the audit log, newest first.
func (h *Handler) AdminListAudit(w http.ResponseWriter, r *http.Request) {
	limit := int64(50)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			limit = min(n, 200)
		}
	}
	var offset int64
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n >= 0 {
			offset = n
		}
	}

	entries, total, err := h.audit.List(r.Context(), limit, offset)
	if err != nil {
		WriteInternalError(w, "failed to load audit log")
		return
	}
	dtos := make([]AuditEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, auditEntryToDTO(e))
	}
	WriteSuccess(w, dtos, &Meta{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+int64(len(entries)) < total,
	})
}
