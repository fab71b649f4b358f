// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

// PublicSettings serves the settings the frontend needs before anything
// else: visibility plus the maintenance copy. It stays reachable during
// maintenance mode by design of the route table.
func (h *Handler) PublicSettings(w http.ResponseWriter, r *http.Request) {
	visible := h.settings.PublicVisible(r.Context())

	msg := model.DefaultMaintenanceMsg
	btn := model.DefaultMaintenanceBtn
	if s, err := h.settings.Get(r.Context(), model.SettingKeyMaintenanceMsg); err == nil {
		msg = s.StringValue()
	}
	if s, err := h.settings.Get(r.Context(), model.SettingKeyMaintenanceBtn); err == nil {
		btn = s.StringValue()
	}

	WriteSuccess(w, map[string]any{
		"app_public_visible":            visible,
		"maintenance_message":           msg,
		"maintenance_admin_button_text": btn,
		"hcaptcha_site_key":             h.cfg.HCaptchaSiteKey,
		"captcha_enabled":               h.cfg.HCaptchaEnabled(),
	}, nil)
}

// Analytics serves the Umami configuration. The feature is skipped
// entirely unless both the script URL and the website id are configured.
func (h *Handler) Analytics(w http.ResponseWriter, _ *http.Request) {
	if !h.cfg.UmamiEnabled() {
		WriteSuccess(w, map[string]any{"enabled": false}, nil)
		return
	}
	WriteSuccess(w, map[string]any{
		"enabled":    true,
		"script_url": h.cfg.UmamiScriptURL,
		"website_id": h.cfg.UmamiWebsiteID,
	}, nil)
}
