// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/service"
)

// maintenanceExempt lists path prefixes that stay reachable while the
// public site is switched off. Settings and auth must remain available or
// nobody could ever turn the site back on.
var maintenanceExempt = []string{
	"/health",
	"/api/settings/public",
	"/api/auth/",
	"/api/bootstrap-admin",
}

// Maintenance returns HTTP 503 for public endpoints while
// app_public_visible is false. Authenticated admins pass through so they
// can keep working on content during maintenance.
func Maintenance(settings *service.SettingsService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if settings.PublicVisible(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}

			for _, prefix := range maintenanceExempt {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if user, ok := CurrentUser(r); ok && user.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			msg := model.DefaultMaintenanceMsg
			btn := model.DefaultMaintenanceBtn
			if s, err := settings.Get(r.Context(), model.SettingKeyMaintenanceMsg); err == nil {
				msg = s.StringValue()
			}
			if s, err := settings.Get(r.Context(), model.SettingKeyMaintenanceBtn); err == nil {
				btn = s.StringValue()
			}

			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set("Retry-After", "300")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":             "maintenance",
				"message":           msg,
				"admin_button_text": btn,
			})
		})
	}
}
