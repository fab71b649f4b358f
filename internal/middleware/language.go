// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/pennaFedele/gambarie-summer-events/internal/i18n"
	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

// Language detects the request language and stores it in the request
// context. An explicit ?lang= switch also refreshes the preference cookie.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.Detect(r)

		if switched := r.URL.Query().Get("lang"); i18n.Supported(switched) {
			http.SetCookie(w, &http.Cookie{
				Name:     i18n.CookieName,
				Value:    switched,
				Path:     "/",
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), ContextKeyLang, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Lang returns the language resolved for the request, defaulting to
// Italian when the middleware did not run.
func Lang(r *http.Request) string {
	if lang, ok := r.Context().Value(ContextKeyLang).(string); ok {
		return lang
	}
	return model.LangIt
}
