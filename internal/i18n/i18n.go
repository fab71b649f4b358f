// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n resolves the request language. The site serves Italian and
// English, with Italian as the default.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

// CookieName is the cookie holding the visitor's language preference.
const CookieName = "gambarie_lang"

var matcher = language.NewMatcher([]language.Tag{
	language.Italian, // first entry is the fallback
	language.English,
})

// Supported reports whether code is a language the site serves.
func Supported(code string) bool {
	return code == model.LangIt || code == model.LangEn
}

// Detect resolves the request language. Priority: explicit ?lang= switch,
// then the preference cookie, then Accept-Language, then Italian.
func Detect(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); Supported(lang) {
		return lang
	}
	if cookie, err := r.Cookie(CookieName); err == nil && Supported(cookie.Value) {
		return cookie.Value
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err == nil && len(tags) > 0 {
		tag, _, _ := matcher.Match(tags...)
		base, _ := tag.Base()
		if Supported(base.String()) {
			return base.String()
		}
	}
	return model.LangIt
}
