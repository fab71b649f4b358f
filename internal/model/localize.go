// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "database/sql"

// Site languages. Italian is the canonical content language; English
// fields are optional and fall back to Italian.
const (
	LangIt = "it"
	LangEn = "en"
)

// Localize resolves a bilingual field pair for the requested language.
// The English value is used only when the language is English and the
// value is non-empty; everything else resolves to Italian.
func Localize(lang, it, en string) string {
	if lang == LangEn && en != "" {
		return en
	}
	return it
}

// LocalizeNull is Localize for nullable English columns.
func LocalizeNull(lang, it string, en sql.NullString) string {
	if lang == LangEn && en.Valid && en.String != "" {
		return en.String
	}
	return it
}
