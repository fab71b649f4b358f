// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Link is a labeled URL attached to an activity (info or maps link).
// Order within the stored JSON array is significant.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Activity is a non-dated offering (a sport, a tour). Only active
// activities are shown publicly, ordered by DisplayOrder ascending.
type Activity struct {
	ID            string
	TitleIt       string
	TitleEn       string
	DescriptionIt sql.NullString
	DescriptionEn sql.NullString
	TypeIt        string
	TypeEn        string
	InfoLinks     string // JSON array of Link
	MapsLinks     string // JSON array of Link
	ImageURL      sql.NullString
	Active        bool
	DisplayOrder  int64
	CreatedBy     sql.NullInt64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DecodeLinks parses a stored JSON link list. Malformed or empty values
// decode as an empty list rather than an error; the raw value is glue a
// consumer can always regenerate from the admin form.
func DecodeLinks(raw string) []Link {
	if raw == "" {
		return nil
	}
	var links []Link
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		return nil
	}
	return links
}

// EncodeLinks serializes a link list for storage.
func EncodeLinks(links []Link) string {
	if len(links) == 0 {
		return "[]"
	}
	b, err := json.Marshal(links)
	if err != nil {
		return "[]"
	}
	return string(b)
}
