// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including Event, LongEvent, Activity, AppSetting and User.
package model

import (
	"database/sql"
	"strings"
	"time"
)

// Date and time layouts used by event records. Dates are stored as ISO
// strings so that lexicographic ordering in SQLite matches chronological
// ordering.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event categories. These are the only values accepted on create, update
// and CSV import.
const (
	CategoryGastronomia = "gastronomia"
	CategoryCultura     = "cultura"
	CategoryMusica      = "musica"
	CategoryNatura      = "natura"
	CategoryStoria      = "storia"
	CategorySport       = "sport"
	CategoryArte        = "arte"
)

// Categories lists all valid event categories.
var Categories = []string{
	CategoryGastronomia,
	CategoryCultura,
	CategoryMusica,
	CategoryNatura,
	CategoryStoria,
	CategorySport,
	CategoryArte,
}

// IsValidCategory checks a category code case-insensitively.
func IsValidCategory(category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Event represents a single-day event. Italian fields are required, the
// English ones fall back to Italian when empty. Past events are never
// archived: "past" is derived from EventDate at query time.
type Event struct {
	ID            string
	Title         string
	TitleEn       sql.NullString
	Description   sql.NullString
	DescriptionEn sql.NullString
	Organizer     string
	OrganizerEn   sql.NullString
	EventDate     string
	EventTime     string
	Location      string
	LocationEn    sql.NullString
	Category      string
	ExternalLink  sql.NullString
	ImageURL      sql.NullString
	Cancelled     bool
	CreatedBy     sql.NullInt64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPast reports whether the event date is strictly before the given day.
func (e *Event) IsPast(today string) bool {
	return e.EventDate < today
}

// Image decodes the stored image reference, legacy strings included.
func (e *Event) Image() ImageRef {
	return ParseImageRef(e.ImageURL.String)
}

// LongEvent represents a multi-day event. Current/past status is derived
// from EndDate: an event is current as long as its end date has not passed.
type LongEvent struct {
	ID            string
	Title         string
	TitleEn       sql.NullString
	Description   sql.NullString
	DescriptionEn sql.NullString
	Organizer     string
	OrganizerEn   sql.NullString
	StartDate     string
	EndDate       string
	EventTime     string
	Location      string
	LocationEn    sql.NullString
	Category      string
	ExternalLink  sql.NullString
	ImageURL      sql.NullString
	Cancelled     bool
	CreatedBy     sql.NullInt64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPast reports whether the event ended strictly before the given day.
func (e *LongEvent) IsPast(today string) bool {
	return e.EndDate < today
}

// Covers reports whether day falls within [StartDate, EndDate], endpoints
// included.
func (e *LongEvent) Covers(day string) bool {
	return e.StartDate <= day && day <= e.EndDate
}

// Image decodes the stored image reference, legacy strings included.
func (e *LongEvent) Image() ImageRef {
	return ParseImageRef(e.ImageURL.String)
}

// Today returns the current date in the event date layout.
func Today() string {
	return time.Now().Format(DateLayout)
}
