// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package importer

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

// Field length limits for uploaded events.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 2000
	MaxOrganizerLen   = 100
	MaxLocationLen    = 200
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Validate checks one record and returns every violation it finds, in
// Italian since the admin interface is Italian-first. An empty slice
// means the record can be imported.
func Validate(record Record) []string {
	var errs []string

	if strings.TrimSpace(record["title"]) == "" {
		errs = append(errs, "Titolo mancante")
	}
	if strings.TrimSpace(record["organizer"]) == "" {
		errs = append(errs, "Organizzatore mancante")
	}
	if strings.TrimSpace(record["event_date"]) == "" {
		errs = append(errs, "Data mancante")
	}
	if strings.TrimSpace(record["event_time"]) == "" {
		errs = append(errs, "Ora mancante")
	}
	if strings.TrimSpace(record["location"]) == "" {
		errs = append(errs, "Luogo mancante")
	}
	if strings.TrimSpace(record["category"]) == "" {
		errs = append(errs, "Categoria mancante")
	}

	// Limits count characters, not bytes, so accented Italian text is
	// measured the way the admin form shows it.
	if utf8.RuneCountInString(record["title"]) > MaxTitleLen {
		errs = append(errs, fmt.Sprintf("Titolo troppo lungo (max %d caratteri)", MaxTitleLen))
	}
	if utf8.RuneCountInString(record["description"]) > MaxDescriptionLen {
		errs = append(errs, fmt.Sprintf("Descrizione troppo lunga (max %d caratteri)", MaxDescriptionLen))
	}
	if utf8.RuneCountInString(record["organizer"]) > MaxOrganizerLen {
		errs = append(errs, fmt.Sprintf("Nome organizzatore troppo lungo (max %d caratteri)", MaxOrganizerLen))
	}
	if utf8.RuneCountInString(record["location"]) > MaxLocationLen {
		errs = append(errs, fmt.Sprintf("Nome location troppo lungo (max %d caratteri)", MaxLocationLen))
	}

	if category := strings.ToLower(strings.TrimSpace(record["category"])); category != "" && !model.IsValidCategory(category) {
		errs = append(errs, fmt.Sprintf("Categoria non valida: %s. Valide: %s",
			record["category"], strings.Join(model.Categories, ", ")))
	}

	if date := strings.TrimSpace(record["event_date"]); date != "" {
		if !dateRe.MatchString(date) {
			errs = append(errs, "Formato data non valido (usa YYYY-MM-DD)")
		} else if _, err := time.Parse(model.DateLayout, date); err != nil {
			errs = append(errs, "Data non valida")
		}
	}

	if t := strings.TrimSpace(record["event_time"]); t != "" {
		if !timeRe.MatchString(t) {
			errs = append(errs, "Formato ora non valido (usa HH:MM)")
		} else if _, err := time.Parse(model.TimeLayout, t); err != nil {
			errs = append(errs, "Ora non valida (usa formato 24h: 00:00-23:59)")
		}
	}

	if link := strings.TrimSpace(record["external_link"]); link != "" {
		if u, err := url.Parse(link); err != nil || !u.IsAbs() || u.Host == "" {
			errs = append(errs, "Link esterno non valido (deve essere un URL completo)")
		}
	}

	return errs
}
