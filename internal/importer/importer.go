// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package importer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/service"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
)

// Template is the downloadable example file showing the expected format.
const Template = `title,description,organizer,event_date,event_time,location,category,external_link
"Concerto Estivo","Concerto di musica classica","Comune di Santo Stefano","2024-07-15","21:00","Piazza Centrale","musica","https://example.com"
"Escursione Guidata","Passeggiata nei sentieri dell'Aspromonte","Pro Loco","2024-07-20","09:00","Sentiero del Drago","natura",""
"Sagra dei Prodotti Tipici","Degustazione di specialità locali","Associazione Turistica","2024-07-25","19:00","Via Roma","gastronomia",""`

// Result summarizes one import run: how many events were created and the
// per-row errors, each labeled with its line number in the uploaded file.
type Result struct {
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}

// Importer runs validated CSV imports.
type Importer struct {
	queries   *store.Queries
	audit     *service.AuditService
	sanitizer *bluemonday.Policy
}

// New creates an Importer.
func New(db *sql.DB, audit *service.AuditService) *Importer {
	return &Importer{
		queries:   store.New(db),
		audit:     audit,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Run parses csvText and imports each valid row as a new event owned by
// userID. Rows are processed independently: a bad row is reported and
// skipped, never aborting the run. Row numbers in error messages count
// from the top of the file, so the first data row is row 2.
func (imp *Importer) Run(ctx context.Context, csvText string, userID int64) Result {
	records := Parse(csvText)

	result := Result{Errors: []string{}}
	for i, record := range records {
		rowNum := i + 2

		if errs := Validate(record); len(errs) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Riga %d: %s", rowNum, strings.Join(errs, ", ")))
			continue
		}

		event, err := imp.queries.CreateEvent(ctx, store.CreateEventParams{
			Title:        strings.TrimSpace(record["title"]),
			Description:  imp.sanitizer.Sanitize(strings.TrimSpace(record["description"])),
			Organizer:    strings.TrimSpace(record["organizer"]),
			EventDate:    strings.TrimSpace(record["event_date"]),
			EventTime:    strings.TrimSpace(record["event_time"]),
			Location:     strings.TrimSpace(record["location"]),
			Category:     strings.ToLower(strings.TrimSpace(record["category"])),
			ExternalLink: strings.TrimSpace(record["external_link"]),
			CreatedBy:    userID,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Riga %d: Errore di inserimento", rowNum))
			continue
		}

		result.Success++
		imp.audit.Log(ctx, model.AuditActionCSVImport, model.ResourceEvent, event.ID, &userID, map[string]any{
			"event_title": event.Title,
		})
	}
	return result
}
