// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pennaFedele/gambarie-summer-events/internal/calendar"
	"github.com/pennaFedele/gambarie-summer-events/internal/feed"
	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

// DefaultPageSize is the page size used when the client does not ask for
// one. It matches the page size of the site's infinite scroll.
const DefaultPageSize = 10

// MaxPageSize caps the limit parameter.
const MaxPageSize = 100

// EventDTO is the public JSON shape of an event, localized per request.
type EventDTO struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Organizer    string          `json:"organizer"`
	EventDate    string          `json:"event_date"`
	EventTime    string          `json:"event_time"`
	Location     string          `json:"location"`
	Category     string          `json:"category"`
	ExternalLink string          `json:"external_link,omitempty"`
	Image        *model.ImageRef `json:"image,omitempty"`
	Cancelled    bool            `json:"cancelled"`
}

// LongEventDTO is the public JSON shape of a multi-day event.
type LongEventDTO struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Organizer    string          `json:"organizer"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	EventTime    string          `json:"event_time"`
	Location     string          `json:"location"`
	Category     string          `json:"category"`
	ExternalLink string          `json:"external_link,omitempty"`
	Image        *model.ImageRef `json:"image,omitempty"`
	Cancelled    bool            `json:"cancelled"`
}

func eventToDTO(e model.Event, lang string) EventDTO {
	dto := EventDTO{
		ID:           e.ID,
		Title:        model.LocalizeNull(lang, e.Title, e.TitleEn),
		Description:  model.LocalizeNull(lang, e.Description.String, e.DescriptionEn),
		Organizer:    model.LocalizeNull(lang, e.Organizer, e.OrganizerEn),
		EventDate:    e.EventDate,
		EventTime:    e.EventTime,
		Location:     model.LocalizeNull(lang, e.Location, e.LocationEn),
		Category:     e.Category,
		ExternalLink: e.ExternalLink.String,
		Cancelled:    e.Cancelled,
	}
	if img := e.Image(); !img.IsZero() {
		dto.Image = &img
	}
	return dto
}

func longEventToDTO(e model.LongEvent, lang string) LongEventDTO {
	dto := LongEventDTO{
		ID:           e.ID,
		Title:        model.LocalizeNull(lang, e.Title, e.TitleEn),
		Description:  model.LocalizeNull(lang, e.Description.String, e.DescriptionEn),
		Organizer:    model.LocalizeNull(lang, e.Organizer, e.OrganizerEn),
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		EventTime:    e.EventTime,
		Location:     model.LocalizeNull(lang, e.Location, e.LocationEn),
		Category:     e.Category,
		ExternalLink: e.ExternalLink.String,
		Cancelled:    e.Cancelled,
	}
	if img := e.Image(); !img.IsZero() {
		dto.Image = &img
	}
	return dto
}

// pageParams reads limit/offset/archive from the query string.
func pageParams(r *http.Request) (limit, offset int64, archive bool) {
	limit = DefaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			limit = min(n, MaxPageSize)
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n >= 0 {
			offset = n
		}
	}
	archive = r.URL.Query().Get("archive") == "1" || r.URL.Query().Get("archive") == "true"
	return limit, offset, archive
}

// requestFilter builds the optional day/category filter from the query.
func requestFilter(r *http.Request) feed.Filter {
	q := r.URL.Query()
	return feed.NewFilter(q.Get("date"), q["categories"])
}

// ListEvents serves one page of single-day events. The optional date and
// categories parameters narrow the returned page without affecting paging:
// offsets always address the unfiltered sequence.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset, archive := pageParams(r)
	lang := middleware.Lang(r)

	source := feed.EventSource(h.queries, archive)
	events, err := source(r.Context(), offset, limit)
	if err != nil {
		WriteInternalError(w, "failed to load events")
		return
	}
	hasMore := int64(len(events)) == limit

	filter := requestFilter(r)
	if !filter.IsZero() {
		events = filter.Events(events)
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e, lang))
	}
	WriteSuccess(w, dtos, &Meta{Limit: limit, Offset: offset, HasMore: hasMore})
}

// ListLongEvents serves one page of multi-day events. Day filtering uses
// interval containment, not exact match.
func (h *Handler) ListLongEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset, archive := pageParams(r)
	lang := middleware.Lang(r)

	source := feed.LongEventSource(h.queries, archive)
	events, err := source(r.Context(), offset, limit)
	if err != nil {
		WriteInternalError(w, "failed to load events")
		return
	}
	hasMore := int64(len(events)) == limit

	filter := requestFilter(r)
	if !filter.IsZero() {
		events = filter.LongEvents(events)
	}

	dtos := make([]LongEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, longEventToDTO(e, lang))
	}
	WriteSuccess(w, dtos, &Meta{Limit: limit, Offset: offset, HasMore: hasMore})
}

// CountEvents returns the combined number of events and long events,
// either upcoming only or including the archive.
func (h *Handler) CountEvents(w http.ResponseWriter, r *http.Request) {
	includeArchive := r.URL.Query().Get("archive") == "1" || r.URL.Query().Get("archive") == "true"
	today := model.Today()

	eventCount, err := h.queries.CountEvents(r.Context(), today, includeArchive)
	if err != nil {
		WriteInternalError(w, "failed to count events")
		return
	}
	longCount, err := h.queries.CountLongEvents(r.Context(), today, includeArchive)
	if err != nil {
		WriteInternalError(w, "failed to count events")
		return
	}

	WriteSuccess(w, map[string]int64{
		"events":      eventCount,
		"long_events": longCount,
		"total":       eventCount + longCount,
	}, nil)
}

// EventCalendarICS serves an event as a downloadable iCalendar file.
func (h *Handler) EventCalendarICS(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}
	lang := middleware.Lang(r)

	ics, err := calendar.ICS(event, lang)
	if err != nil {
		WriteInternalError(w, "failed to build calendar file")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+calendar.Filename(event, lang)+`"`)
	_, _ = w.Write([]byte(ics))
}

// EventCalendarURL returns a prefilled Google Calendar link for an event.
func (h *Handler) EventCalendarURL(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}

	url, err := calendar.GoogleCalendarURL(event, middleware.Lang(r))
	if err != nil {
		WriteInternalError(w, "failed to build calendar link")
		return
	}
	WriteSuccess(w, map[string]string{"url": url}, nil)
}

func (h *Handler) loadEvent(w http.ResponseWriter, r *http.Request) (model.Event, bool) {
	id := chi.URLParam(r, "id")
	event, err := h.queries.GetEvent(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "event not found")
		return model.Event{}, false
	}
	if err != nil {
		WriteInternalError(w, "failed to load event")
		return model.Event{}, false
	}
	return event, true
}
