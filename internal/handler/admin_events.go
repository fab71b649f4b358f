// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pennaFedele/gambarie-summer-events/internal/feed"
	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
)

var (
	adminDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	adminTimeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// AdminEventDTO is the admin JSON shape of an event. Unlike the public
// DTO it carries both languages verbatim so the edit form can round-trip
// them.
type AdminEventDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	TitleEn       string    `json:"title_en,omitempty"`
	Description   string    `json:"description,omitempty"`
	DescriptionEn string    `json:"description_en,omitempty"`
	Organizer     string    `json:"organizer"`
	OrganizerEn   string    `json:"organizer_en,omitempty"`
	EventDate     string    `json:"event_date"`
	EventTime     string    `json:"event_time"`
	Location      string    `json:"location"`
	LocationEn    string    `json:"location_en,omitempty"`
	Category      string    `json:"category"`
	ExternalLink  string    `json:"external_link,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Cancelled     bool      `json:"cancelled"`
	CreatedBy     *int64    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AdminLongEventDTO is the admin JSON shape of a multi-day event.
type AdminLongEventDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	TitleEn       string    `json:"title_en,omitempty"`
	Description   string    `json:"description,omitempty"`
	DescriptionEn string    `json:"description_en,omitempty"`
	Organizer     string    `json:"organizer"`
	OrganizerEn   string    `json:"organizer_en,omitempty"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	EventTime     string    `json:"event_time"`
	Location      string    `json:"location"`
	LocationEn    string    `json:"location_en,omitempty"`
	Category      string    `json:"category"`
	ExternalLink  string    `json:"external_link,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Cancelled     bool      `json:"cancelled"`
	CreatedBy     *int64    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func nullableID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}

func adminEventToDTO(e model.Event) AdminEventDTO {
	return AdminEventDTO{
		ID:            e.ID,
		Title:         e.Title,
		TitleEn:       e.TitleEn.String,
		Description:   e.Description.String,
		DescriptionEn: e.DescriptionEn.String,
		Organizer:     e.Organizer,
		OrganizerEn:   e.OrganizerEn.String,
		EventDate:     e.EventDate,
		EventTime:     e.EventTime,
		Location:      e.Location,
		LocationEn:    e.LocationEn.String,
		Category:      e.Category,
		ExternalLink:  e.ExternalLink.String,
		ImageURL:      e.ImageURL.String,
		Cancelled:     e.Cancelled,
		CreatedBy:     nullableID(e.CreatedBy),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func adminLongEventToDTO(e model.LongEvent) AdminLongEventDTO {
	return AdminLongEventDTO{
		ID:            e.ID,
		Title:         e.Title,
		TitleEn:       e.TitleEn.String,
		Description:   e.Description.String,
		DescriptionEn: e.DescriptionEn.String,
		Organizer:     e.Organizer,
		OrganizerEn:   e.OrganizerEn.String,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		EventTime:     e.EventTime,
		Location:      e.Location,
		LocationEn:    e.LocationEn.String,
		Category:      e.Category,
		ExternalLink:  e.ExternalLink.String,
		ImageURL:      e.ImageURL.String,
		Cancelled:     e.Cancelled,
		CreatedBy:     nullableID(e.CreatedBy),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// eventInput is the admin payload for creating or updating an event.
type eventInput struct {
	Title         string `json:"title"`
	TitleEn       string `json:"title_en"`
	Description   string `json:"description"`
	DescriptionEn string `json:"description_en"`
	Organizer     string `json:"organizer"`
	OrganizerEn   string `json:"organizer_en"`
	EventDate     string `json:"event_date"`
	EventTime     string `json:"event_time"`
	Location      string `json:"location"`
	LocationEn    string `json:"location_en"`
	Category      string `json:"category"`
	ExternalLink  string `json:"external_link"`
	ImageURL      string `json:"image_url"`
	Cancelled     bool   `json:"cancelled"`
}

func (in *eventInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.TitleEn = strings.TrimSpace(in.TitleEn)
	in.Description = strings.TrimSpace(in.Description)
	in.DescriptionEn = strings.TrimSpace(in.DescriptionEn)
	in.Organizer = strings.TrimSpace(in.Organizer)
	in.OrganizerEn = strings.TrimSpace(in.OrganizerEn)
	in.EventDate = strings.TrimSpace(in.EventDate)
	in.EventTime = strings.TrimSpace(in.EventTime)
	in.Location = strings.TrimSpace(in.Location)
	in.LocationEn = strings.TrimSpace(in.LocationEn)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.ExternalLink = strings.TrimSpace(in.ExternalLink)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

func (in *eventInput) validate() map[string]string {
	errs := map[string]string{}
	if in.Title == "" {
		errs["title"] = "required"
	}
	if in.Organizer == "" {
		errs["organizer"] = "required"
	}
	if in.Location == "" {
		errs["location"] = "required"
	}
	if !adminDateRe.MatchString(in.EventDate) {
		errs["event_date"] = "must be YYYY-MM-DD"
	} else if _, err := time.Parse(model.DateLayout, in.EventDate); err != nil {
		errs["event_date"] = "not a valid calendar date"
	}
	if !adminTimeRe.MatchString(in.EventTime) {
		errs["event_time"] = "must be HH:MM"
	} else if _, err := time.Parse(model.TimeLayout, in.EventTime); err != nil {
		errs["event_time"] = "must be between 00:00 and 23:59"
	}
	if !model.IsValidCategory(in.Category) {
		errs["category"] = "unknown category"
	}
	if in.ExternalLink != "" {
		if u, err := url.Parse(in.ExternalLink); err != nil || !u.IsAbs() || u.Host == "" {
			errs["external_link"] = "must be an absolute URL"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AdminListEvents serves events for the admin tables, newest page first
// with the archive switch handled like the public listing.
func (h *Handler) AdminListEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset, archive := pageParams(r)

	source := feed.EventSource(h.queries, archive)
	events, err := source(r.Context(), offset, limit)
	if err != nil {
		WriteInternalError(w, "failed to load events")
		return
	}

	dtos := make([]AdminEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, adminEventToDTO(e))
	}
	WriteSuccess(w, dtos, &Meta{Limit: limit, Offset: offset, HasMore: int64(len(events)) == limit})
}

// AdminCreateEvent creates a single-day event.
func (h *Handler) AdminCreateEvent(w http.ResponseWriter, r *http.Request) {
	var in eventInput
	if err := decodeJSON(r, &in); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	in.normalize()
	if errs := in.validate(); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	user, _ := middleware.CurrentUser(r)
	event, err := h.queries.CreateEvent(r.Context(), store.CreateEventParams{
		Title:         in.Title,
		TitleEn:       in.TitleEn,
		Description:   in.Description,
		DescriptionEn: in.DescriptionEn,
		Organizer:     in.Organizer,
		OrganizerEn:   in.OrganizerEn,
		EventDate:     in.EventDate,
		EventTime:     in.EventTime,
		Location:      in.Location,
		LocationEn:    in.LocationEn,
		Category:      in.Category,
		ExternalLink:  in.ExternalLink,
		ImageURL:      in.ImageURL,
		Cancelled:     in.Cancelled,
		CreatedBy:     user.ID,
	})
	if err != nil {
		WriteInternalError(w, "failed to create event")
		return
	}
	WriteCreated(w, adminEventToDTO(event))
}

// AdminGetEvent returns one event, archive included.
func (h *Handler) AdminGetEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, adminEventToDTO(event), nil)
}

// AdminUpdateEvent updates an event in place.
func (h *Handler) AdminUpdateEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}

	var in eventInput
	if err := decodeJSON(r, &in); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	in.normalize()
	if errs := in.validate(); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	updated, err := h.queries.UpdateEvent(r.Context(), store.UpdateEventParams{
		ID:            event.ID,
		Title:         in.Title,
		TitleEn:       in.TitleEn,
		Description:   in.Description,
		DescriptionEn: in.DescriptionEn,
		Organizer:     in.Organizer,
		OrganizerEn:   in.OrganizerEn,
		EventDate:     in.EventDate,
		EventTime:     in.EventTime,
		Location:      in.Location,
		LocationEn:    in.LocationEn,
		Category:      in.Category,
		ExternalLink:  in.ExternalLink,
		ImageURL:      in.ImageURL,
		Cancelled:     in.Cancelled,
	})
	if err != nil {
		WriteInternalError(w, "failed to update event")
		return
	}
	WriteSuccess(w, adminEventToDTO(updated), nil)
}

// AdminDeleteEvent removes an event together with its stored image files.
func (h *Handler) AdminDeleteEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteEvent(r.Context(), event.ID); err != nil {
		WriteInternalError(w, "failed to delete event")
		return
	}
	h.removeImageFiles(event.Image())

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}

// longEventInput is the admin payload for multi-day events.
type longEventInput struct {
	eventInput
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (in *longEventInput) validateLong() map[string]string {
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	// The embedded validate checks event_date, which long events replace
	// with the interval, so satisfy it before delegating.
	in.EventDate = in.StartDate

	errs := in.validate()
	if errs == nil {
		errs = map[string]string{}
	}
	delete(errs, "event_date")
	if !adminDateRe.MatchString(in.StartDate) {
		errs["start_date"] = "must be YYYY-MM-DD"
	} else if _, err := time.Parse(model.DateLayout, in.StartDate); err != nil {
		errs["start_date"] = "not a valid calendar date"
	}
	if !adminDateRe.MatchString(in.EndDate) {
		errs["end_date"] = "must be YYYY-MM-DD"
	} else if _, err := time.Parse(model.DateLayout, in.EndDate); err != nil {
		errs["end_date"] = "not a valid calendar date"
	} else if _, ok := errs["start_date"]; !ok && in.EndDate < in.StartDate {
		errs["end_date"] = "must not precede start_date"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AdminListLongEvents serves long events for the admin tables.
func (h *Handler) AdminListLongEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset, archive := pageParams(r)

	source := feed.LongEventSource(h.queries, archive)
	events, err := source(r.Context(), offset, limit)
	if err != nil {
		WriteInternalError(w, "failed to load events")
		return
	}

	dtos := make([]AdminLongEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, adminLongEventToDTO(e))
	}
	WriteSuccess(w, dtos, &Meta{Limit: limit, Offset: offset, HasMore: int64(len(events)) == limit})
}

// AdminCreateLongEvent creates a multi-day event.
func (h *Handler) AdminCreateLongEvent(w http.ResponseWriter, r *http.Request) {
	var in longEventInput
	if err := decodeJSON(r, &in); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	in.normalize()
	if errs := in.validateLong(); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	user, _ := middleware.CurrentUser(r)
	event, err := h.queries.CreateLongEvent(r.Context(), store.CreateLongEventParams{
		Title:         in.Title,
		TitleEn:       in.TitleEn,
		Description:   in.Description,
		DescriptionEn: in.DescriptionEn,
		Organizer:     in.Organizer,
		OrganizerEn:   in.OrganizerEn,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		EventTime:     in.EventTime,
		Location:      in.Location,
		LocationEn:    in.LocationEn,
		Category:      in.Category,
		ExternalLink:  in.ExternalLink,
		ImageURL:      in.ImageURL,
		Cancelled:     in.Cancelled,
		CreatedBy:     user.ID,
	})
	if err != nil {
		WriteInternalError(w, "failed to create event")
		return
	}
	WriteCreated(w, adminLongEventToDTO(event))
}

// AdminUpdateLongEvent updates a multi-day event in place.
func (h *Handler) AdminUpdateLongEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadLongEvent(w, r)
	if !ok {
		return
	}

	var in longEventInput
	if err := decodeJSON(r, &in); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	in.normalize()
	if errs := in.validateLong(); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	updated, err := h.queries.UpdateLongEvent(r.Context(), store.UpdateLongEventParams{
		ID:            event.ID,
		Title:         in.Title,
		TitleEn:       in.TitleEn,
		Description:   in.Description,
		DescriptionEn: in.DescriptionEn,
		Organizer:     in.Organizer,
		OrganizerEn:   in.OrganizerEn,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		EventTime:     in.EventTime,
		Location:      in.Location,
		LocationEn:    in.LocationEn,
		Category:      in.Category,
		ExternalLink:  in.ExternalLink,
		ImageURL:      in.ImageURL,
		Cancelled:     in.Cancelled,
	})
	if err != nil {
		WriteInternalError(w, "failed to update event")
		return
	}
	WriteSuccess(w, adminLongEventToDTO(updated), nil)
}

// AdminDeleteLongEvent removes a multi-day event and its image files.
func (h *Handler) AdminDeleteLongEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadLongEvent(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteLongEvent(r.Context(), event.ID); err != nil {
		WriteInternalError(w, "failed to delete event")
		return
	}
	h.removeImageFiles(event.Image())

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}

func (h *Handler) loadLongEvent(w http.ResponseWriter, r *http.Request) (model.LongEvent, bool) {
	id := chi.URLParam(r, "id")
	event, err := h.queries.GetLongEvent(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "event not found")
		return model.LongEvent{}, false
	}
	if err != nil {
		WriteInternalError(w, "failed to load event")
		return model.LongEvent{}, false
	}
	return event, true
}
