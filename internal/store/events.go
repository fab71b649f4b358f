// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

const eventColumns = `id, title, title_en, description, description_en, organizer, organizer_en,
	event_date, event_time, location, location_en, category, external_link, image_url,
	cancelled, created_by, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.TitleEn, &e.Description, &e.DescriptionEn,
		&e.Organizer, &e.OrganizerEn, &e.EventDate, &e.EventTime,
		&e.Location, &e.LocationEn, &e.Category, &e.ExternalLink,
		&e.ImageURL, &e.Cancelled, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// ListEventsPageParams selects one offset-aligned page of events around the
// given day. Archive mode flips both the date window and the sort direction.
type ListEventsPageParams struct {
	Today   string
	Archive bool
	Limit   int64
	Offset  int64
}

// ListEventsPage returns events with event_date >= today ordered ascending
// by date then time, or, in archive mode, event_date < today descending.
func (q *Queries) ListEventsPage(ctx context.Context, arg ListEventsPageParams) ([]model.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events
		WHERE event_date >= ?
		ORDER BY event_date ASC, event_time ASC
		LIMIT ? OFFSET ?`, eventColumns)
	if arg.Archive {
		query = fmt.Sprintf(`SELECT %s FROM events
			WHERE event_date < ?
			ORDER BY event_date DESC, event_time DESC
			LIMIT ? OFFSET ?`, eventColumns)
	}

	rows, err := q.db.QueryContext(ctx, query, arg.Today, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountEvents counts events on or after today, or all events when
// includeArchive is set.
func (q *Queries) CountEvents(ctx context.Context, today string, includeArchive bool) (int64, error) {
	var count int64
	var err error
	if includeArchive {
		err = q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	} else {
		err = q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE event_date >= ?`, today).Scan(&count)
	}
	return count, err
}

// GetEvent returns a single event by ID.
func (q *Queries) GetEvent(ctx context.Context, id string) (model.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = ?`, eventColumns)
	return scanEvent(q.db.QueryRowContext(ctx, query, id))
}

// CreateEventParams holds the writable fields of a new event.
type CreateEventParams struct {
	Title         string
	TitleEn       string
	Description   string
	DescriptionEn string
	Organizer     string
	OrganizerEn   string
	EventDate     string
	EventTime     string
	Location      string
	LocationEn    string
	Category      string
	ExternalLink  string
	ImageURL      string
	Cancelled     bool
	CreatedBy     int64
}

// CreateEvent inserts a new event and returns it.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `INSERT INTO events
		(id, title, title_en, description, description_en, organizer, organizer_en,
		 event_date, event_time, location, location_en, category, external_link, image_url,
		 cancelled, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, arg.Title, nullStr(arg.TitleEn), nullStr(arg.Description), nullStr(arg.DescriptionEn),
		arg.Organizer, nullStr(arg.OrganizerEn), arg.EventDate, arg.EventTime,
		arg.Location, nullStr(arg.LocationEn), arg.Category, nullStr(arg.ExternalLink),
		nullStr(arg.ImageURL), arg.Cancelled, nullID(arg.CreatedBy), now, now,
	)
	if err != nil {
		return model.Event{}, err
	}
	return q.GetEvent(ctx, id)
}

// UpdateEventParams holds the writable fields of an existing event.
type UpdateEventParams struct {
	ID            string
	Title         string
	TitleEn       string
	Description   string
	DescriptionEn string
	Organizer     string
	OrganizerEn   string
	EventDate     string
	EventTime     string
	Location      string
	LocationEn    string
	Category      string
	ExternalLink  string
	ImageURL      string
	Cancelled     bool
}

// UpdateEvent updates an event in place and returns the stored row.
func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (model.Event, error) {
	_, err := q.db.ExecContext(ctx, `UPDATE events SET
		title = ?, title_en = ?, description = ?, description_en = ?,
		organizer = ?, organizer_en = ?, event_date = ?, event_time = ?,
		location = ?, location_en = ?, category = ?, external_link = ?,
		image_url = ?, cancelled = ?, updated_at = ?
		WHERE id = ?`,
		arg.Title, nullStr(arg.TitleEn), nullStr(arg.Description), nullStr(arg.DescriptionEn),
		arg.Organizer, nullStr(arg.OrganizerEn), arg.EventDate, arg.EventTime,
		arg.Location, nullStr(arg.LocationEn), arg.Category, nullStr(arg.ExternalLink),
		nullStr(arg.ImageURL), arg.Cancelled, time.Now().UTC(), arg.ID,
	)
	if err != nil {
		return model.Event{}, err
	}
	return q.GetEvent(ctx, arg.ID)
}

// DeleteEvent removes an event by ID.
func (q *Queries) DeleteEvent(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}
