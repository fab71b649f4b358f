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

const longEventColumns = `id, title, title_en, description, description_en, organizer, organizer_en,
	start_date, end_date, event_time, location, location_en, category, external_link, image_url,
	cancelled, created_by, created_at, updated_at`

func scanLongEvent(row interface{ Scan(...any) error }) (model.LongEvent, error) {
	var e model.LongEvent
	err := row.Scan(
		&e.ID, &e.Title, &e.TitleEn, &e.Description, &e.DescriptionEn,
		&e.Organizer, &e.OrganizerEn, &e.StartDate, &e.EndDate, &e.EventTime,
		&e.Location, &e.LocationEn, &e.Category, &e.ExternalLink,
		&e.ImageURL, &e.Cancelled, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// ListLongEventsPage returns one page of long events. The window test runs
// on end_date (an event is current until it has ended) while ordering runs
// on start_date then time, matching the single-day listing semantics.
func (q *Queries) ListLongEventsPage(ctx context.Context, arg ListEventsPageParams) ([]model.LongEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM long_events
		WHERE end_date >= ?
		ORDER BY start_date ASC, event_time ASC
		LIMIT ? OFFSET ?`, longEventColumns)
	if arg.Archive {
		query = fmt.Sprintf(`SELECT %s FROM long_events
			WHERE end_date < ?
			ORDER BY start_date DESC, event_time DESC
			LIMIT ? OFFSET ?`, longEventColumns)
	}

	rows, err := q.db.QueryContext(ctx, query, arg.Today, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []model.LongEvent
	for rows.Next() {
		e, err := scanLongEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountLongEvents counts long events still current today, or all of them
// when includeArchive is set.
func (q *Queries) CountLongEvents(ctx context.Context, today string, includeArchive bool) (int64, error) {
	var count int64
	var err error
	if includeArchive {
		err = q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM long_events`).Scan(&count)
	} else {
		err = q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM long_events WHERE end_date >= ?`, today).Scan(&count)
	}
	return count, err
}

// GetLongEvent returns a single long event by ID.
func (q *Queries) GetLongEvent(ctx context.Context, id string) (model.LongEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM long_events WHERE id = ?`, longEventColumns)
	return scanLongEvent(q.db.QueryRowContext(ctx, query, id))
}

// CreateLongEventParams holds the writable fields of a new long event.
type CreateLongEventParams struct {
	Title         string
	TitleEn       string
	Description   string
	DescriptionEn string
	Organizer     string
	OrganizerEn   string
	StartDate     string
	EndDate       string
	EventTime     string
	Location      string
	LocationEn    string
	Category      string
	ExternalLink  string
	ImageURL      string
	Cancelled     bool
	CreatedBy     int64
}

// CreateLongEvent inserts a new long event and returns it.
func (q *Queries) CreateLongEvent(ctx context.Context, arg CreateLongEventParams) (model.LongEvent, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `INSERT INTO long_events
		(id, title, title_en, description, description_en, organizer, organizer_en,
		 start_date, end_date, event_time, location, location_en, category, external_link, image_url,
		 cancelled, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, arg.Title, nullStr(arg.TitleEn), nullStr(arg.Description), nullStr(arg.DescriptionEn),
		arg.Organizer, nullStr(arg.OrganizerEn), arg.StartDate, arg.EndDate, arg.EventTime,
		arg.Location, nullStr(arg.LocationEn), arg.Category, nullStr(arg.ExternalLink),
		nullStr(arg.ImageURL), arg.Cancelled, nullID(arg.CreatedBy), now, now,
	)
	if err != nil {
		return model.LongEvent{}, err
	}
	return q.GetLongEvent(ctx, id)
}

// UpdateLongEventParams holds the writable fields of an existing long event.
type UpdateLongEventParams struct {
	ID            string
	Title         string
	TitleEn       string
	Description   string
	DescriptionEn string
	Organizer     string
	OrganizerEn   string
	StartDate     string
	EndDate       string
	EventTime     string
	Location      string
	LocationEn    string
	Category      string
	ExternalLink  string
	ImageURL      string
	Cancelled     bool
}

// UpdateLongEvent updates a long event in place and returns the stored row.
func (q *Queries) UpdateLongEvent(ctx context.Context, arg UpdateLongEventParams) (model.LongEvent, error) {
	_, err := q.db.ExecContext(ctx, `UPDATE long_events SET
		title = ?, title_en = ?, description = ?, description_en = ?,
		organizer = ?, organizer_en = ?, start_date = ?, end_date = ?, event_time = ?,
		location = ?, location_en = ?, category = ?, external_link = ?,
		image_url = ?, cancelled = ?, updated_at = ?
		WHERE id = ?`,
		arg.Title, nullStr(arg.TitleEn), nullStr(arg.Description), nullStr(arg.DescriptionEn),
		arg.Organizer, nullStr(arg.OrganizerEn), arg.StartDate, arg.EndDate, arg.EventTime,
		arg.Location, nullStr(arg.LocationEn), arg.Category, nullStr(arg.ExternalLink),
		nullStr(arg.ImageURL), arg.Cancelled, time.Now().UTC(), arg.ID,
	)
	if err != nil {
		return model.LongEvent{}, err
	}
	return q.GetLongEvent(ctx, arg.ID)
}

// DeleteLongEvent removes a long event by ID.
func (q *Queries) DeleteLongEvent(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM long_events WHERE id = ?`, id)
	return err
}
