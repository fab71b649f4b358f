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

const activityColumns = `id, title_it, title_en, description_it, description_en, type_it, type_en,
	info_links, maps_links, image_url, active, display_order, created_by, created_at, updated_at`

func scanActivity(row interface{ Scan(...any) error }) (model.Activity, error) {
	var a model.Activity
	err := row.Scan(
		&a.ID, &a.TitleIt, &a.TitleEn, &a.DescriptionIt, &a.DescriptionEn,
		&a.TypeIt, &a.TypeEn, &a.InfoLinks, &a.MapsLinks, &a.ImageURL,
		&a.Active, &a.DisplayOrder, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// ListActivities returns activities ordered by display_order ascending.
// When activeOnly is set, inactive rows are excluded (the public listing).
func (q *Queries) ListActivities(ctx context.Context, activeOnly bool) ([]model.Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities ORDER BY display_order ASC, created_at ASC`, activityColumns)
	if activeOnly {
		query = fmt.Sprintf(`SELECT %s FROM activities WHERE active = 1 ORDER BY display_order ASC, created_at ASC`, activityColumns)
	}

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var activities []model.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// GetActivity returns a single activity by ID.
func (q *Queries) GetActivity(ctx context.Context, id string) (model.Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE id = ?`, activityColumns)
	return scanActivity(q.db.QueryRowContext(ctx, query, id))
}

// CreateActivityParams holds the writable fields of a new activity.
type CreateActivityParams struct {
	TitleIt       string
	TitleEn       string
	DescriptionIt string
	DescriptionEn string
	TypeIt        string
	TypeEn        string
	InfoLinks     string
	MapsLinks     string
	ImageURL      string
	Active        bool
	DisplayOrder  int64
	CreatedBy     int64
}

// CreateActivity inserts a new activity and returns it.
func (q *Queries) CreateActivity(ctx context.Context, arg CreateActivityParams) (model.Activity, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `INSERT INTO activities
		(id, title_it, title_en, description_it, description_en, type_it, type_en,
		 info_links, maps_links, image_url, active, display_order, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, arg.TitleIt, arg.TitleEn, nullStr(arg.DescriptionIt), nullStr(arg.DescriptionEn),
		arg.TypeIt, arg.TypeEn, arg.InfoLinks, arg.MapsLinks, nullStr(arg.ImageURL),
		arg.Active, arg.DisplayOrder, nullID(arg.CreatedBy), now, now,
	)
	if err != nil {
		return model.Activity{}, err
	}
	return q.GetActivity(ctx, id)
}

// UpdateActivityParams holds the writable fields of an existing activity.
type UpdateActivityParams struct {
	ID            string
	TitleIt       string
	TitleEn       string
	DescriptionIt string
	DescriptionEn string
	TypeIt        string
	TypeEn        string
	InfoLinks     string
	MapsLinks     string
	ImageURL      string
	Active        bool
	DisplayOrder  int64
}

// UpdateActivity updates an activity in place and returns the stored row.
func (q *Queries) UpdateActivity(ctx context.Context, arg UpdateActivityParams) (model.Activity, error) {
	_, err := q.db.ExecContext(ctx, `UPDATE activities SET
		title_it = ?, title_en = ?, description_it = ?, description_en = ?,
		type_it = ?, type_en = ?, info_links = ?, maps_links = ?, image_url = ?,
		active = ?, display_order = ?, updated_at = ?
		WHERE id = ?`,
		arg.TitleIt, arg.TitleEn, nullStr(arg.DescriptionIt), nullStr(arg.DescriptionEn),
		arg.TypeIt, arg.TypeEn, arg.InfoLinks, arg.MapsLinks, nullStr(arg.ImageURL),
		arg.Active, arg.DisplayOrder, time.Now().UTC(), arg.ID,
	)
	if err != nil {
		return model.Activity{}, err
	}
	return q.GetActivity(ctx, arg.ID)
}

// DeleteActivity removes an activity by ID.
func (q *Queries) DeleteActivity(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	return err
}
