// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

// CreateAuditEntryParams holds the fields of a new audit log row.
type CreateAuditEntryParams struct {
	Level        string
	Action       string
	ResourceType string
	ResourceID   sql.NullString
	UserID       sql.NullInt64
	Metadata     string
	CreatedAt    time.Time
}

// CreateAuditEntry appends a row to the audit log.
func (q *Queries) CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) error {
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = time.Now().UTC()
	}
	_, err := q.db.ExecContext(ctx, `INSERT INTO audit_log
		(level, action, resource_type, resource_id, user_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Level, arg.Action, arg.ResourceType, arg.ResourceID, arg.UserID, arg.Metadata, arg.CreatedAt)
	return err
}

// ListAuditEntriesParams selects a page of the audit log, newest first.
type ListAuditEntriesParams struct {
	Limit  int64
	Offset int64
}

// ListAuditEntries returns one page of audit rows ordered newest first.
func (q *Queries) ListAuditEntries(ctx context.Context, arg ListAuditEntriesParams) ([]model.AuditEntry, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, level, action, resource_type, resource_id, user_id, metadata, created_at
		FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.Level, &e.Action, &e.ResourceType, &e.ResourceID, &e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountAuditEntries returns the total number of audit rows.
func (q *Queries) CountAuditEntries(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&count)
	return count, err
}

// DeleteOldAuditEntries removes audit rows older than the cutoff time.
func (q *Queries) DeleteOldAuditEntries(ctx context.Context, cutoff time.Time) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM audit_log WHERE created_at < ?`, cutoff)
	return err
}
