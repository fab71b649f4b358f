// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic above the store: audit logging,
// guarded settings updates and the first-admin bootstrap.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
)

// AuditService appends entries to the audit log. Failures to write an
// audit row are logged but never propagated: auditing must not break the
// operation being audited.
type AuditService struct {
	queries *store.Queries
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{queries: store.New(db)}
}

// Log records an action against a resource.
func (s *AuditService) Log(ctx context.Context, action, resourceType, resourceID string, userID *int64, metadata map[string]any) {
	var nullUserID sql.NullInt64
	if userID != nil {
		nullUserID = sql.NullInt64{Int64: *userID, Valid: true}
	}
	var nullResourceID sql.NullString
	if resourceID != "" {
		nullResourceID = sql.NullString{String: resourceID, Valid: true}
	}

	metadataJSON := "{}"
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	err := s.queries.CreateAuditEntry(ctx, store.CreateAuditEntryParams{
		Level:        model.AuditLevelInfo,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   nullResourceID,
		UserID:       nullUserID,
		Metadata:     metadataJSON,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to write audit entry", "action", action, "error", err)
	}
}

// List returns one page of audit entries together with the total count.
func (s *AuditService) List(ctx context.Context, limit, offset int64) ([]model.AuditEntry, int64, error) {
	entries, err := s.queries.ListAuditEntries(ctx, store.ListAuditEntriesParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.queries.CountAuditEntries(ctx)
	return entries, total, err
}

// DeleteOlderThan prunes audit rows older than the given duration.
func (s *AuditService) DeleteOlderThan(ctx context.Context, olderThan time.Duration) error {
	return s.queries.DeleteOldAuditEntries(ctx, time.Now().Add(-olderThan))
}
