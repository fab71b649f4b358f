// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
)

// ErrAdminExists is returned when the first-admin bootstrap runs after an
// admin already exists.
var ErrAdminExists = errors.New("an admin already exists")

// BootstrapService promotes the very first user to admin. It exists so a
// fresh deployment can be claimed without touching the database by hand.
type BootstrapService struct {
	db    *sql.DB
	audit *AuditService
}

// NewBootstrapService creates a BootstrapService.
func NewBootstrapService(db *sql.DB, audit *AuditService) *BootstrapService {
	return &BootstrapService{db: db, audit: audit}
}

// AssignFirstAdmin promotes userID to admin if and only if no admin exists
// yet. The check and the promotion run in one transaction so two racing
// callers cannot both win.
func (s *BootstrapService) AssignFirstAdmin(ctx context.Context, userID int64) (model.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := store.New(tx)
	count, err := q.CountAdmins(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return model.User{}, ErrAdminExists
	}
	if err := q.SetUserRole(ctx, userID, model.RoleAdmin); err != nil {
		return model.User{}, fmt.Errorf("set role: %w", err)
	}
	user, err := q.GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.User{}, fmt.Errorf("commit: %w", err)
	}

	s.audit.Log(ctx, model.AuditActionFirstAdmin, model.ResourceUser, strconv.FormatInt(userID, 10), &userID, map[string]any{
		"email": user.Email,
	})
	return user, nil
}
