// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
)

func newTestBootstrap(t *testing.T) (*BootstrapService, *sql.DB) {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))
	return NewBootstrapService(db, NewAuditService(db)), db
}

func createUser(t *testing.T, db *sql.DB, email string) model.User {
	t.Helper()
	u, err := store.New(db).CreateUser(t.Context(), store.CreateUserParams{
		Email:        email,
		PasswordHash: "hash",
		Role:         model.RoleUser,
	})
	require.NoError(t, err)
	return u
}

func TestAssignFirstAdmin(t *testing.T) {
	b, db := newTestBootstrap(t)
	u := createUser(t, db, "first@example.com")

	promoted, err := b.AssignFirstAdmin(t.Context(), u.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	entries, err := store.New(db).ListAuditEntries(t.Context(), store.ListAuditEntriesParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.AuditActionFirstAdmin, entries[0].Action)
}

func TestAssignFirstAdminOnlyOnce(t *testing.T) {
	b, db := newTestBootstrap(t)
	first := createUser(t, db, "first@example.com")
	second := createUser(t, db, "second@example.com")

	_, err := b.AssignFirstAdmin(t.Context(), first.ID)
	require.NoError(t, err)

	_, err = b.AssignFirstAdmin(t.Context(), second.ID)
	assert.ErrorIs(t, err, ErrAdminExists)

	// The loser keeps its plain role.
	u, err := store.New(db).GetUserByID(t.Context(), second.ID)
	require.NoError(t, err)
	assert.False(t, u.IsAdmin())
}
