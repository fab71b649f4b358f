// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

func newTestQueries(t *testing.T) *Queries {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return New(db)
}

func eventParams(title, date string) CreateEventParams {
	return CreateEventParams{
		Title:     title,
		Organizer: "Pro Loco",
		EventDate: date,
		EventTime: "21:00",
		Location:  "Piazza Mangeruca",
		Category:  model.CategoryMusica,
	}
}

func TestEventCRUD(t *testing.T) {
	q := newTestQueries(t)

	created, err := q.CreateEvent(t.Context(), eventParams("Concerto", "2026-07-15"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Concerto", created.Title)
	assert.False(t, created.TitleEn.Valid, "empty optional stored as NULL")

	got, err := q.GetEvent(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	updated, err := q.UpdateEvent(t.Context(), UpdateEventParams{
		ID:        created.ID,
		Title:     "Concerto in piazza",
		TitleEn:   "Concert in the square",
		Organizer: created.Organizer,
		EventDate: created.EventDate,
		EventTime: created.EventTime,
		Location:  created.Location,
		Category:  created.Category,
		Cancelled: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Concerto in piazza", updated.Title)
	assert.Equal(t, "Concert in the square", updated.TitleEn.String)
	assert.True(t, updated.Cancelled)

	require.NoError(t, q.DeleteEvent(t.Context(), created.ID))
	_, err = q.GetEvent(t.Context(), created.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListEventsPageWindows(t *testing.T) {
	q := newTestQueries(t)
	today := "2026-07-10"

	dates := []string{"2026-07-08", "2026-07-09", "2026-07-10", "2026-07-11", "2026-07-12"}
	for i, d := range dates {
		_, err := q.CreateEvent(t.Context(), eventParams(fmt.Sprintf("Evento %d", i), d))
		require.NoError(t, err)
	}

	upcoming, err := q.ListEventsPage(t.Context(), ListEventsPageParams{Today: today, Limit: 10})
	require.NoError(t, err)
	require.Len(t, upcoming, 3, "same-day event counts as upcoming")
	assert.Equal(t, "2026-07-10", upcoming[0].EventDate)
	assert.Equal(t, "2026-07-12", upcoming[2].EventDate)

	archive, err := q.ListEventsPage(t.Context(), ListEventsPageParams{Today: today, Archive: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, archive, 2)
	assert.Equal(t, "2026-07-09", archive[0].EventDate, "archive is newest first")

	// Offset paging inside the upcoming window.
	page2, err := q.ListEventsPage(t.Context(), ListEventsPageParams{Today: today, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "2026-07-12", page2[0].EventDate)

	n, err := q.CountEvents(t.Context(), today, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	n, err = q.CountEvents(t.Context(), today, true)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestListEventsPageSortsByTimeWithinDay(t *testing.T) {
	q := newTestQueries(t)

	for _, tm := range []string{"21:00", "09:30", "18:00"} {
		p := eventParams("Evento "+tm, "2026-07-15")
		p.EventTime = tm
		_, err := q.CreateEvent(t.Context(), p)
		require.NoError(t, err)
	}

	events, err := q.ListEventsPage(t.Context(), ListEventsPageParams{Today: "2026-07-01", Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "09:30", events[0].EventTime)
	assert.Equal(t, "21:00", events[2].EventTime)
}

func TestLongEventWindowUsesEndDate(t *testing.T) {
	q := newTestQueries(t)
	today := "2026-07-10"

	mk := func(title, start, end string) {
		_, err := q.CreateLongEvent(t.Context(), CreateLongEventParams{
			Title:     title,
			Organizer: "Comune",
			StartDate: start,
			EndDate:   end,
			EventTime: "10:00",
			Location:  "Gambarie",
			Category:  model.CategoryNatura,
		})
		require.NoError(t, err)
	}
	mk("Passata", "2026-07-01", "2026-07-05")
	mk("In corso", "2026-07-05", "2026-07-12")
	mk("Futura", "2026-07-20", "2026-07-25")

	current, err := q.ListLongEventsPage(t.Context(), ListEventsPageParams{Today: today, Limit: 10})
	require.NoError(t, err)
	require.Len(t, current, 2, "an event already started but not ended is current")

	archive, err := q.ListLongEventsPage(t.Context(), ListEventsPageParams{Today: today, Archive: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, archive, 1)
	assert.Equal(t, "Passata", archive[0].Title)

	n, err := q.CountLongEvents(t.Context(), today, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestActivityCRUDAndOrdering(t *testing.T) {
	q := newTestQueries(t)

	for i, title := range []string{"Trekking", "Mountain bike", "Sci"} {
		_, err := q.CreateActivity(t.Context(), CreateActivityParams{
			TitleIt:      title,
			TypeIt:       "sport",
			InfoLinks:    "[]",
			MapsLinks:    "[]",
			Active:       i != 1,
			DisplayOrder: int64(10 - i),
		})
		require.NoError(t, err)
	}

	active, err := q.ListActivities(t.Context(), true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Sci", active[0].TitleIt, "listing follows display_order ascending")

	all, err := q.ListActivities(t.Context(), false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got := all[0]
	updated, err := q.UpdateActivity(t.Context(), UpdateActivityParams{
		ID:           got.ID,
		TitleIt:      got.TitleIt,
		TitleEn:      "Skiing",
		TypeIt:       got.TypeIt,
		InfoLinks:    got.InfoLinks,
		MapsLinks:    got.MapsLinks,
		Active:       got.Active,
		DisplayOrder: got.DisplayOrder,
	})
	require.NoError(t, err)
	assert.Equal(t, "Skiing", updated.TitleEn)

	require.NoError(t, q.DeleteActivity(t.Context(), got.ID))
	_, err = q.GetActivity(t.Context(), got.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSettingsUpsert(t *testing.T) {
	q := newTestQueries(t)

	require.NoError(t, q.UpsertSetting(t.Context(), model.SettingKeyAppPublicVisible, "false", model.SettingTypeBool))
	s, err := q.GetSetting(t.Context(), model.SettingKeyAppPublicVisible)
	require.NoError(t, err)
	assert.False(t, s.BoolValue())

	// Upsert overwrites in place.
	require.NoError(t, q.UpsertSetting(t.Context(), model.SettingKeyAppPublicVisible, "true", model.SettingTypeBool))
	s, err = q.GetSetting(t.Context(), model.SettingKeyAppPublicVisible)
	require.NoError(t, err)
	assert.True(t, s.BoolValue())

	list, err := q.ListSettings(t.Context())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserQueries(t *testing.T) {
	q := newTestQueries(t)

	u, err := q.CreateUser(t.Context(), CreateUserParams{
		Email:        "mario@example.com",
		PasswordHash: "$argon2id$...",
		Role:         model.RoleUser,
	})
	require.NoError(t, err)
	assert.False(t, u.IsAdmin())

	// Email is unique.
	_, err = q.CreateUser(t.Context(), CreateUserParams{
		Email:        "mario@example.com",
		PasswordHash: "x",
		Role:         model.RoleUser,
	})
	assert.Error(t, err)

	n, err := q.CountAdmins(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, q.SetUserRole(t.Context(), u.ID, model.RoleAdmin))
	n, err = q.CountAdmins(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	byEmail, err := q.GetUserByEmail(t.Context(), "mario@example.com")
	require.NoError(t, err)
	assert.True(t, byEmail.IsAdmin())

	require.NoError(t, q.TouchLastLogin(t.Context(), u.ID))
	byID, err := q.GetUserByID(t.Context(), u.ID)
	require.NoError(t, err)
	assert.True(t, byID.LastLoginAt.Valid)
}

func TestAuditEntries(t *testing.T) {
	q := newTestQueries(t)

	for i := 0; i < 3; i++ {
		err := q.CreateAuditEntry(t.Context(), CreateAuditEntryParams{
			Level:        "info",
			Action:       model.AuditActionCSVImport,
			ResourceType: model.ResourceEvent,
			ResourceID:   sql.NullString{String: fmt.Sprintf("ev-%d", i), Valid: true},
			Metadata:     "{}",
		})
		require.NoError(t, err)
	}

	entries, err := q.ListAuditEntries(t.Context(), ListAuditEntriesParams{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	total, err := q.CountAuditEntries(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	require.NoError(t, q.DeleteOldAuditEntries(t.Context(), time.Now().Add(time.Hour)))
	total, err = q.CountAuditEntries(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
