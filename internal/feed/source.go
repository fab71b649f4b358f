// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package feed

import (
	"context"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
)

// EventSource adapts the events table to a Loader source. The reference
// day is re-evaluated on every fetch so a loader surviving midnight keeps
// a correct window.
func EventSource(queries *store.Queries, archive bool) Source[model.Event] {
	return func(ctx context.Context, offset, limit int64) ([]model.Event, error) {
		return queries.ListEventsPage(ctx, store.ListEventsPageParams{
			Today:   model.Today(),
			Archive: archive,
			Limit:   limit,
			Offset:  offset,
		})
	}
}

// LongEventSource adapts the long_events table to a Loader source.
func LongEventSource(queries *store.Queries, archive bool) Source[model.LongEvent] {
	return func(ctx context.Context, offset, limit int64) ([]model.LongEvent, error) {
		return queries.ListLongEventsPage(ctx, store.ListEventsPageParams{
			Today:   model.Today(),
			Archive: archive,
			Limit:   limit,
			Offset:  offset,
		})
	}
}

// EventKey is the de-duplication key for events.
func EventKey(e model.Event) string { return e.ID }

// LongEventKey is the de-duplication key for long events.
func LongEventKey(e model.LongEvent) string { return e.ID }

// NewEventLoader builds a ready-to-use loader over the events table.
func NewEventLoader(queries *store.Queries, pageSize int, archive bool) *Loader[model.Event] {
	return NewLoader(EventSource(queries, archive), EventKey, pageSize)
}

// NewLongEventLoader builds a ready-to-use loader over the long_events table.
func NewLongEventLoader(queries *store.Queries, pageSize int, archive bool) *Loader[model.LongEvent] {
	return NewLoader(LongEventSource(queries, archive), LongEventKey, pageSize)
}
