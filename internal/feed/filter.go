// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package feed

import (
	"strings"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

// Filter narrows a loaded page of events in memory. A zero Filter matches
// everything: the day match applies only when Day is set, the category
// match only when the set is non-empty.
type Filter struct {
	Day        string
	Categories map[string]struct{}
}

// NewFilter builds a Filter from a selected day and category codes.
// Category codes are normalized to lowercase; empty codes are dropped.
func NewFilter(day string, categories []string) Filter {
	f := Filter{Day: strings.TrimSpace(day)}
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if f.Categories == nil {
			f.Categories = make(map[string]struct{})
		}
		f.Categories[c] = struct{}{}
	}
	return f
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Day == "" && len(f.Categories) == 0
}

func (f Filter) matchCategory(category string) bool {
	if len(f.Categories) == 0 {
		return true
	}
	_, ok := f.Categories[strings.ToLower(category)]
	return ok
}

// MatchEvent tests a single-day event: exact day equality plus category
// membership.
func (f Filter) MatchEvent(e model.Event) bool {
	if f.Day != "" && e.EventDate != f.Day {
		return false
	}
	return f.matchCategory(e.Category)
}

// MatchLongEvent tests a multi-day event: the selected day must fall
// within [start_date, end_date], endpoints included.
func (f Filter) MatchLongEvent(e model.LongEvent) bool {
	if f.Day != "" && !e.Covers(f.Day) {
		return false
	}
	return f.matchCategory(e.Category)
}

// Events returns the subset of events matching the filter.
func (f Filter) Events(events []model.Event) []model.Event {
	if f.IsZero() {
		return events
	}
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if f.MatchEvent(e) {
			out = append(out, e)
		}
	}
	return out
}

// LongEvents returns the subset of long events matching the filter.
func (f Filter) LongEvents(events []model.LongEvent) []model.LongEvent {
	if f.IsZero() {
		return events
	}
	out := make([]model.LongEvent, 0, len(events))
	for _, e := range events {
		if f.MatchLongEvent(e) {
			out = append(out, e)
		}
	}
	return out
}
