// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package feed implements the incremental event feed: offset-paginated
// loading with idempotent merge on "load more", and the in-memory filter
// layer applied to a loaded page.
package feed

import (
	"context"
	"sync"
)

// Source fetches one offset-aligned page of records.
type Source[T any] func(ctx context.Context, offset, limit int64) ([]T, error)

// Loader accumulates pages from a Source. Merging is keyed: a record whose
// key is already present is dropped, which defends against duplicate rows
// when concurrent inserts shift the backend offsets. Insertion order is
// preserved, so the merged collection stays in backend sort order.
//
// Each consumer owns its Loader; the mutex only guards against a stray
// concurrent LoadMore/Refresh pair, it is not a shared-state discipline.
type Loader[T any] struct {
	source   Source[T]
	key      func(T) string
	pageSize int

	mu      sync.Mutex
	items   []T
	seen    map[string]struct{}
	offset  int64
	hasMore bool
	loading bool
}

// NewLoader creates a Loader over source with the given page size. The key
// function extracts the identifier used for de-duplication.
func NewLoader[T any](source Source[T], key func(T) string, pageSize int) *Loader[T] {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Loader[T]{
		source:   source,
		key:      key,
		pageSize: pageSize,
		seen:     make(map[string]struct{}),
		hasMore:  true,
	}
}

// Refresh replaces the collection with the first page and resets the
// offset cursor. On error the previous collection and cursor are left
// unchanged.
func (l *Loader[T]) Refresh(ctx context.Context) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return nil
	}
	l.loading = true
	l.mu.Unlock()

	page, err := l.source(ctx, 0, int64(l.pageSize))

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		return err
	}

	l.items = make([]T, 0, len(page))
	l.seen = make(map[string]struct{}, len(page))
	for _, item := range page {
		k := l.key(item)
		if _, dup := l.seen[k]; dup {
			continue
		}
		l.seen[k] = struct{}{}
		l.items = append(l.items, item)
	}
	if len(page) > 0 {
		l.offset = int64(l.pageSize)
	} else {
		l.offset = 0
	}
	l.hasMore = len(page) == l.pageSize
	return nil
}

// LoadMore fetches the next page and merges it into the collection. It is
// a no-op when a prior page exhausted the data or a fetch is already in
// flight. The offset cursor advances only when the fetched page is
// non-empty.
func (l *Loader[T]) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if !l.hasMore || l.loading {
		l.mu.Unlock()
		return nil
	}
	l.loading = true
	offset := l.offset
	l.mu.Unlock()

	page, err := l.source(ctx, offset, int64(l.pageSize))

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		return err
	}

	for _, item := range page {
		k := l.key(item)
		if _, dup := l.seen[k]; dup {
			continue
		}
		l.seen[k] = struct{}{}
		l.items = append(l.items, item)
	}
	if len(page) > 0 {
		l.offset = offset + int64(l.pageSize)
	}
	// Page-size equality is an approximation: when the total row count is
	// an exact multiple of the page size this reports one spare page,
	// resolved by a single empty fetch. Kept as-is intentionally.
	l.hasMore = len(page) == l.pageSize
	return nil
}

// Items returns a copy of the merged collection in insertion order.
func (l *Loader[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the size of the merged collection.
func (l *Loader[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// HasMore reports whether another page may be available.
func (l *Loader[T]) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

// Loading reports whether a fetch is in flight.
func (l *Loader[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}
