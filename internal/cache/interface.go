// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides a small key/value cache with in-memory and
// Redis backends, plus a read-through cache for application settings.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is not present in the cache.
var ErrMiss = errors.New("cache: miss")

// Cache is the backend-agnostic key/value interface. Values are opaque
// byte slices; callers own serialization.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
