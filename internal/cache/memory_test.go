// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()

	require.NoError(t, c.Set(t.Context(), "k", []byte("value"), 0))
	got, err := c.Get(t.Context(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()

	_, err := c.Get(t.Context(), "absent")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()

	require.NoError(t, c.Set(t.Context(), "k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, err := c.Get(t.Context(), "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()

	require.NoError(t, c.Set(t.Context(), "k", []byte("v"), 0))
	require.NoError(t, c.Delete(t.Context(), "k"))
	_, err := c.Get(t.Context(), "k")
	assert.ErrorIs(t, err, ErrMiss)

	// Deleting an absent key is not an error.
	assert.NoError(t, c.Delete(t.Context(), "absent"))
}

func TestMemoryCacheGetReturnsCopy(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()

	require.NoError(t, c.Set(t.Context(), "k", []byte("abc"), 0))
	got, err := c.Get(t.Context(), "k")
	require.NoError(t, err)
	got[0] = 'x'

	again, err := c.Get(t.Context(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again, "caller mutation must not leak into the cache")
}

func TestMemoryCacheCloseIdempotent(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
