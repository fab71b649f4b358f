// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockoutAfterMaxFailures(t *testing.T) {
	lp := NewLoginProtection()
	email := "mario@example.com"

	for i := 0; i < lp.maxFailedAttempts-1; i++ {
		locked, _ := lp.RecordFailure(email)
		assert.False(t, locked, "attempt %d must not lock", i+1)
	}

	locked, duration := lp.RecordFailure(email)
	assert.True(t, locked)
	assert.Equal(t, lp.lockoutDuration, duration)

	isLocked, remaining := lp.IsLocked(email)
	assert.True(t, isLocked)
	assert.Greater(t, remaining, time.Duration(0))
}

func TestLockoutDurationDoubles(t *testing.T) {
	lp := NewLoginProtection()
	email := "mario@example.com"

	trip := func() time.Duration {
		var d time.Duration
		for {
			locked, duration := lp.RecordFailure(email)
			if locked {
				d = duration
				break
			}
		}
		return d
	}

	first := trip()
	second := trip()
	third := trip()
	assert.Equal(t, lp.lockoutDuration, first)
	assert.Equal(t, 2*first, second)
	assert.Equal(t, 4*first, third)
}

func TestRecordSuccessClearsFailures(t *testing.T) {
	lp := NewLoginProtection()
	email := "mario@example.com"

	for i := 0; i < lp.maxFailedAttempts-1; i++ {
		lp.RecordFailure(email)
	}
	lp.RecordSuccess(email)

	// A fresh run of failures is needed to lock again.
	locked, _ := lp.RecordFailure(email)
	assert.False(t, locked)
	isLocked, _ := lp.IsLocked(email)
	assert.False(t, isLocked)
}

func TestAccountsAreIsolated(t *testing.T) {
	lp := NewLoginProtection()

	for i := 0; i < lp.maxFailedAttempts; i++ {
		lp.RecordFailure("a@example.com")
	}
	isLocked, _ := lp.IsLocked("a@example.com")
	assert.True(t, isLocked)

	isLocked, _ = lp.IsLocked("b@example.com")
	assert.False(t, isLocked)
}

func TestAllowIPRateLimits(t *testing.T) {
	lp := NewLoginProtection()

	allowedAll := true
	for i := 0; i < 20; i++ {
		if !lp.AllowIP("203.0.113.7") {
			allowedAll = false
			break
		}
	}
	assert.False(t, allowedAll, "burst must be exhausted within 20 attempts")

	// Other addresses have their own limiter.
	assert.True(t, lp.AllowIP("203.0.113.8"))
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.1:54321"
	assert.Equal(t, "192.0.2.1", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.9, 10.0.0.1")
	assert.Equal(t, "198.51.100.9", ClientIP(r))
}
