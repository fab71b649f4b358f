// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginProtection combines per-IP rate limiting with per-account lockout
// after repeated failures. Lockout duration doubles with each lockout.
type LoginProtection struct {
	limiters   map[string]*rate.Limiter
	limitersMu sync.Mutex
	ipRate     rate.Limit
	ipBurst    int

	failedAttempts map[string]*loginAttempt
	attemptsMu     sync.Mutex

	maxFailedAttempts int
	lockoutDuration   time.Duration
	attemptWindow     time.Duration
}

type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int
}

// NewLoginProtection creates a login protection instance with the default
// policy: one request per two seconds per IP with a burst of five, and a
// fifteen minute lockout after five failures inside fifteen minutes.
func NewLoginProtection() *LoginProtection {
	lp := &LoginProtection{
		limiters:          make(map[string]*rate.Limiter),
		ipRate:            rate.Limit(0.5),
		ipBurst:           5,
		failedAttempts:    make(map[string]*loginAttempt),
		maxFailedAttempts: 5,
		lockoutDuration:   15 * time.Minute,
		attemptWindow:     15 * time.Minute,
	}
	go lp.cleanupLoop()
	return lp
}

// AllowIP reports whether the given IP may attempt a login right now.
func (lp *LoginProtection) AllowIP(ip string) bool {
	lp.limitersMu.Lock()
	limiter, ok := lp.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(lp.ipRate, lp.ipBurst)
		lp.limiters[ip] = limiter
	}
	lp.limitersMu.Unlock()
	return limiter.Allow()
}

// IsLocked reports whether an account is locked and for how much longer.
func (lp *LoginProtection) IsLocked(email string) (bool, time.Duration) {
	lp.attemptsMu.Lock()
	defer lp.attemptsMu.Unlock()

	attempt, ok := lp.failedAttempts[email]
	if !ok {
		return false, 0
	}
	if time.Now().Before(attempt.lockedUntil) {
		return true, time.Until(attempt.lockedUntil)
	}
	return false, 0
}

// RecordFailure records a failed login. It returns true with the lock
// duration when the failure tips the account into a lockout.
func (lp *LoginProtection) RecordFailure(email string) (bool, time.Duration) {
	lp.attemptsMu.Lock()
	defer lp.attemptsMu.Unlock()

	now := time.Now()
	attempt, ok := lp.failedAttempts[email]
	if !ok || now.Sub(attempt.firstFailed) > lp.attemptWindow {
		attempt = &loginAttempt{firstFailed: now}
		lp.failedAttempts[email] = attempt
	}

	attempt.count++
	if attempt.count >= lp.maxFailedAttempts {
		attempt.lockouts++
		duration := lp.lockoutDuration * time.Duration(1<<(attempt.lockouts-1))
		attempt.lockedUntil = now.Add(duration)
		attempt.count = 0
		attempt.firstFailed = now
		return true, duration
	}
	return false, 0
}

// RecordSuccess clears the failure state for an account.
func (lp *LoginProtection) RecordSuccess(email string) {
	lp.attemptsMu.Lock()
	delete(lp.failedAttempts, email)
	lp.attemptsMu.Unlock()
}

func (lp *LoginProtection) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()

		lp.attemptsMu.Lock()
		for email, attempt := range lp.failedAttempts {
			if now.After(attempt.lockedUntil) && now.Sub(attempt.firstFailed) > lp.attemptWindow {
				delete(lp.failedAttempts, email)
			}
		}
		lp.attemptsMu.Unlock()

		lp.limitersMu.Lock()
		if len(lp.limiters) > 10000 {
			lp.limiters = make(map[string]*rate.Limiter)
		}
		lp.limitersMu.Unlock()
	}
}

// ClientIP extracts the caller's IP, preferring X-Forwarded-For when the
// app runs behind a reverse proxy.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
