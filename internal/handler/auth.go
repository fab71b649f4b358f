// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/pennaFedele/gambarie-summer-events/internal/auth"
	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/service"
	"github.com/pennaFedele/gambarie-summer-events/internal/session"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
)

// MinPasswordLength is enforced on registration.
const MinPasswordLength = 8

type credentialsRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captcha_token"`
}

// Login authenticates a user and starts a session. Attempts are rate
// limited per IP and accounts lock after repeated failures.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ip := middleware.ClientIP(r)
	if !h.loginGate.AllowIP(ip) {
		WriteError(w, http.StatusTooManyRequests, "rate_limited", "Too many login attempts, slow down", nil)
		return
	}

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if locked, remaining := h.loginGate.IsLocked(req.Email); locked {
		WriteError(w, http.StatusTooManyRequests, "account_locked",
			fmt.Sprintf("Account temporarily locked, retry in %s", remaining.Round(time.Second)), nil)
		return
	}

	ok, err := h.captcha.Verify(r.Context(), req.CaptchaToken, ip)
	if err != nil {
		WriteInternalError(w, "captcha verification unavailable")
		return
	}
	if !ok {
		WriteError(w, http.StatusForbidden, "captcha_failed", "Captcha verification failed", nil)
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if err == nil {
		var match bool
		match, err = auth.CheckPassword(req.Password, user.PasswordHash)
		if err != nil || !match {
			err = sql.ErrNoRows
		}
	}
	if err != nil {
		if locked, duration := h.loginGate.RecordFailure(req.Email); locked {
			slog.Warn("account locked after repeated login failures", "email", req.Email, "duration", duration)
		}
		WriteUnauthorized(w, "invalid email or password")
		return
	}

	h.loginGate.RecordSuccess(req.Email)

	// Rotate the session token on privilege change.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		WriteInternalError(w, "failed to start session")
		return
	}
	h.sessions.Put(r.Context(), session.KeyUserID, user.ID)
	_ = h.queries.TouchLastLogin(r.Context(), user.ID)

	WriteSuccess(w, user, nil)
}

// Logout destroys the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		WriteInternalError(w, "failed to end session")
		return
	}
	WriteSuccess(w, map[string]bool{"logged_out": true}, nil)
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		WriteUnauthorized(w, "not logged in")
		return
	}
	WriteSuccess(w, user, nil)
}

// Register creates a new account with the plain user role. The captcha
// applies here as on login.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	fieldErrors := map[string]string{}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fieldErrors["email"] = "invalid email address"
	}
	if len(req.Password) < MinPasswordLength {
		fieldErrors["password"] = fmt.Sprintf("password must be at least %d characters", MinPasswordLength)
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	ok, err := h.captcha.Verify(r.Context(), req.CaptchaToken, middleware.ClientIP(r))
	if err != nil {
		WriteInternalError(w, "captcha verification unavailable")
		return
	}
	if !ok {
		WriteError(w, http.StatusForbidden, "captcha_failed", "Captcha verification failed", nil)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		WriteInternalError(w, "failed to create account")
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	})
	if err != nil {
		// Unique email constraint is the realistic failure here.
		WriteError(w, http.StatusConflict, "email_taken", "an account with this email already exists", nil)
		return
	}

	if err := h.sessions.RenewToken(r.Context()); err != nil {
		WriteInternalError(w, "failed to start session")
		return
	}
	h.sessions.Put(r.Context(), session.KeyUserID, user.ID)

	WriteCreated(w, user)
}

// AdminStatus reports whether any admin account exists yet. The frontend
// uses it to decide whether to show the first-run bootstrap screen.
func (h *Handler) AdminStatus(w http.ResponseWriter, r *http.Request) {
	count, err := h.queries.CountAdmins(r.Context())
	if err != nil {
		WriteInternalError(w, "failed to check admin status")
		return
	}
	WriteSuccess(w, map[string]bool{"has_admin": count > 0}, nil)
}

// BootstrapAdmin promotes an existing account to the first admin. It only
// works while no admin exists.
func (h *Handler) BootstrapAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "no account with this email")
		return
	}
	if err != nil {
		WriteInternalError(w, "failed to look up account")
		return
	}

	promoted, err := h.bootstrap.AssignFirstAdmin(r.Context(), user.ID)
	if errors.Is(err, service.ErrAdminExists) {
		WriteError(w, http.StatusConflict, "admin_exists", "an admin already exists", nil)
		return
	}
	if err != nil {
		WriteInternalError(w, "failed to assign admin")
		return
	}

	WriteSuccess(w, promoted, nil)
}
