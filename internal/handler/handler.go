// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP surface: the public JSON API, the
// auth endpoints and the admin API.
package handler

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/pennaFedele/gambarie-summer-events/internal/captcha"
	"github.com/pennaFedele/gambarie-summer-events/internal/config"
	"github.com/pennaFedele/gambarie-summer-events/internal/importer"
	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
	"github.com/pennaFedele/gambarie-summer-events/internal/service"
	"github.com/pennaFedele/gambarie-summer-events/internal/storage"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	cfg       *config.Config
	sessions  *scs.SessionManager
	settings  *service.SettingsService
	audit     *service.AuditService
	bootstrap *service.BootstrapService
	importer  *importer.Importer
	files     *storage.FileStore
	captcha   *captcha.Verifier
	loginGate *middleware.LoginProtection
}

// Deps bundles the constructor arguments for NewHandler.
type Deps struct {
	DB        *sql.DB
	Config    *config.Config
	Sessions  *scs.SessionManager
	Settings  *service.SettingsService
	Audit     *service.AuditService
	Bootstrap *service.BootstrapService
	Importer  *importer.Importer
	Files     *storage.FileStore
	Captcha   *captcha.Verifier
	LoginGate *middleware.LoginProtection
}

// NewHandler creates a Handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		db:        deps.DB,
		queries:   store.New(deps.DB),
		cfg:       deps.Config,
		sessions:  deps.Sessions,
		settings:  deps.Settings,
		audit:     deps.Audit,
		bootstrap: deps.Bootstrap,
		importer:  deps.Importer,
		files:     deps.Files,
		captcha:   deps.Captcha,
		loginGate: deps.LoginGate,
	}
}

// Health reports liveness, including a database ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "unhealthy", "database unreachable", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
