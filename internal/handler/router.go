// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
)

// Router assembles the full route table with its middleware stack.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Use(h.sessions.LoadAndSave)
	r.Use(middleware.LoadUser(h.sessions, h.db))
	r.Use(middleware.Language)

	r.Get("/health", h.Health)

	// Uploaded images.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.files.BaseDir())))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig(
		[]byte(h.cfg.SessionSecret)[:32],
		h.cfg.IsDevelopment(),
		strconv.Itoa(h.cfg.ServerPort),
	))

	// Public API. Everything here is gated by maintenance mode except the
	// endpoints the maintenance middleware itself exempts.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Maintenance(h.settings))

		r.Get("/api/events", h.ListEvents)
		r.Get("/api/long-events", h.ListLongEvents)
		r.Get("/api/events/count", h.CountEvents)
		r.Get("/api/events/{id}/calendar.ics", h.EventCalendarICS)
		r.Get("/api/events/{id}/calendar-url", h.EventCalendarURL)
		r.Get("/api/activities", h.ListActivities)
		r.Get("/api/settings/public", h.PublicSettings)
		r.Get("/api/analytics", h.Analytics)
		r.Get("/api/admin-status", h.AdminStatus)

		r.Group(func(r chi.Router) {
			r.Use(csrfMiddleware)
			r.Post("/api/auth/login", h.Login)
			r.Post("/api/auth/logout", h.Logout)
			r.Post("/api/auth/register", h.Register)
			r.Post("/api/bootstrap-admin", h.BootstrapAdmin)
		})
		r.Get("/api/auth/me", h.Me)
	})

	// Admin API: session, admin role and CSRF required.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.RequireAdmin)

		r.Get("/events", h.AdminListEvents)
		r.Post("/events", h.AdminCreateEvent)
		r.Get("/events/import/template", h.AdminImportTemplate)
		r.Post("/events/import", h.AdminImportEvents)
		r.Get("/events/{id}", h.AdminGetEvent)
		r.Put("/events/{id}", h.AdminUpdateEvent)
		r.Delete("/events/{id}", h.AdminDeleteEvent)

		r.Get("/long-events", h.AdminListLongEvents)
		r.Post("/long-events", h.AdminCreateLongEvent)
		r.Put("/long-events/{id}", h.AdminUpdateLongEvent)
		r.Delete("/long-events/{id}", h.AdminDeleteLongEvent)

		r.Get("/activities", h.AdminListActivities)
		r.Post("/activities", h.AdminCreateActivity)
		r.Put("/activities/{id}", h.AdminUpdateActivity)
		r.Delete("/activities/{id}", h.AdminDeleteActivity)

		r.Post("/images", h.AdminUploadImage)
		r.Delete("/images", h.AdminDeleteImage)

		r.Get("/settings", h.AdminListSettings)
		r.Put("/settings", h.AdminUpdateSetting)

		r.Get("/audit", h.AdminListAudit)
	})

	return r
}
