// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
	"github.com/pennaFedele/gambarie-summer-events/internal/model"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
)

// activityInput is the admin payload for activities. Link lists arrive as
// structured JSON and are stored encoded.
type activityInput struct {
	TitleIt       string       `json:"title_it"`
	TitleEn       string       `json:"title_en"`
	DescriptionIt string       `json:"description_it"`
	DescriptionEn string       `json:"description_en"`
	TypeIt        string       `json:"type_it"`
	TypeEn        string       `json:"type_en"`
	InfoLinks     []model.Link `json:"info_links"`
	MapsLinks     []model.Link `json:"maps_links"`
	ImageURL      string       `json:"image_url"`
	Active        bool         `json:"active"`
	DisplayOrder  int64        `json:"display_order"`
}

func (in *activityInput) normalize() {
	in.TitleIt = strings.TrimSpace(in.TitleIt)
	in.TitleEn = strings.TrimSpace(in.TitleEn)
	in.TypeIt = strings.TrimSpace(in.TypeIt)
	in.TypeEn = strings.TrimSpace(in.TypeEn)
}

func (in *activityInput) validate() map[string]string {
	errs := map[string]string{}
	if in.TitleIt == "" {
		errs["title_it"] = "required"
	}
	if in.TypeIt == "" {
		errs["type_it"] = "required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AdminActivityDTO is the admin JSON shape of an activity, both
// languages and link lists decoded.
type AdminActivityDTO struct {
	ID            string       `json:"id"`
	TitleIt       string       `json:"title_it"`
	TitleEn       string       `json:"title_en,omitempty"`
	DescriptionIt string       `json:"description_it,omitempty"`
	DescriptionEn string       `json:"description_en,omitempty"`
	TypeIt        string       `json:"type_it"`
	TypeEn        string       `json:"type_en,omitempty"`
	InfoLinks     []model.Link `json:"info_links"`
	MapsLinks     []model.Link `json:"maps_links"`
	ImageURL      string       `json:"image_url,omitempty"`
	Active        bool         `json:"active"`
	DisplayOrder  int64        `json:"display_order"`
	CreatedBy     *int64       `json:"created_by,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func adminActivityToDTO(a model.Activity) AdminActivityDTO {
	return AdminActivityDTO{
		ID:            a.ID,
		TitleIt:       a.TitleIt,
		TitleEn:       a.TitleEn,
		DescriptionIt: a.DescriptionIt.String,
		DescriptionEn: a.DescriptionEn.String,
		TypeIt:        a.TypeIt,
		TypeEn:        a.TypeEn,
		InfoLinks:     model.DecodeLinks(a.InfoLinks),
		MapsLinks:     model.DecodeLinks(a.MapsLinks),
		ImageURL:      a.ImageURL.String,
		Active:        a.Active,
		DisplayOrder:  a.DisplayOrder,
		CreatedBy:     nullableID(a.CreatedBy),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AdminListActivities serves all activities, inactive included.
func (h *Handler) AdminListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.queries.ListActivities(r.Context(), false)
	if err != nil {
		WriteInternalError(w, "failed to load activities")
		return
	}
	dtos := make([]AdminActivityDTO, 0, len(activities))
	for _, a := range activities {
		dtos = append(dtos, adminActivityToDTO(a))
	}
	WriteSuccess(w, dtos, nil)
}

// AdminCreateActivity creates an activity.
func (h *Handler) AdminCreateActivity(w http.ResponseWriter, r *http.Request) {
	var in activityInput
	if err := decodeJSON(r, &in); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	in.normalize()
	if errs := in.validate(); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	user, _ := middleware.CurrentUser(r)
	activity, err := h.queries.CreateActivity(r.Context(), store.CreateActivityParams{
		TitleIt:       in.TitleIt,
		TitleEn:       in.TitleEn,
		DescriptionIt: in.DescriptionIt,
		DescriptionEn: in.DescriptionEn,
		TypeIt:        in.TypeIt,
		TypeEn:        in.TypeEn,
		InfoLinks:     model.EncodeLinks(in.InfoLinks),
		MapsLinks:     model.EncodeLinks(in.MapsLinks),
		ImageURL:      in.ImageURL,
		Active:        in.Active,
		DisplayOrder:  in.DisplayOrder,
		CreatedBy:     user.ID,
	})
	if err != nil {
		WriteInternalError(w, "failed to create activity")
		return
	}
	WriteCreated(w, adminActivityToDTO(activity))
}

// AdminUpdateActivity updates an activity in place.
func (h *Handler) AdminUpdateActivity(w http.ResponseWriter, r *http.Request) {
	activity, ok := h.loadActivity(w, r)
	if !ok {
		return
	}

	var in activityInput
	if err := decodeJSON(r, &in); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	in.normalize()
	if errs := in.validate(); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	updated, err := h.queries.UpdateActivity(r.Context(), store.UpdateActivityParams{
		ID:            activity.ID,
		TitleIt:       in.TitleIt,
		TitleEn:       in.TitleEn,
		DescriptionIt: in.DescriptionIt,
		DescriptionEn: in.DescriptionEn,
		TypeIt:        in.TypeIt,
		TypeEn:        in.TypeEn,
		InfoLinks:     model.EncodeLinks(in.InfoLinks),
		MapsLinks:     model.EncodeLinks(in.MapsLinks),
		ImageURL:      in.ImageURL,
		Active:        in.Active,
		DisplayOrder:  in.DisplayOrder,
	})
	if err != nil {
		WriteInternalError(w, "failed to update activity")
		return
	}
	WriteSuccess(w, adminActivityToDTO(updated), nil)
}

// AdminDeleteActivity removes an activity and its image files.
func (h *Handler) AdminDeleteActivity(w http.ResponseWriter, r *http.Request) {
	activity, ok := h.loadActivity(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteActivity(r.Context(), activity.ID); err != nil {
		WriteInternalError(w, "failed to delete activity")
		return
	}
	h.removeImageFiles(model.ParseImageRef(activity.ImageURL.String))

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}

func (h *Handler) loadActivity(w http.ResponseWriter, r *http.Request) (model.Activity, bool) {
	id := chi.URLParam(r, "id")
	activity, err := h.queries.GetActivity(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "activity not found")
		return model.Activity{}, false
	}
	if err != nil {
		WriteInternalError(w, "failed to load activity")
		return model.Activity{}, false
	}
	return activity, true
}
