// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

// ActivityDTO is the public JSON shape of a permanent activity.
type ActivityDTO struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Type         string          `json:"type"`
	InfoLinks    []model.Link    `json:"info_links"`
	MapsLinks    []model.Link    `json:"maps_links"`
	Image        *model.ImageRef `json:"image,omitempty"`
	DisplayOrder int64           `json:"display_order"`
	Active       bool            `json:"active"`
}

func activityToDTO(a model.Activity, lang string) ActivityDTO {
	dto := ActivityDTO{
		ID:           a.ID,
		Title:        model.Localize(lang, a.TitleIt, a.TitleEn),
		Description:  model.LocalizeNull(lang, a.DescriptionIt.String, a.DescriptionEn),
		Type:         model.Localize(lang, a.TypeIt, a.TypeEn),
		InfoLinks:    model.DecodeLinks(a.InfoLinks),
		MapsLinks:    model.DecodeLinks(a.MapsLinks),
		DisplayOrder: a.DisplayOrder,
		Active:       a.Active,
	}
	if a.ImageURL.Valid && a.ImageURL.String != "" {
		img := model.ParseImageRef(a.ImageURL.String)
		dto.Image = &img
	}
	return dto
}

// ListActivities serves the active activities, ordered for display.
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.queries.ListActivities(r.Context(), true)
	if err != nil {
		WriteInternalError(w, "failed to load activities")
		return
	}

	lang := middleware.Lang(r)
	dtos := make([]ActivityDTO, 0, len(activities))
	for _, a := range activities {
		dtos = append(dtos, activityToDTO(a, lang))
	}
	WriteSuccess(w, dtos, nil)
}
