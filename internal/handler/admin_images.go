// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pennaFedele/gambarie-summer-events/internal/imaging"
	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

// MaxImageSize caps an uploaded image at 10 MB.
const MaxImageSize = 10 << 20

// AdminUploadImage accepts one image file, produces the thumbnail and
// full variants and stores both under the uploading user's directory.
// The response carries the image reference the event form saves.
func (h *Handler) AdminUploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxImageSize); err != nil {
		WriteBadRequest(w, "invalid multipart form", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "missing file field", nil)
		return
	}
	defer func() { _ = file.Close() }()

	result, err := imaging.Process(file)
	if err != nil {
		WriteBadRequest(w, "unsupported or corrupt image", nil)
		return
	}

	user, _ := middleware.CurrentUser(r)
	base := fmt.Sprintf("%d/events/%s", user.ID, uuid.NewString())

	thumbURL, err := h.files.Put(base+"_thumb.jpg", result.Thumbnail.Data)
	if err != nil {
		WriteInternalError(w, "failed to store image")
		return
	}
	fullURL, err := h.files.Put(base+"_full.jpg", result.Full.Data)
	if err != nil {
		// Do not leave a half-written pair behind.
		if p, ok := h.files.PathFromURL(thumbURL); ok {
			_ = h.files.Delete(p)
		}
		WriteInternalError(w, "failed to store image")
		return
	}

	ref := model.ImageRef{Thumbnail: thumbURL, Full: fullURL}
	h.audit.Log(r.Context(), model.AuditActionImageUpload, model.ResourceEvent, "", &user.ID, map[string]any{
		"thumbnail": thumbURL,
		"full":      fullURL,
	})

	WriteCreated(w, map[string]any{
		"image": ref,
		"thumbnail_size": map[string]int{
			"width":  result.Thumbnail.Width,
			"height": result.Thumbnail.Height,
		},
		"full_size": map[string]int{
			"width":  result.Full.Width,
			"height": result.Full.Height,
		},
	})
}

// AdminDeleteImage removes the stored variants named by an image
// reference. Used when an event image is replaced or cleared.
func (h *Handler) AdminDeleteImage(w http.ResponseWriter, r *http.Request) {
	var ref model.ImageRef
	if err := decodeJSON(r, &ref); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	h.removeImageFiles(ref)
	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}

// removeImageFiles deletes the files behind an image reference. Removal
// failures are logged, not surfaced: the database row is already gone and
// a stray file is preferable to a failed delete.
func (h *Handler) removeImageFiles(ref model.ImageRef) {
	var paths []string
	for _, u := range []string{ref.Thumbnail, ref.Full} {
		if p, ok := h.files.PathFromURL(u); ok {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return
	}
	if err := h.files.Delete(paths...); err != nil {
		slog.Warn("failed to remove image files", "error", err)
	}
}
