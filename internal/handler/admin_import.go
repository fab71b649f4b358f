// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io"
	"net/http"

	"github.com/pennaFedele/gambarie-summer-events/internal/importer"
	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
)

// MaxImportSize caps an uploaded CSV at 2 MB, far above any realistic
// season programme.
const MaxImportSize = 2 << 20

// AdminImportEvents imports events from an uploaded CSV file. Valid rows
// are created, invalid rows are reported per line number; one bad row
// never aborts the run.
func (h *Handler) AdminImportEvents(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxImportSize); err != nil {
		WriteBadRequest(w, "invalid multipart form", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "missing file field", nil)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, MaxImportSize))
	if err != nil {
		WriteInternalError(w, "failed to read upload")
		return
	}

	user, _ := middleware.CurrentUser(r)
	result := h.importer.Run(r.Context(), string(data), user.ID)
	WriteSuccess(w, result, nil)
}

// AdminImportTemplate serves the example CSV file.
func (h *Handler) AdminImportTemplate(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="template_eventi.csv"`)
	_, _ = w.Write([]byte(importer.Template))
}
