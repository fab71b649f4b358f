// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
)

// ImageRef is the composite image reference stored on events: a small JSON
// object carrying the URLs of the two derived variants. Records created
// before the two-variant scheme hold a plain URL string instead; those must
// stay readable, so decoding falls back to the raw value for both variants.
type ImageRef struct {
	Thumbnail string `json:"thumbnail"`
	Full      string `json:"full"`
}

// ParseImageRef decodes a stored image reference. Structured JSON decoding
// is attempted first; on failure the raw value is treated as a single legacy
// URL serving both variants. An empty input yields a zero ImageRef.
func ParseImageRef(raw string) ImageRef {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ImageRef{}
	}

	var ref ImageRef
	if err := json.Unmarshal([]byte(raw), &ref); err == nil && (ref.Thumbnail != "" || ref.Full != "") {
		if ref.Thumbnail == "" {
			ref.Thumbnail = ref.Full
		}
		if ref.Full == "" {
			ref.Full = ref.Thumbnail
		}
		return ref
	}

	return ImageRef{Thumbnail: raw, Full: raw}
}

// IsZero reports whether the reference carries no URLs.
func (r ImageRef) IsZero() bool {
	return r.Thumbnail == "" && r.Full == ""
}

// String encodes the reference as the JSON value persisted on the record.
func (r ImageRef) String() string {
	if r.IsZero() {
		return ""
	}
	b, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(b)
}
