// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging converts uploaded event photos into the two display
// variants the site serves: a thumbnail for cards and a full image for
// the detail view.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/sync/errgroup"
	_ "golang.org/x/image/webp" // WebP decoder
)

// VariantConfig describes one output size.
type VariantConfig struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// The two variants every event image gets. Output is always JPEG: WebP
// encoding is not available in pure Go, and JPEG keeps the pipeline
// dependency-free.
var (
	ThumbnailConfig = VariantConfig{MaxWidth: 400, MaxHeight: 300, Quality: 70}
	FullConfig      = VariantConfig{MaxWidth: 1200, MaxHeight: 800, Quality: 85}
)

// Variant is one encoded output image.
type Variant struct {
	Data   []byte
	Width  int
	Height int
}

// Result holds both variants of a processed upload.
type Result struct {
	Thumbnail Variant
	Full      Variant
}

// Process decodes an uploaded image, fixes its EXIF orientation and
// produces both variants concurrently. The source aspect ratio is always
// preserved and images smaller than a variant's bounds are not upscaled.
func Process(reader io.Reader) (*Result, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	if format := detectFormat(data); format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	var result Result
	var g errgroup.Group
	g.Go(func() error {
		variant, err := makeVariant(img, ThumbnailConfig)
		if err != nil {
			return fmt.Errorf("thumbnail: %w", err)
		}
		result.Thumbnail = variant
		return nil
	})
	g.Go(func() error {
		variant, err := makeVariant(img, FullConfig)
		if err != nil {
			return fmt.Errorf("full: %w", err)
		}
		result.Full = variant
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

func makeVariant(img image.Image, cfg VariantConfig) (Variant, error) {
	resized := imaging.Fit(img, cfg.MaxWidth, cfg.MaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: cfg.Quality}); err != nil {
		return Variant{}, err
	}

	bounds := resized.Bounds()
	return Variant{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation applies the EXIF orientation transformation.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
