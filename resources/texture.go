// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resources

import (
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/ronin/base/iox/imagex"
	"cogentcore.org/ronin/gpu"
)

// Texture is an imported, immutable texture with a full mip chain.
type Texture struct {
	Path   string
	Format imagex.Formats
	*gpu.UploadedTexture
}

// Width returns the width of mip level 0 in pixels.
func (tx *Texture) Width() int { return tx.Size.X }

// Height returns the height of mip level 0 in pixels.
func (tx *Texture) Height() int { return tx.Size.Y }

// TextureImporter imports image files into textures on the device.
// Images larger than MaxDimension are downscaled to fit.
type TextureImporter struct {
	Drivers      *gpu.Drivers
	MaxDimension int
}

// DecodeTexture decodes the raw bytes of an image file as RGBA,
// downscaled to fit within maxDim when maxDim > 0.
func DecodeTexture(path string, raw []byte, maxDim int) (*image.RGBA, imagex.Formats, error) {
	img, f, err := imagex.Decode(raw)
	if err != nil {
		return nil, f, fmt.Errorf("resources: failed to decode texture %q: %w", path, err)
	}
	rgba := imagex.AsRGBA(img)
	if fit := imagex.Fit(rgba, maxDim); fit != rgba {
		slog.Warn("Texture exceeds the maximum dimension, downscaling", "path", path,
			"size", rgba.Rect.Size(), "to", fit.Rect.Size())
		rgba = fit
	}
	return rgba, f, nil
}

func (ti *TextureImporter) Import(path string, raw []byte) (*Texture, error) {
	rgba, f, err := DecodeTexture(path, raw, ti.MaxDimension)
	if err != nil {
		return nil, err
	}
	ut, err := ti.Drivers.UploadTexture(path, rgba)
	if err != nil {
		return nil, fmt.Errorf("resources: failed to upload texture %q: %w", path, err)
	}
	return &Texture{Path: path, Format: f, UploadedTexture: ut}, nil
}
