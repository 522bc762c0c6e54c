// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
)

// AsRGBA returns the image as an RGBA: if it already is one with a
// zero origin, then it returns that image directly. Otherwise it
// returns a clone, with bounds starting at 0,0.
func AsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	rgba := clone.AsRGBA(src)
	rgba.Rect = rgba.Rect.Sub(rgba.Rect.Min)
	return rgba
}

// Fit returns the image downscaled, preserving aspect ratio, so that
// neither dimension exceeds maxDim. Images already within bounds
// are returned as RGBA without resampling.
func Fit(src image.Image, maxDim int) *image.RGBA {
	rgba := AsRGBA(src)
	sz := rgba.Rect.Size()
	if maxDim <= 0 || (sz.X <= maxDim && sz.Y <= maxDim) {
		return rgba
	}
	nsz := FitSize(sz, maxDim)
	return transform.Resize(rgba, nsz.X, nsz.Y, transform.Linear)
}

// FitSize returns the size that sz scales to under [Fit].
func FitSize(sz image.Point, maxDim int) image.Point {
	if maxDim <= 0 || (sz.X <= maxDim && sz.Y <= maxDim) {
		return sz
	}
	if sz.X >= sz.Y {
		return image.Point{X: maxDim, Y: max(1, sz.Y*maxDim/sz.X)}
	}
	return image.Point{X: max(1, sz.X*maxDim/sz.Y), Y: maxDim}
}
