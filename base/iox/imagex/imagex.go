// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex decodes and prepares raster images for upload as
// GPU textures.
package imagex

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Formats are the supported image encoding / decoding formats
type Formats int32

// The supported image encoding formats
const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
)

var formatNames = [...]string{"None", "PNG", "JPEG", "GIF", "TIFF", "BMP", "WebP"}

func (f Formats) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Formats(%d)", int32(f))
	}
	return formatNames[f]
}

// ErrNotImage is returned by [Sniff] and [Decode] for data that does not
// start with a known image signature.
var ErrNotImage = errors.New("imagex: data is not a supported image")

// ExtToFormat returns a Format based on a filename extension,
// which can start with a . or not
func ExtToFormat(ext string) (Formats, error) {
	if len(ext) == 0 {
		return None, errors.New("ExtToFormat: ext is empty")
	}
	if ext[0] == '.' {
		ext = ext[1:]
	}
	switch strings.ToLower(ext) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "webp":
		return WebP, nil
	}
	return None, fmt.Errorf("ExtToFormat: extension %q not recognized", ext)
}

// Sniff returns the image format of the given encoded bytes,
// determined from the file signature rather than any file name.
func Sniff(data []byte) (Formats, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return None, err
	}
	if kind == filetype.Unknown || !filetype.IsImage(data) {
		return None, ErrNotImage
	}
	f, err := ExtToFormat(kind.Extension)
	if err != nil {
		return None, fmt.Errorf("%w: %s", ErrNotImage, kind.MIME.Value)
	}
	return f, nil
}

// Decode decodes the given encoded bytes, checking the
// signature with [Sniff] first.
func Decode(data []byte) (image.Image, Formats, error) {
	f, err := Sniff(data)
	if err != nil {
		return nil, None, err
	}
	im, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, f, fmt.Errorf("imagex: decoding %s: %w", f, err)
	}
	return im, f, nil
}

// Open opens an image from the given filename.
// The format is inferred automatically,
// and is returned using the Formats enum.
// png, jpeg, gif, tiff, bmp, and webp are supported.
func Open(filename string) (image.Image, Formats, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, None, err
	}
	return Decode(data)
}

// Save saves the image to the given filename,
// with the format inferred from the filename.
// png, jpeg, gif, tiff, and bmp are supported.
func Save(im image.Image, filename string) error {
	f, err := ExtToFormat(filepath.Ext(filename))
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(im, file, f)
}

// Write writes the image to the given writer using the given foramt.
// png, jpeg, gif, tiff, and bmp are supported.
func Write(im image.Image, w io.Writer, f Formats) error {
	switch f {
	case PNG:
		return png.Encode(w, im)
	case JPEG:
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 90})
	case GIF:
		return gif.Encode(w, im, nil)
	case TIFF:
		return tiff.Encode(w, im, nil)
	case BMP:
		return bmp.Encode(w, im)
	default:
		return fmt.Errorf("iox/imagex.Save: format %q not valid", f)
	}
}
