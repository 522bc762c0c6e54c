// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resources

import (
	"bytes"
	"image"
	"testing"

	"cogentcore.org/ronin/base/iox/imagex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTexture(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, imagex.Write(image.NewGray(image.Rect(0, 0, 64, 16)), &b, imagex.PNG))

	rgba, f, err := DecodeTexture("grid.png", b.Bytes(), 0)
	require.NoError(t, err)
	assert.Equal(t, imagex.PNG, f)
	assert.Equal(t, image.Pt(64, 16), rgba.Rect.Size())

	rgba, _, err = DecodeTexture("grid.png", b.Bytes(), 32)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(32, 8), rgba.Rect.Size())

	_, _, err = DecodeTexture("cube.obj", []byte("v 0 0 0\n"), 0)
	assert.ErrorIs(t, err, imagex.ErrNotImage)
}

func TestLambertID(t *testing.T) {
	assert.Equal(t, "lambert:db/textures/grid.png", LambertID("db/textures/grid.png"))
	assert.Equal(t, "Lambert", Lambert.String())
}
