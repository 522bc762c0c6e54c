// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resources

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"unsafe"

	"cogentcore.org/ronin/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# a unit quad
o quad
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestVertexSize(t *testing.T) {
	assert.Equal(t, uintptr(24), unsafe.Sizeof(Vertex{}))
}

func TestParseOBJQuad(t *testing.T) {
	vs, is, err := ParseOBJ([]byte(quadOBJ))
	require.NoError(t, err)
	assert.Len(t, vs, 4)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, is)
	assert.Equal(t, Vertex{Position: math32.Vec4(1, 1, 0, 1), UV: math32.Vec2(1, 1)}, vs[2])
}

func TestParseOBJRelativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	vs, is, err := ParseOBJ([]byte(src))
	require.NoError(t, err)
	assert.Len(t, vs, 3)
	assert.Equal(t, []uint16{0, 1, 2}, is)
	assert.Equal(t, math32.Vector2{}, vs[0].UV)
}

func TestParseOBJErrors(t *testing.T) {
	tests := map[string]string{
		"no faces":     "v 0 0 0\n",
		"zero index":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"out of range": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"short face":   "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"bad float":    "v 0 x 0\n",
		"short vertex": "v 0 0\n",
	}
	for name, src := range tests {
		_, _, err := ParseOBJ([]byte(src))
		assert.Error(t, err, name)
	}
}

func TestParseOBJTooManyVertices(t *testing.T) {
	var b strings.Builder
	b.WriteString("v 0 0 0\nv 1 0 0\nv 0 1 0\n")
	const n = 70000
	for range n {
		b.WriteString("vt 0 0\n")
	}
	// every face corner references a new uv and so a new vertex
	for i := 1; i+2 <= n; i += 3 {
		fmt.Fprintf(&b, "f 1/%d 2/%d 3/%d\n", i, i+1, i+2)
	}
	_, _, err := ParseOBJ([]byte(b.String()))
	assert.ErrorContains(t, err, "vertices")
}

func TestParseCubeAsset(t *testing.T) {
	raw, err := os.ReadFile("../db/meshes/cube.obj")
	require.NoError(t, err)
	vs, is, err := ParseOBJ(raw)
	require.NoError(t, err)
	assert.Len(t, vs, 24)
	assert.Len(t, is, 36)
	for _, v := range vs {
		assert.Equal(t, float32(1), v.Position.W)
		assert.Equal(t, float32(1), math32.Abs(v.Position.X))
	}
}
