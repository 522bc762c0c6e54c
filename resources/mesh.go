// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resources

import (
	"fmt"

	"cogentcore.org/ronin/gpu"
	"cogentcore.org/ronin/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex is the vertex layout of all meshes: a position vec4 followed
// by a texture coordinate vec2, 24 bytes.
type Vertex struct {
	Position math32.Vector4
	UV       math32.Vector2
}

// Mesh is an imported, immutable mesh: the CPU vertex and index data
// and the GPU buffers made from them.
type Mesh struct {
	Path     string
	Vertices []Vertex
	Indices  []uint16

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
}

var _ gpu.IndexedMesh = (*Mesh)(nil)

func (ms *Mesh) VertexBuffer() *wgpu.Buffer { return ms.vertexBuffer }
func (ms *Mesh) IndexBuffer() *wgpu.Buffer  { return ms.indexBuffer }
func (ms *Mesh) IndexCount() uint32         { return uint32(len(ms.Indices)) }

// Release releases the GPU buffers of the mesh.
func (ms *Mesh) Release() {
	if ms.vertexBuffer != nil {
		ms.vertexBuffer.Release()
		ms.vertexBuffer = nil
	}
	if ms.indexBuffer != nil {
		ms.indexBuffer.Release()
		ms.indexBuffer = nil
	}
}

// MeshImporter imports OBJ files into meshes on the device.
type MeshImporter struct {
	Drivers *gpu.Drivers
}

func (mi *MeshImporter) Import(path string, raw []byte) (*Mesh, error) {
	vs, is, err := ParseOBJ(raw)
	if err != nil {
		return nil, fmt.Errorf("resources: failed to import mesh %q: %w", path, err)
	}
	ms := &Mesh{Path: path, Vertices: vs, Indices: is}
	if ms.vertexBuffer, err = gpu.NewVertexBuffer(mi.Drivers, path, vs); err != nil {
		return nil, fmt.Errorf("resources: failed to upload mesh %q: %w", path, err)
	}
	if ms.indexBuffer, err = gpu.NewIndexBuffer(mi.Drivers, path, is); err != nil {
		ms.Release()
		return nil, fmt.Errorf("resources: failed to upload mesh %q: %w", path, err)
	}
	return ms, nil
}
