// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// NewVertexBuffer creates a vertex buffer initialized with the given vertices.
func NewVertexBuffer[E any](dr *Drivers, label string, vertices []E) (*wgpu.Buffer, error) {
	return dr.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
}

// NewIndexBuffer creates an index buffer initialized with the given indices.
// Index buffers sizes must be a multiple of 4 bytes, so an odd number of
// indices is padded with a zero.
func NewIndexBuffer(dr *Drivers, label string, indices []uint16) (*wgpu.Buffer, error) {
	if len(indices)%2 == 1 {
		indices = append(indices[:len(indices):len(indices)], 0)
	}
	return dr.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
}
