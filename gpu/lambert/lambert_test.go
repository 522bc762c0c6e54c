// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lambert

import (
	"encoding/binary"
	"math"
	"testing"

	"cogentcore.org/ronin/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	k := Kind{}
	assert.Equal(t, "Lambert", k.Name())
	assert.True(t, k.IsSurface())

	entries := k.BindGroupLayoutEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(0), entries[0].Binding)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, entries[0].Texture.SampleType)
	assert.Equal(t, uint32(1), entries[1].Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, entries[1].Sampler.Type)

	ps := k.PrimitiveState()
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, ps.Topology)
	assert.Equal(t, wgpu.FrontFaceCCW, ps.FrontFace)
	assert.Equal(t, wgpu.CullModeBack, ps.CullMode)

	vl := k.VertexLayouts()
	require.Len(t, vl, 1)
	assert.Equal(t, uint64(VertexStride), vl[0].ArrayStride)
	require.Len(t, vl[0].Attributes, 2)
	assert.Equal(t, uint64(16), vl[0].Attributes[1].Offset)

	pcr := k.PushConstantRanges()
	require.Len(t, pcr, 1)
	assert.Equal(t, wgpu.ShaderStageVertex, pcr[0].Stages)
	assert.Equal(t, uint32(128), pcr[0].End-pcr[0].Start)

	ds := k.DepthStencil()
	require.NotNil(t, ds)
	assert.True(t, ds.DepthWriteEnabled)
	assert.Equal(t, wgpu.CompareFunctionLess, ds.DepthCompare)
}

func TestPushConstantsBytes(t *testing.T) {
	pc := PushConstants{
		World:    math32.Translation4(math32.Vec3(1, 2, 3)),
		ViewProj: math32.Scale4(math32.Vector3Scalar(2)),
	}
	b := pc.Bytes()
	require.Len(t, b, PushConstantsSize)
	f := func(i int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:])) }
	assert.Equal(t, float32(1), f(12))
	assert.Equal(t, float32(3), f(14))
	assert.Equal(t, float32(2), f(16))
	assert.Equal(t, float32(1), f(31))
}
