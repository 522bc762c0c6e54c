// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lambert provides the Lambert fixed-function pipeline:
// a single albedo texture lit by nothing, drawn with depth test.
package lambert

import (
	"cogentcore.org/ronin/gpu"
	"cogentcore.org/ronin/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Name is the name of the pipeline, which also locates its shaders.
const Name = "Lambert"

// VertexStride is the byte size of one vertex: a position vec4
// followed by a texture coordinate vec2.
const VertexStride = 24

// PushConstantsSize is the byte size of [PushConstants].
const PushConstantsSize = 2 * math32.Matrix4Size

// Kind is the [gpu.PipelineKind] of the Lambert pipeline.
type Kind struct{}

var _ gpu.PipelineKind = Kind{}

func (Kind) Name() string    { return Name }
func (Kind) IsSurface() bool { return true }

func (Kind) BindGroupLayoutEntries() []wgpu.BindGroupLayoutEntry {
	return []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
				Multisampled:  false,
			},
		},
		{
			Binding:    1,
			Visibility: wgpu.ShaderStageFragment,
			Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
		},
	}
}

func (Kind) PrimitiveState() wgpu.PrimitiveState {
	return wgpu.PrimitiveState{
		Topology:         wgpu.PrimitiveTopologyTriangleList,
		StripIndexFormat: wgpu.IndexFormatUndefined,
		FrontFace:        wgpu.FrontFaceCCW,
		CullMode:         wgpu.CullModeBack,
	}
}

func (Kind) VertexLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{{
		ArrayStride: VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 1},
		},
	}}
}

// PushConstantRanges is a single vertex range holding the world and
// view-projection matrices.
func (Kind) PushConstantRanges() []wgpu.PushConstantRange {
	return []wgpu.PushConstantRange{{Stages: wgpu.ShaderStageVertex, Start: 0, End: PushConstantsSize}}
}

func (Kind) DepthStencil() *wgpu.DepthStencilState {
	return &wgpu.DepthStencilState{
		Format:            gpu.DepthFormat,
		DepthWriteEnabled: true,
		DepthCompare:      wgpu.CompareFunctionLess,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
	}
}

// Pipeline is the built Lambert pipeline.
type Pipeline struct {
	*gpu.ShaderPipeline
}

// New builds the Lambert pipeline at the given sample count.
func New(dr *gpu.Drivers, samples uint32) (*Pipeline, error) {
	sp, err := dr.CreateShaderPipeline(Kind{}, gpu.MultisampleDescriptor(samples))
	if err != nil {
		return nil, err
	}
	return &Pipeline{ShaderPipeline: sp}, nil
}

// PushConstants is the per-draw data of the vertex stage.
type PushConstants struct {
	World    math32.Matrix4
	ViewProj math32.Matrix4
}

// AppendBytes appends the little-endian, column-major bytes of
// the world matrix followed by the view-projection matrix.
func (pc *PushConstants) AppendBytes(b []byte) []byte {
	b = pc.World.AppendBytes(b)
	return pc.ViewProj.AppendBytes(b)
}

// Bytes returns the bytes of the push constants.
func (pc *PushConstants) Bytes() []byte {
	return pc.AppendBytes(make([]byte, 0, PushConstantsSize))
}
