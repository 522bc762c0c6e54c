// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineKind is the static description of a fixed-function render
// pipeline. There is one implementation per kind of material, and the
// set of kinds is fixed at build time.
type PipelineKind interface {

	// Name is the unique name of the pipeline, which also locates its
	// shaders at <root>/<name-lowercased>/shader.<stage>.<ext>.
	Name() string

	// IsSurface reports whether the pipeline renders directly into the
	// presentation surface, and thus targets the surface format.
	IsSurface() bool

	// BindGroupLayoutEntries are the bindings that a material of this
	// kind must provide in bind group 0.
	BindGroupLayoutEntries() []wgpu.BindGroupLayoutEntry

	// PrimitiveState is the topology, winding and culling state.
	PrimitiveState() wgpu.PrimitiveState

	// VertexLayouts are the vertex buffer layouts.
	VertexLayouts() []wgpu.VertexBufferLayout

	// PushConstantRanges are the push constant ranges and the stages
	// that read them.
	PushConstantRanges() []wgpu.PushConstantRange

	// DepthStencil is the depth and stencil state, or nil for none.
	DepthStencil() *wgpu.DepthStencilState
}

// ShaderPipelineDescriptor contains the per-instance settings of a pipeline,
// so that the same kind can be built at different sample counts.
type ShaderPipelineDescriptor struct {
	Multisample wgpu.MultisampleState
}

// MultisampleDescriptor returns a descriptor for the given sample count
// with all samples enabled.
func MultisampleDescriptor(samples uint32) ShaderPipelineDescriptor {
	return ShaderPipelineDescriptor{Multisample: wgpu.MultisampleState{Count: samples, Mask: 0xFFFFFFFF}}
}

// ShaderPipeline is a built render pipeline together with its shader
// modules and the bind group layout that materials of its kind are
// created against. It is immutable once built.
type ShaderPipeline struct {
	Name string

	VertexShader   *wgpu.ShaderModule
	FragmentShader *wgpu.ShaderModule

	// MaterialLayout is the layout of the per-material bind group 0.
	MaterialLayout *wgpu.BindGroupLayout

	Layout   *wgpu.PipelineLayout
	Pipeline *wgpu.RenderPipeline
}

// CreateShaderPipeline builds the pipeline of the given kind. Missing or
// invalid shaders and invalid layouts are returned as errors.
func (dr *Drivers) CreateShaderPipeline(kind PipelineKind, desc ShaderPipelineDescriptor) (_ *ShaderPipeline, err error) {
	name := kind.Name()
	slog.Info("Creating render pipeline", "name", name)
	sp := &ShaderPipeline{Name: name}
	defer func() {
		if err != nil {
			sp.Release()
		}
	}()

	vpath := ShaderPath(dr.ShaderRoot, name, VertexShader, dr.Compiler.Ext())
	fpath := ShaderPath(dr.ShaderRoot, name, FragmentShader, dr.Compiler.Ext())
	slog.Info("Vertex shader", "path", vpath)
	if sp.VertexShader, err = dr.CompileAndCreateShader(vpath, VertexShader); err != nil {
		return nil, err
	}
	slog.Info("Fragment shader", "path", fpath)
	if sp.FragmentShader, err = dr.CompileAndCreateShader(fpath, FragmentShader); err != nil {
		return nil, err
	}

	sp.MaterialLayout, err = dr.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   name + " Material",
		Entries: kind.BindGroupLayoutEntries(),
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: pipeline %s: invalid material layout: %w", name, err)
	}
	sp.Layout, err = dr.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:              name,
		BindGroupLayouts:   []*wgpu.BindGroupLayout{sp.MaterialLayout},
		PushConstantRanges: kind.PushConstantRanges(),
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: pipeline %s: invalid pipeline layout: %w", name, err)
	}

	format := dr.SurfaceConfig.Format
	if !kind.IsSurface() {
		format = wgpu.TextureFormatRGBA8UnormSrgb
	}
	sp.Pipeline, err = dr.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  name,
		Layout: sp.Layout,
		Vertex: wgpu.VertexState{
			Module:     sp.VertexShader,
			EntryPoint: ShaderEntry,
			Buffers:    kind.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     sp.FragmentShader,
			EntryPoint: ShaderEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive:    kind.PrimitiveState(),
		DepthStencil: kind.DepthStencil(),
		Multisample:  desc.Multisample,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to create render pipeline %s: %w", name, err)
	}
	return sp, nil
}

// NewBindGroup creates a material bind group against the material layout
// of the pipeline.
func (dr *Drivers) NewBindGroup(sp *ShaderPipeline, label string, entries ...wgpu.BindGroupEntry) (*wgpu.BindGroup, error) {
	return dr.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   label,
		Layout:  sp.MaterialLayout,
		Entries: entries,
	})
}

// Release releases the GPU objects of the pipeline.
func (sp *ShaderPipeline) Release() {
	if sp == nil {
		return
	}
	if sp.Pipeline != nil {
		sp.Pipeline.Release()
		sp.Pipeline = nil
	}
	if sp.Layout != nil {
		sp.Layout.Release()
		sp.Layout = nil
	}
	if sp.MaterialLayout != nil {
		sp.MaterialLayout.Release()
		sp.MaterialLayout = nil
	}
	if sp.FragmentShader != nil {
		sp.FragmentShader.Release()
		sp.FragmentShader = nil
	}
	if sp.VertexShader != nil {
		sp.VertexShader.Release()
		sp.VertexShader = nil
	}
}
