// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"math/bits"
	"path/filepath"

	"github.com/cogentcore/webgpu/wgpu"
)

// blitShaders are the vertex and fragment shaders of the mip blit.
type blitShaders struct {
	vertex, fragment *wgpu.ShaderModule
}

func (dr *Drivers) loadBlitShaders(dir string) (*blitShaders, error) {
	ext := dr.Compiler.Ext()
	vs, err := dr.CompileAndCreateShader(filepath.Join(dir, "blit.vert."+ext), VertexShader)
	if err != nil {
		return nil, err
	}
	fs, err := dr.CompileAndCreateShader(filepath.Join(dir, "blit.frag."+ext), FragmentShader)
	if err != nil {
		vs.Release()
		return nil, err
	}
	return &blitShaders{vertex: vs, fragment: fs}, nil
}

func (bs *blitShaders) release() {
	bs.vertex.Release()
	bs.fragment.Release()
}

// MipLevelCount returns the number of levels of a full mip chain for
// a texture of the given size, down to 1x1.
func MipLevelCount(width, height int) uint32 {
	m := max(width, height, 1)
	return uint32(bits.Len(uint(m)))
}

// MipSizes returns the size of each of the first count levels of the
// mip chain of a texture of the given size. Each level halves the
// previous one, never going below 1.
func MipSizes(width, height int, count uint32) []image.Point {
	sz := make([]image.Point, count)
	w, h := width, height
	for i := range sz {
		sz[i] = image.Pt(w, h)
		w, h = max(w/2, 1), max(h/2, 1)
	}
	return sz
}

// GenerateMipmaps records into the encoder the commands that fill the mip
// levels 1..mipCount-1 of the texture, each one by rendering the previous
// level through a full-target triangle strip with linear filtering.
// The texture must have been created with both TextureBinding and
// RenderAttachment usage, in the given format.
func (dr *Drivers) GenerateMipmaps(encoder *wgpu.CommandEncoder, texture *wgpu.Texture, format wgpu.TextureFormat, mipCount uint32) error {
	if mipCount < 2 {
		return nil
	}
	dev := dr.Device
	bgl, err := dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "blit",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: mipgen: %w", err)
	}
	defer bgl.Release()
	layout, err := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "blit",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return fmt.Errorf("gpu: mipgen: %w", err)
	}
	defer layout.Release()
	pipeline, err := dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "blit",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     dr.blit.vertex,
			EntryPoint: ShaderEntry,
		},
		Fragment: &wgpu.FragmentState{
			Module:     dr.blit.fragment,
			EntryPoint: ShaderEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleStrip,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("gpu: mipgen: %w", err)
	}
	defer pipeline.Release()
	sampler, err := dev.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "mip",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("gpu: mipgen: %w", err)
	}
	defer sampler.Release()

	views, err := MipViews(texture, format, mipCount)
	if err != nil {
		return fmt.Errorf("gpu: mipgen: %w", err)
	}
	defer func() {
		for _, v := range views {
			v.Release()
		}
	}()
	for target := 1; target < len(views); target++ {
		bg, err := dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Layout: bgl,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, TextureView: views[target-1]},
				{Binding: 1, Sampler: sampler},
			},
		})
		if err != nil {
			return fmt.Errorf("gpu: mipgen level %d: %w", target, err)
		}
		pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
			ColorAttachments: []wgpu.RenderPassColorAttachment{{
				View:       views[target],
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: ClearColor,
			}},
		})
		pass.SetPipeline(pipeline)
		pass.SetBindGroup(0, bg, nil)
		pass.Draw(4, 1, 0, 0)
		pass.End()
		pass.Release()
		bg.Release()
	}
	return nil
}

// MipViews creates one single-level view of the texture per mip level.
func MipViews(texture *wgpu.Texture, format wgpu.TextureFormat, mipCount uint32) ([]*wgpu.TextureView, error) {
	views := make([]*wgpu.TextureView, 0, mipCount)
	for mip := range mipCount {
		v, err := texture.CreateView(MipViewDescriptor(format, mip))
		if err != nil {
			for _, v := range views {
				v.Release()
			}
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// MipViewDescriptor returns the descriptor of a view of the single
// given mip level.
func MipViewDescriptor(format wgpu.TextureFormat, mip uint32) *wgpu.TextureViewDescriptor {
	return &wgpu.TextureViewDescriptor{
		Label:           fmt.Sprintf("mip %d", mip),
		Format:          format,
		Dimension:       wgpu.TextureViewDimension2D,
		BaseMipLevel:    mip,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspectAll,
	}
}
