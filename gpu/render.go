// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// IndexedMesh is the GPU side of a mesh with uint16 indices.
type IndexedMesh interface {
	VertexBuffer() *wgpu.Buffer
	IndexBuffer() *wgpu.Buffer
	IndexCount() uint32
}

// Frame is one acquired presentation image and the command encoder
// recording into it. It is single use: obtain it with
// [Drivers.BeginFrame], record passes with [Frame.CreatePass], and
// submit it with [Frame.End], which must be called exactly once.
type Frame struct {

	// Encoder records the commands of this frame.
	Encoder *wgpu.CommandEncoder

	drivers *Drivers
	texture *wgpu.Texture
	view    *wgpu.TextureView
	passes  []*Pass
	ended   bool
}

// BeginFrame acquires the next presentation image and opens a command
// encoder for it. Failing to acquire an image means the surface is
// lost or outdated.
func (dr *Drivers) BeginFrame() (*Frame, error) {
	tex, err := dr.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to acquire the next surface texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	enc, err := dr.Device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}
	return &Frame{Encoder: enc, drivers: dr, texture: tex, view: view}, nil
}

// ColorAttachment returns the color attachment of a pass: with one sample
// it targets the surface view directly with no resolve target, otherwise
// it targets the multisampled view and resolves into the surface view.
// The target is cleared to [ClearColor].
func ColorAttachment(samples uint32, surface, multisampled *wgpu.TextureView) wgpu.RenderPassColorAttachment {
	ca := wgpu.RenderPassColorAttachment{
		View:       surface,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: ClearColor,
	}
	if samples > 1 {
		ca.View = multisampled
		ca.ResolveTarget = surface
	}
	return ca
}

// DepthAttachment returns a depth attachment cleared to 1 (farthest),
// leaving the stencil untouched.
func DepthAttachment(depth *wgpu.TextureView) *wgpu.RenderPassDepthStencilAttachment {
	return &wgpu.RenderPassDepthStencilAttachment{
		View:            depth,
		DepthLoadOp:     wgpu.LoadOpClear,
		DepthStoreOp:    wgpu.StoreOpDiscard,
		DepthClearValue: 1,
	}
}

// PassDescriptor returns the descriptor of a scene pass.
func PassDescriptor(samples uint32, surface, multisampled, depth *wgpu.TextureView, useDepthStencil bool) *wgpu.RenderPassDescriptor {
	rpd := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{ColorAttachment(samples, surface, multisampled)},
	}
	if useDepthStencil {
		rpd.DepthStencilAttachment = DepthAttachment(depth)
	}
	return rpd
}

// CreatePass begins a render pass on the frame, with the depth target
// attached when useDepthStencil is set. The previous pass is ended first,
// since an encoder can only record one pass at a time.
func (fr *Frame) CreatePass(useDepthStencil bool) *Pass {
	fr.endLastPass()
	dr := fr.drivers
	rpd := PassDescriptor(dr.Samples.SampleCount(), fr.view, dr.FrameBuffer, dr.Depth, useDepthStencil)
	ps := &Pass{Encoder: fr.Encoder.BeginRenderPass(rpd)}
	fr.passes = append(fr.passes, ps)
	return ps
}

// End ends any pass still open, submits the recorded commands to the
// queue and presents the image. It is the only point at which work is
// submitted. Calling End more than once returns an error.
func (fr *Frame) End() error {
	if fr.ended {
		return errors.New("gpu: frame already ended")
	}
	fr.ended = true
	defer fr.release()
	for _, ps := range fr.passes {
		ps.End()
	}
	cmd, err := fr.Encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("gpu: failed to finish frame commands: %w", err)
	}
	defer cmd.Release()
	fr.drivers.Queue.Submit(cmd)
	fr.drivers.Surface.Present()
	return nil
}

// endLastPass ends the most recently created pass, if any.
func (fr *Frame) endLastPass() {
	if n := len(fr.passes); n > 0 {
		fr.passes[n-1].End()
	}
}

func (fr *Frame) release() {
	fr.passes = nil
	fr.Encoder.Release()
	fr.view.Release()
	fr.texture.Release()
}

// Pass is one render pass of a [Frame].
type Pass struct {
	Encoder *wgpu.RenderPassEncoder
	ended   bool
}

// SetPipeline binds the render pipeline for the following draws.
func (ps *Pass) SetPipeline(sp *ShaderPipeline) {
	ps.Encoder.SetPipeline(sp.Pipeline)
}

// SetBindGroup binds a material bind group at the given index.
func (ps *Pass) SetBindGroup(index uint32, group *wgpu.BindGroup) {
	ps.Encoder.SetBindGroup(index, group, nil)
}

// SetPushConstants writes data into the push constant block read by the
// given stages, at the given byte offset.
func (ps *Pass) SetPushConstants(stages wgpu.ShaderStage, offset uint32, data []byte) {
	ps.Encoder.SetPushConstants(stages, offset, data)
}

// DrawIndexed draws all the indices of the mesh, one instance.
func (ps *Pass) DrawIndexed(m IndexedMesh) {
	ps.Encoder.SetIndexBuffer(m.IndexBuffer(), wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	ps.Encoder.SetVertexBuffer(0, m.VertexBuffer(), 0, wgpu.WholeSize)
	ps.Encoder.DrawIndexed(m.IndexCount(), 1, 0, 0, 0)
}

// End ends the pass. It is called by [Frame.End] for passes that are
// still open.
func (ps *Pass) End() {
	if ps.ended {
		return
	}
	ps.ended = true
	if ps.Encoder == nil {
		return
	}
	ps.Encoder.End()
	ps.Encoder.Release()
}
