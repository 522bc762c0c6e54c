// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systems

import (
	"fmt"
	"log/slog"

	"cogentcore.org/ronin/config"
	"cogentcore.org/ronin/gpu"
	"cogentcore.org/ronin/gpu/lambert"
	"cogentcore.org/ronin/math32"
	"cogentcore.org/ronin/scene"
	"cogentcore.org/ronin/system"
	"github.com/cogentcore/webgpu/wgpu"
)

// FrameSource begins the frames that the Graphics subsystem records.
// [*gpu.Drivers] is the engine implementation, through [DriversFrames].
type FrameSource interface {
	BeginFrame() (Frame, error)
	AspectRatio() float32
}

// Frame is one frame being recorded; see [gpu.Frame].
type Frame interface {
	CreatePass(useDepthStencil bool) Pass
	End() error
}

// Pass is one render pass of a [Frame]; see [gpu.Pass].
type Pass interface {
	SetPipeline(sp *gpu.ShaderPipeline)
	SetBindGroup(index uint32, group *wgpu.BindGroup)
	SetPushConstants(stages wgpu.ShaderStage, offset uint32, data []byte)
	DrawIndexed(m gpu.IndexedMesh)
}

// DriversFrames is the [FrameSource] of a device.
type DriversFrames struct {
	*gpu.Drivers
}

func (df DriversFrames) BeginFrame() (Frame, error) {
	fr, err := df.Drivers.BeginFrame()
	if err != nil {
		return nil, err
	}
	return driversFrame{fr}, nil
}

type driversFrame struct {
	*gpu.Frame
}

func (fr driversFrame) CreatePass(useDepthStencil bool) Pass {
	return fr.Frame.CreatePass(useDepthStencil)
}

// Graphics owns the device and the Lambert pipeline, and renders
// the world once per tick.
type Graphics struct {
	Drivers *gpu.Drivers
	Lambert *lambert.Pipeline

	// World is the world rendered each tick; nothing is drawn while nil.
	World *scene.World

	// Input is read by the camera.
	Input *system.InputState

	// ViewProj is the view-projection matrix of the last tick.
	ViewProj math32.Matrix4

	// HasCamera reports whether the last tick found a camera entity.
	// Without one the world is rendered with an identity view-projection.
	HasCamera bool

	// Err is the error that made the last tick fail.
	Err error

	frames   FrameSource
	pipeline *gpu.ShaderPipeline
}

// NewGraphics initializes the device on the window and builds the
// Lambert pipeline at the configured sample count.
func NewGraphics(cfg *config.Config, win gpu.Window, input *system.InputState) (*Graphics, error) {
	dr, err := gpu.Initialize(win, cfg)
	if err != nil {
		return nil, err
	}
	pl, err := lambert.New(dr, dr.Samples.SampleCount())
	if err != nil {
		dr.Release()
		return nil, fmt.Errorf("systems: failed to build the %s pipeline: %w", lambert.Name, err)
	}
	gr := NewGraphicsOf(DriversFrames{dr}, pl.ShaderPipeline, input)
	gr.Drivers, gr.Lambert = dr, pl
	return gr, nil
}

// NewGraphicsOf returns a Graphics subsystem recording into the frames
// of the given source with the given scene pipeline.
func NewGraphicsOf(frames FrameSource, pipeline *gpu.ShaderPipeline, input *system.InputState) *Graphics {
	if input == nil {
		input = &system.InputState{}
	}
	return &Graphics{frames: frames, pipeline: pipeline, Input: input, ViewProj: math32.Identity4()}
}

func (gr *Graphics) String() string { return "Graphics" }

func (gr *Graphics) Prepare() {}

// Tick computes the camera and records and submits one frame drawing
// every renderable entity. It returns false only when no frame could
// be acquired or submitted.
func (gr *Graphics) Tick() (ok bool) {
	fr, err := gr.frames.BeginFrame()
	if err != nil {
		gr.Err = err
		slog.Error("Failed to begin frame", "err", err)
		return false
	}
	defer func() {
		if err := fr.End(); err != nil {
			gr.Err = err
			slog.Error("Failed to end frame", "err", err)
			ok = false
		}
	}()

	gr.ViewProj, gr.HasCamera = gr.computeCamera()
	pass := fr.CreatePass(true)
	pass.SetPipeline(gr.pipeline)
	if gr.World == nil {
		return true
	}
	pc := lambert.PushConstants{ViewProj: gr.ViewProj}
	buf := make([]byte, 0, lambert.PushConstantsSize)
	gr.World.Renderables(func(e scene.Entity, tr *scene.Transform, mr *scene.MeshRenderer) {
		pc.World = tr.Matrix()
		buf = pc.AppendBytes(buf[:0])
		pass.SetBindGroup(0, mr.Material.BindGroup)
		pass.SetPushConstants(wgpu.ShaderStageVertex, 0, buf)
		pass.DrawIndexed(mr.Mesh)
	})
	return true
}

func (gr *Graphics) computeCamera() (math32.Matrix4, bool) {
	if gr.World == nil {
		return math32.Identity4(), false
	}
	tr, cam, ok := gr.World.FirstCamera()
	if !ok {
		return math32.Identity4(), false
	}
	return scene.ComputeCamera(gr.frames.AspectRatio(), tr, cam, gr.Input), true
}

func (gr *Graphics) Shutdown() {
	if gr.Lambert != nil {
		gr.Lambert.Release()
		gr.Lambert = nil
	}
	if gr.Drivers != nil {
		gr.Drivers.Release()
		gr.Drivers = nil
	}
}
