// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu is the device layer of the engine, built on WebGPU.
// It owns the adapter, device, queue and presentation surface
// ([Drivers]), builds fixed-function render pipelines from
// declarative descriptions ([PipelineKind]), records frames
// ([Frame], [Pass]) and generates mip chains.
package gpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// Debug enables verbose logging of pipeline and frame construction.
var Debug = false

// Window is the windowing handle that the device layer presents into.
type Window interface {

	// SurfaceDescriptor returns the descriptor used to create the
	// presentation surface for this window.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// FramebufferSize returns the size of the window framebuffer in pixels.
	FramebufferSize() image.Point
}

// DepthFormat is the format of the depth target and of every
// pipeline depth state.
const DepthFormat = wgpu.TextureFormatDepth32Float

// ShaderEntry is the entry point of every shader stage.
const ShaderEntry = "main"

// ClearColor is the color every render pass clears its target to.
var ClearColor = wgpu.Color{R: 1, G: 1, B: 1, A: 1}
