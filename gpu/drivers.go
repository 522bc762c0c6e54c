// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/ronin/config"
	"github.com/cogentcore/webgpu/wgpu"
)

// Drivers owns the WebGPU instance, adapter, device, queue and the
// presentation surface of the main window, together with the
// multisampled color target and the depth target that every frame
// renders into.
type Drivers struct {
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue

	// SurfaceConfig is the current configuration of the surface.
	SurfaceConfig wgpu.SurfaceConfiguration

	// Samples is the number of samples per pixel of the render targets.
	Samples config.MSAAModes

	// FrameBuffer is the multisampled color target; nil when MSAA is off.
	FrameBuffer *wgpu.TextureView

	// Depth is the depth target.
	Depth *wgpu.TextureView

	// Compiler compiles the shader sources.
	Compiler ShaderCompiler

	// ShaderRoot is the root directory of the fixed pipeline shaders.
	ShaderRoot string

	frameBufferTexture *wgpu.Texture
	depthTexture       *wgpu.Texture
	blit               *blitShaders
}

// Initialize creates the device layer for the given window, according
// to the given config. Any failure is returned as an error naming the
// failing step, and nothing is left allocated.
func Initialize(win Window, cfg *config.Config) (_ *Drivers, err error) {
	gc := &cfg.Graphics
	dr := &Drivers{Samples: gc.MSAAMode, ShaderRoot: gc.ShaderRoot}
	defer func() {
		if err != nil {
			dr.Release()
		}
	}()
	if !dr.Samples.IsValid() {
		return nil, fmt.Errorf("gpu: invalid MSAA mode %d", dr.Samples)
	}
	if gc.ShaderCompiler != "" {
		cc, err := NewCommandCompiler(gc.ShaderCompiler)
		if err != nil {
			return nil, err
		}
		dr.Compiler = cc
	} else {
		dr.Compiler = WGSLCompiler{}
	}

	dr.Instance = wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: BackendFlags(gc.BackendAPI)})
	dr.Surface = dr.Instance.CreateSurface(win.SurfaceDescriptor())
	dr.Adapter, err = dr.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: dr.Surface,
		PowerPreference:   PowerPreference(cfg.App.PowerSafeMode),
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to find a compatible adapter: %w", err)
	}
	limits := RequiredLimits(gc)
	dr.Device, err = dr.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:            "Ronin Device",
		RequiredFeatures: []wgpu.FeatureName{wgpu.NativeFeaturePushConstants},
		RequiredLimits:   &limits,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to create the logical device: %w", err)
	}
	dr.Queue = dr.Device.GetQueue()

	caps := dr.Surface.GetCapabilities(dr.Adapter)
	if len(caps.Formats) == 0 {
		return nil, errors.New("gpu: the surface is not supported by the adapter")
	}
	dr.SurfaceConfig = wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
		Format:      caps.Formats[0],
		PresentMode: PresentMode(cfg.Display.VSync),
	}
	if len(caps.AlphaModes) > 0 {
		dr.SurfaceConfig.AlphaMode = caps.AlphaModes[0]
	}
	if err := dr.Resize(win.FramebufferSize()); err != nil {
		return nil, err
	}
	slog.Info("Surface configured", "format", dr.SurfaceConfig.Format, "width", dr.SurfaceConfig.Width,
		"height", dr.SurfaceConfig.Height, "presentMode", dr.SurfaceConfig.PresentMode, "msaa", dr.Samples)

	dr.blit, err = dr.loadBlitShaders(gc.MipgenShaderDir)
	if err != nil {
		return nil, err
	}
	return dr, nil
}

// BackendFlags returns the instance backends for the configured API.
// Direct3D11 is not provided by the WebGPU runtime and falls back to
// Direct3D12.
func BackendFlags(b config.Backends) wgpu.InstanceBackend {
	switch b {
	case config.Direct3D11:
		slog.Warn("Direct3D11 is not available, using Direct3D12")
		return wgpu.InstanceBackendDX12
	case config.Direct3D12:
		return wgpu.InstanceBackendDX12
	case config.OpenGL:
		return wgpu.InstanceBackendGL
	case config.Vulkan:
		return wgpu.InstanceBackendVulkan
	case config.WebGPU:
		return wgpu.InstanceBackendBrowserWebGPU
	}
	return wgpu.InstanceBackendPrimary
}

// PowerPreference returns the adapter power preference.
func PowerPreference(powerSafe bool) wgpu.PowerPreference {
	if powerSafe {
		return wgpu.PowerPreferenceLowPower
	}
	return wgpu.PowerPreferenceHighPerformance
}

// PresentMode returns Fifo with vsync, and the non-blocking
// Mailbox mode without.
func PresentMode(vsync bool) wgpu.PresentMode {
	if vsync {
		return wgpu.PresentModeFifo
	}
	return wgpu.PresentModeMailbox
}

// RequiredLimits returns the device limits taken verbatim from the config,
// on top of the WebGPU default limits.
func RequiredLimits(gc *config.GraphicsConfig) wgpu.RequiredLimits {
	l := wgpu.DefaultLimits()
	l.MaxBindGroups = gc.MaxBindGroups
	l.MaxDynamicUniformBuffersPerPipelineLayout = gc.MaxDynamicUniformBuffersPerPipelineLayout
	l.MaxDynamicStorageBuffersPerPipelineLayout = gc.MaxDynamicStorageBuffersPerPipelineLayout
	l.MaxSampledTexturesPerShaderStage = gc.MaxSampledTexturesPerShaderStage
	l.MaxSamplersPerShaderStage = gc.MaxSamplersPerShaderStage
	l.MaxStorageBuffersPerShaderStage = gc.MaxStorageBuffersPerShaderStage
	l.MaxStorageTexturesPerShaderStage = gc.MaxStorageTexturesPerShaderStage
	l.MaxUniformBuffersPerShaderStage = gc.MaxUniformBuffersPerShaderStage
	l.MaxUniformBufferBindingSize = gc.MaxUniformBufferBindingSize
	l.MaxPushConstantSize = gc.MaxPushConstantPoolByteSize
	return wgpu.RequiredLimits{Limits: l}
}

// Size returns the current size of the surface in pixels.
func (dr *Drivers) Size() image.Point {
	return image.Pt(int(dr.SurfaceConfig.Width), int(dr.SurfaceConfig.Height))
}

// AspectRatio returns the surface width divided by its height.
func (dr *Drivers) AspectRatio() float32 {
	return AspectRatio(dr.Size())
}

// AspectRatio returns sz.X / sz.Y, or 1 for an empty size.
func AspectRatio(sz image.Point) float32 {
	if sz.Y == 0 {
		return 1
	}
	return float32(sz.X) / float32(sz.Y)
}

// Resize configures the surface for the given framebuffer size and
// recreates the render targets to match. It does nothing for an empty
// size, which happens while a window is minimized.
func (dr *Drivers) Resize(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	dr.SurfaceConfig.Width = uint32(size.X)
	dr.SurfaceConfig.Height = uint32(size.Y)
	dr.Surface.Configure(dr.Adapter, dr.Device, &dr.SurfaceConfig)
	return dr.createTargets()
}

// createTargets (re)creates the multisampled color target and the depth
// target at the size and sample count of the surface.
func (dr *Drivers) createTargets() error {
	dr.releaseTargets()
	n := dr.Samples.SampleCount()
	if n > 1 {
		tex, view, err := dr.renderTarget("Frame Buffer", dr.SurfaceConfig.Format, n)
		if err != nil {
			return fmt.Errorf("gpu: failed to create the multisampled frame buffer: %w", err)
		}
		dr.frameBufferTexture, dr.FrameBuffer = tex, view
	}
	tex, view, err := dr.renderTarget("Depth Buffer", DepthFormat, n)
	if err != nil {
		return fmt.Errorf("gpu: failed to create the depth buffer: %w", err)
	}
	dr.depthTexture, dr.Depth = tex, view
	return nil
}

func (dr *Drivers) renderTarget(label string, format wgpu.TextureFormat, samples uint32) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := dr.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              dr.SurfaceConfig.Width,
			Height:             dr.SurfaceConfig.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, err
	}
	return tex, view, nil
}

func (dr *Drivers) releaseTargets() {
	if dr.FrameBuffer != nil {
		dr.FrameBuffer.Release()
		dr.FrameBuffer = nil
	}
	if dr.frameBufferTexture != nil {
		dr.frameBufferTexture.Release()
		dr.frameBufferTexture = nil
	}
	if dr.Depth != nil {
		dr.Depth.Release()
		dr.Depth = nil
	}
	if dr.depthTexture != nil {
		dr.depthTexture.Release()
		dr.depthTexture = nil
	}
}

// Release releases all GPU objects owned by the drivers, in reverse
// order of creation. It is safe to call on partially initialized drivers.
func (dr *Drivers) Release() {
	if dr == nil {
		return
	}
	if dr.blit != nil {
		dr.blit.release()
		dr.blit = nil
	}
	dr.releaseTargets()
	if dr.Queue != nil {
		dr.Queue.Release()
		dr.Queue = nil
	}
	if dr.Device != nil {
		dr.Device.Release()
		dr.Device = nil
	}
	if dr.Adapter != nil {
		dr.Adapter.Release()
		dr.Adapter = nil
	}
	if dr.Surface != nil {
		dr.Surface.Release()
		dr.Surface = nil
	}
	if dr.Instance != nil {
		dr.Instance.Release()
		dr.Instance = nil
	}
}
