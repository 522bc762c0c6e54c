// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/ronin/config"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorAttachment(t *testing.T) {
	surface, msaa := &wgpu.TextureView{}, &wgpu.TextureView{}

	ca := ColorAttachment(config.MSAAOff.SampleCount(), surface, msaa)
	assert.Same(t, surface, ca.View)
	assert.Nil(t, ca.ResolveTarget)
	assert.Equal(t, wgpu.LoadOpClear, ca.LoadOp)
	assert.Equal(t, ClearColor, ca.ClearValue)

	for _, m := range []config.MSAAModes{config.MSAAX2, config.MSAAX4, config.MSAAX8} {
		ca := ColorAttachment(m.SampleCount(), surface, msaa)
		assert.Same(t, msaa, ca.View, m.String())
		assert.Same(t, surface, ca.ResolveTarget, m.String())
		assert.Equal(t, wgpu.StoreOpStore, ca.StoreOp)
	}
}

func TestPassDescriptor(t *testing.T) {
	surface, depth := &wgpu.TextureView{}, &wgpu.TextureView{}
	rpd := PassDescriptor(1, surface, nil, depth, false)
	require.Len(t, rpd.ColorAttachments, 1)
	assert.Nil(t, rpd.DepthStencilAttachment)

	rpd = PassDescriptor(1, surface, nil, depth, true)
	require.NotNil(t, rpd.DepthStencilAttachment)
	ds := rpd.DepthStencilAttachment
	assert.Same(t, depth, ds.View)
	assert.Equal(t, wgpu.LoadOpClear, ds.DepthLoadOp)
	assert.Equal(t, float32(1), ds.DepthClearValue)
	assert.Zero(t, ds.StencilLoadOp)
}

func TestMipChain(t *testing.T) {
	assert.Equal(t, uint32(1), MipLevelCount(1, 1))
	assert.Equal(t, uint32(9), MipLevelCount(256, 256))
	assert.Equal(t, uint32(9), MipLevelCount(256, 16))
	assert.Equal(t, uint32(9), MipLevelCount(300, 200))

	for n := range 8 {
		size := 1 << n
		count := MipLevelCount(size, size)
		sizes := MipSizes(size, size, count)
		require.Len(t, sizes, int(count))
		assert.Equal(t, image.Pt(size, size), sizes[0])
		assert.Equal(t, image.Pt(1, 1), sizes[len(sizes)-1])
		for i := 1; i < len(sizes); i++ {
			assert.Equal(t, sizes[i-1].Div(2), sizes[i])
		}
	}

	sizes := MipSizes(256, 16, 9)
	assert.Equal(t, image.Pt(16, 1), sizes[4])
	assert.Equal(t, image.Pt(1, 1), sizes[8])

	// fewer levels than the full chain
	assert.Equal(t, []image.Point{{64, 64}, {32, 32}, {16, 16}}, MipSizes(64, 64, 3))
}

func TestMipViewDescriptor(t *testing.T) {
	d := MipViewDescriptor(TextureFormat, 3)
	assert.Equal(t, uint32(3), d.BaseMipLevel)
	assert.Equal(t, uint32(1), d.MipLevelCount)
	assert.Equal(t, wgpu.TextureViewDimension2D, d.Dimension)
}

func TestShaderPath(t *testing.T) {
	assert.Equal(t, filepath.Join("db", "shaders", "lambert", "shader.vert.wgsl"),
		ShaderPath(filepath.Join("db", "shaders"), "Lambert", VertexShader, "wgsl"))
	assert.Equal(t, filepath.Join("root", "lambert", "shader.frag.glsl"),
		ShaderPath("root", "Lambert", FragmentShader, "glsl"))
	assert.Equal(t, wgpu.ShaderStageVertex, VertexShader.Stage())
	assert.Equal(t, wgpu.ShaderStageFragment, FragmentShader.Stage())
}

func TestWGSLCompiler(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "shader.vert.wgsl")
	require.NoError(t, os.WriteFile(fn, []byte("@vertex fn main() {}"), 0644))
	desc, err := WGSLCompiler{}.Compile(fn, VertexShader)
	require.NoError(t, err)
	require.NotNil(t, desc.WGSLDescriptor)
	assert.Equal(t, "@vertex fn main() {}", desc.WGSLDescriptor.Code)

	_, err = WGSLCompiler{}.Compile(filepath.Join(t.TempDir(), "missing.wgsl"), FragmentShader)
	assert.ErrorContains(t, err, "missing.wgsl")
}

func TestCommandCompiler(t *testing.T) {
	cc, err := NewCommandCompiler(`glslc -fshader-stage={stage} --target-env="vulkan1.0" -o {out} {in}`)
	require.NoError(t, err)
	assert.Equal(t, "glsl", cc.Ext())
	assert.Equal(t,
		[]string{"glslc", "-fshader-stage=frag", "--target-env=vulkan1.0", "-o", "out.spv", "in dir/shader.frag.glsl"},
		cc.Command("in dir/shader.frag.glsl", "out.spv", FragmentShader))

	_, err = NewCommandCompiler("")
	assert.Error(t, err)
	_, err = NewCommandCompiler(`glslc "unterminated`)
	assert.Error(t, err)

	_, err = cc.Compile(filepath.Join(t.TempDir(), "none.glsl"), VertexShader)
	assert.ErrorContains(t, err, "none.glsl")
}

func TestDeviceSettings(t *testing.T) {
	assert.Equal(t, wgpu.PresentModeFifo, PresentMode(true))
	assert.Equal(t, wgpu.PresentModeMailbox, PresentMode(false))
	assert.Equal(t, wgpu.PowerPreferenceLowPower, PowerPreference(true))
	assert.Equal(t, wgpu.PowerPreferenceHighPerformance, PowerPreference(false))
	assert.Equal(t, wgpu.InstanceBackendVulkan, BackendFlags(config.Vulkan))
	assert.Equal(t, wgpu.InstanceBackendPrimary, BackendFlags(config.Auto))
	assert.Equal(t, wgpu.InstanceBackendGL, BackendFlags(config.OpenGL))

	assert.Equal(t, float32(16)/9, AspectRatio(image.Pt(1920, 1080)))
	assert.Equal(t, float32(1), AspectRatio(image.Point{}))
}

func TestRequiredLimits(t *testing.T) {
	gc := config.NewConfig().Graphics
	gc.MaxBindGroups = 3
	l := RequiredLimits(&gc)
	assert.Equal(t, uint32(3), l.Limits.MaxBindGroups)
	assert.Equal(t, uint32(12), l.Limits.MaxUniformBuffersPerShaderStage)
	assert.Equal(t, uint64(16384), l.Limits.MaxUniformBufferBindingSize)
	assert.Equal(t, uint32(256), l.Limits.MaxPushConstantSize)
}

func TestEndLastPass(t *testing.T) {
	fr := &Frame{}
	fr.endLastPass()

	first, second := &Pass{}, &Pass{}
	fr.passes = []*Pass{first}
	fr.endLastPass()
	assert.True(t, first.ended)

	fr.passes = append(fr.passes, second)
	assert.False(t, second.ended)
	fr.endLastPass()
	assert.True(t, second.ended)
	first.End()
	assert.True(t, first.ended)
}

func TestDrivers(t *testing.T) {
	t.Skip("Need software GPU on CI")
}
