// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systems

import (
	"errors"
	"fmt"
	"testing"

	"cogentcore.org/ronin/events"
	"cogentcore.org/ronin/gpu"
	"cogentcore.org/ronin/gpu/lambert"
	"cogentcore.org/ronin/math32"
	"cogentcore.org/ronin/resources"
	"cogentcore.org/ronin/scene"
	"cogentcore.org/ronin/system"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a [FrameSource] recording every call as a string.
type recorder struct {
	calls    []string
	acquired int
	ended    int
	failNext bool
}

func (rc *recorder) AspectRatio() float32 { return 16.0 / 9.0 }

func (rc *recorder) BeginFrame() (Frame, error) {
	if rc.failNext {
		return nil, errors.New("surface lost")
	}
	rc.acquired++
	return &recFrame{rc}, nil
}

type recFrame struct{ rc *recorder }

func (fr *recFrame) CreatePass(useDepthStencil bool) Pass {
	fr.rc.calls = append(fr.rc.calls, fmt.Sprintf("pass depth=%v", useDepthStencil))
	return &recPass{fr.rc}
}

func (fr *recFrame) End() error {
	fr.rc.ended++
	fr.rc.calls = append(fr.rc.calls, "end")
	return nil
}

type recPass struct{ rc *recorder }

func (ps *recPass) SetPipeline(sp *gpu.ShaderPipeline) {
	ps.rc.calls = append(ps.rc.calls, "pipeline "+sp.Name)
}

func (ps *recPass) SetBindGroup(index uint32, group *wgpu.BindGroup) {
	ps.rc.calls = append(ps.rc.calls, fmt.Sprintf("bind %d %v", index, group != nil))
}

func (ps *recPass) SetPushConstants(stages wgpu.ShaderStage, offset uint32, data []byte) {
	ps.rc.calls = append(ps.rc.calls, fmt.Sprintf("push %d %d %x", stages, offset, data))
}

func (ps *recPass) DrawIndexed(m gpu.IndexedMesh) {
	ps.rc.calls = append(ps.rc.calls, fmt.Sprintf("draw %d", m.IndexCount()))
}

func testWorld(withCamera bool) *scene.World {
	w := scene.NewWorld()
	if withCamera {
		w.SpawnCamera(scene.NewTransform(math32.Vec3(0, 2, 0)), scene.NewCamera())
	}
	mesh := &resources.Mesh{Indices: make([]uint16, 36)}
	mat := &resources.Material{BindGroup: &wgpu.BindGroup{}}
	for i := range 3 {
		w.SpawnRenderable(scene.NewTransform(math32.Vec3(float32(i), 0, 0)), scene.MeshRenderer{Mesh: mesh, Material: mat})
	}
	return w
}

func newTestGraphics(rc *recorder, world *scene.World, in *system.InputState) *Graphics {
	gr := NewGraphicsOf(rc, &gpu.ShaderPipeline{Name: lambert.Name}, in)
	gr.World = world
	return gr
}

func TestGraphicsTick(t *testing.T) {
	rc := &recorder{}
	gr := newTestGraphics(rc, testWorld(true), nil)
	require.True(t, gr.Tick())
	assert.True(t, gr.HasCamera)

	require.Len(t, rc.calls, 3+3*3)
	assert.Equal(t, "pass depth=true", rc.calls[0])
	assert.Equal(t, "pipeline Lambert", rc.calls[1])
	assert.Equal(t, "bind 0 true", rc.calls[2])
	assert.Contains(t, rc.calls[3], fmt.Sprintf("push %d 0 ", wgpu.ShaderStageVertex))
	assert.Equal(t, "draw 36", rc.calls[4])
	assert.Equal(t, "end", rc.calls[len(rc.calls)-1])

	// the push constants hold the world matrix followed by the view-projection
	tr := scene.NewTransform(math32.Vec3(1, 0, 0))
	pc := lambert.PushConstants{World: tr.Matrix(), ViewProj: gr.ViewProj}
	assert.Equal(t, fmt.Sprintf("push %d 0 %x", wgpu.ShaderStageVertex, pc.Bytes()), rc.calls[6])
}

func TestGraphicsNoCamera(t *testing.T) {
	rc := &recorder{}
	gr := newTestGraphics(rc, testWorld(false), nil)
	for range 3 {
		assert.True(t, gr.Tick())
	}
	assert.False(t, gr.HasCamera)
	assert.Equal(t, math32.Identity4(), gr.ViewProj)
	assert.Equal(t, 3, rc.acquired)
	assert.Equal(t, 3, rc.ended)

	gr.World = nil
	assert.True(t, gr.Tick())
	assert.Equal(t, 4, rc.ended)
}

func TestGraphicsAcquireEqualsSubmit(t *testing.T) {
	rc := &recorder{}
	gr := newTestGraphics(rc, testWorld(true), nil)
	for range 10 {
		gr.Tick()
	}
	assert.Equal(t, 10, rc.acquired)
	assert.Equal(t, rc.acquired, rc.ended)

	rc.failNext = true
	assert.False(t, gr.Tick())
	assert.Error(t, gr.Err)
	assert.Equal(t, rc.acquired, rc.ended)
}

func TestGraphicsDeterministic(t *testing.T) {
	run := func() []string {
		rc := &recorder{}
		in := &system.InputState{}
		gr := newTestGraphics(rc, testWorld(true), in)
		script := []events.Event{
			events.NewKey(events.KeyDown, events.CodeW, 0),
			events.NewMouse(events.MouseDown, events.Button2, math32.Vec2(10, 10), 0),
			events.NewMouseMove(math32.Vec2(40, 25)),
			events.NewKey(events.KeyUp, events.CodeW, 0),
			events.NewKey(events.KeyDown, events.CodeD, 0),
		}
		for _, ev := range script {
			in.HandleEvent(ev)
			gr.Tick()
		}
		return rc.calls
	}
	first := run()
	assert.Equal(t, first, run())
	assert.NotEmpty(t, first)
}
