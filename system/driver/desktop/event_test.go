// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package desktop

import (
	"testing"

	"cogentcore.org/ronin/events"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestGlfwMapping(t *testing.T) {
	assert.Equal(t, events.CodeW, GlfwKeyCode(glfw.KeyW))
	assert.Equal(t, events.CodeEscape, GlfwKeyCode(glfw.KeyEscape))
	assert.Equal(t, events.CodeUnknown, GlfwKeyCode(glfw.KeyF13))

	assert.Equal(t, events.Button1, GlfwButton(glfw.MouseButton1))
	assert.Equal(t, events.Button2, GlfwButton(glfw.MouseButton2))
	assert.Equal(t, events.Right, GlfwButton(glfw.MouseButtonRight))
	assert.Equal(t, events.Button8, GlfwButton(glfw.MouseButton8))

	assert.Equal(t, events.Shift|events.Meta, GlfwMods(glfw.ModShift|glfw.ModSuper))
}

func TestCallbacksFeedQueue(t *testing.T) {
	w := &Window{events: events.NewQueue()}
	w.KeyEvent(nil, glfw.KeyS, 0, glfw.Press, 0)
	w.KeyEvent(nil, glfw.KeyS, 0, glfw.Repeat, 0)
	w.KeyEvent(nil, glfw.KeyS, 0, glfw.Release, glfw.ModControl)
	w.CursorPosEvent(nil, 12.5, 7)
	w.FocusEvent(nil, true)
	w.FocusEvent(nil, false)
	w.CloseEvent(nil)

	var got []events.Types
	w.Events().Drain(func(ev events.Event) { got = append(got, ev.Type()) })
	assert.Equal(t, []events.Types{events.KeyDown, events.KeyDown, events.KeyUp,
		events.MouseMove, events.WindowFocusLost, events.WindowClose}, got)
}
