// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"testing"

	"cogentcore.org/ronin/events"
	"cogentcore.org/ronin/math32"
	"github.com/stretchr/testify/assert"
)

func TestInputState(t *testing.T) {
	is := &InputState{}
	q := events.NewQueue()
	q.Send(events.NewKey(events.KeyDown, events.CodeW, 0))
	q.Send(events.NewKey(events.KeyDown, events.CodeA, 0))
	q.Send(events.NewKey(events.KeyUp, events.CodeA, 0))
	q.Send(events.NewMouse(events.MouseDown, events.Button2, math32.Vec2(10, 20), 0))
	q.Send(events.NewMouseMove(math32.Vec2(15, 25)))
	q.Drain(func(ev events.Event) { assert.True(t, is.HandleEvent(ev), ev.String()) })

	assert.True(t, is.IsKeyPressed(events.CodeW))
	assert.False(t, is.IsKeyPressed(events.CodeA))
	assert.True(t, is.IsButtonPressed(events.Button2))
	assert.False(t, is.IsButtonPressed(events.Button1))
	assert.Equal(t, math32.Vec2(15, 25), is.CursorPos)
	assert.False(t, is.CloseRequested)

	is.HandleEvent(events.NewMouse(events.MouseUp, events.Button2, math32.Vec2(15, 25), 0))
	assert.False(t, is.IsButtonPressed(events.Button2))

	assert.True(t, is.HandleEvent(events.NewWindow(events.WindowFocusLost)))
	assert.False(t, is.IsKeyPressed(events.CodeW))

	assert.True(t, is.HandleEvent(events.NewWindow(events.WindowClose)))
	assert.True(t, is.CloseRequested)
}

func TestInputStateIgnoresUnknown(t *testing.T) {
	is := &InputState{}
	assert.False(t, is.HandleEvent(events.NewKey(events.KeyDown, events.CodeUnknown, 0)))
	assert.False(t, is.HandleEvent(events.NewKey(events.KeyDown, events.Codes(999), 0)))
	assert.False(t, is.HandleEvent(events.NewMouse(events.MouseDown, events.Buttons(42), math32.Vector2{}, 0)))
	assert.False(t, is.IsKeyPressed(events.Codes(-1)))
	assert.False(t, is.IsButtonPressed(events.NoButton))

	unknown := &events.Base{}
	unknown.Init(events.UnknownType)
	assert.False(t, is.HandleEvent(unknown))
}

func TestHostPlatform(t *testing.T) {
	assert.NotEmpty(t, HostPlatform().String())
}
