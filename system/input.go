// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"cogentcore.org/ronin/events"
	"cogentcore.org/ronin/math32"
)

// InputState is the state of the keyboard and mouse as of the last
// drained event. It is written by the platform tick and read by the
// simulation on the same goroutine.
type InputState struct {
	keys    [events.CodesN]bool
	buttons [events.ButtonsN]bool

	// CursorPos is the last cursor position in window coordinates.
	CursorPos math32.Vector2

	// CloseRequested is set once a [events.WindowClose] event is handled.
	CloseRequested bool
}

// HandleEvent updates the state from the given event, and returns
// whether the event was recognized. Unknown events and codes are ignored.
func (is *InputState) HandleEvent(ev events.Event) bool {
	switch e := ev.(type) {
	case *events.Key:
		if e.Code <= events.CodeUnknown || e.Code >= events.CodesN {
			return false
		}
		is.keys[e.Code] = e.Type() == events.KeyDown
	case *events.Mouse:
		is.CursorPos = e.Where
		if e.Type() == events.MouseMove {
			return true
		}
		if e.Button <= events.NoButton || e.Button >= events.ButtonsN {
			return false
		}
		is.buttons[e.Button] = e.Type() == events.MouseDown
	default:
		switch ev.Type() {
		case events.WindowClose:
			is.CloseRequested = true
		case events.WindowFocusLost:
			is.Reset()
		default:
			return false
		}
	}
	return true
}

// IsKeyPressed returns whether the key with the given code is down.
func (is *InputState) IsKeyPressed(code events.Codes) bool {
	return code > events.CodeUnknown && code < events.CodesN && is.keys[code]
}

// IsButtonPressed returns whether the given mouse button is down.
func (is *InputState) IsButtonPressed(but events.Buttons) bool {
	return but > events.NoButton && but < events.ButtonsN && is.buttons[but]
}

// Reset releases all keys and buttons, as when the window loses focus.
func (is *InputState) Reset() {
	clear(is.keys[:])
	clear(is.buttons[:])
}
