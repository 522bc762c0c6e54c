// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package desktop

import (
	"cogentcore.org/ronin/events"
	"cogentcore.org/ronin/math32"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func GlfwMods(mod glfw.ModifierKey) events.Modifiers {
	var m events.Modifiers
	if mod&glfw.ModShift != 0 {
		m |= events.Shift
	}
	if mod&glfw.ModControl != 0 {
		m |= events.Control
	}
	if mod&glfw.ModAlt != 0 {
		m |= events.Alt
	}
	if mod&glfw.ModSuper != 0 {
		m |= events.Meta
	}
	return m
}

// physical key
func (w *Window) KeyEvent(gw *glfw.Window, ky glfw.Key, scancode int, action glfw.Action, mod glfw.ModifierKey) {
	typ := events.KeyDown
	if action == glfw.Release {
		typ = events.KeyUp
	}
	w.events.Send(events.NewKey(typ, GlfwKeyCode(ky), GlfwMods(mod)))
}

func (w *Window) MouseButtonEvent(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	typ := events.MouseDown
	if action == glfw.Release {
		typ = events.MouseUp
	}
	w.events.Send(events.NewMouse(typ, GlfwButton(button), w.cursorPos(gw), GlfwMods(mod)))
}

func (w *Window) CursorPosEvent(gw *glfw.Window, x, y float64) {
	w.events.Send(events.NewMouseMove(math32.Vec2(float32(x), float32(y))))
}

func (w *Window) CloseEvent(gw *glfw.Window) {
	w.events.Send(events.NewWindow(events.WindowClose))
}

func (w *Window) FocusEvent(gw *glfw.Window, focused bool) {
	if !focused {
		w.events.Send(events.NewWindow(events.WindowFocusLost))
	}
}

func (w *Window) cursorPos(gw *glfw.Window) math32.Vector2 {
	x, y := gw.GetCursorPos()
	return math32.Vec2(float32(x), float32(y))
}

// GlfwButton returns the button of a glfw mouse button; glfw numbers
// buttons from 0.
func GlfwButton(button glfw.MouseButton) events.Buttons {
	b := events.Buttons(button) + events.Button1
	if b < events.Button1 || b >= events.ButtonsN {
		return events.NoButton
	}
	return b
}

// GlfwKeyCode returns the key code of a glfw key.
func GlfwKeyCode(kcode glfw.Key) events.Codes {
	if c, ok := keyCodes[kcode]; ok {
		return c
	}
	return events.CodeUnknown
}

var keyCodes = map[glfw.Key]events.Codes{
	glfw.KeyA: events.CodeA,
	glfw.KeyB: events.CodeB,
	glfw.KeyC: events.CodeC,
	glfw.KeyD: events.CodeD,
	glfw.KeyE: events.CodeE,
	glfw.KeyF: events.CodeF,
	glfw.KeyG: events.CodeG,
	glfw.KeyH: events.CodeH,
	glfw.KeyI: events.CodeI,
	glfw.KeyJ: events.CodeJ,
	glfw.KeyK: events.CodeK,
	glfw.KeyL: events.CodeL,
	glfw.KeyM: events.CodeM,
	glfw.KeyN: events.CodeN,
	glfw.KeyO: events.CodeO,
	glfw.KeyP: events.CodeP,
	glfw.KeyQ: events.CodeQ,
	glfw.KeyR: events.CodeR,
	glfw.KeyS: events.CodeS,
	glfw.KeyT: events.CodeT,
	glfw.KeyU: events.CodeU,
	glfw.KeyV: events.CodeV,
	glfw.KeyW: events.CodeW,
	glfw.KeyX: events.CodeX,
	glfw.KeyY: events.CodeY,
	glfw.KeyZ: events.CodeZ,

	glfw.Key0: events.Code0,
	glfw.Key1: events.Code1,
	glfw.Key2: events.Code2,
	glfw.Key3: events.Code3,
	glfw.Key4: events.Code4,
	glfw.Key5: events.Code5,
	glfw.Key6: events.Code6,
	glfw.Key7: events.Code7,
	glfw.Key8: events.Code8,
	glfw.Key9: events.Code9,

	glfw.KeyEscape:    events.CodeEscape,
	glfw.KeyEnter:     events.CodeReturnEnter,
	glfw.KeyTab:       events.CodeTab,
	glfw.KeyBackspace: events.CodeBackspace,
	glfw.KeySpace:     events.CodeSpacebar,

	glfw.KeyRight: events.CodeRightArrow,
	glfw.KeyLeft:  events.CodeLeftArrow,
	glfw.KeyDown:  events.CodeDownArrow,
	glfw.KeyUp:    events.CodeUpArrow,

	glfw.KeyLeftShift:    events.CodeLeftShift,
	glfw.KeyLeftControl:  events.CodeLeftControl,
	glfw.KeyLeftAlt:      events.CodeLeftAlt,
	glfw.KeyRightShift:   events.CodeRightShift,
	glfw.KeyRightControl: events.CodeRightControl,
	glfw.KeyRightAlt:     events.CodeRightAlt,
}
