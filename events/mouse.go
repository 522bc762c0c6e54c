// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"

	"cogentcore.org/ronin/math32"
)

// Buttons is a mouse button, numbered as on the device: Button1 is
// the primary (left) button and Button2 the secondary (right) one.
type Buttons int32

const (
	NoButton Buttons = iota
	Button1
	Button2
	Button3
	Button4
	Button5
	Button6
	Button7
	Button8

	// ButtonsN is the number of mouse buttons.
	ButtonsN
)

// named aliases
const (
	Left   = Button1
	Right  = Button2
	Middle = Button3
)

func (b Buttons) String() string {
	if b == NoButton {
		return "NoButton"
	}
	return fmt.Sprintf("Button%d", int32(b))
}

// Mouse is a [MouseDown], [MouseUp] or [MouseMove] event.
type Mouse struct {
	Base

	// Button is the button pressed or released; [NoButton] for moves.
	Button Buttons

	// Where is the cursor position in window coordinates.
	Where math32.Vector2

	Mods Modifiers
}

func NewMouse(typ Types, but Buttons, where math32.Vector2, mods Modifiers) *Mouse {
	ev := &Mouse{Button: but, Where: where, Mods: mods}
	ev.Init(typ)
	return ev
}

// NewMouseMove returns a new [MouseMove] event to the given position.
func NewMouseMove(where math32.Vector2) *Mouse {
	return NewMouse(MouseMove, NoButton, where, 0)
}

func (ev *Mouse) String() string {
	return fmt.Sprintf("%v{Button: %v, Where: %v}", ev.Typ, ev.Button, ev.Where)
}
