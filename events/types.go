// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the input events produced by a window and
// the queue that carries them from the window callbacks to the
// platform tick.
package events

import (
	"fmt"
	"time"
)

// Types determines the type of an input event.
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// KeyDown happens when a key is pressed or auto-repeats.
	KeyDown

	// KeyUp happens when a key is released.
	KeyUp

	// MouseDown happens when a mouse button is pressed down.
	MouseDown

	// MouseUp happens when a mouse button is released.
	MouseUp

	// MouseMove is sent whenever the cursor moves over the window.
	MouseMove

	// WindowClose is sent when the user requests the window to close.
	WindowClose

	// WindowFocusLost is sent when the window loses input focus,
	// after which no key or button releases are reported to it.
	WindowFocusLost
)

var typeNames = [...]string{"UnknownType", "KeyDown", "KeyUp", "MouseDown", "MouseUp", "MouseMove", "WindowClose", "WindowFocusLost"}

func (tp Types) String() string {
	if tp >= 0 && int(tp) < len(typeNames) {
		return typeNames[tp]
	}
	return fmt.Sprintf("Types(%d)", int32(tp))
}

// Event is the interface of all input events.
type Event interface {
	fmt.Stringer

	// Type returns the type of the event.
	Type() Types

	// Time returns the time at which the event was created.
	Time() time.Time
}

// Base is the common part of all events.
type Base struct {
	Typ Types

	// GenTime is the time at which the event was created.
	GenTime time.Time
}

func (ev *Base) Init(typ Types) {
	ev.Typ = typ
	ev.GenTime = time.Now()
}

func (ev *Base) Type() Types     { return ev.Typ }
func (ev *Base) Time() time.Time { return ev.GenTime }
func (ev *Base) String() string  { return ev.Typ.String() }

// NewWindow returns a new window event of the given type.
func NewWindow(typ Types) *Base {
	ev := &Base{}
	ev.Init(typ)
	return ev
}
