// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "fmt"

// Codes are the physical key codes that the engine distinguishes.
// Keys that have no code are reported as [CodeUnknown].
type Codes int32

const (
	CodeUnknown Codes = iota

	CodeA
	CodeB
	CodeC
	CodeD
	CodeE
	CodeF
	CodeG
	CodeH
	CodeI
	CodeJ
	CodeK
	CodeL
	CodeM
	CodeN
	CodeO
	CodeP
	CodeQ
	CodeR
	CodeS
	CodeT
	CodeU
	CodeV
	CodeW
	CodeX
	CodeY
	CodeZ

	Code0
	Code1
	Code2
	Code3
	Code4
	Code5
	Code6
	Code7
	Code8
	Code9

	CodeEscape
	CodeReturnEnter
	CodeTab
	CodeBackspace
	CodeSpacebar

	CodeRightArrow
	CodeLeftArrow
	CodeDownArrow
	CodeUpArrow

	CodeLeftShift
	CodeLeftControl
	CodeLeftAlt
	CodeRightShift
	CodeRightControl
	CodeRightAlt

	// CodesN is the number of key codes.
	CodesN
)

func (c Codes) String() string {
	switch {
	case c >= CodeA && c <= CodeZ:
		return string(rune('A' + c - CodeA))
	case c >= Code0 && c <= Code9:
		return string(rune('0' + c - Code0))
	}
	switch c {
	case CodeUnknown:
		return "Unknown"
	case CodeEscape:
		return "Escape"
	case CodeReturnEnter:
		return "ReturnEnter"
	case CodeTab:
		return "Tab"
	case CodeBackspace:
		return "Backspace"
	case CodeSpacebar:
		return "Spacebar"
	case CodeRightArrow:
		return "RightArrow"
	case CodeLeftArrow:
		return "LeftArrow"
	case CodeDownArrow:
		return "DownArrow"
	case CodeUpArrow:
		return "UpArrow"
	case CodeLeftShift:
		return "LeftShift"
	case CodeLeftControl:
		return "LeftControl"
	case CodeLeftAlt:
		return "LeftAlt"
	case CodeRightShift:
		return "RightShift"
	case CodeRightControl:
		return "RightControl"
	case CodeRightAlt:
		return "RightAlt"
	}
	return fmt.Sprintf("Codes(%d)", int32(c))
}

// Modifiers are the modifier keys held during an event.
type Modifiers int32

const (
	Shift Modifiers = 1 << iota
	Control
	Alt
	Meta
)

// HasFlag returns whether the given modifier is set.
func (m Modifiers) HasFlag(f Modifiers) bool { return m&f != 0 }

// Key is a [KeyDown] or [KeyUp] event.
type Key struct {
	Base

	Code Codes
	Mods Modifiers
}

func NewKey(typ Types, code Codes, mods Modifiers) *Key {
	ev := &Key{Code: code, Mods: mods}
	ev.Init(typ)
	return ev
}

func (ev *Key) String() string {
	return fmt.Sprintf("%v{Code: %v, Mods: %d}", ev.Typ, ev.Code, ev.Mods)
}
