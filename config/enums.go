// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"
)

// WindowModes are the ways the main window can be presented.
type WindowModes int32

const (
	// Windowed is a regular decorated window of the configured resolution.
	Windowed WindowModes = iota

	// FullScreen covers the primary monitor at its current video mode.
	FullScreen
)

var windowModeNames = []string{"Windowed", "FullScreen"}

func (m WindowModes) String() string { return enumString(windowModeNames, int(m), "WindowModes") }

func (m WindowModes) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *WindowModes) UnmarshalText(text []byte) error {
	i, err := enumParse(windowModeNames, string(text), "WindowModes")
	*m = WindowModes(i)
	return err
}

// MSAAModes are the supported numbers of samples per pixel.
// The value of each mode is its sample count.
type MSAAModes int32

const (
	// MSAAOff renders straight into the presentation image.
	MSAAOff MSAAModes = 1
	MSAAX2  MSAAModes = 2
	MSAAX4  MSAAModes = 4
	MSAAX8  MSAAModes = 8
)

// SampleCount returns the number of samples per pixel.
func (m MSAAModes) SampleCount() uint32 { return uint32(m) }

// IsValid returns whether m is one of the defined modes.
func (m MSAAModes) IsValid() bool {
	return m == MSAAOff || m == MSAAX2 || m == MSAAX4 || m == MSAAX8
}

func (m MSAAModes) String() string {
	switch m {
	case MSAAOff:
		return "Off"
	case MSAAX2, MSAAX4, MSAAX8:
		return fmt.Sprintf("X%d", int32(m))
	}
	return fmt.Sprintf("MSAAModes(%d)", int32(m))
}

func (m MSAAModes) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MSAAModes) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "off", "x1":
		*m = MSAAOff
	case "x2":
		*m = MSAAX2
	case "x4":
		*m = MSAAX4
	case "x8":
		*m = MSAAX8
	default:
		return fmt.Errorf("config: %q is not a valid MSAAModes value", text)
	}
	return nil
}

// Backends are the graphics APIs the device can be created on.
type Backends int32

const (
	// Auto lets the driver pick the primary backend of the platform.
	Auto Backends = iota
	Direct3D11
	Direct3D12
	OpenGL
	Vulkan
	WebGPU
)

var backendNames = []string{"Auto", "Direct3D11", "Direct3D12", "OpenGL", "Vulkan", "WebGPU"}

func (b Backends) String() string { return enumString(backendNames, int(b), "Backends") }

func (b Backends) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Backends) UnmarshalText(text []byte) error {
	i, err := enumParse(backendNames, string(text), "Backends")
	*b = Backends(i)
	return err
}

func enumString(names []string, i int, typ string) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%s(%d)", typ, i)
	}
	return names[i]
}

// enumParse finds s case-insensitively in names. On failure it returns
// 0 so that the field falls back to the first (default) value.
func enumParse(names []string, s, typ string) (int, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("config: %q is not a valid %s value", s, typ)
}
