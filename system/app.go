// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system provides the operating system interface of the engine:
// the window that the device presents into, its input events and the
// input state that the simulation reads each tick. The desktop
// implementation lives in system/driver/desktop.
package system

import (
	"image"
	"runtime"

	"cogentcore.org/ronin/config"
	"cogentcore.org/ronin/events"
	"cogentcore.org/ronin/gpu"
)

// Window is an operating system window with a presentation surface.
// All of its methods must be called on the main thread.
type Window interface {
	gpu.Window

	// Show makes the window visible.
	Show()

	// Focus brings the window to the front and gives it input focus.
	Focus()

	// PollEvents processes pending window system events, which sends
	// the resulting input events to [Window.Events].
	PollEvents()

	// ShouldClose returns whether the user has requested to close the window.
	ShouldClose() bool

	// Events returns the queue that receives the input events of the window.
	Events() *events.Queue

	// Destroy destroys the window.
	Destroy()
}

// WindowOptions are the options for creating a [Window].
type WindowOptions struct {
	Title string

	// Mode is windowed or full screen on the primary monitor.
	Mode config.WindowModes

	// Size is the requested size in windowed mode. Full screen windows
	// take the size of the current video mode of the monitor.
	Size image.Point
}

// WindowFactory creates windows. It owns the window system connection.
type WindowFactory interface {

	// NewWindow creates a new hidden, non-resizable window without a
	// client graphics API.
	NewWindow(opts *WindowOptions) (Window, error)

	// Terminate shuts down the window system connection. It is called
	// after all windows have been destroyed.
	Terminate()
}

// Platforms are all the supported platforms for system
type Platforms int32

const (
	// MacOS is a Mac OS machine (aka Darwin)
	MacOS Platforms = iota

	// Linux is a Linux OS machine
	Linux

	// Windows is a Microsoft Windows machine
	Windows

	// Other is any other desktop system supported by glfw.
	Other
)

func (p Platforms) String() string {
	switch p {
	case MacOS:
		return "MacOS"
	case Linux:
		return "Linux"
	case Windows:
		return "Windows"
	}
	return "Other"
}

// HostPlatform returns the platform the engine is running on.
func HostPlatform() Platforms {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	case "windows":
		return Windows
	}
	return Other
}
