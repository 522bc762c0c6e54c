// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package desktop implements the system window on desktop platforms
// using glfw.
package desktop

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/ronin/config"
	"cogentcore.org/ronin/events"
	"cogentcore.org/ronin/system"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// App is the glfw [system.WindowFactory].
// IMPORTANT: all of its methods and those of its windows must be
// called on the main initial thread!
type App struct{}

// NewApp initializes glfw and logs the connected monitors.
func NewApp() (*App, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("desktop: failed to initialize glfw: %w", err)
	}
	LogMonitors()
	return &App{}, nil
}

// LogMonitors logs the properties and video modes of every
// connected monitor.
func LogMonitors() {
	for i, mon := range glfw.GetMonitors() {
		px, py := mon.GetPos()
		pw, ph := mon.GetPhysicalSize()
		sx, sy := mon.GetContentScale()
		wx, wy, ww, wh := mon.GetWorkarea()
		slog.Info("Monitor", "index", i+1, "name", mon.GetName(),
			"pos", image.Pt(px, py), "physicalSizeMM", image.Pt(pw, ph),
			"contentScale", [2]float32{sx, sy}, "workarea", image.Rect(wx, wy, wx+ww, wy+wh))
		for j, vm := range mon.GetVideoModes() {
			slog.Debug("Video mode", "monitor", i+1, "index", j+1,
				"size", image.Pt(vm.Width, vm.Height), "refreshRate", vm.RefreshRate,
				"bits", [3]int{vm.RedBits, vm.GreenBits, vm.BlueBits})
		}
	}
}

func (a *App) NewWindow(opts *system.WindowOptions) (system.Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.False)

	size := opts.Size
	var mon *glfw.Monitor
	if opts.Mode == config.FullScreen {
		if mon = glfw.GetPrimaryMonitor(); mon == nil {
			slog.Warn("No primary monitor found, falling back to windowed mode")
		} else if vm := mon.GetVideoMode(); vm != nil {
			size = image.Pt(vm.Width, vm.Height)
		}
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.New("desktop: window size must be positive")
	}
	glw, err := glfw.CreateWindow(size.X, size.Y, opts.Title, mon, nil)
	if err != nil {
		return nil, fmt.Errorf("desktop: failed to create window: %w", err)
	}
	w := &Window{Glw: glw, events: events.NewQueue()}
	glw.SetKeyCallback(w.KeyEvent)
	glw.SetMouseButtonCallback(w.MouseButtonEvent)
	glw.SetCursorPosCallback(w.CursorPosEvent)
	glw.SetCloseCallback(w.CloseEvent)
	glw.SetFocusCallback(w.FocusEvent)
	slog.Info("Created window", "title", opts.Title, "mode", opts.Mode, "framebuffer", w.FramebufferSize())
	return w, nil
}

func (a *App) Terminate() {
	glfw.Terminate()
}

// Window is a glfw [system.Window].
type Window struct {
	Glw    *glfw.Window
	events *events.Queue
}

func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.Glw)
}

func (w *Window) FramebufferSize() image.Point {
	x, y := w.Glw.GetFramebufferSize()
	return image.Pt(x, y)
}

func (w *Window) Show()                 { w.Glw.Show() }
func (w *Window) Focus()                { w.Glw.Focus() }
func (w *Window) PollEvents()           { glfw.PollEvents() }
func (w *Window) ShouldClose() bool     { return w.Glw.ShouldClose() }
func (w *Window) Events() *events.Queue { return w.events }

func (w *Window) Destroy() {
	if w.Glw != nil {
		w.Glw.Hide()
		w.Glw.Destroy()
		w.Glw = nil
	}
}
