// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systems

import (
	"errors"
	"log/slog"
	"runtime"
	"strings"

	"cogentcore.org/ronin/config"
	"cogentcore.org/ronin/events"
	"cogentcore.org/ronin/system"
	"golang.org/x/sys/cpu"
)

// Platform owns the window and the input state. Its tick polls the
// window system and drains the input events.
type Platform struct {
	Window system.Window

	// Input is the input state as of the last tick.
	Input system.InputState

	factory system.WindowFactory
}

// NewPlatform logs the host information and creates the window.
func NewPlatform(cfg *config.Config, factory system.WindowFactory) (*Platform, error) {
	if factory == nil {
		return nil, errors.New("systems: no window factory")
	}
	LogHostInfo()
	win, err := factory.NewWindow(WindowOptions(cfg))
	if err != nil {
		factory.Terminate()
		return nil, err
	}
	return &Platform{Window: win, factory: factory}, nil
}

// WindowOptions returns the window options for the config.
func WindowOptions(cfg *config.Config) *system.WindowOptions {
	res := cfg.Display.Resolution.Sanitized()
	return &system.WindowOptions{
		Title: cfg.App.ProductName + " - Simulation",
		Mode:  cfg.Display.WindowMode,
		Size:  res.Point(),
	}
}

func (pl *Platform) String() string { return "Platform" }

func (pl *Platform) Prepare() {
	pl.Window.Show()
	pl.Window.Focus()
}

func (pl *Platform) Tick() bool {
	pl.Window.PollEvents()
	pl.Window.Events().Drain(func(ev events.Event) {
		pl.Input.HandleEvent(ev)
	})
	return !pl.Input.CloseRequested && !pl.Window.ShouldClose()
}

func (pl *Platform) Shutdown() {
	if pl.Window != nil {
		pl.Window.Destroy()
		pl.Window = nil
	}
	if pl.factory != nil {
		pl.factory.Terminate()
		pl.factory = nil
	}
}

type cpuFeature struct {
	name string
	has  bool
}

// CPUFeatures returns the names of the instruction set extensions
// of the host CPU that are available.
func CPUFeatures() []string {
	var fs []cpuFeature
	switch runtime.GOARCH {
	case "amd64", "386":
		fs = []cpuFeature{
			{"AES", cpu.X86.HasAES},
			{"PCLMULQDQ", cpu.X86.HasPCLMULQDQ},
			{"RDRAND", cpu.X86.HasRDRAND},
			{"RDSEED", cpu.X86.HasRDSEED},
			{"SSE2", cpu.X86.HasSSE2},
			{"SSE3", cpu.X86.HasSSE3},
			{"SSSE3", cpu.X86.HasSSSE3},
			{"SSE4.1", cpu.X86.HasSSE41},
			{"SSE4.2", cpu.X86.HasSSE42},
			{"AVX", cpu.X86.HasAVX},
			{"AVX2", cpu.X86.HasAVX2},
			{"AVX512F", cpu.X86.HasAVX512F},
			{"FMA", cpu.X86.HasFMA},
			{"BMI1", cpu.X86.HasBMI1},
			{"BMI2", cpu.X86.HasBMI2},
			{"POPCNT", cpu.X86.HasPOPCNT},
			{"ADX", cpu.X86.HasADX},
		}
	case "arm64":
		fs = []cpuFeature{
			{"ASIMD", cpu.ARM64.HasASIMD},
			{"AES", cpu.ARM64.HasAES},
			{"PMULL", cpu.ARM64.HasPMULL},
			{"SHA1", cpu.ARM64.HasSHA1},
			{"SHA2", cpu.ARM64.HasSHA2},
			{"CRC32", cpu.ARM64.HasCRC32},
			{"ATOMICS", cpu.ARM64.HasATOMICS},
		}
	}
	var names []string
	for _, f := range fs {
		if f.has {
			names = append(names, f.name)
		}
	}
	return names
}

// LogHostInfo logs the platform, runtime and CPU of the host.
func LogHostInfo() {
	slog.Info("Host", "platform", system.HostPlatform(), "os", runtime.GOOS, "arch", runtime.GOARCH,
		"go", runtime.Version())
	slog.Info("CPU", "logicalCores", runtime.NumCPU(), "features", strings.Join(CPUFeatures(), " "))
}
