// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package systems contains the subsystems that make up one engine tick
// (Platform, Memory and Graphics) and the [Supervisor] that drives them
// in that fixed order.
package systems

import (
	"fmt"
	"log/slog"

	"cogentcore.org/ronin/config"
	"cogentcore.org/ronin/system"
)

// Subsystem is one stage of the engine tick.
type Subsystem interface {
	fmt.Stringer

	// Prepare is called once after all subsystems are created and
	// before the first tick.
	Prepare()

	// Tick runs one step, and returns false to request that the
	// engine stops after this tick.
	Tick() bool

	// Shutdown releases the resources of the subsystem.
	Shutdown()
}

// Options are the collaborators of [NewSupervisor].
type Options struct {

	// WindowFactory creates the window of the Platform subsystem.
	WindowFactory system.WindowFactory
}

// Supervisor owns the subsystems and ticks them in dependency order.
type Supervisor struct {
	Platform *Platform
	Memory   *Memory
	Graphics *Graphics

	// Subsystems are all subsystems in tick order.
	Subsystems []Subsystem
}

// NewSupervisor creates the Platform, Memory and Graphics subsystems in
// that order; Graphics presents into the window of the Platform.
// Subsystems created before a failure are shut down.
func NewSupervisor(cfg *config.Config, opts Options) (*Supervisor, error) {
	pl, err := NewPlatform(cfg, opts.WindowFactory)
	if err != nil {
		return nil, err
	}
	mem := NewMemory(cfg)
	gr, err := NewGraphics(cfg, pl.Window, &pl.Input)
	if err != nil {
		mem.Shutdown()
		pl.Shutdown()
		return nil, err
	}
	sv := NewSupervisorOf(pl, mem, gr)
	sv.Platform, sv.Memory, sv.Graphics = pl, mem, gr
	return sv, nil
}

// NewSupervisorOf returns a supervisor ticking the given subsystems
// in the given order.
func NewSupervisorOf(subs ...Subsystem) *Supervisor {
	return &Supervisor{Subsystems: subs}
}

// PrepareAll prepares every subsystem in order.
func (sv *Supervisor) PrepareAll() {
	for _, s := range sv.Subsystems {
		s.Prepare()
	}
}

// TickAll ticks every subsystem in order, and returns whether all of
// them want to continue. Every subsystem ticks even when an earlier
// one returns false.
func (sv *Supervisor) TickAll() bool {
	ok := true
	for _, s := range sv.Subsystems {
		if !s.Tick() {
			ok = false
		}
	}
	return ok
}

// ShutdownAll shuts the subsystems down in reverse order.
func (sv *Supervisor) ShutdownAll() {
	for i := len(sv.Subsystems) - 1; i >= 0; i-- {
		s := sv.Subsystems[i]
		slog.Info("Shutting down subsystem", "name", s.String())
		s.Shutdown()
	}
	sv.Subsystems = nil
}
