// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine ties the configuration, the subsystems, the resource
// manager and the initial scene together into a running engine.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"cogentcore.org/ronin/base/errors"
	"cogentcore.org/ronin/base/logx"
	"cogentcore.org/ronin/config"
	"cogentcore.org/ronin/resources"
	"cogentcore.org/ronin/scene"
	"cogentcore.org/ronin/system"
	"cogentcore.org/ronin/system/driver/desktop"
	"cogentcore.org/ronin/systems"
)

// LogDir is the directory of the session log files.
const LogDir = "proto"

// Options are the startup options of the engine.
type Options struct {

	// ConfigDir is the config directory; it defaults to [config.DefaultDir].
	ConfigDir string

	// ScenePath is a YAML scene description; the builtin scene is used
	// when it is empty.
	ScenePath string

	// MaxTicks stops the engine after that many ticks when positive.
	MaxTicks int

	// WindowFactory creates the window; it defaults to the desktop driver.
	WindowFactory system.WindowFactory
}

// Engine is a running engine instance.
type Engine struct {

	// Config is the immutable config snapshot of this run.
	Config *config.Config

	Supervisor *systems.Supervisor

	// Resources is nil when the engine runs without a device.
	Resources *resources.Manager

	// World is the world rendered by the Graphics subsystem.
	World *scene.World

	// Boot is the time at which the engine started.
	Boot time.Time

	maxTicks int
	cancel   context.CancelFunc
	logFile  io.Closer
}

// New starts a new engine: it installs the logger, loads the config,
// creates the subsystems and builds the initial scene.
func New(opts Options) (*Engine, error) {
	boot := time.Now()
	lf := installLogger(boot)
	logProcess(boot)

	dir := opts.ConfigDir
	if dir == "" {
		dir = config.DefaultDir
	}
	cfg, err := config.Load(dir)
	if err != nil {
		closeLog(lf)
		return nil, err
	}
	if opts.WindowFactory == nil {
		app, err := desktop.NewApp()
		if err != nil {
			closeLog(lf)
			return nil, err
		}
		opts.WindowFactory = app
	}
	sv, err := systems.NewSupervisor(cfg.Clone(), systems.Options{WindowFactory: opts.WindowFactory})
	if err != nil {
		closeLog(lf)
		return nil, err
	}
	en := newEngine(cfg, sv, opts)
	en.Boot, en.logFile = boot, lf

	gr := sv.Graphics
	en.Resources = resources.NewManager(gr.Drivers, cfg)
	en.Resources.SetLambertPipeline(gr.Lambert)
	if err := en.buildScene(opts.ScenePath); err != nil {
		en.Shutdown()
		return nil, err
	}
	gr.World = en.World

	ctx, cancel := context.WithCancel(context.Background())
	en.cancel = cancel
	if cfg.App.DisableServiceRoutine {
		slog.Warn("Service routine is disabled")
	} else {
		go ServiceRoutine(ctx, time.Duration(cfg.App.ServiceRoutineMinuteInterval)*time.Minute, func(t time.Time) {
			slog.Info("Service routine", "time", t.Format(time.DateTime), "uptime", time.Since(boot).Round(time.Second))
		})
	}
	if err := config.Watch(ctx, dir, func(file string) {
		slog.Warn("Config file changed, restart required for it to take effect", "file", file)
	}); err != nil {
		slog.Warn("Failed to watch the config directory", "dir", dir, "err", err)
	}
	slog.Info("Engine ready", "took", time.Since(boot))
	return en, nil
}

// newEngine returns an engine driving the given supervisor, without
// resources or a scene.
func newEngine(cfg *config.Config, sv *systems.Supervisor, opts Options) *Engine {
	return &Engine{
		Config:     cfg,
		Supervisor: sv,
		World:      scene.NewWorld(),
		Boot:       time.Now(),
		maxTicks:   opts.MaxTicks,
	}
}

func (en *Engine) buildScene(path string) error {
	desc := scene.DefaultDescription()
	if path != "" {
		d, err := scene.OpenDescription(path)
		if err != nil {
			return err
		}
		desc = d
	}
	var meshes, albedos []string
	for _, o := range desc.Objects {
		meshes = append(meshes, o.Mesh)
		albedos = append(albedos, o.Albedo)
	}
	if err := en.Resources.Preload(context.Background(), meshes, albedos); err != nil {
		return err
	}
	if err := desc.Build(en.World, en.Resources); err != nil {
		return fmt.Errorf("engine: building scene: %w", err)
	}
	return nil
}

// Run prepares the subsystems and ticks them until one of them asks to
// stop, or until the maximum number of ticks. It returns the number of
// ticks that ran.
func (en *Engine) Run() int {
	sv := en.Supervisor
	sv.PrepareAll()
	st := time.Now()
	ticks := 0
	for {
		ticks++
		if !sv.TickAll() {
			break
		}
		if en.maxTicks > 0 && ticks >= en.maxTicks {
			slog.Info("Reached the maximum number of ticks", "ticks", ticks)
			break
		}
	}
	el := time.Since(st)
	slog.Info("Engine stopped", "ticks", ticks, "elapsed", el, "tps", float64(ticks)/el.Seconds())
	return ticks
}

// Shutdown stops the background routines, releases the resources and
// shuts the subsystems down. Resources are released before the device
// that owns them.
func (en *Engine) Shutdown() {
	if en.cancel != nil {
		en.cancel()
		en.cancel = nil
	}
	if en.Resources != nil {
		en.Resources.Release()
		en.Resources = nil
	}
	if en.Supervisor != nil {
		en.Supervisor.ShutdownAll()
	}
	slog.Info("Engine shut down", "uptime", time.Since(en.Boot).Round(time.Millisecond))
	closeLog(en.logFile)
	en.logFile = nil
}

// installLogger installs the default logger, teed into a new session log
// file when one can be created.
func installLogger(boot time.Time) io.Closer {
	f, err := logx.CreateSessionFile(LogDir, boot)
	if err != nil {
		logx.SetDefaultLogger()
		slog.Warn("Failed to create the session log file, logging to the terminal only", "err", err)
		return nil
	}
	logx.SetDefaultLogger(f)
	slog.Info("Logging to session file", "file", f.Name())
	return f
}

func closeLog(c io.Closer) {
	if c != nil {
		logx.SetDefaultLogger()
		errors.Log(c.Close())
	}
}

func logProcess(boot time.Time) {
	slog.Info("Process",
		"pid", os.Getpid(),
		"dir", errors.Log1(os.Getwd()),
		"executable", errors.Log1(os.Executable()),
		"boot", boot.Format(time.RFC3339))
}
