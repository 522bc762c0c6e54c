// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"image"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/ronin/base/errors"
	"cogentcore.org/ronin/base/iox/tomlx"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
)

// DefaultDir is the config directory used when none is given.
const DefaultDir = "config"

// The file names of the config sections within the config directory.
const (
	AppFile      = "app.toml"
	MemoryFile   = "memory.toml"
	DisplayFile  = "display.toml"
	GraphicsFile = "graphics.toml"
)

// Resolution bounds: resolutions outside of them fall back to
// [DefaultResolution].
var (
	DefaultResolution = Resolution{Width: 1920, Height: 1080}
	MinResolution     = Resolution{Width: 800, Height: 600}
	MaxResolution     = Resolution{Width: 16384, Height: 16384}
)

// section is one file of the config directory.
type section struct {
	file     string
	value    any
	defaults func()
}

func (c *Config) sections() []section {
	return []section{
		{AppFile, &c.App, c.App.Defaults},
		{MemoryFile, &c.Memory, c.Memory.Defaults},
		{DisplayFile, &c.Display, c.Display.Defaults},
		{GraphicsFile, &c.Graphics, c.Graphics.Defaults},
	}
}

// ExpandDir expands a leading ~ in dir to the home directory,
// and uses [DefaultDir] if dir is empty.
func ExpandDir(dir string) (string, error) {
	if dir == "" {
		return DefaultDir, nil
	}
	return homedir.Expand(dir)
}

// Load loads the config from the given directory. If the directory
// does not exist, it is created and filled with the default config.
// A section file that is missing or fails to parse is replaced by
// the defaults of that section, with a warning; the files on disk are
// left untouched so that they can be fixed by hand. The loaded config
// is validated with [Config.Validate].
func Load(dir string) (*Config, error) {
	dir, err := ExpandDir(dir)
	if err != nil {
		return nil, err
	}
	c := NewConfig()
	slog.Info("Parsing config", "dir", errors.Log1(filepath.Abs(dir)))
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Config directory does not exist, creating config", "dir", dir)
		errors.Log(c.Save(dir))
		return c, nil
	}
	for _, s := range c.sections() {
		fn := filepath.Join(dir, s.file)
		err := tomlx.Open(s.value, fn)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist):
			slog.Warn("Config file does not exist, using default values", "file", fn)
			s.defaults()
		default:
			slog.Warn("Failed to load config file, using default values", "file", fn, "err", err)
			s.defaults()
		}
	}
	c.Validate()
	return c, nil
}

// Save saves every section of the config into the given directory,
// creating it if needed.
func (c *Config) Save(dir string) error {
	dir, err := ExpandDir(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}
	var errs []error
	for _, s := range c.sections() {
		if err := tomlx.Save(s.value, filepath.Join(dir, s.file)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate replaces out of range values by valid ones, logging each fix.
func (c *Config) Validate() {
	if iv := clamp(c.App.ServiceRoutineMinuteInterval, 1, 60); iv != c.App.ServiceRoutineMinuteInterval {
		slog.Warn("Service routine interval out of range", "minutes", c.App.ServiceRoutineMinuteInterval, "using", iv)
		c.App.ServiceRoutineMinuteInterval = iv
	}
	if c.App.DefaultResourceCacheCapacity <= 0 {
		slog.Warn("Invalid resource cache capacity", "capacity", c.App.DefaultResourceCacheCapacity, "using", 128)
		c.App.DefaultResourceCacheCapacity = 128
	}
	if res := c.Display.Resolution.Sanitized(); res != c.Display.Resolution {
		slog.Warn("Invalid resolution", "resolution", c.Display.Resolution, "using", res)
		c.Display.Resolution = res
	}
	if !c.Graphics.MSAAMode.IsValid() {
		slog.Warn("Invalid MSAA mode", "mode", c.Graphics.MSAAMode, "using", MSAAX8)
		c.Graphics.MSAAMode = MSAAX8
	}
	if c.App.SafeMode {
		c.Graphics.MSAAMode = MSAAOff
		c.Graphics.BackendAPI = Auto
		c.App.PowerSafeMode = true
	}
}

// Sanitized returns the resolution with each dimension that is outside
// of [MinResolution]..[MaxResolution] replaced by the one of
// [DefaultResolution].
func (r Resolution) Sanitized() Resolution {
	if r.Width < MinResolution.Width || r.Width > MaxResolution.Width {
		r.Width = DefaultResolution.Width
	}
	if r.Height < MinResolution.Height || r.Height > MaxResolution.Height {
		r.Height = DefaultResolution.Height
	}
	return r
}

// Point returns the resolution as an [image.Point].
func (r Resolution) Point() image.Point {
	return image.Pt(r.Width, r.Height)
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	nc := &Config{}
	errors.Log(copier.CopyWithOption(nc, c, copier.Option{DeepCopy: true}))
	return nc
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
