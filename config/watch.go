// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the config directory and calls onChange with the name of
// each section file that is written, created, removed or renamed, until
// ctx is done. The running engine does not reload its config; it is up to
// onChange to report that a restart is needed.
func Watch(ctx context.Context, dir string, onChange func(file string)) error {
	dir, err := ExpandDir(dir)
	if err != nil {
		return err
	}
	watch, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watch.Add(dir); err != nil {
		watch.Close()
		return err
	}
	files := map[string]bool{AppFile: true, MemoryFile: true, DisplayFile: true, GraphicsFile: true}
	go func() {
		defer watch.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watch.Events:
				if !ok {
					return
				}
				name := filepath.Base(event.Name)
				if !files[name] {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					onChange(name)
				}
			case err, ok := <-watch.Errors:
				if !ok {
					return
				}
				slog.Warn("Config watcher error", "err", err)
			}
		}
	}()
	return nil
}
