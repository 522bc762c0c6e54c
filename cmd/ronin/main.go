// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ronin runs the engine.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"cogentcore.org/ronin/base/errors"
	"cogentcore.org/ronin/engine"
	"github.com/mitchellh/go-homedir"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func init() {
	// glfw must be called from the main thread
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	opts := engine.Options{}
	cmd := &cobra.Command{
		Use:           "ronin",
		Short:         "Ronin runs the engine on a window of the desktop",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.ConfigDir, "config", "config", "the config directory")
	fs.StringVar(&opts.ScenePath, "scene", "", "a YAML scene description to load instead of the builtin scene")
	fs.IntVar(&opts.MaxTicks, "max-ticks", 0, "stop after this many ticks (0 runs until the window is closed)")
	return cmd
}

func run(opts engine.Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v | %s", r, panicLocation())
		}
	}()
	if opts.ScenePath != "" {
		if opts.ScenePath, err = homedir.Expand(opts.ScenePath); err != nil {
			return err
		}
	}
	en, err := engine.New(opts)
	if err != nil {
		return err
	}
	defer en.Shutdown()
	en.Run()
	return nil
}

// panicLocation returns the location of the code that panicked, for use
// in a deferred recover.
func panicLocation() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		fr, more := frames.Next()
		if fr.Function != "" && !strings.HasPrefix(fr.Function, "runtime.") {
			return fmt.Sprintf("%s %s:%d", fr.Function, fr.File, fr.Line)
		}
		if !more {
			return errors.CallerInfo()
		}
	}
}

func fatal(err error) {
	out := termenv.NewOutput(os.Stderr)
	fmt.Fprintln(os.Stderr, out.String("ronin: fatal error:").Foreground(termenv.ANSIBrightRed).Bold(), err)
	os.Exit(1)
}
