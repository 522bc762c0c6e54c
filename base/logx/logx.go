// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx sets up the structured logger used throughout the engine:
// a colored text handler on the terminal that can be teed into plain
// text session log files.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set through the command line flags. It defaults to [slog.LevelInfo],
// or [slog.LevelDebug] under the "debug" build tag.
var UserLevel = defaultUserLevel

// SessionTimeFormat is the [time.Time.Format] layout used to name
// session log files.
const SessionTimeFormat = "2006_01_02_15_04_05"

// SetDefaultLogger sets the default [slog] logger to one that writes
// colored output to [os.Stdout] and plain text to each of the given
// additional writers, filtered by [UserLevel].
func SetDefaultLogger(extra ...io.Writer) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, extra...)))
}

// NewHandler returns a handler writing colored text to term (colors are
// dropped when term is not a terminal) and plain text to the extra writers.
func NewHandler(term io.Writer, extra ...io.Writer) slog.Handler {
	lvl := &levelVar{}
	out := termenv.NewOutput(term)
	hs := []slog.Handler{
		slog.NewTextHandler(term, &slog.HandlerOptions{
			Level: lvl,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.LevelKey && len(groups) == 0 {
					if l, ok := a.Value.Any().(slog.Level); ok {
						a.Value = slog.StringValue(LevelString(out, l))
					}
				}
				return a
			},
		}),
	}
	for _, w := range extra {
		hs = append(hs, slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	}
	if len(hs) == 1 {
		return hs[0]
	}
	return multiHandler(hs)
}

// LevelString returns the name of the given level colored for the
// given terminal output.
func LevelString(out *termenv.Output, l slog.Level) string {
	s := out.String(l.String())
	switch {
	case l >= slog.LevelError:
		s = s.Foreground(termenv.ANSIBrightRed).Bold()
	case l >= slog.LevelWarn:
		s = s.Foreground(termenv.ANSIMagenta)
	case l >= slog.LevelInfo:
		s = s.Foreground(termenv.ANSIBrightBlue)
	default:
		s = s.Foreground(termenv.ANSIGreen)
	}
	return s.String()
}

// CreateSessionFile creates a new session log file in the given directory,
// named after the given time, creating the directory if needed.
func CreateSessionFile(dir string, t time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("logx: creating log directory %q: %w", dir, err)
	}
	fn := filepath.Join(dir, "engine_session_"+t.Format(SessionTimeFormat)+".log")
	return os.Create(fn)
}

// levelVar reads [UserLevel] at log time so that changes made
// after [SetDefaultLogger] take effect.
type levelVar struct{}

func (levelVar) Level() slog.Level { return UserLevel }

// multiHandler fans records out to every handler that is enabled for them.
type multiHandler []slog.Handler

func (mh multiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range mh {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (mh multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range mh {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (mh multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := make(multiHandler, len(mh))
	for i, h := range mh {
		nh[i] = h.WithAttrs(attrs)
	}
	return nh
}

func (mh multiHandler) WithGroup(name string) slog.Handler {
	nh := make(multiHandler, len(mh))
	for i, h := range mh {
		nh[i] = h.WithGroup(name)
	}
	return nh
}
