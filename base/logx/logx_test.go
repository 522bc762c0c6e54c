// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerTee(t *testing.T) {
	defer func(l slog.Level) { UserLevel = l }(UserLevel)
	UserLevel = slog.LevelInfo

	var term, file bytes.Buffer
	lg := slog.New(NewHandler(&term, &file))
	lg.Debug("hidden")
	lg.Info("shown", "ticks", 3)

	assert.NotContains(t, file.String(), "hidden")
	assert.Contains(t, file.String(), "msg=shown")
	assert.Contains(t, file.String(), "ticks=3")
	assert.Contains(t, file.String(), "level=INFO")
	assert.Contains(t, term.String(), "msg=shown")
}

func TestUserLevelIsLive(t *testing.T) {
	defer func(l slog.Level) { UserLevel = l }(UserLevel)
	UserLevel = slog.LevelWarn

	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf))
	lg.Info("quiet")
	assert.Empty(t, buf.String())

	UserLevel = slog.LevelDebug
	lg.Debug("loud")
	assert.True(t, strings.Contains(buf.String(), "loud"))
}

func TestCreateSessionFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proto")
	tm := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	f, err := CreateSessionFile(dir, tm)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "engine_session_2024_03_09_14_05_06.log", filepath.Base(f.Name()))
	_, err = os.Stat(f.Name())
	assert.NoError(t, err)
}
