// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := New("boom")
	assert.Equal(t, err, Log(err))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 12, Log1(strconv.Atoi("12")))
	assert.Equal(t, 0, Log1(strconv.Atoi("x")))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(New("fatal")) })
	assert.Equal(t, 3, Must1(strconv.Atoi("3")))
	assert.Panics(t, func() { Must1(strconv.Atoi("three")) })
}

func TestMustWraps(t *testing.T) {
	base := New("missing file")
	defer func() {
		r := recover()
		err, ok := r.(error)
		assert.True(t, ok)
		assert.True(t, Is(err, base))
	}()
	Must(base)
}
