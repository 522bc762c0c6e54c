// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type level int

func (l *level) UnmarshalText(text []byte) error {
	*l = level(len(text))
	return nil
}

type inner struct {
	Depth uint32 `default:"0x10"`
}

type sample struct {
	Name    string  `default:"ronin"`
	On      bool    `default:"true"`
	Count   int     `default:"-3"`
	Ratio   float32 `default:"0.5"`
	Level   level   `default:"high"`
	Inner   inner
	Keep    int
	private int `default:"9"`
}

func TestSetFromDefaultTags(t *testing.T) {
	s := &sample{Keep: 7}
	assert.NoError(t, SetFromDefaultTags(s))
	assert.Equal(t, "ronin", s.Name)
	assert.True(t, s.On)
	assert.Equal(t, -3, s.Count)
	assert.Equal(t, float32(0.5), s.Ratio)
	assert.Equal(t, level(4), s.Level)
	assert.Equal(t, uint32(16), s.Inner.Depth)
	assert.Equal(t, 7, s.Keep)
	assert.Equal(t, 0, s.private)
}

func TestSetFromDefaultTagsErrors(t *testing.T) {
	assert.Error(t, SetFromDefaultTags(sample{}))

	type bad struct {
		N int8  `default:"300"`
		F []int `default:"1"`
	}
	err := SetFromDefaultTags(&bad{})
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "field N"))
	assert.True(t, strings.Contains(err.Error(), "field F"))
}
