// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resources

import (
	"errors"
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingImporter struct {
	calls atomic.Int32
	fail  bool
}

func (ci *countingImporter) Import(path string, raw []byte) (string, error) {
	ci.calls.Add(1)
	if ci.fail {
		return "", errors.New("bad data")
	}
	return path + ":" + string(raw), nil
}

func memCache(files map[string]string) *Cache[string] {
	c := NewCache[string](4)
	c.ReadFile = func(path string) ([]byte, error) {
		s, ok := files[path]
		if !ok {
			return nil, fs.ErrNotExist
		}
		return []byte(s), nil
	}
	return c
}

func TestKeyOf(t *testing.T) {
	assert.Equal(t, KeyOf("db/meshes/cube.obj"), KeyOf("db/meshes/cube.obj"))
	assert.NotEqual(t, KeyOf("db/meshes/cube.obj"), KeyOf("db/meshes/cube2.obj"))
	// 64-bit FNV-1a offset basis
	assert.Equal(t, ImportKey(0xcbf29ce484222325), KeyOf(""))
	assert.Equal(t, "cbf29ce484222325", KeyOf("").String())
}

func TestLoadImportsOnce(t *testing.T) {
	c := memCache(map[string]string{"a.obj": "A"})
	imp := &countingImporter{}
	v1, err := c.Load(imp, "a.obj")
	require.NoError(t, err)
	v2, err := c.Load(imp, "a.obj")
	require.NoError(t, err)
	assert.Equal(t, "a.obj:A", v1)
	assert.Equal(t, v1, v2)
	assert.Equal(t, int32(1), imp.calls.Load())
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Contains("a.obj"))
	assert.True(t, c.ContainsKey(KeyOf("a.obj")))
}

func TestLoadConcurrent(t *testing.T) {
	c := memCache(map[string]string{"a.png": "A", "b.png": "B"})
	imp := &countingImporter{}
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := "a.png"
			if i%2 == 1 {
				p = "b.png"
			}
			_, err := c.Load(imp, p)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(2), imp.calls.Load())
	assert.Equal(t, 2, c.Len())
}

func TestLoadErrorsAreNotCached(t *testing.T) {
	c := memCache(map[string]string{"a.obj": "A"})

	_, err := c.Load(&countingImporter{}, "missing.obj")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, c.Contains("missing.obj"))

	bad := &countingImporter{fail: true}
	_, err = c.Load(bad, "a.obj")
	assert.Error(t, err)
	assert.False(t, c.Contains("a.obj"))

	good := &countingImporter{}
	v, err := c.Load(good, "a.obj")
	require.NoError(t, err)
	assert.Equal(t, "a.obj:A", v)
}

func TestLoadFunc(t *testing.T) {
	c := NewCache[string](0)
	n := 0
	create := func() (string, error) {
		n++
		return "material", nil
	}
	for range 3 {
		v, err := c.LoadFunc(LambertID("db/textures/grid.png"), create)
		require.NoError(t, err)
		assert.Equal(t, "material", v)
	}
	assert.Equal(t, 1, n)
	_, ok := c.Get("lambert:db/textures/grid.png")
	assert.True(t, ok)
}

func TestRangeClear(t *testing.T) {
	c := memCache(map[string]string{"a": "1", "b": "2"})
	imp := ImporterFunc[string](func(path string, raw []byte) (string, error) { return string(raw), nil })
	for _, p := range []string{"a", "b", "a"} {
		_, err := c.Load(imp, p)
		require.NoError(t, err)
	}
	got := map[ImportKey]string{}
	c.Range(func(k ImportKey, v string) { got[k] = v })
	assert.Equal(t, map[ImportKey]string{KeyOf("a"): "1", KeyOf("b"): "2"}, got)

	c.Clear()
	assert.Zero(t, c.Len())
	assert.False(t, c.Contains("a"))
}
