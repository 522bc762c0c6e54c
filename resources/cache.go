// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resources provides the content-addressed caches of imported
// assets (meshes, textures and materials) shared by the scene.
package resources

import (
	"hash/fnv"
	"os"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ImportKey identifies an imported resource. It is the 64-bit FNV-1a
// hash of the path of the resource. Collisions are not detected.
type ImportKey uint64

// KeyOf returns the import key of the given path.
func KeyOf(path string) ImportKey {
	h := fnv.New64a()
	h.Write([]byte(path))
	return ImportKey(h.Sum64())
}

func (k ImportKey) String() string {
	return strconv.FormatUint(uint64(k), 16)
}

// Importer turns the raw bytes of a file into a resource.
type Importer[T any] interface {
	Import(path string, raw []byte) (T, error)
}

// ImporterFunc is an [Importer] function.
type ImporterFunc[T any] func(path string, raw []byte) (T, error)

func (f ImporterFunc[T]) Import(path string, raw []byte) (T, error) { return f(path, raw) }

// Cache maps import keys to shared, immutable resources. Each distinct
// path is imported at most once for the lifetime of the cache, also
// under concurrent first loads of the same path. There is no eviction.
type Cache[T any] struct {

	// ReadFile reads the raw bytes of a resource; [os.ReadFile] by default.
	ReadFile func(path string) ([]byte, error)

	mu      sync.RWMutex
	entries map[ImportKey]T
	group   singleflight.Group
}

// NewCache returns a new cache. The capacity is an initial size hint,
// not a limit.
func NewCache[T any](capacity int) *Cache[T] {
	return &Cache[T]{
		ReadFile: os.ReadFile,
		entries:  make(map[ImportKey]T, max(capacity, 0)),
	}
}

// Load returns the resource for the given path, importing it on first use.
// A hit returns the cached resource without any I/O. Read and import
// failures are returned and nothing is cached for the path.
func (c *Cache[T]) Load(imp Importer[T], path string) (T, error) {
	return c.LoadFunc(path, func() (T, error) {
		raw, err := c.ReadFile(path)
		if err != nil {
			var zero T
			return zero, err
		}
		return imp.Import(path, raw)
	})
}

// LoadFunc is like [Cache.Load] for resources that are not backed by a
// file of their own, such as materials: on a miss, create makes the
// resource that is cached under the key of id.
func (c *Cache[T]) LoadFunc(id string, create func() (T, error)) (T, error) {
	key := KeyOf(id)
	if v, ok := c.GetKey(key); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		if v, ok := c.GetKey(key); ok {
			return v, nil
		}
		v, err := create()
		if err != nil {
			return v, err
		}
		c.mu.Lock()
		c.entries[key] = v
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Get returns the cached resource for the path, without importing.
func (c *Cache[T]) Get(path string) (T, bool) {
	return c.GetKey(KeyOf(path))
}

// GetKey returns the cached resource for the key, without importing.
func (c *Cache[T]) GetKey(key ImportKey) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Contains returns whether the resource of the path is cached.
func (c *Cache[T]) Contains(path string) bool {
	return c.ContainsKey(KeyOf(path))
}

// ContainsKey returns whether the resource of the key is cached.
func (c *Cache[T]) ContainsKey(key ImportKey) bool {
	_, ok := c.GetKey(key)
	return ok
}

// Len returns the number of cached resources.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Range calls fn for each cached resource, in no particular order.
func (c *Cache[T]) Range(fn func(key ImportKey, v T)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, v := range c.entries {
		fn(k, v)
	}
}

// Clear drops all entries. Resources still held elsewhere stay valid.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
