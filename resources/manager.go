// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/ronin/config"
	"cogentcore.org/ronin/gpu"
	"cogentcore.org/ronin/gpu/lambert"
	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/sync/errgroup"
)

// Manager owns the mesh, texture and material caches. Its lifetime is
// nested within that of the device it uploads to.
type Manager struct {
	Meshes    *Cache[*Mesh]
	Textures  *Cache[*Texture]
	Materials *Cache[*Material]

	meshes   MeshImporter
	textures TextureImporter
	lambert  *lambert.Pipeline
}

// NewManager returns a manager uploading to the given device, with the
// caches sized from the config.
func NewManager(dr *gpu.Drivers, cfg *config.Config) *Manager {
	capacity := cfg.App.DefaultResourceCacheCapacity
	return &Manager{
		Meshes:    NewCache[*Mesh](capacity),
		Textures:  NewCache[*Texture](capacity),
		Materials: NewCache[*Material](capacity),
		meshes:    MeshImporter{Drivers: dr},
		textures:  TextureImporter{Drivers: dr, MaxDimension: cfg.Graphics.MaxTextureDimension},
	}
}

// SetLambertPipeline sets the pipeline whose material layout Lambert
// materials are created against.
func (mg *Manager) SetLambertPipeline(pl *lambert.Pipeline) {
	mg.lambert = pl
}

// LoadMesh returns the mesh of the OBJ file at path.
func (mg *Manager) LoadMesh(path string) (*Mesh, error) {
	st := time.Now()
	ms, err := mg.Meshes.Load(&mg.meshes, path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded mesh", "path", path, "vertices", len(ms.Vertices), "took", time.Since(st))
	return ms, nil
}

// LoadTexture returns the texture of the image file at path.
func (mg *Manager) LoadTexture(path string) (*Texture, error) {
	return mg.Textures.Load(&mg.textures, path)
}

// LoadLambert returns the Lambert material with the albedo texture at
// path, loading the texture as needed.
func (mg *Manager) LoadLambert(albedoPath string) (*Material, error) {
	id := LambertID(albedoPath)
	return mg.Materials.LoadFunc(id, func() (*Material, error) {
		if mg.lambert == nil {
			return nil, errors.New("resources: no Lambert pipeline to create materials against")
		}
		albedo, err := mg.LoadTexture(albedoPath)
		if err != nil {
			return nil, err
		}
		bg, err := mg.meshes.Drivers.NewBindGroup(mg.lambert.ShaderPipeline, id,
			wgpu.BindGroupEntry{Binding: 0, TextureView: albedo.View},
			wgpu.BindGroupEntry{Binding: 1, Sampler: albedo.Sampler},
		)
		if err != nil {
			return nil, fmt.Errorf("resources: failed to create material %q: %w", id, err)
		}
		return &Material{ID: id, Kind: Lambert, Lambert: LambertProps{Albedo: albedo}, BindGroup: bg}, nil
	})
}

// Preload imports the given meshes and textures concurrently, returning
// the first error. Textures are uploaded through the shared queue.
func (mg *Manager) Preload(ctx context.Context, meshes, textures []string) error {
	g, ctx := errgroup.WithContext(ctx)
	load := func(path string, fn func(string) error) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(path)
		})
	}
	for _, p := range meshes {
		load(p, func(p string) error { _, err := mg.LoadMesh(p); return err })
	}
	for _, p := range textures {
		load(p, func(p string) error { _, err := mg.LoadTexture(p); return err })
	}
	return g.Wait()
}

// Release releases every cached GPU resource and clears the caches.
// It must be called before the device is released.
func (mg *Manager) Release() {
	mg.Materials.Range(func(_ ImportKey, mt *Material) { mt.Release() })
	mg.Materials.Clear()
	mg.Textures.Range(func(_ ImportKey, tx *Texture) { tx.UploadedTexture.Release() })
	mg.Textures.Clear()
	mg.Meshes.Range(func(_ ImportKey, ms *Mesh) { ms.Release() })
	mg.Meshes.Clear()
}
