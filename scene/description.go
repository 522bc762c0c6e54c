// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"log/slog"

	"cogentcore.org/ronin/base/iox/yamlx"
	"cogentcore.org/ronin/math32"
	"cogentcore.org/ronin/resources"
)

// DefaultMesh and DefaultAlbedo are the builtin assets of the default scene.
const (
	DefaultMesh   = "db/meshes/cube.obj"
	DefaultAlbedo = "db/textures/grid.png"
)

// Description describes the initial content of a world.
// It is stored as YAML in db/scenes.
type Description struct {
	Camera  *CameraDescription  `yaml:"camera"`
	Objects []ObjectDescription `yaml:"objects"`
}

// CameraDescription describes the camera entity. Zero fields take the
// defaults of [NewCamera].
type CameraDescription struct {
	Position math32.Vector3 `yaml:"position"`
	FOV      float32        `yaml:"fov"`
	NearClip float32        `yaml:"near_clip"`
	FarClip  float32        `yaml:"far_clip"`
	ClampY   float32        `yaml:"clamp_y"`
	Speed    float32        `yaml:"speed"`
}

// ObjectDescription describes one renderable, or a grid of copies of it.
type ObjectDescription struct {
	Name   string `yaml:"name"`
	Mesh   string `yaml:"mesh"`
	Albedo string `yaml:"albedo"`

	Position math32.Vector3 `yaml:"position"`

	// a uniform scale; 0 means 1
	Scale float32 `yaml:"scale"`

	// when set, copies are placed at Position + (column, 0, row) * Spacing
	Grid *GridDescription `yaml:"grid"`
}

// GridDescription lays copies of an object out on the XZ plane.
type GridDescription struct {
	Rows    int     `yaml:"rows"`
	Columns int     `yaml:"columns"`
	Spacing float32 `yaml:"spacing"`
}

// Loader loads the resources referenced by a description.
// [resources.Manager] is the engine implementation.
type Loader interface {
	LoadMesh(path string) (*resources.Mesh, error)
	LoadLambert(albedoPath string) (*resources.Material, error)
}

// DefaultDescription returns the builtin scene: a camera at (0, 2, 0)
// and a 4x4 grid of cubes.
func DefaultDescription() *Description {
	return &Description{
		Camera: &CameraDescription{Position: math32.Vec3(0, 2, 0), FOV: 75, NearClip: 0.1, FarClip: 100, ClampY: 60},
		Objects: []ObjectDescription{{
			Name:   "cube",
			Mesh:   DefaultMesh,
			Albedo: DefaultAlbedo,
			Scale:  0.25,
			Grid:   &GridDescription{Rows: 4, Columns: 4, Spacing: 1},
		}},
	}
}

// OpenDescription reads a description from a YAML file.
func OpenDescription(filename string) (*Description, error) {
	d := &Description{}
	if err := yamlx.Open(d, filename); err != nil {
		return nil, fmt.Errorf("scene: failed to read %q: %w", filename, err)
	}
	return d, d.Validate()
}

// Validate returns an error for objects without a mesh or albedo
// and for empty grids.
func (d *Description) Validate() error {
	for i, o := range d.Objects {
		if o.Mesh == "" || o.Albedo == "" {
			return fmt.Errorf("scene: object %d %q needs a mesh and an albedo", i, o.Name)
		}
		if o.Grid != nil && (o.Grid.Rows <= 0 || o.Grid.Columns <= 0) {
			return fmt.Errorf("scene: object %d %q has an empty grid", i, o.Name)
		}
	}
	return nil
}

// Camera returns the camera entity components of the description.
func (cd *CameraDescription) Camera() (Transform, Camera) {
	cam := NewCamera()
	set := func(dst *float32, v float32) {
		if v != 0 {
			*dst = v
		}
	}
	set(&cam.FOV, cd.FOV)
	set(&cam.NearClip, cd.NearClip)
	set(&cam.FarClip, cd.FarClip)
	set(&cam.ClampY, cd.ClampY)
	set(&cam.Speed, cd.Speed)
	return NewTransform(cd.Position), cam
}

// Transforms returns the transforms of every copy of the object,
// rows outermost.
func (od *ObjectDescription) Transforms() []Transform {
	scale := od.Scale
	if scale == 0 {
		scale = 1
	}
	place := func(pos math32.Vector3) Transform {
		tr := NewTransform(pos)
		tr.Scale = math32.Vector3Scalar(scale)
		return tr
	}
	if od.Grid == nil {
		return []Transform{place(od.Position)}
	}
	trs := make([]Transform, 0, od.Grid.Rows*od.Grid.Columns)
	for i := range od.Grid.Rows {
		for j := range od.Grid.Columns {
			off := math32.Vec3(float32(j), 0, float32(i)).MulScalar(od.Grid.Spacing)
			trs = append(trs, place(od.Position.Add(off)))
		}
	}
	return trs
}

// Build spawns the entities of the description into the world, loading
// their resources through the loader. A failed load is returned as an
// error naming the resource.
func (d *Description) Build(w *World, ld Loader) error {
	if d.Camera != nil {
		w.SpawnCamera(d.Camera.Camera())
	}
	for _, o := range d.Objects {
		mesh, err := ld.LoadMesh(o.Mesh)
		if err != nil {
			return err
		}
		mat, err := ld.LoadLambert(o.Albedo)
		if err != nil {
			return err
		}
		trs := o.Transforms()
		for _, tr := range trs {
			w.SpawnRenderable(tr, MeshRenderer{Mesh: mesh, Material: mat})
		}
		slog.Debug("Spawned scene object", "name", o.Name, "count", len(trs))
	}
	return nil
}
