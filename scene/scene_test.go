// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"errors"
	"testing"

	"cogentcore.org/ronin/math32"
	"cogentcore.org/ronin/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	meshes, materials int
	failMesh          bool
}

func (fl *fakeLoader) LoadMesh(path string) (*resources.Mesh, error) {
	if fl.failMesh {
		return nil, errors.New("no such mesh: " + path)
	}
	fl.meshes++
	return &resources.Mesh{Path: path}, nil
}

func (fl *fakeLoader) LoadLambert(albedoPath string) (*resources.Material, error) {
	fl.materials++
	return &resources.Material{ID: resources.LambertID(albedoPath)}, nil
}

func TestStoreOrder(t *testing.T) {
	s := NewStore[int]()
	for _, e := range []Entity{3, 1, 2} {
		s.Set(e, int(e)*10)
	}
	s.Set(1, 11)
	assert.Equal(t, []Entity{3, 1, 2}, s.Entities())
	v, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 11, *v)

	s.Remove(3)
	s.Remove(42)
	assert.Equal(t, []Entity{1, 2}, s.Entities())
	assert.False(t, s.Has(3))
	assert.Equal(t, 2, s.Len())
}

func TestWorldQueries(t *testing.T) {
	w := NewWorld()
	_, _, ok := w.FirstCamera()
	assert.False(t, ok)

	// a camera without a transform does not count
	lone := w.Spawn()
	w.Cameras.Set(lone, NewCamera())
	_, _, ok = w.FirstCamera()
	assert.False(t, ok)

	e := w.SpawnCamera(NewTransform(math32.Vec3(0, 2, 0)), NewCamera())
	tr, cam, ok := w.FirstCamera()
	require.True(t, ok)
	assert.Equal(t, float32(2), tr.Position.Y)
	cam.Speed = 5
	c, _ := w.Cameras.Get(e)
	assert.Equal(t, float32(5), c.Speed)

	var order []Entity
	a := w.SpawnRenderable(NewTransform(math32.Vec3(1, 0, 0)), MeshRenderer{})
	b := w.SpawnRenderable(NewTransform(math32.Vec3(2, 0, 0)), MeshRenderer{})
	w.Renderables(func(e Entity, tr *Transform, mr *MeshRenderer) { order = append(order, e) })
	assert.Equal(t, []Entity{a, b}, order)

	w.Despawn(a)
	order = nil
	w.Renderables(func(e Entity, tr *Transform, mr *MeshRenderer) { order = append(order, e) })
	assert.Equal(t, []Entity{b}, order)
}

func TestTransformMatrix(t *testing.T) {
	tr := NewTransform(math32.Vec3(1, 0, 2))
	tr.Scale = math32.Vector3Scalar(0.25)
	p := tr.Matrix().MulVector3AsPoint(math32.Vec3(1, 1, 1))
	assert.InDelta(t, 1.25, p.X, 1e-6)
	assert.InDelta(t, 0.25, p.Y, 1e-6)
	assert.InDelta(t, 2.25, p.Z, 1e-6)
}

func TestDefaultDescription(t *testing.T) {
	w := NewWorld()
	ld := &fakeLoader{}
	require.NoError(t, DefaultDescription().Build(w, ld))

	tr, cam, ok := w.FirstCamera()
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(0, 2, 0), tr.Position)
	assert.Equal(t, float32(60), cam.ClampY)
	assert.Equal(t, float32(75), cam.FOV)
	assert.Equal(t, float32(0.01), cam.Speed)

	var pos []math32.Vector3
	w.Renderables(func(e Entity, tr *Transform, mr *MeshRenderer) {
		pos = append(pos, tr.Position)
		assert.Equal(t, math32.Vector3Scalar(0.25), tr.Scale)
		assert.Equal(t, DefaultMesh, mr.Mesh.Path)
	})
	require.Len(t, pos, 16)
	assert.Equal(t, math32.Vec3(0, 0, 0), pos[0])
	assert.Equal(t, math32.Vec3(1, 0, 0), pos[1])
	assert.Equal(t, math32.Vec3(0, 0, 1), pos[4])
	assert.Equal(t, math32.Vec3(3, 0, 3), pos[15])
	assert.Equal(t, 1, ld.meshes)
	assert.Equal(t, 1, ld.materials)
}

func TestBuildError(t *testing.T) {
	err := DefaultDescription().Build(NewWorld(), &fakeLoader{failMesh: true})
	assert.ErrorContains(t, err, DefaultMesh)
}

func TestOpenDescription(t *testing.T) {
	d, err := OpenDescription("../db/scenes/default.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultDescription(), d)

	_, err = OpenDescription("../db/scenes/missing.yaml")
	assert.Error(t, err)

	bad := &Description{Objects: []ObjectDescription{{Name: "x", Mesh: DefaultMesh}}}
	assert.Error(t, bad.Validate())
	bad.Objects[0].Albedo = DefaultAlbedo
	bad.Objects[0].Grid = &GridDescription{}
	assert.Error(t, bad.Validate())
}
