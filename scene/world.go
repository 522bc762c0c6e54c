// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene is the simulated world: entities with optional
// transform, camera and mesh renderer components, the fly camera,
// and the scene descriptions that populate a world.
package scene

// World contains all entities and their components using typed stores.
// It is owned by the simulation loop and is not safe for concurrent use.
type World struct {
	nextEntity Entity

	Transforms    *Store[Transform]
	Cameras       *Store[Camera]
	MeshRenderers *Store[MeshRenderer]
}

// NewWorld returns a new empty world.
func NewWorld() *World {
	return &World{
		nextEntity:    1,
		Transforms:    NewStore[Transform](),
		Cameras:       NewStore[Camera](),
		MeshRenderers: NewStore[MeshRenderer](),
	}
}

// Spawn reserves a new entity with no components.
func (w *World) Spawn() Entity {
	e := w.nextEntity
	w.nextEntity++
	return e
}

// SpawnCamera spawns an entity with a transform and a camera.
func (w *World) SpawnCamera(tr Transform, cam Camera) Entity {
	e := w.Spawn()
	w.Transforms.Set(e, tr)
	w.Cameras.Set(e, cam)
	return e
}

// SpawnRenderable spawns an entity with a transform and a mesh renderer.
func (w *World) SpawnRenderable(tr Transform, mr MeshRenderer) Entity {
	e := w.Spawn()
	w.Transforms.Set(e, tr)
	w.MeshRenderers.Set(e, mr)
	return e
}

// Despawn removes all the components of an entity.
func (w *World) Despawn(e Entity) {
	w.Transforms.Remove(e)
	w.Cameras.Remove(e)
	w.MeshRenderers.Remove(e)
}

// FirstCamera returns the transform and camera of the first entity,
// in insertion order, that has both, or false when there is none.
func (w *World) FirstCamera() (*Transform, *Camera, bool) {
	for _, e := range w.Cameras.Entities() {
		tr, ok := w.Transforms.Get(e)
		if !ok {
			continue
		}
		cam, _ := w.Cameras.Get(e)
		return tr, cam, true
	}
	return nil, nil, false
}

// Renderables calls fn for every entity with a transform and a mesh
// renderer, in insertion order.
func (w *World) Renderables(fn func(e Entity, tr *Transform, mr *MeshRenderer)) {
	for _, e := range w.MeshRenderers.Entities() {
		tr, ok := w.Transforms.Get(e)
		if !ok {
			continue
		}
		mr, _ := w.MeshRenderers.Get(e)
		fn(e, tr, mr)
	}
}
