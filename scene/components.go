// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/ronin/math32"
	"cogentcore.org/ronin/resources"
)

// Transform places an entity in the world.
type Transform struct {
	Position math32.Vector3
	Rotation math32.Quat
	Scale    math32.Vector3
}

// NewTransform returns an unrotated, unit scale transform at the given position.
func NewTransform(pos math32.Vector3) Transform {
	return Transform{Position: pos, Rotation: math32.NewQuatIdentity(), Scale: math32.Vector3Scalar(1)}
}

// Matrix returns the world matrix: translation * rotation * scale.
func (tr *Transform) Matrix() math32.Matrix4 {
	return math32.Translation4(tr.Position).Mul(tr.Rotation.Matrix4()).Mul(math32.Scale4(tr.Scale))
}

// MeshRenderer draws a mesh with a material at the transform of its entity.
type MeshRenderer struct {
	Mesh     *resources.Mesh
	Material *resources.Material
}

// Camera is a fly camera: mouse look while [events.Button2] is held and
// WASD movement along the view direction.
type Camera struct {

	// vertical field of view in degrees
	FOV float32

	NearClip float32
	FarClip  float32

	// the maximum pitch up or down in degrees
	ClampY float32

	// the amount of look smoothing; 1 is none
	Smoothness float32

	// the distance moved per tick while a movement key is held
	Speed float32

	// the cursor position of the previous tick
	Prev math32.Vector2

	// yaw (X) and pitch (Y) in radians
	Angles math32.Vector2

	SmoothAngles math32.Vector2

	// the unit view direction
	Forward math32.Vector3
}

// NewCamera returns a camera with the default settings.
func NewCamera() Camera {
	return Camera{
		FOV:        75,
		NearClip:   0.1,
		FarClip:    100,
		ClampY:     80,
		Smoothness: 1.5,
		Speed:      0.01,
		Forward:    math32.Vec3(0, 0, 1),
	}
}
