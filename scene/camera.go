// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/ronin/events"
	"cogentcore.org/ronin/math32"
	"cogentcore.org/ronin/system"
)

// LookSensitivity is the number of cursor pixels per radian of look.
const LookSensitivity = 300

// DepthCorrection maps clip space depth from [-1, 1] to the [0, 1]
// range of WebGPU: z' = z*0.5 + 0.5*w.
var DepthCorrection = math32.Matrix4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Up is the world up direction.
var Up = math32.Vec3(0, 1, 0)

// ComputeCamera updates the camera and its transform from the input
// state and returns the view-projection matrix for the given aspect
// ratio. The view direction only changes while [events.Button2] is held.
func ComputeCamera(aspect float32, tr *Transform, cam *Camera, in *system.InputState) math32.Matrix4 {
	cur := in.CursorPos
	if in.IsButtonPressed(events.Button2) {
		d := cur.Sub(cam.Prev).DivScalar(LookSensitivity)
		cam.SmoothAngles = cam.SmoothAngles.Lerp(d, 1/cam.Smoothness)

		cam.Angles.X -= d.X + cam.SmoothAngles.X
		cam.Angles.Y -= d.Y + cam.SmoothAngles.Y
		limit := math32.DegToRad(cam.ClampY)
		cam.Angles.Y = math32.Clamp(cam.Angles.Y, -limit, limit)

		cy, sy := math32.Cos(cam.Angles.Y), math32.Sin(cam.Angles.Y)
		cam.Forward = math32.Vec3(cy*math32.Sin(cam.Angles.X), sy, cy*math32.Cos(cam.Angles.X)).Normal()
	}
	cam.Prev = cur

	side := cam.Forward.Cross(Up).Normal()
	eye := tr.Position
	step := math32.Vector3Scalar(cam.Speed)
	if in.IsKeyPressed(events.CodeW) {
		eye = eye.Add(step.Mul(cam.Forward))
	}
	if in.IsKeyPressed(events.CodeA) {
		eye = eye.Sub(step.Mul(side))
	}
	if in.IsKeyPressed(events.CodeS) {
		eye = eye.Sub(step.Mul(cam.Forward))
	}
	if in.IsKeyPressed(events.CodeD) {
		eye = eye.Add(step.Mul(side))
	}
	tr.Position = eye

	proj := math32.Perspective(math32.DegToRad(cam.FOV), aspect, cam.NearClip, cam.FarClip)
	view := math32.LookAtRH(eye, eye.Add(cam.Forward), Up)
	return DepthCorrection.Mul(proj).Mul(view)
}
