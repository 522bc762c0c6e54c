// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resources

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// MaterialKinds are the kinds of materials, one per fixed-function
// pipeline.
type MaterialKinds int32

const (
	// Lambert is a textured diffuse material.
	Lambert MaterialKinds = iota
)

func (k MaterialKinds) String() string {
	switch k {
	case Lambert:
		return "Lambert"
	}
	return fmt.Sprintf("MaterialKinds(%d)", int32(k))
}

// LambertProps are the properties of a [Lambert] material.
type LambertProps struct {
	Albedo *Texture
}

// Material is an immutable material: its kind, its properties and
// the bind group 0 made from them against the pipeline of its kind.
type Material struct {
	ID   string
	Kind MaterialKinds

	Lambert LambertProps

	// BindGroup is bound at index 0 for every draw with this material.
	BindGroup *wgpu.BindGroup
}

// LambertID returns the cache id of the Lambert material
// with the given albedo texture path.
func LambertID(albedoPath string) string {
	return "lambert:" + albedoPath
}

// Release releases the bind group of the material. Textures are owned
// by their own cache.
func (mt *Material) Release() {
	if mt.BindGroup != nil {
		mt.BindGroup.Release()
		mt.BindGroup = nil
	}
}
