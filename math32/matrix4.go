// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"encoding/binary"
	"math"
)

// Matrix4 is 4x4 matrix organized internally as column matrix,
// matching the memory layout of a WGSL mat4x4<f32>.
type Matrix4 [16]float32

// Matrix4Size is the number of bytes in the GPU representation of a [Matrix4].
const Matrix4Size = 64

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Matrix4FromColumns returns a matrix from the given four columns.
func Matrix4FromColumns(c0, c1, c2, c3 Vector4) Matrix4 {
	return Matrix4{
		c0.X, c0.Y, c0.Z, c0.W,
		c1.X, c1.Y, c1.Z, c1.W,
		c2.X, c2.Y, c2.Z, c2.W,
		c3.X, c3.Y, c3.Z, c3.W,
	}
}

// Translation4 returns a matrix translating by the given vector.
func Translation4(v Vector3) Matrix4 {
	m := Identity4()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale4 returns a matrix scaling non-uniformly by the given vector.
func Scale4(v Vector3) Matrix4 {
	return Matrix4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a right-handed perspective projection matrix
// with the vertical field of view fovy (in radians), mapping the view
// frustum to clip space with depth in [-1, 1].
func Perspective(fovy, aspect, near, far float32) Matrix4 {
	f := 1 / Tan(fovy/2)
	nf := near - far
	return Matrix4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / nf, -1,
		0, 0, (2 * far * near) / nf, 0,
	}
}

// LookAtRH returns a right-handed view matrix for an eye at the given
// position looking at target, with the given up direction.
func LookAtRH(eye, target, up Vector3) Matrix4 {
	f := target.Sub(eye).Normal()
	s := f.Cross(up).Normal()
	u := s.Cross(f)
	return Matrix4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-eye.Dot(s), -eye.Dot(u), eye.Dot(f), 1,
	}
}

// Mul returns the matrix product m * other.
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[c*4+k]
			}
			r[c*4+row] = sum
		}
	}
	return r
}

// MulVector4 returns the product of this matrix with the column vector v.
func (m Matrix4) MulVector4(v Vector4) Vector4 {
	return Vector4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulVector3AsPoint returns the point v transformed by this matrix,
// after perspective division.
func (m Matrix4) MulVector3AsPoint(v Vector3) Vector3 {
	return m.MulVector4(Vector4FromVector3(v, 1)).PerspDiv()
}

// AppendBytes appends the little-endian GPU representation of the
// matrix to b and returns the extended slice.
func (m *Matrix4) AppendBytes(b []byte) []byte {
	for _, f := range m {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}
