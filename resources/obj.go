// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resources

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"cogentcore.org/ronin/math32"
)

// objDecoder decodes the geometry of a Wavefront OBJ file into a single
// indexed triangle list. Objects, groups, normals and materials are
// ignored; polygons are triangulated as fans. Normals are only used to
// tell apart face corners that share a position and uv.
type objDecoder struct {
	positions []math32.Vector4
	uvs       []math32.Vector2
	normals   int

	vertices []Vertex
	indices  []uint16

	// unique maps a position/uv/normal index triple to its vertex index
	unique map[[3]int]uint16
	line   int
}

// ParseOBJ parses the geometry of a Wavefront OBJ file.
func ParseOBJ(data []byte) ([]Vertex, []uint16, error) {
	dec := &objDecoder{unique: map[[3]int]uint16{}}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		dec.line++
		if err := dec.parseLine(sc.Text()); err != nil {
			return nil, nil, fmt.Errorf("obj: line %d: %w", dec.line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	if len(dec.indices) == 0 {
		return nil, nil, fmt.Errorf("obj: no faces")
	}
	return dec.vertices, dec.indices, nil
}

func (dec *objDecoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "v":
		return dec.parseVertex(fields[1:])
	case "vt":
		return dec.parseTex(fields[1:])
	case "vn":
		if len(fields) < 4 {
			return fmt.Errorf("less than 3 coordinates in 'vn' line")
		}
		if _, err := parseFloats(fields[1:4]); err != nil {
			return err
		}
		dec.normals++
		return nil
	case "f":
		return dec.parseFace(fields[1:])
	}
	return nil
}

// parseVertex parses a vertex position line:
// v <x> <y> <z> [w]
func (dec *objDecoder) parseVertex(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("less than 3 coordinates in 'v' line")
	}
	v, err := parseFloats(fields[:min(len(fields), 4)])
	if err != nil {
		return err
	}
	p := math32.Vec4(v[0], v[1], v[2], 1)
	if len(v) == 4 {
		p.W = v[3]
	}
	dec.positions = append(dec.positions, p)
	return nil
}

// parseTex parses a texture coordinate line:
// vt <u> [v] [w]
func (dec *objDecoder) parseTex(fields []string) error {
	if len(fields) < 1 {
		return fmt.Errorf("no coordinates in 'vt' line")
	}
	v, err := parseFloats(fields[:min(len(fields), 2)])
	if err != nil {
		return err
	}
	uv := math32.Vec2(v[0], 0)
	if len(v) == 2 {
		uv.Y = v[1]
	}
	dec.uvs = append(dec.uvs, uv)
	return nil
}

// parseFace parses a face line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *objDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face with less than 3 vertices")
	}
	idx := make([]uint16, len(fields))
	for i, f := range fields {
		parts := strings.Split(f, "/")
		pi, err := objIndex(parts[0], len(dec.positions))
		if err != nil {
			return err
		}
		ti := -1
		if len(parts) > 1 && parts[1] != "" {
			if ti, err = objIndex(parts[1], len(dec.uvs)); err != nil {
				return err
			}
		}
		ni := -1
		if len(parts) > 2 && parts[2] != "" {
			if ni, err = objIndex(parts[2], dec.normals); err != nil {
				return err
			}
		}
		if idx[i], err = dec.vertex([3]int{pi, ti, ni}); err != nil {
			return err
		}
	}
	for i := 1; i+1 < len(idx); i++ {
		dec.indices = append(dec.indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

// vertex returns the index of the vertex with the given position,
// uv and normal indexes, adding it if needed.
func (dec *objDecoder) vertex(k [3]int) (uint16, error) {
	if i, ok := dec.unique[k]; ok {
		return i, nil
	}
	if len(dec.vertices) > math.MaxUint16 {
		return 0, fmt.Errorf("more than %d vertices", math.MaxUint16+1)
	}
	v := Vertex{Position: dec.positions[k[0]]}
	if k[1] >= 0 {
		v.UV = dec.uvs[k[1]]
	}
	i := uint16(len(dec.vertices))
	dec.vertices = append(dec.vertices, v)
	dec.unique[k] = i
	return i, nil
}

// objIndex resolves a one-based, possibly negative (relative to the end)
// OBJ index into a zero-based index into a list of n elements.
func objIndex(s string, n int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	i := v - 1
	if v < 0 {
		i = n + v
	}
	if v == 0 || i < 0 || i >= n {
		return 0, fmt.Errorf("index %d out of range [1, %d]", v, n)
	}
	return i, nil
}

func parseFloats(fields []string) ([]float32, error) {
	v := make([]float32, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		v[i] = float32(x)
	}
	return v, nil
}
