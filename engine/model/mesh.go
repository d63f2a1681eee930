package model

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrMeshMismatch is returned when a mesh's attribute streams have different lengths or an
// index points past the last vertex.
var ErrMeshMismatch = errors.New("mesh attribute streams do not match")

// Mesh holds one stream per vertex attribute. Each stream is bound to its own vertex buffer
// slot, so positions, texture coordinates and normals are never interleaved.
type Mesh struct {
	Positions []mgl32.Vec3
	Texcoords []mgl32.Vec2
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// VertexCount returns the number of vertices in the mesh.
//
// Returns:
//   - int: the vertex count
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Validate checks that every attribute stream has one entry per vertex and that every index
// refers to an existing vertex.
//
// Returns:
//   - error: ErrMeshMismatch (wrapped) on the first violation
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	if len(m.Texcoords) != n || len(m.Normals) != n {
		return fmt.Errorf("%w: %d positions, %d texcoords, %d normals", ErrMeshMismatch, n, len(m.Texcoords), len(m.Normals))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d exceeds %d vertices", ErrMeshMismatch, idx, i, n)
		}
	}
	return nil
}

// Box builds an axis-aligned box centred on the origin with outward normals and four vertices
// per face. Every triangle winds the same way relative to its face normal.
//
// Parameters:
//   - size: the box dimensions
//
// Returns:
//   - *Mesh: the box mesh
func Box(size mgl32.Vec3) *Mesh {
	h := size.Mul(0.5)
	faces := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	corners := [4][2]float32{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}

	m := &Mesh{}
	for _, f := range faces {
		base := uint32(len(m.Positions))
		for _, c := range corners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1]))
			m.Positions = append(m.Positions, mgl32.Vec3{p[0] * h[0], p[1] * h[1], p[2] * h[2]})
			m.Texcoords = append(m.Texcoords, mgl32.Vec2{(c[0] + 1) / 2, (1 - c[1]) / 2})
			m.Normals = append(m.Normals, f.normal)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// QuadPositions and QuadTexcoords are the two clip-space triangles covering the screen,
// drawn without an index buffer by the composition pass.
var (
	QuadPositions = []mgl32.Vec2{
		{-1, 1}, {1, -1}, {-1, -1},
		{-1, 1}, {1, 1}, {1, -1},
	}
	QuadTexcoords = []mgl32.Vec2{
		{0, 0}, {1, 1}, {0, 1},
		{0, 0}, {1, 0}, {1, 1},
	}
)
