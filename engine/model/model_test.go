package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gbuffer/common"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelDefaults(t *testing.T) {
	m := NewModel()
	assert.NotEqual(t, m.ID(), NewModel().ID())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.Scale())
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, m.Color())
	assert.Equal(t, mgl32.Ident4(), m.ModelMatrix())
	assert.Nil(t, m.Mesh())
	assert.False(t, m.Animated())
}

func TestInstanceUniforms(t *testing.T) {
	m := NewModel(
		WithName("pillar"),
		WithMesh(Box(mgl32.Vec3{1, 1, 1})),
		WithRotationY(mgl32.DegToRad(45)),
		WithScale(mgl32.Vec3{1, 3, 1}),
		WithPosition(mgl32.Vec3{1, 1.5, -1}),
		WithColor(mgl32.Vec4{1, 0.8, 0.1, 1}),
		WithAnimated(true),
	)
	assert.Equal(t, "pillar", m.Name())
	assert.True(t, m.Animated())

	want := mgl32.Translate3D(1, 1.5, -1).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(45))).Mul4(mgl32.Scale3D(1, 3, 1))
	u := m.InstanceUniforms()
	assert.True(t, want.ApproxEqualThreshold(u.ModelMatrix, 1e-6))
	assert.True(t, want.Inv().Transpose().ApproxEqualThreshold(u.NormalMatrix, 1e-5))
	assert.True(t, u.ModelMatrix.Mul4(u.NormalMatrix.Transpose()).ApproxEqualThreshold(mgl32.Ident4(), 1e-5))

	m.SetRotationY(0)
	m.SetPosition(mgl32.Vec3{})
	assert.Equal(t, float32(0), m.RotationY())
	assert.Equal(t, mgl32.Scale3D(1, 3, 1), m.ModelMatrix())
}

func TestDegenerateScaleKeepsIdentityNormalMatrix(t *testing.T) {
	m := NewModel(WithScale(mgl32.Vec3{1, 0, 1}))
	assert.Equal(t, mgl32.Ident4(), m.InstanceUniforms().NormalMatrix)
}

func TestBoxMesh(t *testing.T) {
	box := Box(mgl32.Vec3{2, 4, 6})
	require.NoError(t, box.Validate())
	assert.Equal(t, 24, box.VertexCount())
	assert.Len(t, box.Indices, 36)

	for _, p := range box.Positions {
		assert.InDelta(t, 1, abs(p[0]), 1e-6)
		assert.InDelta(t, 2, abs(p[1]), 1e-6)
		assert.InDelta(t, 3, abs(p[2]), 1e-6)
	}
	for i := 0; i < len(box.Indices); i += 3 {
		a, b, c := box.Positions[box.Indices[i]], box.Positions[box.Indices[i+1]], box.Positions[box.Indices[i+2]]
		n := box.Normals[box.Indices[i]]
		assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Dot(n), float32(0), "triangle %d winds inconsistently", i/3)
		assert.Greater(t, a.Dot(n), float32(0), "normal of triangle %d points inward", i/3)
	}
}

func TestMeshValidate(t *testing.T) {
	m := &Mesh{Positions: make([]mgl32.Vec3, 3), Texcoords: make([]mgl32.Vec2, 2), Normals: make([]mgl32.Vec3, 3)}
	assert.ErrorIs(t, m.Validate(), ErrMeshMismatch)

	m.Texcoords = make([]mgl32.Vec2, 3)
	m.Indices = []uint32{0, 1, 3}
	assert.ErrorIs(t, m.Validate(), ErrMeshMismatch)

	m.Indices = []uint32{0, 1, 2}
	assert.NoError(t, m.Validate())
}

func TestVertexBuffersUseAttributeStrides(t *testing.T) {
	box := Box(mgl32.Vec3{1, 1, 1})
	buffers := box.VertexBuffers()
	require.Len(t, buffers, 3)
	assert.Len(t, buffers[shadertypes.BufferIndexMeshPositions], 12*box.VertexCount())
	assert.Len(t, buffers[shadertypes.BufferIndexMeshGenerics], 8*box.VertexCount())
	assert.Len(t, buffers[shadertypes.BufferIndexMeshNormal], 12*box.VertexCount())
	assert.Len(t, box.IndexBuffer(), 4*len(box.Indices))

	dec := layout.NewDecoder(buffers[shadertypes.BufferIndexMeshNormal])
	assert.Equal(t, box.Normals[1][0], dec.Float32(12))
}

func TestMarshalColor(t *testing.T) {
	m := NewModel(WithColor(mgl32.Vec4{0.85, 0.25, 0.75, 1}))
	b := MarshalColor(m)
	require.Len(t, b, ColorSize)
	dec := layout.NewDecoder(b)
	assert.Equal(t, float32(0.25), dec.Float32(4))
	assert.Equal(t, float32(1), dec.Float32(12))
	assert.Equal(t, b, common.SliceToBytes([]float32{0.85, 0.25, 0.75, 1}))
}

func TestQuad(t *testing.T) {
	assert.Len(t, QuadPositions, 6)
	assert.Len(t, QuadTexcoords, len(QuadPositions))
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
