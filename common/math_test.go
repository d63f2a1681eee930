package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	return v.Vec3().Mul(1 / v[3])
}

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, eps), "want %v, got %v", want, got)
}

func TestPerspectiveLHDepthRange(t *testing.T) {
	p := PerspectiveLH(mgl32.DegToRad(65), 16.0/9.0, 0.1, 100)

	assert.InDelta(t, 0, project(p, mgl32.Vec3{0, 0, 0.1})[2], eps)
	assert.InDelta(t, 1, project(p, mgl32.Vec3{0, 0, 100})[2], eps)

	ys := float32(1 / math.Tan(float64(mgl32.DegToRad(65))/2))
	assert.InDelta(t, ys, p[5], eps)
	assert.InDelta(t, ys*9/16, p[0], eps)
	assert.Equal(t, float32(1), p[11])
}

func TestOrthoLHMapsBoxToClipSpace(t *testing.T) {
	o := OrthoLH(-8, 8, -8, 8, 0.1, 16)

	assertVec3(t, mgl32.Vec3{-1, -1, 0}, project(o, mgl32.Vec3{-8, -8, 0.1}))
	assertVec3(t, mgl32.Vec3{1, 1, 1}, project(o, mgl32.Vec3{8, 8, 16}))
	assertVec3(t, mgl32.Vec3{0, 0, 0.5}, project(o, mgl32.Vec3{0, 0, 8.05}))
}

func TestLookAtLHPlacesTargetOnPositiveZ(t *testing.T) {
	eye := mgl32.Vec3{1, 2, -2}
	v := LookAtLH(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	assertVec3(t, mgl32.Vec3{}, project(v, eye))
	assertVec3(t, mgl32.Vec3{0, 0, 3}, project(v, mgl32.Vec3{}))
}

func TestLookAtLHDegenerateUp(t *testing.T) {
	v := LookAtLH(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	for _, f := range v {
		assert.False(t, math.IsNaN(float64(f)))
	}
}

func TestModelMatrixOrder(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{1, 1.5, -1}, mgl32.DegToRad(90), mgl32.Vec3{2, 3, 1})

	// scale, then rotate +X onto -Z, then translate
	assertVec3(t, mgl32.Vec3{1, 1.5, -3}, project(m, mgl32.Vec3{1, 0, 0}))
	assertVec3(t, mgl32.Vec3{1, 4.5, -1}, project(m, mgl32.Vec3{0, 1, 0}))
}

func TestNormalMatrix(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{0, -0.5, 2}, 0, mgl32.Vec3{10, 1, 10})
	n, ok := NormalMatrix(m)
	assert.True(t, ok)

	// a surface tilted 45 degrees keeps a normal perpendicular to it after transform
	tangent := m.Mul4x1(mgl32.Vec4{1, 1, 0, 0}).Vec3()
	normal := n.Mul4x1(mgl32.Vec4{1, -1, 0, 0}).Vec3()
	assert.InDelta(t, 0, tangent.Dot(normal), eps)

	_, ok = NormalMatrix(mgl32.Scale3D(1, 0, 1))
	assert.False(t, ok)
}

func TestShadowMatrix(t *testing.T) {
	pos, target := mgl32.Vec3{1, 2, -2}, mgl32.Vec3{}
	proj, view, shadow := ShadowMatrix(pos, target, 8, 0.1, 16)

	assert.True(t, proj.Mul4(view).ApproxEqualThreshold(shadow, eps))
	got := project(shadow, target)
	assert.InDelta(t, 0, got[0], eps)
	assert.InDelta(t, 0, got[1], eps)
	assert.InDelta(t, (3-0.1)/(16-0.1), got[2], eps)
}

func TestStructToBytes(t *testing.T) {
	v := struct {
		A uint32
		B float32
	}{A: 1, B: 1}
	b := StructToBytes(&v)
	assert.Len(t, b, 8)
	assert.Equal(t, byte(1), b[0])
	assert.Len(t, SliceToBytes([]mgl32.Vec3{{}, {}}), 24)
	assert.Nil(t, SliceToBytes([]uint32{}))
}
