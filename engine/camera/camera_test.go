package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gbuffer/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, mgl32.DegToRad(65), c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.Equal(t, DefaultView(), c.ViewMatrix())
	assert.Equal(t, common.PerspectiveLH(mgl32.DegToRad(65), 1, 0.1, 100), c.ProjectionMatrix())
}

func TestDefaultViewPlacesOriginInFront(t *testing.T) {
	p := DefaultView().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, p[0], 1e-6)
	assert.InDelta(t, -1.5, p[1], 1e-6)
	assert.InDelta(t, 8, p[2], 1e-6)
}

func TestOptionsAndSetters(t *testing.T) {
	eye, center, up := mgl32.Vec3{0, 2, -5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}
	c := NewCamera(WithFov(1), WithAspect(2), WithNear(0.5), WithFar(50), WithLookAt(eye, center, up))
	assert.Equal(t, common.PerspectiveLH(1, 2, 0.5, 50), c.ProjectionMatrix())
	assert.Equal(t, common.LookAtLH(eye, center, up), c.ViewMatrix())

	c.SetAspect(1.5)
	assert.Equal(t, common.PerspectiveLH(1, 1.5, 0.5, 50), c.ProjectionMatrix())

	c.SetView(mgl32.Ident4())
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())

	c.LookAt(eye, center, up)
	assert.Equal(t, common.LookAtLH(eye, center, up), c.ViewMatrix())

	c = NewCamera(WithView(mgl32.Translate3D(1, 2, 3)))
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), c.ViewMatrix())
}

func TestUniformsCarryShadowMatrix(t *testing.T) {
	c := NewCamera(WithAspect(16.0 / 9.0))
	shadow := common.OrthoLH(-8, 8, -8, 8, 0.1, 16)
	u := c.Uniforms(shadow)
	assert.Equal(t, c.ProjectionMatrix(), u.ProjectionMatrix)
	assert.Equal(t, c.ViewMatrix(), u.ViewMatrix)
	assert.Equal(t, shadow, u.ShadowMatrix)
}
