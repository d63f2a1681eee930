package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-gbuffer/common"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
}

// Camera defines the interface for the camera system.
// The camera holds perspective settings and a view matrix, and produces the per-frame
// Uniforms record. Projections are left-handed with clip-space depth 0..1.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the world-to-view transform.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the view-to-clip transform.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// SetAspect updates the aspect ratio, typically after the drawable is resized.
	//
	// Parameters:
	//   - aspect: the new aspect ratio
	SetAspect(aspect float32)

	// SetView replaces the view matrix.
	//
	// Parameters:
	//   - view: the new view matrix
	SetView(view mgl32.Mat4)

	// LookAt points the camera from eye toward center.
	//
	// Parameters:
	//   - eye: camera position in world space
	//   - center: target point
	//   - up: up vector
	LookAt(eye, center, up mgl32.Vec3)

	// Uniforms builds the per-frame Uniforms record for the main pass.
	//
	// Parameters:
	//   - shadow: the light-space view-projection from the shadow pass
	//
	// Returns:
	//   - shadertypes.Uniforms: the record uploaded at BufferIndexUniforms
	Uniforms(shadow mgl32.Mat4) shadertypes.Uniforms
}

var _ Camera = &cameraImpl{}

// DefaultView is the view of the demo scene: pulled back 8 units, lowered 1.5 units and
// pitched down 30 degrees.
//
// Returns:
//   - mgl32.Mat4: the default view matrix
func DefaultView() mgl32.Mat4 {
	return mgl32.Translate3D(0, -1.5, 8).Mul4(mgl32.HomogRotate3DX(-math.Pi / 6))
}

// NewCamera creates a new Camera with the given options.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		fov:        mgl32.DegToRad(65),
		aspect:     1.0,
		near:       0.1,
		far:        100.0,
		viewMatrix: DefaultView(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetView(view mgl32.Mat4) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMatrix = view
}

func (c *cameraImpl) LookAt(eye, center, up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMatrix = common.LookAtLH(eye, center, up)
}

func (c *cameraImpl) Uniforms(shadow mgl32.Mat4) shadertypes.Uniforms {
	c.mu.Lock()
	defer c.mu.Unlock()
	return shadertypes.Uniforms{
		ProjectionMatrix: c.projectionMatrix,
		ViewMatrix:       c.viewMatrix,
		ShadowMatrix:     shadow,
	}
}

// updateMatrices recalculates the projection matrix. Caller must hold the mutex, except
// during construction.
func (c *cameraImpl) updateMatrices() {
	c.projectionMatrix = common.PerspectiveLH(c.fov, c.aspect, c.near, c.far)
}
