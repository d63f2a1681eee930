package camera

import (
	"github.com/Carmen-Shannon/oxy-gbuffer/common"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithView sets the camera's view matrix directly.
//
// Parameters:
//   - view: the world-to-view transform
//
// Returns:
//   - CameraBuilderOption: functional option to set the view matrix
func WithView(view mgl32.Mat4) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewMatrix = view
	}
}

// WithLookAt sets the view matrix from a left-handed look-at.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point
//   - up: up vector
//
// Returns:
//   - CameraBuilderOption: functional option to set the view matrix
func WithLookAt(eye, center, up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewMatrix = common.LookAtLH(eye, center, up)
	}
}
