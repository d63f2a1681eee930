package scene

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/camera"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/light"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/model"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCamera sets the scene's camera.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithLights appends initial lights. The first sunlight drives the shadow pass.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithModels appends initial models in draw order.
//
// Parameters:
//   - models: the models to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithModels(models ...model.Model) SceneBuilderOption {
	return func(s *scene) {
		s.models = append(s.models, models...)
	}
}

// WithComputeWorkers sets the number of worker goroutines used to prepare instance
// uniforms. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// WithBuffersInFlight sets the number of uniform ring slots. Each frame uses two.
//
// Parameters:
//   - n: the slot count (minimum 2)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBuffersInFlight(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 2 {
			n = 2
		}
		s.buffersInFlight = n
	}
}

// WithRotationStep sets the per-frame animation step in radians.
//
// Parameters:
//   - step: radians added to the rotation each frame
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRotationStep(step float32) SceneBuilderOption {
	return func(s *scene) {
		s.step = step
	}
}

// WithShadowBox sets the sunlight's orthographic shadow box.
//
// Parameters:
//   - halfExtent: half-size of the box in world units
//   - near: near plane
//   - far: far plane
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowBox(halfExtent, near, far float32) SceneBuilderOption {
	return func(s *scene) {
		s.shadowHalfExtent = halfExtent
		s.shadowNear = near
		s.shadowFar = far
	}
}

// WithLogger sets the structured logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProfiler enables frame rate and memory reporting through the scene logger.
//
// Parameters:
//   - interval: how often stats are logged, 0 disables profiling
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithProfiler(interval time.Duration) SceneBuilderOption {
	return func(s *scene) {
		s.profileInterval = interval
	}
}
