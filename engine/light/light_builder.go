package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - position: the light position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(position mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = position
	}
}

// WithTarget is an option builder that sets the point a sunlight shines toward.
//
// Parameters:
//   - target: the target point
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(target mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = target
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - color: the light color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(color mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color
	}
}

// WithAttenuation is an option builder that sets the constant, linear and quadratic
// distance attenuation coefficients.
//
// Parameters:
//   - attenuation: (constant, linear, quadratic)
//
// Returns:
//   - LightBuilderOption: a function that applies the attenuation option to a lightImpl
func WithAttenuation(attenuation mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.attenuation = attenuation
	}
}

// WithCone is an option builder that sets the spotlight cone. The direction is normalized
// before storing.
//
// Parameters:
//   - angle: the cone half-angle in radians
//   - direction: the cone axis
//   - attenuation: the cone falloff exponent
//
// Returns:
//   - LightBuilderOption: a function that applies the cone option to a lightImpl
func WithCone(angle float32, direction mgl32.Vec3, attenuation float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.coneAngle = angle
		l.coneDirection = normalize3(direction)
		l.coneAttenuation = attenuation
	}
}

// normalize3 normalizes a 3-component vector. Returns a zero vector if the input
// has zero length.
func normalize3(v mgl32.Vec3) mgl32.Vec3 {
	length := v.Len()
	if length == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / length)
}
