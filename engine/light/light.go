package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"
	"github.com/go-gl/mathgl/mgl32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.RWMutex

	lightType       shadertypes.LightType
	color           mgl32.Vec3
	position        mgl32.Vec3
	target          mgl32.Vec3
	attenuation     mgl32.Vec3
	coneAngle       float32
	coneDirection   mgl32.Vec3
	coneAttenuation float32
}

// Light defines the interface for a light source in the scene.
//
// Every light type (sunlight, spotlight, point light) shares this interface and is packed
// into the same shadertypes.Light record each frame. Type-specific properties (e.g. the cone
// of a spotlight) are carried but ignored by the shader for other light types.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - shadertypes.LightType: the light type tag written into the GPU record
	Type() shadertypes.LightType

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Position returns the world-space position of the light. For sunlight this is the point
	// the light shines from when building the shadow matrix.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Target returns the world-space point a sunlight shines toward.
	//
	// Returns:
	//   - mgl32.Vec3: target as (x, y, z)
	Target() mgl32.Vec3

	// Attenuation returns the constant, linear and quadratic distance attenuation coefficients.
	//
	// Returns:
	//   - mgl32.Vec3: (constant, linear, quadratic)
	Attenuation() mgl32.Vec3

	// Cone returns the spotlight cone parameters.
	//
	// Returns:
	//   - angle: cone half-angle in radians
	//   - direction: cone axis
	//   - attenuation: cone falloff exponent
	Cone() (angle float32, direction mgl32.Vec3, attenuation float32)

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position mgl32.Vec3)

	// SetTarget sets the world-space point a sunlight shines toward.
	//
	// Parameters:
	//   - target: the new target
	SetTarget(target mgl32.Vec3)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - color: the new color
	SetColor(color mgl32.Vec3)

	// Record returns the light as the record copied into the Lights buffer.
	//
	// Returns:
	//   - shadertypes.Light: the GPU record
	Record() shadertypes.Light
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with the defaults of Default and any
// provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType shadertypes.LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:          &sync.RWMutex{},
		lightType:   lightType,
		color:       mgl32.Vec3{1, 1, 1},
		attenuation: mgl32.Vec3{1, 0, 0},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Default returns a white sunlight at the origin aimed at the origin with attenuation
// (1, 0, 0), the base every other light is configured from.
//
// Returns:
//   - Light: the default light
func Default() Light {
	return NewLight(shadertypes.LightTypeSunlight)
}

// NewSunlight creates a directional light shining from position toward target.
//
// Parameters:
//   - position: the point the light shines from
//   - target: the point the light shines toward
//   - opts: additional options
//
// Returns:
//   - Light: the sunlight
func NewSunlight(position, target mgl32.Vec3, opts ...LightBuilderOption) Light {
	return NewLight(shadertypes.LightTypeSunlight, append([]LightBuilderOption{
		WithPosition(position),
		WithTarget(target),
	}, opts...)...)
}

// NewPointLight creates an omnidirectional light at position.
//
// Parameters:
//   - position: the light position
//   - color: the light color
//   - attenuation: constant, linear and quadratic coefficients
//   - opts: additional options
//
// Returns:
//   - Light: the point light
func NewPointLight(position, color, attenuation mgl32.Vec3, opts ...LightBuilderOption) Light {
	return NewLight(shadertypes.LightTypePointlight, append([]LightBuilderOption{
		WithPosition(position),
		WithColor(color),
		WithAttenuation(attenuation),
	}, opts...)...)
}

// NewSpotlight creates a cone light at position along direction.
//
// Parameters:
//   - position: the light position
//   - direction: the cone axis
//   - angle: the cone half-angle in radians
//   - falloff: the cone attenuation exponent
//   - opts: additional options
//
// Returns:
//   - Light: the spotlight
func NewSpotlight(position, direction mgl32.Vec3, angle, falloff float32, opts ...LightBuilderOption) Light {
	return NewLight(shadertypes.LightTypeSpotlight, append([]LightBuilderOption{
		WithPosition(position),
		WithCone(angle, direction, falloff),
	}, opts...)...)
}

func (l *lightImpl) Type() shadertypes.LightType {
	return l.lightType
}

func (l *lightImpl) Color() mgl32.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.color
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.position
}

func (l *lightImpl) Target() mgl32.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.target
}

func (l *lightImpl) Attenuation() mgl32.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.attenuation
}

func (l *lightImpl) Cone() (float32, mgl32.Vec3, float32) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.coneAngle, l.coneDirection, l.coneAttenuation
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = position
}

func (l *lightImpl) SetTarget(target mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.target = target
}

func (l *lightImpl) SetColor(color mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = color
}

func (l *lightImpl) Record() shadertypes.Light {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return shadertypes.Light{
		Type:            l.lightType,
		Color:           l.color,
		Position:        l.position,
		Target:          l.target,
		Attenuation:     l.attenuation,
		ConeAngle:       l.coneAngle,
		ConeDirection:   l.coneDirection,
		ConeAttenuation: l.coneAttenuation,
	}
}
