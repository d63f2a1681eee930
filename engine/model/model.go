package model

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gbuffer/common"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// model is the implementation of the Model interface.
type model struct {
	mu *sync.RWMutex

	id        uuid.UUID
	name      string
	mesh      *Mesh
	position  mgl32.Vec3
	rotationY float32
	scale     mgl32.Vec3
	color     mgl32.Vec4
	animated  bool
}

// Model defines the interface for one drawable instance: a mesh placed in the world with a
// translation, a rotation about +Y, a per-axis scale and a flat RGBA color.
// Each frame a Model contributes an InstanceUniforms record at BufferIndexModelUniforms and
// its color at BufferIndexColor.
type Model interface {
	// ID retrieves the unique identity of the instance.
	//
	// Returns:
	//   - uuid.UUID: the instance id
	ID() uuid.UUID

	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh retrieves the mesh drawn for this instance. May be nil.
	//
	// Returns:
	//   - *Mesh: the mesh
	Mesh() *Mesh

	// Position retrieves the world-space translation.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition sets the world-space translation.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position mgl32.Vec3)

	// RotationY retrieves the rotation about +Y in radians.
	//
	// Returns:
	//   - float32: the rotation
	RotationY() float32

	// SetRotationY sets the rotation about +Y in radians.
	//
	// Parameters:
	//   - radians: the new rotation
	SetRotationY(radians float32)

	// Scale retrieves the per-axis scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// Color retrieves the flat RGBA color.
	//
	// Returns:
	//   - mgl32.Vec4: the color
	Color() mgl32.Vec4

	// Animated reports whether the scene spins this instance each frame.
	//
	// Returns:
	//   - bool: true if the instance is animated
	Animated() bool

	// ModelMatrix computes translation * rotationY * scale.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// InstanceUniforms computes the per-instance record with the normal matrix set to the
	// inverse-transpose of the model matrix.
	//
	// Returns:
	//   - shadertypes.InstanceUniforms: the record uploaded at BufferIndexModelUniforms
	InstanceUniforms() shadertypes.InstanceUniforms
}

var _ Model = &model{}

// NewModel creates a new Model with the given options applied. Defaults match an untouched
// instance of the demo: at the origin, unrotated, unit scale, red.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions
//
// Returns:
//   - Model: the new model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		mu:    &sync.RWMutex{},
		id:    uuid.New(),
		scale: mgl32.Vec3{1, 1, 1},
		color: mgl32.Vec4{1, 0, 0, 1},
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *model) ID() uuid.UUID {
	return m.id
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Mesh() *Mesh {
	return m.mesh
}

func (m *model) Position() mgl32.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

func (m *model) SetPosition(position mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = position
}

func (m *model) RotationY() float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rotationY
}

func (m *model) SetRotationY(radians float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotationY = radians
}

func (m *model) Scale() mgl32.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scale
}

func (m *model) Color() mgl32.Vec4 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.color
}

func (m *model) Animated() bool {
	return m.animated
}

func (m *model) ModelMatrix() mgl32.Mat4 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return common.ModelMatrix(m.position, m.rotationY, m.scale)
}

func (m *model) InstanceUniforms() shadertypes.InstanceUniforms {
	matrix := m.ModelMatrix()
	normal, _ := common.NormalMatrix(matrix)
	return shadertypes.InstanceUniforms{
		ModelMatrix:  matrix,
		NormalMatrix: normal,
	}
}
