package model

import "github.com/go-gl/mathgl/mgl32"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh is an option builder that sets the mesh drawn for the Model.
//
// Parameters:
//   - mesh: the mesh
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh *Mesh) ModelBuilderOption {
	return func(m *model) {
		m.mesh = mesh
	}
}

// WithPosition is an option builder that sets the world-space translation of the Model.
//
// Parameters:
//   - position: the translation
//
// Returns:
//   - ModelBuilderOption: a function that applies the position option to a model
func WithPosition(position mgl32.Vec3) ModelBuilderOption {
	return func(m *model) {
		m.position = position
	}
}

// WithRotationY is an option builder that sets the rotation of the Model about +Y.
//
// Parameters:
//   - radians: the rotation in radians
//
// Returns:
//   - ModelBuilderOption: a function that applies the rotation option to a model
func WithRotationY(radians float32) ModelBuilderOption {
	return func(m *model) {
		m.rotationY = radians
	}
}

// WithScale is an option builder that sets the per-axis scale of the Model.
//
// Parameters:
//   - scale: the scale factors
//
// Returns:
//   - ModelBuilderOption: a function that applies the scale option to a model
func WithScale(scale mgl32.Vec3) ModelBuilderOption {
	return func(m *model) {
		m.scale = scale
	}
}

// WithColor is an option builder that sets the flat RGBA color of the Model.
//
// Parameters:
//   - color: the color
//
// Returns:
//   - ModelBuilderOption: a function that applies the color option to a model
func WithColor(color mgl32.Vec4) ModelBuilderOption {
	return func(m *model) {
		m.color = color
	}
}

// WithAnimated is an option builder that marks the Model to be spun about +Y by the scene.
//
// Parameters:
//   - animated: true to animate
//
// Returns:
//   - ModelBuilderOption: a function that applies the animated option to a model
func WithAnimated(animated bool) ModelBuilderOption {
	return func(m *model) {
		m.animated = animated
	}
}
