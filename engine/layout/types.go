// Package layout computes the byte layout of records shared between host code and GPU
// shader code. Each shading environment rounds vector and matrix members differently, so
// layouts are always computed against a Rules value naming the target environment.
package layout

import "errors"

// ErrUnknownType is returned when a field type has no size or alignment under a Rules set.
var ErrUnknownType = errors.New("layout: unknown type")

// Type is the canonical, target-independent name of a field type as written in the schema.
type Type string

const (
	I32     Type = "i32"
	U32     Type = "u32"
	F32     Type = "f32"
	Vec2F   Type = "vec2f"
	Vec3F   Type = "vec3f"
	Vec4F   Type = "vec4f"
	Mat4x4F Type = "mat4x4f"
)

// Builtin lists every canonical type in declaration order.
var Builtin = []Type{I32, U32, F32, Vec2F, Vec3F, Vec4F, Mat4x4F}

// IsBuiltin reports whether t is one of the canonical types.
//
// Parameters:
//   - t: the type to check
//
// Returns:
//   - bool: true if t is a canonical type
func IsBuiltin(t Type) bool {
	for _, b := range Builtin {
		if b == t {
			return true
		}
	}
	return false
}

// Components returns the number of 32-bit scalar components carried by t.
// Matrices report 16; unknown types report 0.
//
// Parameters:
//   - t: the type to inspect
//
// Returns:
//   - int: the scalar component count
func (t Type) Components() int {
	switch t {
	case I32, U32, F32:
		return 1
	case Vec2F:
		return 2
	case Vec3F:
		return 3
	case Vec4F:
		return 4
	case Mat4x4F:
		return 16
	default:
		return 0
	}
}

// IsFloat reports whether the scalar components of t are f32.
//
// Returns:
//   - bool: true for f32, vectors and matrices
func (t Type) IsFloat() bool {
	switch t {
	case F32, Vec2F, Vec3F, Vec4F, Mat4x4F:
		return true
	default:
		return false
	}
}
