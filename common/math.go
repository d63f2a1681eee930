package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// PerspectiveLH creates a left-handed perspective projection matrix mapping view-space depth
// near..far to clip-space depth 0..1, as WebGPU and Metal expect.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func PerspectiveLH(fovY, aspect, near, far float32) mgl32.Mat4 {
	ys := 1 / float32(math.Tan(float64(fovY)/2))
	xs := ys / aspect
	zs := far / (near - far)
	return mgl32.Mat4{
		xs, 0, 0, 0,
		0, ys, 0, 0,
		0, 0, -zs, 1,
		0, 0, zs * near, 0,
	}
}

// OrthoLH creates a left-handed orthographic projection mapping the box
// [left,right]x[bottom,top]x[near,far] to clip space with depth 0..1.
//
// Parameters:
//   - left, right: horizontal extent
//   - bottom, top: vertical extent
//   - near, far: depth extent
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func OrthoLH(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	return mgl32.Mat4{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, 1 / (far - near), 0,
		(left + right) / (left - right), (top + bottom) / (bottom - top), near / (near - far), 1,
	}
}

// LookAtLH creates a left-handed view matrix: the camera looks down +Z in view space.
// A degenerate up vector (parallel to the view direction) yields a matrix with zero X and Y rows.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - mgl32.Mat4: the column-major view matrix
func LookAtLH(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	z := safeNormalize(center.Sub(eye))
	x := safeNormalize(up.Cross(z))
	y := z.Cross(x)
	return mgl32.Mat4{
		x[0], y[0], z[0], 0,
		x[1], y[1], z[1], 0,
		x[2], y[2], z[2], 0,
		-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// ModelMatrix builds translation * rotationY * scale.
//
// Parameters:
//   - position: translation in world space
//   - rotationY: rotation around +Y in radians
//   - scale: per-axis scale factors
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ModelMatrix(position mgl32.Vec3, rotationY float32, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(position[0], position[1], position[2])
	r := mgl32.HomogRotate3DY(rotationY)
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(r).Mul4(s)
}

// NormalMatrix returns the inverse-transpose of m, which transforms normals correctly under
// non-uniform scale. A singular m yields the identity and false.
//
// Parameters:
//   - m: the model matrix
//
// Returns:
//   - mgl32.Mat4: the normal matrix
//   - bool: false if m is not invertible
func NormalMatrix(m mgl32.Mat4) (mgl32.Mat4, bool) {
	if m.Det() == 0 {
		return mgl32.Ident4(), false
	}
	return m.Inv().Transpose(), true
}

// ShadowMatrix builds the light-space view-projection of a directional light: an orthographic
// box of half-width extent, looking from position toward target with +Y up.
//
// Parameters:
//   - position: the light position
//   - target: the point the light shines toward
//   - extent: half-size of the orthographic box
//   - near, far: depth range of the box
//
// Returns:
//   - projection: the orthographic projection
//   - view: the light view matrix
//   - shadow: projection * view
func ShadowMatrix(position, target mgl32.Vec3, extent, near, far float32) (projection, view, shadow mgl32.Mat4) {
	projection = OrthoLH(-extent, extent, -extent, extent, near, far)
	view = LookAtLH(position, target, mgl32.Vec3{0, 1, 0})
	return projection, view, projection.Mul4(view)
}
