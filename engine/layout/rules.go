package layout

// typeLayout holds the byte size and alignment of a type under one set of rules.
type typeLayout struct {
	size  uint64
	align uint64
}

// Rules describes how a shading environment sizes and aligns the canonical types.
type Rules interface {
	// Name returns the short identifier of the environment, e.g. "wgsl" or "msl".
	//
	// Returns:
	//   - string: the environment name
	Name() string

	// SizeAlign returns the byte size and alignment of t when used as a struct member.
	//
	// Parameters:
	//   - t: the canonical type
	//
	// Returns:
	//   - size: the member size in bytes
	//   - align: the member alignment in bytes
	//   - ok: false if t is not known to this environment
	SizeAlign(t Type) (size, align uint64, ok bool)
}

type tableRules struct {
	name  string
	table map[Type]typeLayout
}

func (r tableRules) Name() string {
	return r.name
}

func (r tableRules) SizeAlign(t Type) (uint64, uint64, bool) {
	l, ok := r.table[t]
	return l.size, l.align, ok
}

// WGSL is the WebGPU Shading Language host-shareable layout.
// A vec3<f32> occupies 12 bytes with 16-byte alignment, so a following scalar packs into
// the remaining 4 bytes of the 16-byte slot.
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
var WGSL Rules = tableRules{
	name: "wgsl",
	table: map[Type]typeLayout{
		I32:     {4, 4},
		U32:     {4, 4},
		F32:     {4, 4},
		Vec2F:   {8, 8},
		Vec3F:   {12, 16},
		Vec4F:   {16, 16},
		Mat4x4F: {64, 16},
	},
}

// MSL is the Metal Shading Language layout of the simd types used in shared C headers.
// vector_float3 is a 16-byte type, so no scalar ever packs behind it.
var MSL Rules = tableRules{
	name: "msl",
	table: map[Type]typeLayout{
		I32:     {4, 4},
		U32:     {4, 4},
		F32:     {4, 4},
		Vec2F:   {8, 8},
		Vec3F:   {16, 16},
		Vec4F:   {16, 16},
		Mat4x4F: {64, 16},
	},
}

// RoundUp rounds value up to the next multiple of alignment.
// Alignment must be a power of two; zero leaves value unchanged.
//
// Parameters:
//   - alignment: the required alignment
//   - value: the value to align
//
// Returns:
//   - uint64: value rounded up to the next multiple of alignment
func RoundUp(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}
