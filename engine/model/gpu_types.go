package model

import (
	"github.com/Carmen-Shannon/oxy-gbuffer/common"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"
)

// ColorSize is the size of the vec4<f32> instance color bound at BufferIndexColor.
const ColorSize = 16

// VertexBuffers returns the raw bytes of each attribute stream keyed by the vertex buffer
// slot it is bound to. The strides are 12, 8 and 12 bytes.
//
// Returns:
//   - map[shadertypes.BufferIndex][]byte: position, texcoord and normal streams
func (m *Mesh) VertexBuffers() map[shadertypes.BufferIndex][]byte {
	return map[shadertypes.BufferIndex][]byte{
		shadertypes.BufferIndexMeshPositions: common.SliceToBytes(m.Positions),
		shadertypes.BufferIndexMeshGenerics:  common.SliceToBytes(m.Texcoords),
		shadertypes.BufferIndexMeshNormal:    common.SliceToBytes(m.Normals),
	}
}

// IndexBuffer returns the raw bytes of the uint32 index stream.
//
// Returns:
//   - []byte: the index buffer, or nil for a non-indexed mesh
func (m *Mesh) IndexBuffer() []byte {
	return common.SliceToBytes(m.Indices)
}

// MarshalColor serializes the model color for upload at BufferIndexColor.
//
// Parameters:
//   - m: the model
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func MarshalColor(m Model) []byte {
	c := m.Color()
	enc := layout.NewEncoder(ColorSize)
	enc.PutFloats(0, c[:])
	return enc.Bytes()
}
