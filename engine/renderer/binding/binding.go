// Package binding derives the wgpu pipeline layout pieces from the schema: the vertex buffer
// layouts of the mesh slots and the bind group layouts of the buffer and texture slots.
// Slot numbers are read from the schema, never written by hand.
package binding

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
	"github.com/cogentcore/webgpu/wgpu"
)

// vertexFormats maps vertex attribute formats to their wgpu vertex format.
var vertexFormats = map[layout.Type]wgpu.VertexFormat{
	layout.F32:   wgpu.VertexFormatFloat32,
	layout.Vec2F: wgpu.VertexFormatFloat32x2,
	layout.Vec3F: wgpu.VertexFormatFloat32x3,
	layout.Vec4F: wgpu.VertexFormatFloat32x4,
	layout.I32:   wgpu.VertexFormatSint32,
	layout.U32:   wgpu.VertexFormatUint32,
}

var stages = map[string]wgpu.ShaderStage{
	schema.StageVertex:   wgpu.ShaderStageVertex,
	schema.StageFragment: wgpu.ShaderStageFragment,
	schema.StageCompute:  wgpu.ShaderStageCompute,
}

// Option configures bind group layout derivation.
type Option func(*options)

type options struct {
	dynamic []string
}

// WithDynamicOffset marks buffer slots that are bound with a dynamic offset per draw.
//
// Parameters:
//   - slots: BufferIndex variant names, e.g. "Uniforms"
//
// Returns:
//   - Option: a function that applies the dynamic slots
func WithDynamicOffset(slots ...string) Option {
	return func(o *options) {
		o.dynamic = append(o.dynamic, slots...)
	}
}

// VertexBufferLayouts returns one single-attribute layout per vertex buffer, indexed by the
// BufferIndex value of the buffer. The attribute's ShaderLocation is its VertexAttribute
// value and the stride is the size of its format.
//
// Parameters:
//   - s: the schema
//
// Returns:
//   - []wgpu.VertexBufferLayout: the layouts; slot i of the render pipeline's vertex state
//   - error: an unknown reference, an unsupported format, or mesh slots not contiguous from 0
func VertexBufferLayouts(s *schema.Schema) ([]wgpu.VertexBufferLayout, error) {
	out := make([]wgpu.VertexBufferLayout, len(s.VertexBuffers))
	seen := make([]bool, len(s.VertexBuffers))
	for _, vb := range s.VertexBuffers {
		slot, ok := s.Value(schema.EnumBufferIndex, vb.Buffer)
		if !ok {
			return nil, fmt.Errorf("vertex buffer %q: %w", vb.Buffer, schema.ErrUnknownReference)
		}
		loc, ok := s.Value(schema.EnumVertexAttribute, vb.Attribute)
		if !ok {
			return nil, fmt.Errorf("vertex attribute %q: %w", vb.Attribute, schema.ErrUnknownReference)
		}
		format, ok := vertexFormats[layout.Type(vb.Format)]
		if !ok {
			return nil, fmt.Errorf("vertex attribute %q: format %q: %w", vb.Attribute, vb.Format, layout.ErrUnknownType)
		}
		size, _, err := s.TypeSize(layout.WGSL, vb.Format)
		if err != nil {
			return nil, err
		}
		if int(slot) >= len(out) || seen[slot] {
			return nil, fmt.Errorf("vertex buffer %q: slot %d is not contiguous from 0", vb.Buffer, slot)
		}
		seen[slot] = true
		out[slot] = wgpu.VertexBufferLayout{
			ArrayStride: size,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{{
				Format:         format,
				Offset:         0,
				ShaderLocation: uint32(loc),
			}},
		}
	}
	return out, nil
}

// BindGroupLayoutDescriptors returns the buffer group, whose entry bindings are BufferIndex
// values, and the texture group, whose entry bindings are TextureIndex values, keyed by the
// schema's group numbers. Buffer entries carry the bound type's WGSL size as MinBindingSize
// (one element for arrays).
//
// Parameters:
//   - s: the schema
//   - opts: derivation options
//
// Returns:
//   - map[uint32]wgpu.BindGroupLayoutDescriptor: descriptors keyed by @group
//   - error: an unknown reference or layout error
func BindGroupLayoutDescriptors(s *schema.Schema, opts ...Option) (map[uint32]wgpu.BindGroupLayoutDescriptor, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	buffers := make([]wgpu.BindGroupLayoutEntry, 0, len(s.Bindings))
	for _, b := range s.Bindings {
		slot, ok := s.Value(schema.EnumBufferIndex, b.Slot)
		if !ok {
			return nil, fmt.Errorf("binding %q: %w", b.Slot, schema.ErrUnknownReference)
		}
		size, _, err := s.TypeSize(layout.WGSL, b.Type)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", b.Slot, err)
		}
		entry := wgpu.BindGroupLayoutEntry{
			Binding:    uint32(slot),
			Visibility: visibility(b.Stages),
		}
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		if b.Space == schema.SpaceStorageRead {
			entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		}
		entry.Buffer.HasDynamicOffset = slices.Contains(o.dynamic, b.Slot)
		entry.Buffer.MinBindingSize = size
		buffers = append(buffers, entry)
	}

	textures := make([]wgpu.BindGroupLayoutEntry, 0, len(s.Textures))
	for _, t := range s.Textures {
		slot, ok := s.Value(schema.EnumTextureIndex, t.Slot)
		if !ok {
			return nil, fmt.Errorf("texture %q: %w", t.Slot, schema.ErrUnknownReference)
		}
		entry := wgpu.BindGroupLayoutEntry{
			Binding:    uint32(slot),
			Visibility: visibility(t.Stages),
		}
		entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
		entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
		if t.Sample == schema.SampleDepth {
			entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
		}
		textures = append(textures, entry)
	}

	byBinding := func(a, b wgpu.BindGroupLayoutEntry) int {
		return int(a.Binding) - int(b.Binding)
	}
	slices.SortFunc(buffers, byBinding)
	slices.SortFunc(textures, byBinding)

	out := make(map[uint32]wgpu.BindGroupLayoutDescriptor, 2)
	if len(buffers) > 0 {
		out[s.BufferGroup] = wgpu.BindGroupLayoutDescriptor{Label: "buffers", Entries: buffers}
	}
	if len(textures) > 0 {
		out[s.TextureGroup] = wgpu.BindGroupLayoutDescriptor{Label: "textures", Entries: textures}
	}
	return out, nil
}

func visibility(names []string) wgpu.ShaderStage {
	var v wgpu.ShaderStage
	for _, n := range names {
		v |= stages[n]
	}
	return v
}
