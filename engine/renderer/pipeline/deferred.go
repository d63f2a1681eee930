package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/renderer/binding"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
	"github.com/cogentcore/webgpu/wgpu"
)

// DynamicSlots are the buffer slots the scene packs at a per-draw stride in one buffer.
var DynamicSlots = []string{"Uniforms", "Color", "ModelUniforms"}

// Shaders are the stages of the deferred frame.
type Shaders struct {
	ShadowVertex        shader.Shader
	GBufferVertex       shader.Shader
	GBufferFragment     shader.Shader
	CompositionVertex   shader.Shader
	CompositionFragment shader.Shader
}

// QuadVertexLayouts returns the vertex layouts of the composition quad: clip-space positions
// in buffer 0 at location 0 and texture coordinates in buffer 1 at location 1.
//
// Returns:
//   - []wgpu.VertexBufferLayout: the two quad layouts
func QuadVertexLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: 8,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  []wgpu.VertexAttribute{{Format: wgpu.VertexFormatFloat32x2, ShaderLocation: 0}},
		},
		{
			ArrayStride: 8,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  []wgpu.VertexAttribute{{Format: wgpu.VertexFormatFloat32x2, ShaderLocation: 1}},
		},
	}
}

// NewDeferred builds the shadow, G-buffer and composition pipelines of a frame in draw order.
// The mesh passes bind one vertex buffer per attribute at the slots the schema assigns, every
// pass shares the schema's bind group layouts, and every shader's bindings are checked against
// them.
//
// Parameters:
//   - s: the schema
//   - shaders: the stage shaders
//
// Returns:
//   - []Pipeline: shadow, gbuffer and composition pipelines
//   - error: a schema error, ErrMissingShader, or ErrBindingMismatch
func NewDeferred(s *schema.Schema, shaders Shaders) ([]Pipeline, error) {
	meshLayouts, err := binding.VertexBufferLayouts(s)
	if err != nil {
		return nil, err
	}
	groups, err := BindGroupLayouts(s)
	if err != nil {
		return nil, err
	}

	stages := []struct {
		name string
		sh   shader.Shader
	}{
		{"shadow vertex", shaders.ShadowVertex},
		{"gbuffer vertex", shaders.GBufferVertex},
		{"gbuffer fragment", shaders.GBufferFragment},
		{"composition vertex", shaders.CompositionVertex},
		{"composition fragment", shaders.CompositionFragment},
	}
	all := make([]shader.Shader, 0, len(stages))
	for _, st := range stages {
		if st.sh == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingShader, st.name)
		}
		all = append(all, st.sh)
	}
	if err := CheckBindings(s, all...); err != nil {
		return nil, err
	}

	return []Pipeline{
		NewPipeline(PassShadow.String(), PassShadow,
			WithVertexShader(shaders.ShadowVertex),
			WithVertexLayouts(meshLayouts),
			WithBindGroupLayouts(groups),
		),
		NewPipeline(PassGBuffer.String(), PassGBuffer,
			WithVertexShader(shaders.GBufferVertex),
			WithFragmentShader(shaders.GBufferFragment),
			WithVertexLayouts(meshLayouts),
			WithBindGroupLayouts(groups),
		),
		NewPipeline(PassComposition.String(), PassComposition,
			WithVertexShader(shaders.CompositionVertex),
			WithFragmentShader(shaders.CompositionFragment),
			WithVertexLayouts(QuadVertexLayouts()),
			WithBindGroupLayouts(groups),
		),
	}, nil
}

// BindGroupLayouts returns the bind group layout descriptors of the frame in group order,
// with the DynamicSlots bound at a dynamic offset.
//
// Parameters:
//   - s: the schema
//
// Returns:
//   - []wgpu.BindGroupLayoutDescriptor: the descriptors, index i is group i
//   - error: a schema error
func BindGroupLayouts(s *schema.Schema) ([]wgpu.BindGroupLayoutDescriptor, error) {
	descs, err := binding.BindGroupLayoutDescriptors(s, binding.WithDynamicOffset(DynamicSlots...))
	if err != nil {
		return nil, err
	}
	var maxGroup uint32
	for g := range descs {
		maxGroup = max(maxGroup, g)
	}
	out := make([]wgpu.BindGroupLayoutDescriptor, maxGroup+1)
	for g, desc := range descs {
		out[g] = desc
	}
	return out, nil
}

// CheckBindings verifies that every binding the shaders declare exists in the schema's bind
// group layouts with the same resource kind.
//
// Parameters:
//   - s: the schema
//   - shaders: the shaders to check
//
// Returns:
//   - error: ErrBindingMismatch naming the first offending binding, or a schema error
func CheckBindings(s *schema.Schema, shaders ...shader.Shader) error {
	descs, err := binding.BindGroupLayoutDescriptors(s)
	if err != nil {
		return err
	}
	for _, sh := range shaders {
		for _, b := range sh.Bindings() {
			want, ok := findEntry(descs, b.Group, b.Binding)
			if !ok {
				return fmt.Errorf("%s: %w: %s at @group(%d) @binding(%d) is not declared",
					sh.Key(), ErrBindingMismatch, b.Var, b.Group, b.Binding)
			}
			if want.Buffer.Type != b.Entry.Buffer.Type ||
				want.Texture.SampleType != b.Entry.Texture.SampleType ||
				want.Sampler.Type != b.Entry.Sampler.Type {
				return fmt.Errorf("%s: %w: %s at @group(%d) @binding(%d) has a different resource type",
					sh.Key(), ErrBindingMismatch, b.Var, b.Group, b.Binding)
			}
		}
	}
	return nil
}

func findEntry(descs map[uint32]wgpu.BindGroupLayoutDescriptor, group, slot uint32) (wgpu.BindGroupLayoutEntry, bool) {
	desc, ok := descs[group]
	if !ok {
		return wgpu.BindGroupLayoutEntry{}, false
	}
	for _, e := range desc.Entries {
		if e.Binding == slot {
			return e, true
		}
	}
	return wgpu.BindGroupLayoutEntry{}, false
}
