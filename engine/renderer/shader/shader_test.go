package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/codegen"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gbufferVertex = `//@oxy:include types
//@oxy:include bindings

struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) normal: vec3<f32>,
}

@vertex
fn gbufferVert(v: VertexIn) -> VertexOut {
    var o: VertexOut;
    o.position = uniforms.projectionMatrix * uniforms.viewMatrix * instance.modelMatrix * vec4<f32>(v.position, 1.0);
    o.normal = (instance.normalMatrix * vec4<f32>(v.normal, 0.0)).xyz;
    return o;
}
`

const shadowVertex = `//@oxy:include Uniforms
//@oxy:include InstanceUniforms

struct VertexIn {
    @location(0) position: vec3<f32>,
}

//@oxy:group 0 BufferIndexUniforms storage_uniform uniforms Uniforms
//@oxy:group 0 5 storage_uniform instance InstanceUniforms

@vertex
fn shadowVert(v: VertexIn) -> @builtin(position) vec4<f32> {
    return uniforms.shadowMatrix * instance.modelMatrix * vec4<f32>(v.position, 1.0);
}
`

const compositionFragment = `//@oxy:include Light
//@oxy:group 0 BufferIndexLightCount storage_uniform lightCount u32
//@oxy:group 0 BufferIndexLights storage_read lights array<Light>
//@oxy:group 1 TextureIndexColor handle colorMap texture_2d<f32>
//@oxy:group 1 TextureIndexDepth handle shadowMap texture_depth_2d

@fragment
fn compositionFrag(@builtin(position) position: vec4<f32>) -> @location(0) vec4<f32> {
    return vec4<f32>(lights[0].color, 1.0);
}
`

func TestProcessIncludesGeneratedSources(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process(gbufferVertex)
	require.NoError(t, err)

	assert.Contains(t, out, strings.TrimRight(shadertypes.ShaderTypesSource, "\n"))
	assert.Contains(t, out, strings.TrimRight(shadertypes.ShaderBindingsSource, "\n"))
	assert.NotContains(t, out, annotationPrefix)
	assert.Empty(t, pp.Declarations())
}

func TestProcessResolvesSlotNames(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process(compositionFragment)
	require.NoError(t, err)

	assert.Contains(t, out, "@group(0) @binding(6) var<uniform> lightCount: u32;")
	assert.Contains(t, out, "@group(0) @binding(7) var<storage, read> lights: array<Light>;")
	assert.Contains(t, out, "@group(1) @binding(0) var colorMap: texture_2d<f32>;")
	assert.Contains(t, out, "@group(1) @binding(1) var shadowMap: texture_depth_2d;")

	decls := pp.Declarations()
	require.Len(t, decls, 4)
	assert.Equal(t, "BufferIndexLightCount", decls[0].Slot)
	assert.Equal(t, int(shadertypes.BufferIndexLights), *decls[1].Binding)
	assert.Equal(t, AnnotationArg("array<Light>"), decls[1].Args[2])
	assert.Equal(t, int(shadertypes.TextureIndexDepth), *decls[3].Binding)
	assert.Equal(t, 1, *decls[3].Group)
	assert.Equal(t, 5, decls[3].Line)
}

func TestProcessFollowsRenumberedSchema(t *testing.T) {
	s := schema.Default()
	for i, e := range s.Enums {
		if e.Name != schema.EnumBufferIndex {
			continue
		}
		for j, v := range e.Values {
			switch v.Name {
			case "LightCount":
				s.Enums[i].Values[j].Value = 7
			case "Lights":
				s.Enums[i].Values[j].Value = 6
			}
		}
	}
	require.NoError(t, s.Validate())

	out, err := NewPreProcessor(WithSchema(s)).Process(compositionFragment)
	require.NoError(t, err)
	assert.Contains(t, out, "@group(0) @binding(7) var<uniform> lightCount: u32;")
	assert.Contains(t, out, "@group(0) @binding(6) var<storage, read> lights: array<Light>;")
}

func TestProcessIncludesSingleRecord(t *testing.T) {
	out, err := NewPreProcessor().Process("//@oxy:include Light")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "// Light: "))
	assert.Contains(t, out, "struct Light {")
	assert.Contains(t, out, "coneAttenuation: f32, // offset 92")
	assert.True(t, strings.HasSuffix(out, "}"))
	assert.NotContains(t, out, "struct Uniforms")
}

func TestProcessRejectsMalformedAnnotations(t *testing.T) {
	cases := map[string]string{
		"empty":            "//@oxy:",
		"unknown type":     "//@oxy:bogus 1",
		"include arity":    "//@oxy:include",
		"unknown include":  "//@oxy:include Camera",
		"group arity":      "//@oxy:group 0 3 storage_uniform uniforms",
		"bad group":        "//@oxy:group x 3 storage_uniform uniforms Uniforms",
		"unknown slot":     "//@oxy:group 0 BufferIndexBones storage_read bones array<Light>",
		"wrong enum":       "//@oxy:group 0 LightTypeSunlight storage_uniform uniforms Uniforms",
		"unknown space":    "//@oxy:group 0 3 push_constant uniforms Uniforms",
		"unknown struct":   "//@oxy:group 0 3 storage_uniform uniforms Camera",
		"unknown elements": "//@oxy:group 0 7 storage_read lights array<Camera>",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewPreProcessor().Process("fn f() {}\n" + src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestParseStructLayoutsMatchesSchema(t *testing.T) {
	s := schema.Default()
	parsed := ParseStructLayouts(shadertypes.ShaderTypesSource)
	require.Len(t, parsed, len(s.Records))

	for _, r := range s.Records {
		want, err := s.Layout(layout.WGSL, r.Name)
		require.NoError(t, err)
		got, ok := parsed[r.Name]
		require.True(t, ok, r.Name)

		assert.Equal(t, want.Size, got.Size, r.Name)
		assert.Equal(t, want.Align, got.Align, r.Name)
		require.Len(t, got.Fields, len(want.Fields), r.Name)
		for i, f := range want.Fields {
			g := got.Fields[i]
			assert.Equal(t, codegen.WGSLName(f.Name), g.Name)
			assert.Equal(t, f.Type, g.Type, "%s.%s", r.Name, f.Name)
			assert.Equal(t, f.Offset, g.Offset, "%s.%s", r.Name, f.Name)
			assert.Equal(t, f.Size, g.Size, "%s.%s", r.Name, f.Name)
			assert.Equal(t, f.Padding, g.Padding, "%s.%s", r.Name, f.Name)
		}
	}

	light := parsed["Light"]
	coneAngle, ok := light.Field("coneAngle")
	require.True(t, ok)
	assert.Equal(t, uint64(76), coneAngle.Offset)
	assert.Equal(t, uint64(shadertypes.LightSize), light.Size)
}

func TestParseBindingsFromGeneratedSources(t *testing.T) {
	src := shadertypes.ShaderTypesSource + shadertypes.ShaderBindingsSource
	groups, bindings := ParseBindings(src, wgpu.ShaderStageFragment)
	require.Len(t, groups, 2)
	require.Len(t, bindings, 7)

	buffers := groups[0].Entries
	require.Len(t, buffers, 5)
	want := []struct {
		slot shadertypes.BufferIndex
		typ  wgpu.BufferBindingType
		size uint64
	}{
		{shadertypes.BufferIndexUniforms, wgpu.BufferBindingTypeUniform, shadertypes.UniformsSize},
		{shadertypes.BufferIndexColor, wgpu.BufferBindingTypeUniform, 16},
		{shadertypes.BufferIndexModelUniforms, wgpu.BufferBindingTypeUniform, shadertypes.InstanceUniformsSize},
		{shadertypes.BufferIndexLightCount, wgpu.BufferBindingTypeUniform, shadertypes.LightCountSize},
		{shadertypes.BufferIndexLights, wgpu.BufferBindingTypeReadOnlyStorage, shadertypes.LightSize},
	}
	for i, w := range want {
		assert.Equal(t, uint32(w.slot), buffers[i].Binding)
		assert.Equal(t, w.typ, buffers[i].Buffer.Type, w.slot.String())
		assert.Equal(t, w.size, buffers[i].Buffer.MinBindingSize, w.slot.String())
		assert.Equal(t, wgpu.ShaderStageFragment, buffers[i].Visibility)
	}

	textures := groups[1].Entries
	require.Len(t, textures, 2)
	assert.Equal(t, uint32(shadertypes.TextureIndexColor), textures[0].Binding)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, textures[0].Texture.SampleType)
	assert.Equal(t, uint32(shadertypes.TextureIndexDepth), textures[1].Binding)
	assert.Equal(t, wgpu.TextureSampleTypeDepth, textures[1].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, textures[1].Texture.ViewDimension)

	assert.Equal(t, "lights", bindings[4].Var)
	assert.Equal(t, "storage, read", bindings[4].AddressSpace)
	assert.Equal(t, "array<Light>", bindings[4].Type)
}

func TestParseVertexLayouts(t *testing.T) {
	layouts, err := ParseVertexLayouts(shadertypes.ShaderBindingsSource)
	require.NoError(t, err)
	require.Len(t, layouts, len(shadertypes.VertexAttributeValues))

	strides := []uint64{12, 8, 12}
	formats := []wgpu.VertexFormat{wgpu.VertexFormatFloat32x3, wgpu.VertexFormatFloat32x2, wgpu.VertexFormatFloat32x3}
	for i, attr := range shadertypes.VertexAttributeValues {
		assert.Equal(t, strides[i], layouts[i].ArrayStride)
		require.Len(t, layouts[i].Attributes, 1)
		assert.Equal(t, uint32(attr), layouts[i].Attributes[0].ShaderLocation)
		assert.Equal(t, formats[i], layouts[i].Attributes[0].Format)
	}

	_, err = ParseVertexLayouts("struct V {\n @location(0) a: vec3<f32>,\n @location(2) b: vec3<f32>,\n}")
	assert.Error(t, err)

	none, err := ParseVertexLayouts("fn f() {}")
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestLoadShader(t *testing.T) {
	s, err := LoadShader("gbuffer", ShaderTypeVertex, WithSource(gbufferVertex))
	require.NoError(t, err)

	assert.Equal(t, "gbufferVert", s.EntryPoint())
	assert.Equal(t, "gbuffer", s.Module().Label)
	assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)
	assert.Len(t, s.VertexLayouts(), 3)
	assert.Contains(t, s.StructLayouts(), "Uniforms")
	assert.Contains(t, s.StructLayouts(), "VertexOut")
	assert.NotContains(t, s.StructLayouts(), "VertexIn")

	binding, ok := s.BindGroupFromVarName(0, "instance")
	require.True(t, ok)
	assert.Equal(t, int(shadertypes.BufferIndexModelUniforms), binding)
	assert.Equal(t, "uniforms", s.BindGroupVarName(0, int(shadertypes.BufferIndexUniforms)))
	assert.Equal(t, "", s.BindGroupVarName(3, 0))
	assert.Equal(t, wgpu.ShaderStageVertex, s.BindGroupLayoutDescriptor(0).Entries[0].Visibility)
}

func TestLoadShaderFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shadow.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(shadowVertex), 0o644))

	s, err := LoadShader("shadow", ShaderTypeVertex, WithSourceFromPath(path))
	require.NoError(t, err)
	assert.Equal(t, "shadowVert", s.EntryPoint())
	require.Len(t, s.Declarations(), 2)
	assert.Equal(t, "BufferIndexUniforms", s.Declarations()[0].Slot)
	assert.Len(t, s.VertexLayouts(), 1)

	entries := s.BindGroupLayoutDescriptor(0).Entries
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(3), entries[0].Binding)
	assert.Equal(t, uint32(5), entries[1].Binding)
}

func TestNewShaderPanicsWithoutSource(t *testing.T) {
	assert.Panics(t, func() { NewShader("empty", ShaderTypeFragment) })
	assert.Panics(t, func() { NewShader("bad", ShaderTypeFragment, WithSource("//@oxy:include Camera")) })

	_, err := LoadShader("missing", ShaderTypeFragment, WithSourceFromPath(filepath.Join(t.TempDir(), "nope.wgsl")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	s, err := LoadShader("shadow", ShaderTypeVertex, WithSource(shadowVertex))
	require.NoError(t, err)

	spirv, err := Validate(s.Source())
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
			t.Skipf("Skipping: compiler feature not yet implemented: %v", err)
		}
		t.Fatalf("failed to compile shadow shader: %v", err)
	}
	require.GreaterOrEqual(t, len(spirv), 4)
	// SPIR-V magic number 0x07230203, little-endian
	assert.Equal(t, []byte{0x03, 0x02, 0x23, 0x07}, spirv[:4])

	_, err = Validate("fn broken( {")
	assert.ErrorIs(t, err, ErrCompile)
}
