package shadertypes

import (
	"testing"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/codegen"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumValues(t *testing.T) {
	assert.Equal(t, BufferIndex(0), BufferIndexMeshPositions)
	assert.Equal(t, BufferIndex(1), BufferIndexMeshGenerics)
	assert.Equal(t, BufferIndex(2), BufferIndexMeshNormal)
	assert.Equal(t, BufferIndex(3), BufferIndexUniforms)
	assert.Equal(t, BufferIndex(4), BufferIndexColor)
	assert.Equal(t, BufferIndex(5), BufferIndexModelUniforms)
	assert.Equal(t, BufferIndex(6), BufferIndexLightCount)
	assert.Equal(t, BufferIndex(7), BufferIndexLights)

	assert.Equal(t, VertexAttribute(0), VertexAttributePosition)
	assert.Equal(t, VertexAttribute(1), VertexAttributeTexcoord)
	assert.Equal(t, VertexAttribute(2), VertexAttributeNormal)

	assert.Equal(t, TextureIndex(0), TextureIndexColor)
	assert.Equal(t, TextureIndex(1), TextureIndexDepth)

	assert.Equal(t, LightType(0), LightTypeSunlight)
	assert.Equal(t, LightType(1), LightTypeSpotlight)
	assert.Equal(t, LightType(2), LightTypePointlight)
}

func TestEnumValuesMatchSchema(t *testing.T) {
	s := schema.Default()
	check := func(enum string, names []string, values []int32) {
		e, ok := s.Enum(enum)
		require.True(t, ok, enum)
		require.Len(t, names, len(e.Values), enum)
		for i, name := range names {
			v, ok := s.Value(enum, name[len(enum):])
			require.True(t, ok, name)
			assert.Equal(t, v, values[i], name)
		}
	}

	var names []string
	var values []int32
	for _, v := range BufferIndexValues {
		names, values = append(names, v.String()), append(values, int32(v))
	}
	check(schema.EnumBufferIndex, names, values)

	names, values = nil, nil
	for _, v := range VertexAttributeValues {
		names, values = append(names, v.String()), append(values, int32(v))
	}
	check(schema.EnumVertexAttribute, names, values)

	names, values = nil, nil
	for _, v := range TextureIndexValues {
		names, values = append(names, v.String()), append(values, int32(v))
	}
	check(schema.EnumTextureIndex, names, values)

	names, values = nil, nil
	for _, v := range LightTypeValues {
		names, values = append(names, v.String()), append(values, int32(v))
	}
	check("LightType", names, values)
}

func TestEnumStringAndValid(t *testing.T) {
	assert.Equal(t, "BufferIndexLights", BufferIndexLights.String())
	assert.Equal(t, "BufferIndex(9)", BufferIndex(9).String())
	assert.True(t, LightTypePointlight.Valid())
	assert.False(t, LightType(3).Valid())
	assert.False(t, LightType(-1).Valid())
}

func TestRecordSizes(t *testing.T) {
	var u Uniforms
	var i InstanceUniforms
	var l Light
	matrix := int(unsafe.Sizeof(mgl32.Mat4{}))

	assert.Equal(t, 3*matrix, u.Size())
	assert.Equal(t, UniformsSize, u.Size())
	assert.Equal(t, 2*matrix, i.Size())
	assert.Equal(t, InstanceUniformsSize, i.Size())
	assert.Equal(t, LightSize, l.Size())
	assert.Len(t, u.Marshal(), UniformsSize)
	assert.Len(t, i.Marshal(), InstanceUniformsSize)
	assert.Len(t, l.Marshal(), LightSize)
}

func TestHostOffsetsMatchWGSLLayout(t *testing.T) {
	var l Light
	hostLight := map[string]uintptr{
		"type":            unsafe.Offsetof(l.Type),
		"color":           unsafe.Offsetof(l.Color),
		"position":        unsafe.Offsetof(l.Position),
		"target":          unsafe.Offsetof(l.Target),
		"attenuation":     unsafe.Offsetof(l.Attenuation),
		"coneAngle":       unsafe.Offsetof(l.ConeAngle),
		"coneDirection":   unsafe.Offsetof(l.ConeDirection),
		"coneAttenuation": unsafe.Offsetof(l.ConeAttenuation),
	}
	var u Uniforms
	hostUniforms := map[string]uintptr{
		"projectionMatrix": unsafe.Offsetof(u.ProjectionMatrix),
		"viewMatrix":       unsafe.Offsetof(u.ViewMatrix),
		"shadowMatrix":     unsafe.Offsetof(u.ShadowMatrix),
	}
	var i InstanceUniforms
	hostInstance := map[string]uintptr{
		"modelMatrix":  unsafe.Offsetof(i.ModelMatrix),
		"normalMatrix": unsafe.Offsetof(i.NormalMatrix),
	}

	for name, host := range map[string]map[string]uintptr{
		"Light":            hostLight,
		"Uniforms":         hostUniforms,
		"InstanceUniforms": hostInstance,
	} {
		rec, err := schema.Default().Layout(layout.WGSL, name)
		require.NoError(t, err)
		require.Len(t, host, len(rec.Fields), name)
		for _, f := range rec.Fields {
			assert.Equal(t, f.Offset, uint64(host[f.Name]), "%s.%s", name, f.Name)
		}
	}
}

func TestLightMarshalWGSLOffsets(t *testing.T) {
	l := Light{
		Type:            LightTypeSpotlight,
		Color:           mgl32.Vec3{1, 0.5, 0.25},
		Position:        mgl32.Vec3{1, 2, 3},
		Target:          mgl32.Vec3{4, 5, 6},
		Attenuation:     mgl32.Vec3{1, 0, 0},
		ConeAngle:       0.7,
		ConeDirection:   mgl32.Vec3{0, -1, 0},
		ConeAttenuation: 8,
	}
	dec := layout.NewDecoder(l.Marshal())

	assert.Equal(t, int32(1), dec.Int32(0))
	for _, pad := range []uint64{4, 8, 12, 28, 44, 60} {
		assert.Zero(t, dec.Uint32(pad), "padding at %d", pad)
	}
	assert.Equal(t, float32(0.5), dec.Float32(20))
	assert.Equal(t, float32(3), dec.Float32(40))
	assert.Equal(t, float32(6), dec.Float32(56))
	assert.Equal(t, float32(0.7), dec.Float32(76))
	assert.Equal(t, float32(-1), dec.Float32(84))
	assert.Equal(t, float32(8), dec.Float32(92))
}

func TestLightMarshalMSLOffsets(t *testing.T) {
	l := Light{
		Type:            LightTypePointlight,
		Attenuation:     mgl32.Vec3{2, 5, 9},
		ConeAngle:       0.5,
		ConeDirection:   mgl32.Vec3{0, 0, 1},
		ConeAttenuation: 3,
	}
	b, err := l.MarshalFor(layout.MSL)
	require.NoError(t, err)
	require.Len(t, b, 128)

	dec := layout.NewDecoder(b)
	assert.Equal(t, int32(2), dec.Int32(0))
	assert.Equal(t, float32(9), dec.Float32(72))
	assert.Zero(t, dec.Uint32(76))
	assert.Equal(t, float32(0.5), dec.Float32(80))
	assert.Equal(t, float32(1), dec.Float32(104))
	assert.Equal(t, float32(3), dec.Float32(112))
}

func TestUniformsRoundTrip(t *testing.T) {
	u := Uniforms{
		ProjectionMatrix: mgl32.Perspective(1, 1.5, 0.1, 100),
		ViewMatrix:       mgl32.LookAtV(mgl32.Vec3{0, 2, -4}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		ShadowMatrix:     mgl32.Ortho(-8, 8, -8, 8, 0.1, 16),
	}
	got, err := UnmarshalUniforms(u.Marshal())
	require.NoError(t, err)
	assert.Equal(t, u, got)

	mslBytes, err := u.MarshalFor(layout.MSL)
	require.NoError(t, err)
	assert.Equal(t, u.Marshal(), mslBytes)

	_, err = UnmarshalUniforms(make([]byte, 10))
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestInstanceUniformsRoundTrip(t *testing.T) {
	model := mgl32.Translate3D(1, 1.5, -1).Mul4(mgl32.Scale3D(1, 3, 1))
	i := InstanceUniforms{ModelMatrix: model, NormalMatrix: model.Inv().Transpose()}
	got, err := UnmarshalInstanceUniforms(i.Marshal())
	require.NoError(t, err)
	assert.Equal(t, i, got)

	_, err = UnmarshalInstanceUniforms(nil)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestLightCountAndLightsRoundTrip(t *testing.T) {
	lights := []Light{
		{
			Type:        LightTypeSunlight,
			Color:       mgl32.Vec3{1, 1, 1},
			Position:    mgl32.Vec3{1, 2, -2},
			Target:      mgl32.Vec3{0, 0, 0},
			Attenuation: mgl32.Vec3{1, 0, 0},
		},
		{
			Type:            LightTypeSpotlight,
			Color:           mgl32.Vec3{1, 0, 1},
			Position:        mgl32.Vec3{0.37, 0.5, 2.43},
			Target:          mgl32.Vec3{0, 0, 1},
			Attenuation:     mgl32.Vec3{2, 5, 9},
			ConeAngle:       0.6981317,
			ConeDirection:   mgl32.Vec3{0, -1, 0},
			ConeAttenuation: 12,
		},
	}

	countBuf := MarshalLightCount(uint32(len(lights)))
	lightsBuf := MarshalLights(lights)
	require.Len(t, countBuf, LightCountSize)
	require.Len(t, lightsBuf, 2*LightSize)

	count, err := UnmarshalLightCount(countBuf)
	require.NoError(t, err)
	require.Equal(t, uint32(2), count)

	got, err := UnmarshalLights(count, lightsBuf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range lights {
		assert.Equal(t, lights[i].Type, got[i].Type)
		assert.Equal(t, lights[i].Color, got[i].Color)
		assert.Equal(t, lights[i].Position, got[i].Position)
		assert.Equal(t, lights[i].Target, got[i].Target)
		assert.Equal(t, lights[i].Attenuation, got[i].Attenuation)
		assert.Equal(t, lights[i].ConeAngle, got[i].ConeAngle)
		assert.Equal(t, lights[i].ConeDirection, got[i].ConeDirection)
		assert.Equal(t, lights[i].ConeAttenuation, got[i].ConeAttenuation)
	}

	_, err = UnmarshalLights(3, lightsBuf)
	assert.ErrorIs(t, err, ErrShortBuffer)
	_, err = UnmarshalLightCount([]byte{1})
	assert.ErrorIs(t, err, ErrShortBuffer)
	assert.Empty(t, MarshalLights(nil))
}

func TestLightTypeRoundTrip(t *testing.T) {
	for _, typ := range []LightType{LightTypeSunlight, LightTypeSpotlight, LightTypePointlight} {
		l := Light{Type: typ}
		wgsl := l.Marshal()
		got, err := UnmarshalLights(1, wgsl)
		require.NoError(t, err)
		assert.Equal(t, typ, got[0].Type)
		assert.Equal(t, int32(typ), layout.NewDecoder(wgsl).Int32(0))

		msl, err := l.MarshalFor(layout.MSL)
		require.NoError(t, err)
		assert.Equal(t, int32(typ), layout.NewDecoder(msl).Int32(0))
	}

	got, err := UnmarshalLights(1, (&Light{Type: LightType(42)}).Marshal())
	require.NoError(t, err)
	assert.Equal(t, LightType(42), got[0].Type)
}

func TestGeneratedSourcesAreUpToDate(t *testing.T) {
	gen := codegen.NewGenerator()
	artifacts, err := gen.Artifacts(schema.Default(), codegen.Config{
		GoOut:       "shader_types_gen.go",
		WGSLOut:     "assets/shader_types.wgsl",
		WGSLBindOut: "assets/shader_bindings.wgsl",
		MSLOut:      "assets/ShaderTypes.h",
	})
	require.NoError(t, err)
	require.Len(t, artifacts, 4)
	assert.NoError(t, gen.Check(artifacts), "run go run ./cmd/shadergen to regenerate")

	for _, a := range artifacts {
		switch a.Kind {
		case codegen.ArtifactWGSL:
			assert.Equal(t, string(a.Content), ShaderTypesSource)
		case codegen.ArtifactWGSLBindings:
			assert.Equal(t, string(a.Content), ShaderBindingsSource)
		case codegen.ArtifactMSL:
			assert.Equal(t, string(a.Content), MetalHeaderSource)
		}
	}
}
