package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lightFields = []Field{
	{"type", I32},
	{"color", Vec3F},
	{"position", Vec3F},
	{"target", Vec3F},
	{"attenuation", Vec3F},
	{"coneAngle", F32},
	{"coneDirection", Vec3F},
	{"coneAttenuation", F32},
}

func offsets(r Record) map[string]uint64 {
	out := make(map[string]uint64, len(r.Fields))
	for _, f := range r.Fields {
		out[f.Name] = f.Offset
	}
	return out
}

func TestComputeLightWGSL(t *testing.T) {
	rec, err := Compute(WGSL, "Light", lightFields)
	require.NoError(t, err)

	assert.Equal(t, map[string]uint64{
		"type":            0,
		"color":           16,
		"position":        32,
		"target":          48,
		"attenuation":     64,
		"coneAngle":       76,
		"coneDirection":   80,
		"coneAttenuation": 92,
	}, offsets(rec))
	assert.Equal(t, uint64(96), rec.Size)
	assert.Equal(t, uint64(16), rec.Align)
	assert.Equal(t, uint64(0), rec.TrailingPadding)

	color, ok := rec.Field("color")
	require.True(t, ok)
	assert.Equal(t, uint64(12), color.Padding)
}

func TestComputeLightMSL(t *testing.T) {
	rec, err := Compute(MSL, "Light", lightFields)
	require.NoError(t, err)

	assert.Equal(t, map[string]uint64{
		"type":            0,
		"color":           16,
		"position":        32,
		"target":          48,
		"attenuation":     64,
		"coneAngle":       80,
		"coneDirection":   96,
		"coneAttenuation": 112,
	}, offsets(rec))
	assert.Equal(t, uint64(128), rec.Size)
	assert.Equal(t, uint64(12), rec.TrailingPadding)
}

func TestComputeMatrixRecords(t *testing.T) {
	for _, rules := range []Rules{WGSL, MSL} {
		t.Run(rules.Name(), func(t *testing.T) {
			uniforms, err := Compute(rules, "Uniforms", []Field{
				{"projectionMatrix", Mat4x4F},
				{"viewMatrix", Mat4x4F},
				{"shadowMatrix", Mat4x4F},
			})
			require.NoError(t, err)
			assert.Equal(t, uint64(3*64), uniforms.Size)

			instance, err := Compute(rules, "InstanceUniforms", []Field{
				{"modelMatrix", Mat4x4F},
				{"normalMatrix", Mat4x4F},
			})
			require.NoError(t, err)
			assert.Equal(t, uint64(2*64), instance.Size)
			for _, f := range instance.Fields {
				assert.Zero(t, f.Padding)
			}
		})
	}
}

func TestComputeUnknownType(t *testing.T) {
	_, err := Compute(WGSL, "Broken", []Field{{"m", Type("mat3x3f")}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownType))
	assert.Contains(t, err.Error(), "Broken.m")
}

func TestRoundUp(t *testing.T) {
	assert.Equal(t, uint64(0), RoundUp(16, 0))
	assert.Equal(t, uint64(16), RoundUp(16, 4))
	assert.Equal(t, uint64(256), RoundUp(256, 192))
	assert.Equal(t, uint64(7), RoundUp(0, 7))
}

func TestEncoderDecoder(t *testing.T) {
	enc := NewEncoder(24)
	enc.PutInt32(0, -2)
	enc.PutUint32(4, 7)
	enc.PutFloats(8, []float32{1.5, -2.25, 3})

	dec := NewDecoder(enc.Bytes())
	assert.Equal(t, 24, dec.Len())
	assert.Equal(t, int32(-2), dec.Int32(0))
	assert.Equal(t, uint32(7), dec.Uint32(4))
	out := make([]float32, 3)
	dec.Floats(8, out)
	assert.Equal(t, []float32{1.5, -2.25, 3}, out)
	assert.Equal(t, float32(0), dec.Float32(20))
}

func TestTypeComponents(t *testing.T) {
	assert.Equal(t, 1, I32.Components())
	assert.Equal(t, 3, Vec3F.Components())
	assert.Equal(t, 16, Mat4x4F.Components())
	assert.Equal(t, 0, Type("bogus").Components())
	assert.True(t, Vec3F.IsFloat())
	assert.False(t, U32.IsFloat())
	assert.True(t, IsBuiltin(Vec4F))
	assert.False(t, IsBuiltin("Light"))
}
