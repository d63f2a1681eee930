package shadertypes

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
)

// ErrShortBuffer is returned when a buffer is too small to hold the records being read.
var ErrShortBuffer = errors.New("shadertypes: buffer too short")

// ShaderTypesSource is the generated WGSL declaration of every enum constant and record.
// Matches the Go declarations in this package exactly (see shader_types_gen.go).
//
//go:embed assets/shader_types.wgsl
var ShaderTypesSource string

// ShaderBindingsSource is the generated WGSL vertex input struct and @group/@binding
// declarations. It references the records of ShaderTypesSource, which must precede it.
//
//go:embed assets/shader_bindings.wgsl
var ShaderBindingsSource string

// MetalHeaderSource is the generated header shared by Metal shaders and Apple host code.
// Its record offsets follow layout.MSL, not the Go structs in this package.
//
//go:embed assets/ShaderTypes.h
var MetalHeaderSource string

// LightCountSize is the size of the u32 light count bound at BufferIndexLightCount.
const LightCountSize = 4

var (
	layoutMu    sync.Mutex
	layoutCache = map[string]layout.Record{}
	contract    = sync.OnceValue(schema.Default)
)

// recordLayout returns the layout of a record of the embedded schema under rules.
// The embedded schema is validated by tests, so a failure here is a programmer error.
func recordLayout(rules layout.Rules, name string) layout.Record {
	key := rules.Name() + "/" + name
	layoutMu.Lock()
	defer layoutMu.Unlock()
	if rec, ok := layoutCache[key]; ok {
		return rec
	}
	rec, err := contract().Layout(rules, name)
	if err != nil {
		panic(fmt.Sprintf("shadertypes: %v", err))
	}
	layoutCache[key] = rec
	return rec
}

func offsetOf(rec layout.Record, field string) uint64 {
	f, ok := rec.Field(field)
	if !ok {
		panic(fmt.Sprintf("shadertypes: record %s has no field %s", rec.Name, field))
	}
	return f.Offset
}

// Size returns the size of the Uniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (192)
func (u *Uniforms) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the Uniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 192-byte buffer ready for GPU upload
func (u *Uniforms) Marshal() []byte {
	b, _ := u.MarshalFor(layout.WGSL)
	return b
}

// MarshalFor serializes the Uniforms struct using the layout of the given target.
//
// Parameters:
//   - rules: the target environment
//
// Returns:
//   - []byte: the encoded record
//   - error: always nil for the embedded schema; kept for symmetry with Light.MarshalFor
func (u *Uniforms) MarshalFor(rules layout.Rules) ([]byte, error) {
	rec := recordLayout(rules, "Uniforms")
	enc := layout.NewEncoder(rec.Size)
	enc.PutFloats(offsetOf(rec, "projectionMatrix"), u.ProjectionMatrix[:]) // offset   0: projection
	enc.PutFloats(offsetOf(rec, "viewMatrix"), u.ViewMatrix[:])             // offset  64: view
	enc.PutFloats(offsetOf(rec, "shadowMatrix"), u.ShadowMatrix[:])         // offset 128: shadow
	return enc.Bytes(), nil
}

// UnmarshalUniforms reads a WGSL-layout Uniforms record.
//
// Parameters:
//   - data: at least UniformsSize bytes
//
// Returns:
//   - Uniforms: the decoded record
//   - error: ErrShortBuffer (wrapped) if data is too small
func UnmarshalUniforms(data []byte) (Uniforms, error) {
	if len(data) < UniformsSize {
		return Uniforms{}, fmt.Errorf("uniforms: need %d bytes, have %d: %w", UniformsSize, len(data), ErrShortBuffer)
	}
	rec := recordLayout(layout.WGSL, "Uniforms")
	dec := layout.NewDecoder(data)
	var u Uniforms
	dec.Floats(offsetOf(rec, "projectionMatrix"), u.ProjectionMatrix[:])
	dec.Floats(offsetOf(rec, "viewMatrix"), u.ViewMatrix[:])
	dec.Floats(offsetOf(rec, "shadowMatrix"), u.ShadowMatrix[:])
	return u, nil
}

// Size returns the size of the InstanceUniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (i *InstanceUniforms) Size() int {
	return int(unsafe.Sizeof(*i))
}

// Marshal serializes the InstanceUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (i *InstanceUniforms) Marshal() []byte {
	b, _ := i.MarshalFor(layout.WGSL)
	return b
}

// MarshalFor serializes the InstanceUniforms struct using the layout of the given target.
//
// Parameters:
//   - rules: the target environment
//
// Returns:
//   - []byte: the encoded record
//   - error: always nil for the embedded schema
func (i *InstanceUniforms) MarshalFor(rules layout.Rules) ([]byte, error) {
	rec := recordLayout(rules, "InstanceUniforms")
	enc := layout.NewEncoder(rec.Size)
	enc.PutFloats(offsetOf(rec, "modelMatrix"), i.ModelMatrix[:])   // offset  0: model
	enc.PutFloats(offsetOf(rec, "normalMatrix"), i.NormalMatrix[:]) // offset 64: normal
	return enc.Bytes(), nil
}

// UnmarshalInstanceUniforms reads a WGSL-layout InstanceUniforms record.
//
// Parameters:
//   - data: at least InstanceUniformsSize bytes
//
// Returns:
//   - InstanceUniforms: the decoded record
//   - error: ErrShortBuffer (wrapped) if data is too small
func UnmarshalInstanceUniforms(data []byte) (InstanceUniforms, error) {
	if len(data) < InstanceUniformsSize {
		return InstanceUniforms{}, fmt.Errorf("instance uniforms: need %d bytes, have %d: %w", InstanceUniformsSize, len(data), ErrShortBuffer)
	}
	rec := recordLayout(layout.WGSL, "InstanceUniforms")
	dec := layout.NewDecoder(data)
	var i InstanceUniforms
	dec.Floats(offsetOf(rec, "modelMatrix"), i.ModelMatrix[:])
	dec.Floats(offsetOf(rec, "normalMatrix"), i.NormalMatrix[:])
	return i, nil
}

// Size returns the size of the Light struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (l *Light) Size() int {
	return int(unsafe.Sizeof(*l))
}

// Marshal serializes the Light struct into a byte buffer suitable for GPU upload.
// Padding bytes are always zero.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload
func (l *Light) Marshal() []byte {
	b, _ := l.MarshalFor(layout.WGSL)
	return b
}

// MarshalFor serializes the Light struct using the layout of the given target. Under
// layout.MSL each vector_float3 occupies 16 bytes and the record is 128 bytes.
//
// Parameters:
//   - rules: the target environment
//
// Returns:
//   - []byte: the encoded record
//   - error: always nil for the embedded schema
func (l *Light) MarshalFor(rules layout.Rules) ([]byte, error) {
	rec := recordLayout(rules, "Light")
	enc := layout.NewEncoder(rec.Size)
	l.encode(enc, rec, 0)
	return enc.Bytes(), nil
}

func (l *Light) encode(enc *layout.Encoder, rec layout.Record, base uint64) {
	enc.PutInt32(base+offsetOf(rec, "type"), int32(l.Type))
	enc.PutFloats(base+offsetOf(rec, "color"), l.Color[:])
	enc.PutFloats(base+offsetOf(rec, "position"), l.Position[:])
	enc.PutFloats(base+offsetOf(rec, "target"), l.Target[:])
	enc.PutFloats(base+offsetOf(rec, "attenuation"), l.Attenuation[:])
	enc.PutFloat32(base+offsetOf(rec, "coneAngle"), l.ConeAngle)
	enc.PutFloats(base+offsetOf(rec, "coneDirection"), l.ConeDirection[:])
	enc.PutFloat32(base+offsetOf(rec, "coneAttenuation"), l.ConeAttenuation)
}

func decodeLight(dec *layout.Decoder, rec layout.Record, base uint64) Light {
	var l Light
	l.Type = LightType(dec.Int32(base + offsetOf(rec, "type")))
	dec.Floats(base+offsetOf(rec, "color"), l.Color[:])
	dec.Floats(base+offsetOf(rec, "position"), l.Position[:])
	dec.Floats(base+offsetOf(rec, "target"), l.Target[:])
	dec.Floats(base+offsetOf(rec, "attenuation"), l.Attenuation[:])
	l.ConeAngle = dec.Float32(base + offsetOf(rec, "coneAngle"))
	dec.Floats(base+offsetOf(rec, "coneDirection"), l.ConeDirection[:])
	l.ConeAttenuation = dec.Float32(base + offsetOf(rec, "coneAttenuation"))
	return l
}

// MarshalLightCount encodes the number of lights bound at BufferIndexLightCount.
//
// Parameters:
//   - n: the number of Light records in the Lights buffer
//
// Returns:
//   - []byte: 4-byte little-endian u32
func MarshalLightCount(n uint32) []byte {
	enc := layout.NewEncoder(LightCountSize)
	enc.PutUint32(0, n)
	return enc.Bytes()
}

// UnmarshalLightCount decodes the u32 light count.
//
// Parameters:
//   - data: at least LightCountSize bytes
//
// Returns:
//   - uint32: the light count
//   - error: ErrShortBuffer (wrapped) if data is too small
func UnmarshalLightCount(data []byte) (uint32, error) {
	if len(data) < LightCountSize {
		return 0, fmt.Errorf("light count: need %d bytes, have %d: %w", LightCountSize, len(data), ErrShortBuffer)
	}
	return layout.NewDecoder(data).Uint32(0), nil
}

// MarshalLights packs lights contiguously for the BufferIndexLights storage buffer.
// The record stride is LightSize.
//
// Parameters:
//   - lights: the active lights
//
// Returns:
//   - []byte: len(lights) * LightSize bytes
func MarshalLights(lights []Light) []byte {
	rec := recordLayout(layout.WGSL, "Light")
	enc := layout.NewEncoder(rec.Size * uint64(len(lights)))
	for i := range lights {
		lights[i].encode(enc, rec, uint64(i)*rec.Size)
	}
	return enc.Bytes()
}

// UnmarshalLights reads count lights from a WGSL-layout Lights buffer, the way a shader
// iterating lightCount times over the array would.
//
// Parameters:
//   - count: the number of records to read
//   - data: the Lights buffer contents
//
// Returns:
//   - []Light: the decoded lights
//   - error: ErrShortBuffer (wrapped) if data holds fewer than count records
func UnmarshalLights(count uint32, data []byte) ([]Light, error) {
	rec := recordLayout(layout.WGSL, "Light")
	need := uint64(count) * rec.Size
	if uint64(len(data)) < need {
		return nil, fmt.Errorf("lights: need %d bytes for %d records, have %d: %w", need, count, len(data), ErrShortBuffer)
	}
	dec := layout.NewDecoder(data)
	out := make([]Light, count)
	for i := range out {
		out[i] = decodeLight(dec, rec, uint64(i)*rec.Size)
	}
	return out, nil
}
