package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgslPrimitiveLayoutMap maps WGSL primitive, vector and matrix type names to their
// size and alignment per the WGSL specification's memory layout rules.
var wgslPrimitiveLayoutMap = map[string]wgslTypeLayout{
	"f32":  {4, 4},
	"i32":  {4, 4},
	"u32":  {4, 4},
	"bool": {4, 4},

	"vec2<f32>": {8, 8},
	"vec2f":     {8, 8},
	"vec3<f32>": {12, 16},
	"vec3f":     {12, 16},
	"vec4<f32>": {16, 16},
	"vec4f":     {16, 16},

	"vec2<i32>": {8, 8},
	"vec2i":     {8, 8},
	"vec3<i32>": {12, 16},
	"vec3i":     {12, 16},
	"vec4<i32>": {16, 16},
	"vec4i":     {16, 16},

	"vec2<u32>": {8, 8},
	"vec2u":     {8, 8},
	"vec3<u32>": {12, 16},
	"vec3u":     {12, 16},
	"vec4<u32>": {16, 16},
	"vec4u":     {16, 16},

	"mat3x3<f32>": {48, 16},
	"mat3x3f":     {48, 16},
	"mat4x4<f32>": {64, 16},
	"mat4x4f":     {64, 16},

	"atomic<u32>": {4, 4},
	"atomic<i32>": {4, 4},
}

// canonicalTypes maps WGSL spellings to the canonical layout types used by the schema.
var canonicalTypes = map[string]layout.Type{
	"i32":         layout.I32,
	"u32":         layout.U32,
	"f32":         layout.F32,
	"vec2<f32>":   layout.Vec2F,
	"vec2f":       layout.Vec2F,
	"vec3<f32>":   layout.Vec3F,
	"vec3f":       layout.Vec3F,
	"vec4<f32>":   layout.Vec4F,
	"vec4f":       layout.Vec4F,
	"mat4x4<f32>": layout.Mat4x4F,
	"mat4x4f":     layout.Mat4x4F,
}

// resolveTypeLayout returns the size and alignment of a WGSL type, looking up primitives,
// then previously resolved structs, then recursing into array<T> and array<T, N>. A
// runtime-sized array resolves to one element stride.
//
// Parameters:
//   - typeName: the WGSL type name
//   - knownTypes: previously resolved struct layouts
//
// Returns:
//   - wgslTypeLayout: the size and alignment
//   - bool: false if the type cannot be resolved
func resolveTypeLayout(typeName string, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if l, ok := wgslPrimitiveLayoutMap[typeName]; ok {
		return l, true
	}
	if l, ok := knownTypes[typeName]; ok {
		return l, true
	}

	if strings.HasPrefix(typeName, "array<") && strings.HasSuffix(typeName, ">") {
		inner := typeName[6 : len(typeName)-1]
		parts := strings.SplitN(inner, ",", 2)
		elem, ok := resolveTypeLayout(strings.TrimSpace(parts[0]), knownTypes)
		if !ok {
			return wgslTypeLayout{}, false
		}
		stride := layout.RoundUp(elem.align, elem.size)
		if len(parts) == 2 {
			count, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
			if err != nil {
				return wgslTypeLayout{}, false
			}
			return wgslTypeLayout{count * stride, elem.align}, true
		}
		return wgslTypeLayout{stride, elem.align}, true
	}

	return wgslTypeLayout{}, false
}

// structRecord lays out one parsed struct, field by field.
//
// Parameters:
//   - ps: the parsed struct
//   - knownTypes: previously resolved struct layouts
//
// Returns:
//   - layout.Record: the record with per-field offsets
//   - bool: false if any field type cannot be resolved
func structRecord(ps parsedStruct, knownTypes map[string]wgslTypeLayout) (layout.Record, bool) {
	rec := layout.Record{
		Name:  ps.name,
		Rules: layout.WGSL.Name(),
		Align: 1,
	}
	offset := uint64(0)
	for _, field := range ps.fields {
		if field.isBuiltin {
			continue
		}
		fl, ok := resolveTypeLayout(field.typeName, knownTypes)
		if !ok {
			return layout.Record{}, false
		}
		t, ok := canonicalTypes[field.typeName]
		if !ok {
			t = layout.Type(field.typeName)
		}
		aligned := layout.RoundUp(fl.align, offset)
		rec.Fields = append(rec.Fields, layout.FieldLayout{
			Field:   layout.Field{Name: field.name, Type: t},
			Offset:  aligned,
			Size:    fl.size,
			Align:   fl.align,
			Padding: aligned - offset,
		})
		offset = aligned + fl.size
		rec.Align = max(rec.Align, fl.align)
	}
	rec.Size = layout.RoundUp(rec.Align, offset)
	rec.TrailingPadding = rec.Size - offset
	return rec, true
}

// computeStructLayouts resolves the size and alignment of every struct, iterating until no
// further struct can be resolved so that structs may reference structs declared after them.
//
// Parameters:
//   - structs: the parsed structs
//
// Returns:
//   - map[string]wgslTypeLayout: resolved layouts keyed by struct name
func computeStructLayouts(structs []parsedStruct) map[string]wgslTypeLayout {
	resolved := make(map[string]wgslTypeLayout, len(structs))
	remaining := append([]parsedStruct(nil), structs...)

	for {
		progress := false
		next := remaining[:0]
		for _, ps := range remaining {
			if rec, ok := structRecord(ps, resolved); ok {
				resolved[ps.name] = wgslTypeLayout{rec.Size, rec.Align}
				progress = true
			} else {
				next = append(next, ps)
			}
		}
		remaining = next
		if !progress || len(remaining) == 0 {
			break
		}
	}
	return resolved
}

// classifyResource determines the wgpu.BindGroupLayoutEntry type for a WGSL resource
// declaration based on its address space and type name.
//
// Parameters:
//   - binding: the binding index
//   - visibility: the shader stage visibility flags
//   - addressSpace: the var<> address space (empty for handle types)
//   - typeName: the WGSL type name
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the classified layout entry
func classifyResource(binding uint32, visibility wgpu.ShaderStage, addressSpace, typeName string) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}

	if addressSpace != "" {
		switch {
		case addressSpace == "uniform":
			entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		case strings.HasPrefix(addressSpace, "storage"):
			if strings.Contains(addressSpace, "read_write") {
				entry.Buffer.Type = wgpu.BufferBindingTypeStorage
			} else {
				entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
			}
		}
		return entry
	}

	switch {
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case typeName == "sampler_comparison":
		entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
	case strings.HasPrefix(typeName, "texture_depth_"):
		entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
		if info, ok := wgslSampledTextureMap[typeName]; ok {
			entry.Texture.ViewDimension = info.viewDimension
			entry.Texture.Multisampled = info.multisampled
		}
	case strings.HasPrefix(typeName, "texture_"):
		base, param := splitTypeParams(typeName)
		if info, ok := wgslSampledTextureMap[base]; ok {
			entry.Texture.ViewDimension = info.viewDimension
			entry.Texture.Multisampled = info.multisampled
		}
		if st, ok := wgslSampleTypeMap[param]; ok {
			entry.Texture.SampleType = st
		}
	}
	return entry
}

// splitTypeParams separates "texture_2d<f32>" into "texture_2d" and "f32".
func splitTypeParams(typeName string) (base string, params string) {
	before, after, ok := strings.Cut(typeName, "<")
	if !ok {
		return typeName, ""
	}
	return before, strings.TrimSpace(strings.TrimSuffix(after, ">"))
}

// stripComments removes both block comments and line comments from WGSL source.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes all // line comments from WGSL source
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes all /* */ block comments from WGSL source, including nested ones.
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			if source[i] == '/' && source[i+1] == '*' {
				depth++
				i++
				continue
			}
			if source[i] == '*' && source[i+1] == '/' {
				if depth > 0 {
					depth--
				}
				i++
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}

// isVertexInputStruct returns true if the struct has at least one @location field
// and no @builtin fields, indicating it is a vertex input rather than an output.
func isVertexInputStruct(ps parsedStruct) bool {
	hasLocation := false
	for _, f := range ps.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}

// buildVertexBufferLayouts converts a vertex input struct into one single-attribute buffer
// layout per location.
func buildVertexBufferLayouts(ps parsedStruct) ([]wgpu.VertexBufferLayout, error) {
	out := make([]wgpu.VertexBufferLayout, len(ps.fields))
	seen := make([]bool, len(ps.fields))
	for _, f := range ps.fields {
		info, ok := wgslVertexFormatMap[f.typeName]
		if !ok {
			return nil, fmt.Errorf("%s.%s: no vertex format for %q", ps.name, f.name, f.typeName)
		}
		if f.location < 0 || f.location >= len(out) || seen[f.location] {
			return nil, fmt.Errorf("%s.%s: location %d is not contiguous from 0", ps.name, f.name, f.location)
		}
		seen[f.location] = true
		out[f.location] = wgpu.VertexBufferLayout{
			ArrayStride: info.size,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{{
				Format:         info.format,
				Offset:         0,
				ShaderLocation: uint32(f.location),
			}},
		}
	}
	return out, nil
}

// splitAtTopLevelCommas splits a string at commas that are not nested inside angle brackets
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
