package codegen

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
)

// wgslTypes maps canonical types to their WGSL spelling.
var wgslTypes = map[layout.Type]string{
	layout.I32:     "i32",
	layout.U32:     "u32",
	layout.F32:     "f32",
	layout.Vec2F:   "vec2<f32>",
	layout.Vec3F:   "vec3<f32>",
	layout.Vec4F:   "vec4<f32>",
	layout.Mat4x4F: "mat4x4<f32>",
}

// wgslType returns the WGSL type of a field or binding type name. Enum-typed members are
// emitted as i32; records keep their own name.
func wgslType(s *schema.Schema, typeName string) string {
	if t, ok := s.Resolve(typeName); ok {
		return wgslTypes[t]
	}
	return typeName
}

// WGSL emits the shared type declarations: one const per enumeration variant and one struct
// per record, annotated with the byte offset of each member.
//
// Parameters:
//   - s: the schema
//
// Returns:
//   - []byte: WGSL source
//   - error: a layout error
func (g *Generator) WGSL(s *schema.Schema) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// "+generatedHeader+"\n", g.source)

	for _, e := range s.Enums {
		fmt.Fprintf(&buf, "\n// %s: %s\n", e.Name, docLine(e.Doc))
		for _, v := range sortedVariants(e) {
			fmt.Fprintf(&buf, "const %s: i32 = %d;\n", e.Qualified(v), v.Value)
		}
	}

	for _, r := range s.Records {
		rec, err := s.Layout(layout.WGSL, r.Name)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "\n// %s: %s\n", r.Name, docLine(r.Doc))
		fmt.Fprintf(&buf, "// size %d, align %d\n", rec.Size, rec.Align)
		fmt.Fprintf(&buf, "struct %s {\n", r.Name)
		for i, fl := range rec.Fields {
			fmt.Fprintf(&buf, "    %s: %s, // offset %d\n", WGSLName(fl.Name), wgslType(s, r.Fields[i].Type), fl.Offset)
		}
		buf.WriteString("}\n")
	}

	g.logger.Debug("generated WGSL types", "bytes", buf.Len())
	return buf.Bytes(), nil
}

// WGSLBindings emits the vertex input struct and every @group/@binding declaration. The
// binding number of a buffer is its BufferIndex value and the binding number of a texture is
// its TextureIndex value, so slot numbers are never written twice.
//
// Parameters:
//   - s: the schema
//
// Returns:
//   - []byte: WGSL source that expects the WGSL types artifact to be included first
//   - error: an unknown slot reference
func (g *Generator) WGSLBindings(s *schema.Schema) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// "+generatedHeader+"\n", g.source)

	if len(s.VertexBuffers) > 0 {
		attrs, _ := s.Enum(schema.EnumVertexAttribute)
		vbs := slices.Clone(s.VertexBuffers)
		slices.SortFunc(vbs, func(a, b schema.VertexBuffer) int {
			av, _ := s.Value(schema.EnumVertexAttribute, a.Attribute)
			bv, _ := s.Value(schema.EnumVertexAttribute, b.Attribute)
			return int(av - bv)
		})
		buf.WriteString("\nstruct VertexIn {\n")
		for _, vb := range vbs {
			v, ok := attrs.Variant(vb.Attribute)
			if !ok {
				return nil, fmt.Errorf("vertex_buffers: attribute %q: %w", vb.Attribute, schema.ErrUnknownReference)
			}
			fmt.Fprintf(&buf, "    @location(%d) %s: %s,\n", v.Value, lowerFirst(v.Name), wgslTypes[layout.Type(vb.Format)])
		}
		buf.WriteString("}\n")
	}

	if len(s.Bindings) > 0 {
		buffers, _ := s.Enum(schema.EnumBufferIndex)
		bindings := slices.Clone(s.Bindings)
		slices.SortFunc(bindings, func(a, b schema.Binding) int {
			av, _ := s.Value(schema.EnumBufferIndex, a.Slot)
			bv, _ := s.Value(schema.EnumBufferIndex, b.Slot)
			return int(av - bv)
		})
		buf.WriteString("\n")
		for _, b := range bindings {
			v, ok := buffers.Variant(b.Slot)
			if !ok {
				return nil, fmt.Errorf("bindings: slot %q: %w", b.Slot, schema.ErrUnknownReference)
			}
			space := "uniform"
			if b.Space == schema.SpaceStorageRead {
				space = "storage, read"
			}
			typ := wgslType(s, b.Type)
			if b.Array {
				typ = "array<" + typ + ">"
			}
			fmt.Fprintf(&buf, "@group(%d) @binding(%d) var<%s> %s: %s; // %s\n",
				s.BufferGroup, v.Value, space, b.Var, typ, buffers.Qualified(v))
		}
	}

	if len(s.Textures) > 0 {
		textures, _ := s.Enum(schema.EnumTextureIndex)
		texs := slices.Clone(s.Textures)
		slices.SortFunc(texs, func(a, b schema.Texture) int {
			av, _ := s.Value(schema.EnumTextureIndex, a.Slot)
			bv, _ := s.Value(schema.EnumTextureIndex, b.Slot)
			return int(av - bv)
		})
		buf.WriteString("\n")
		for _, t := range texs {
			v, ok := textures.Variant(t.Slot)
			if !ok {
				return nil, fmt.Errorf("textures: slot %q: %w", t.Slot, schema.ErrUnknownReference)
			}
			typ := "texture_2d<f32>"
			if t.Sample == schema.SampleDepth {
				typ = "texture_depth_2d"
			}
			fmt.Fprintf(&buf, "@group(%d) @binding(%d) var %s: %s; // %s\n",
				s.TextureGroup, v.Value, t.Var, typ, textures.Qualified(v))
		}
	}

	g.logger.Debug("generated WGSL bindings",
		"vertex_buffers", len(s.VertexBuffers), "bindings", len(s.Bindings), "textures", len(s.Textures))
	return buf.Bytes(), nil
}
