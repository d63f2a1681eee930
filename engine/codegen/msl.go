package codegen

import (
	"bytes"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
)

// mslTypes maps canonical types to the simd spellings shared by Metal and Apple host code.
var mslTypes = map[layout.Type]string{
	layout.I32:     "int",
	layout.U32:     "unsigned int",
	layout.F32:     "float",
	layout.Vec2F:   "vector_float2",
	layout.Vec3F:   "vector_float3",
	layout.Vec4F:   "vector_float4",
	layout.Mat4x4F: "matrix_float4x4",
}

// mslPrologue selects a 4-byte enum backing type on both sides. NSInteger is 8 bytes on the
// host and 4 bytes in Metal, so it cannot back an enum stored inside a shared record.
const mslPrologue = `#ifndef ShaderTypes_h
#define ShaderTypes_h

#ifdef __METAL_VERSION__
#define NS_ENUM(_type, _name) enum _name : _type _name; enum _name : _type
typedef metal::int32_t EnumBackingType;
#else
#import <Foundation/Foundation.h>
typedef int32_t EnumBackingType;
#endif

#include <simd/simd.h>
`

// MSL emits a Metal header usable from both shaders and Objective-C or Swift host code.
// Record offsets in this header follow layout.MSL, where every vector_float3 is 16 bytes.
//
// Parameters:
//   - s: the schema
//
// Returns:
//   - []byte: the header source
//   - error: a layout error
func (g *Generator) MSL(s *schema.Schema) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// "+generatedHeader+"\n", g.source)
	buf.WriteString("//\n// Types and enum constants shared between Metal shaders and host source.\n\n")
	buf.WriteString(mslPrologue)

	for _, e := range s.Enums {
		fmt.Fprintf(&buf, "\n// %s: %s\n", e.Name, docLine(e.Doc))
		fmt.Fprintf(&buf, "typedef NS_ENUM(EnumBackingType, %s)\n{\n", e.Name)
		for _, v := range sortedVariants(e) {
			fmt.Fprintf(&buf, "    %s = %d,\n", e.Qualified(v), v.Value)
		}
		buf.WriteString("};\n")
	}

	for _, r := range s.Records {
		rec, err := s.Layout(layout.MSL, r.Name)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "\n// %s: %s\n", r.Name, docLine(r.Doc))
		buf.WriteString("typedef struct\n{\n")
		for i, fl := range rec.Fields {
			typ := r.Fields[i].Type
			if _, isEnum := s.Enum(typ); !isEnum {
				typ = mslTypes[fl.Type]
			}
			fmt.Fprintf(&buf, "    %s %s; // offset %d\n", typ, fl.Name, fl.Offset)
		}
		fmt.Fprintf(&buf, "} %s; // size %d\n", r.Name, rec.Size)
	}

	buf.WriteString("\n#endif /* ShaderTypes_h */\n")
	g.logger.Debug("generated Metal header", "bytes", buf.Len())
	return buf.Bytes(), nil
}
