package codegen

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
	"golang.org/x/tools/imports"
)

// goTypes maps canonical types to the host Go types that mirror their WGSL representation.
var goTypes = map[layout.Type]string{
	layout.I32:     "int32",
	layout.U32:     "uint32",
	layout.F32:     "float32",
	layout.Vec2F:   "mgl32.Vec2",
	layout.Vec3F:   "mgl32.Vec3",
	layout.Vec4F:   "mgl32.Vec4",
	layout.Mat4x4F: "mgl32.Mat4",
}

// Go emits the host-side declarations: one typed integer per enumeration and one struct per
// record. Struct fields carry explicit padding so the Go layout equals the WGSL layout, which
// lets a record be copied to a GPU buffer without per-field encoding.
//
// Parameters:
//   - s: the schema
//
// Returns:
//   - []byte: gofmt-formatted Go source
//   - error: a layout error, or a formatting error if the emitted source does not parse
func (g *Generator) Go(s *schema.Schema) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// "+generatedHeader+"\n\n", g.source)
	fmt.Fprintf(&buf, "package %s\n\n", g.packageName(s))
	fmt.Fprintf(&buf, "import (\n\t\"strconv\"\n\n\t\"github.com/go-gl/mathgl/mgl32\"\n)\n")

	for _, e := range s.Enums {
		writeGoEnum(&buf, e)
	}
	for _, r := range s.Records {
		if err := writeGoRecord(&buf, s, r); err != nil {
			return nil, err
		}
	}

	out, err := imports.Process(g.source+".go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting generated Go: %w", err)
	}
	g.logger.Debug("generated Go source", "enums", len(s.Enums), "records", len(s.Records), "bytes", len(out))
	return out, nil
}

// sortedVariants returns the variants of e in value order.
func sortedVariants(e schema.Enum) []schema.Variant {
	vs := slices.Clone(e.Values)
	slices.SortFunc(vs, func(a, b schema.Variant) int {
		return int(a.Value - b.Value)
	})
	return vs
}

func writeGoEnum(buf *bytes.Buffer, e schema.Enum) {
	vs := sortedVariants(e)

	fmt.Fprintf(buf, "\n// %s: %s\n", e.Name, docLine(e.Doc))
	fmt.Fprintf(buf, "type %s int32\n\n", e.Name)

	buf.WriteString("const (\n")
	for _, v := range vs {
		fmt.Fprintf(buf, "\t%s %s = %d", e.Qualified(v), e.Name, v.Value)
		if v.Doc != "" {
			fmt.Fprintf(buf, " // %s", docLine(v.Doc))
		}
		buf.WriteString("\n")
	}
	buf.WriteString(")\n\n")

	fmt.Fprintf(buf, "// %sValues lists every %s in value order.\n", e.Name, e.Name)
	fmt.Fprintf(buf, "var %sValues = []%s{\n", e.Name, e.Name)
	for _, v := range vs {
		fmt.Fprintf(buf, "\t%s,\n", e.Qualified(v))
	}
	buf.WriteString("}\n\n")

	fmt.Fprintf(buf, "// String returns the constant name of v.\n")
	fmt.Fprintf(buf, "func (v %s) String() string {\n\tswitch v {\n", e.Name)
	for _, v := range vs {
		fmt.Fprintf(buf, "\tcase %s:\n\t\treturn %q\n", e.Qualified(v), e.Qualified(v))
	}
	fmt.Fprintf(buf, "\t}\n\treturn \"%s(\" + strconv.Itoa(int(v)) + \")\"\n}\n\n", e.Name)

	fmt.Fprintf(buf, "// Valid reports whether v is a declared %s.\n", e.Name)
	fmt.Fprintf(buf, "func (v %s) Valid() bool {\n\treturn v >= 0 && v < %d\n}\n", e.Name, len(vs))
}

// goFieldType returns the Go type of a record field. Enum-typed fields keep their enum type.
func goFieldType(s *schema.Schema, f schema.Field) (string, error) {
	if _, ok := s.Enum(f.Type); ok {
		return f.Type, nil
	}
	t, ok := goTypes[layout.Type(f.Type)]
	if !ok {
		return "", fmt.Errorf("field %s: type %q: %w", f.Name, f.Type, layout.ErrUnknownType)
	}
	return t, nil
}

// padType returns the Go type occupying n bytes of padding.
func padType(n uint64) string {
	if n == 4 {
		return "uint32"
	}
	return fmt.Sprintf("[%d]uint32", n/4)
}

func writeGoRecord(buf *bytes.Buffer, s *schema.Schema, r schema.Record) error {
	rec, err := s.Layout(layout.WGSL, r.Name)
	if err != nil {
		return err
	}

	fmt.Fprintf(buf, "\n// %s: %s\n", r.Name, docLine(r.Doc))
	fmt.Fprintf(buf, "// WGSL layout: %d bytes, %d-byte aligned.\n", rec.Size, rec.Align)
	fmt.Fprintf(buf, "type %s struct {\n", r.Name)

	pad := 0
	writePad := func(offset, n uint64) {
		fmt.Fprintf(buf, "\t_pad%d %s // offset %d\n", pad, padType(n), offset)
		pad++
	}
	for i, fl := range rec.Fields {
		if fl.Padding > 0 {
			writePad(fl.Offset-fl.Padding, fl.Padding)
		}
		typ, err := goFieldType(s, r.Fields[i])
		if err != nil {
			return fmt.Errorf("record %s: %w", r.Name, err)
		}
		fmt.Fprintf(buf, "\t%s %s // offset %d", exportedName(fl.Name), typ, fl.Offset)
		if doc := r.Fields[i].Doc; doc != "" {
			fmt.Fprintf(buf, ": %s", docLine(doc))
		}
		buf.WriteString("\n")
	}
	if rec.TrailingPadding > 0 {
		writePad(rec.Size-rec.TrailingPadding, rec.TrailingPadding)
	}
	buf.WriteString("}\n\n")

	fmt.Fprintf(buf, "// %sSize is the WGSL size of %s in bytes. It is also the array stride.\n", r.Name, r.Name)
	fmt.Fprintf(buf, "const %sSize = %d\n", r.Name, rec.Size)
	return nil
}
