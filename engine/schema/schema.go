// Package schema loads the machine-readable definition of every binding slot and shared
// record. Both the host-side Go declarations and the shader-side WGSL and Metal declarations
// are generated from a Schema, so the two sides of the CPU/GPU boundary cannot drift apart.
package schema

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"gopkg.in/yaml.v3"
)

// Well-known enumeration names referenced by the vertex_buffers, bindings and textures sections.
const (
	EnumBufferIndex     = "BufferIndex"
	EnumVertexAttribute = "VertexAttribute"
	EnumTextureIndex    = "TextureIndex"
)

// Address spaces accepted by a Binding.
const (
	SpaceUniform     = "uniform"
	SpaceStorageRead = "storage_read"
)

// Shader stages accepted by Binding and Texture stage lists.
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
	StageCompute  = "compute"
)

// Texture sample kinds.
const (
	SampleFloat = "float"
	SampleDepth = "depth"
)

// DefaultSource is the embedded schema for the G-buffer renderer.
//
//go:embed assets/shader_types.yaml
var DefaultSource []byte

// Schema is the root of a shared-layout definition.
type Schema struct {
	// Package is the Go package name used for generated host code.
	Package string `yaml:"package"`

	// BufferGroup is the WGSL @group holding every buffer binding.
	BufferGroup uint32 `yaml:"buffer_group"`

	// TextureGroup is the WGSL @group holding every texture binding.
	TextureGroup uint32 `yaml:"texture_group"`

	Enums         []Enum         `yaml:"enums"`
	Records       []Record       `yaml:"records"`
	VertexBuffers []VertexBuffer `yaml:"vertex_buffers"`
	Bindings      []Binding      `yaml:"bindings"`
	Textures      []Texture      `yaml:"textures"`
}

// Enum is a closed mapping from variant names to small non-negative integers.
type Enum struct {
	Name   string    `yaml:"name"`
	Doc    string    `yaml:"doc"`
	Values []Variant `yaml:"values"`
}

// Variant is one named value of an Enum.
type Variant struct {
	Name  string `yaml:"name"`
	Value int32  `yaml:"value"`
	Doc   string `yaml:"doc"`
}

// Qualified returns the constant name of v as emitted on both sides, e.g. "BufferIndexLights".
//
// Parameters:
//   - v: a variant of e
//
// Returns:
//   - string: the enum name followed by the variant name
func (e Enum) Qualified(v Variant) string {
	return e.Name + v.Name
}

// Variant looks up a variant by its short name.
//
// Parameters:
//   - name: the short variant name, e.g. "Lights"
//
// Returns:
//   - Variant: the variant
//   - bool: false if e has no such variant
func (e Enum) Variant(name string) (Variant, bool) {
	for _, v := range e.Values {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Record is a fixed-layout structure copied verbatim across the CPU/GPU boundary.
type Record struct {
	Name   string  `yaml:"name"`
	Doc    string  `yaml:"doc"`
	Fields []Field `yaml:"fields"`
}

// Field is one member of a Record. Type is either a layout.Type or the name of an Enum.
type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Doc  string `yaml:"doc"`
}

// VertexBuffer binds one vertex attribute to its own vertex buffer slot.
type VertexBuffer struct {
	Attribute string `yaml:"attribute"`
	Buffer    string `yaml:"buffer"`
	Format    string `yaml:"format"`
}

// Binding declares the buffer bound at a BufferIndex slot.
type Binding struct {
	Slot   string   `yaml:"slot"`
	Var    string   `yaml:"var"`
	Type   string   `yaml:"type"`
	Space  string   `yaml:"space"`
	Array  bool     `yaml:"array"`
	Stages []string `yaml:"stages"`
}

// Texture declares the texture bound at a TextureIndex slot.
type Texture struct {
	Slot   string   `yaml:"slot"`
	Var    string   `yaml:"var"`
	Sample string   `yaml:"sample"`
	Stages []string `yaml:"stages"`
}

// Load parses and validates a YAML schema.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Schema: the validated schema
//   - error: a parse error, or the joined validation errors
func Load(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and loads a YAML schema from path.
//
// Parameters:
//   - path: the schema file path
//
// Returns:
//   - *Schema: the validated schema
//   - error: a read, parse or validation error
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	s, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Default returns the embedded G-buffer schema. It panics if the embedded document is invalid.
//
// Returns:
//   - *Schema: the embedded schema
func Default() *Schema {
	s, err := Load(DefaultSource)
	if err != nil {
		panic(fmt.Sprintf("schema: embedded schema is invalid: %v", err))
	}
	return s
}

// Enum looks up an enumeration by name.
//
// Parameters:
//   - name: the enumeration name
//
// Returns:
//   - Enum: the enumeration
//   - bool: false if the schema has no such enumeration
func (s *Schema) Enum(name string) (Enum, bool) {
	for _, e := range s.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return Enum{}, false
}

// Record looks up a record by name.
//
// Parameters:
//   - name: the record name
//
// Returns:
//   - Record: the record
//   - bool: false if the schema has no such record
func (s *Schema) Record(name string) (Record, bool) {
	for _, r := range s.Records {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}

// Value resolves an enumeration variant to its integer value.
//
// Parameters:
//   - enum: the enumeration name, e.g. EnumBufferIndex
//   - variant: the short variant name, e.g. "Lights"
//
// Returns:
//   - int32: the variant value
//   - bool: false if either name is unknown
func (s *Schema) Value(enum, variant string) (int32, bool) {
	e, ok := s.Enum(enum)
	if !ok {
		return 0, false
	}
	v, ok := e.Variant(variant)
	return v.Value, ok
}

// Resolve maps a field or binding type name to its canonical layout type.
// Enumerations resolve to layout.I32. Record names do not resolve.
//
// Parameters:
//   - typeName: a layout.Type name or an enumeration name
//
// Returns:
//   - layout.Type: the canonical type
//   - bool: false if typeName is neither a builtin type nor an enumeration
func (s *Schema) Resolve(typeName string) (layout.Type, bool) {
	if layout.IsBuiltin(layout.Type(typeName)) {
		return layout.Type(typeName), true
	}
	if _, ok := s.Enum(typeName); ok {
		return layout.I32, true
	}
	return "", false
}

// LayoutFields converts a record's fields into layout fields with enums resolved.
//
// Parameters:
//   - name: the record name
//
// Returns:
//   - []layout.Field: the resolved fields
//   - error: ErrUnknownReference (wrapped) if the record or a field type is unknown
func (s *Schema) LayoutFields(name string) ([]layout.Field, error) {
	rec, ok := s.Record(name)
	if !ok {
		return nil, fmt.Errorf("record %q: %w", name, ErrUnknownReference)
	}
	fields := make([]layout.Field, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		t, ok := s.Resolve(f.Type)
		if !ok {
			return nil, fmt.Errorf("%s.%s: type %q: %w", name, f.Name, f.Type, ErrUnknownReference)
		}
		fields = append(fields, layout.Field{Name: f.Name, Type: t})
	}
	return fields, nil
}

// Layout computes the layout of a record under the given rules.
//
// Parameters:
//   - rules: the target environment
//   - name: the record name
//
// Returns:
//   - layout.Record: the computed layout
//   - error: an unknown record, field type, or layout error
func (s *Schema) Layout(rules layout.Rules, name string) (layout.Record, error) {
	fields, err := s.LayoutFields(name)
	if err != nil {
		return layout.Record{}, err
	}
	return layout.Compute(rules, name, fields)
}

// TypeSize returns the size and alignment of a builtin, enum or record type under rules.
//
// Parameters:
//   - rules: the target environment
//   - typeName: the type name
//
// Returns:
//   - size: the size in bytes (the array stride for records)
//   - align: the alignment in bytes
//   - error: ErrUnknownReference (wrapped) if typeName cannot be resolved
func (s *Schema) TypeSize(rules layout.Rules, typeName string) (size, align uint64, err error) {
	if t, ok := s.Resolve(typeName); ok {
		sz, al, known := rules.SizeAlign(t)
		if !known {
			return 0, 0, fmt.Errorf("type %q: %w", typeName, layout.ErrUnknownType)
		}
		return sz, al, nil
	}
	rec, err := s.Layout(rules, typeName)
	if err != nil {
		return 0, 0, err
	}
	return rec.Size, rec.Align, nil
}
