package schema

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
)

var (
	// ErrNonContiguous is returned when an enumeration's values are not exactly 0..n-1.
	ErrNonContiguous = errors.New("enum values are not contiguous from 0")

	// ErrDuplicate is returned when a name, value or slot is declared twice.
	ErrDuplicate = errors.New("duplicate declaration")

	// ErrUnknownReference is returned when a declaration names something the schema lacks.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrInvalid is returned for values outside an accepted set, or missing required values.
	ErrInvalid = errors.New("invalid value")
)

var (
	validSpaces  = []string{SpaceUniform, SpaceStorageRead}
	validStages  = []string{StageVertex, StageFragment, StageCompute}
	validSamples = []string{SampleFloat, SampleDepth}
)

// Validate checks every structural invariant of the schema and returns all violations joined.
//
// Returns:
//   - error: nil if the schema is valid, otherwise an errors.Join of every violation
func (s *Schema) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if s.Package == "" {
		fail("package: %w: must not be empty", ErrInvalid)
	}

	typeNames := make(map[string]bool)
	for _, e := range s.Enums {
		if typeNames[e.Name] {
			fail("enum %s: %w type name", e.Name, ErrDuplicate)
		}
		typeNames[e.Name] = true
		errs = append(errs, validateEnum(e)...)
	}

	for _, r := range s.Records {
		if typeNames[r.Name] {
			fail("record %s: %w type name", r.Name, ErrDuplicate)
		}
		typeNames[r.Name] = true
		if len(r.Fields) == 0 {
			fail("record %s: %w: no fields", r.Name, ErrInvalid)
		}
		fieldNames := make(map[string]bool, len(r.Fields))
		for _, f := range r.Fields {
			if fieldNames[f.Name] {
				fail("record %s: field %s: %w", r.Name, f.Name, ErrDuplicate)
			}
			fieldNames[f.Name] = true
			if _, ok := s.Resolve(f.Type); !ok {
				fail("record %s: field %s: type %q: %w", r.Name, f.Name, f.Type, ErrUnknownReference)
			}
		}
	}

	errs = append(errs, s.validateVertexBuffers()...)
	errs = append(errs, s.validateBindings()...)
	errs = append(errs, s.validateTextures()...)
	errs = append(errs, s.validateSharedGroup()...)

	return errors.Join(errs...)
}

// validateEnum checks that variant names are unique and values are exactly 0..n-1.
func validateEnum(e Enum) []error {
	var errs []error
	if len(e.Values) == 0 {
		return []error{fmt.Errorf("enum %s: %w: no values", e.Name, ErrInvalid)}
	}
	names := make(map[string]bool, len(e.Values))
	seen := make(map[int32]bool, len(e.Values))
	for _, v := range e.Values {
		if names[v.Name] {
			errs = append(errs, fmt.Errorf("enum %s: variant %s: %w", e.Name, v.Name, ErrDuplicate))
		}
		names[v.Name] = true
		if seen[v.Value] {
			errs = append(errs, fmt.Errorf("enum %s: value %d: %w", e.Name, v.Value, ErrDuplicate))
		}
		seen[v.Value] = true
	}
	for i := range int32(len(e.Values)) {
		if !seen[i] {
			errs = append(errs, fmt.Errorf("enum %s: missing value %d: %w", e.Name, i, ErrNonContiguous))
		}
	}
	return errs
}

func (s *Schema) validateVertexBuffers() []error {
	var errs []error
	if len(s.VertexBuffers) == 0 {
		return nil
	}
	attrs, okAttrs := s.Enum(EnumVertexAttribute)
	buffers, okBuffers := s.Enum(EnumBufferIndex)
	if !okAttrs || !okBuffers {
		return []error{fmt.Errorf("vertex_buffers: enums %s and %s are required: %w", EnumVertexAttribute, EnumBufferIndex, ErrUnknownReference)}
	}
	usedAttrs := make(map[string]bool)
	usedBuffers := make(map[string]bool)
	for _, vb := range s.VertexBuffers {
		if _, ok := attrs.Variant(vb.Attribute); !ok {
			errs = append(errs, fmt.Errorf("vertex_buffers: attribute %q: %w", vb.Attribute, ErrUnknownReference))
		}
		if _, ok := buffers.Variant(vb.Buffer); !ok {
			errs = append(errs, fmt.Errorf("vertex_buffers: buffer %q: %w", vb.Buffer, ErrUnknownReference))
		}
		if usedAttrs[vb.Attribute] {
			errs = append(errs, fmt.Errorf("vertex_buffers: attribute %q: %w", vb.Attribute, ErrDuplicate))
		}
		if usedBuffers[vb.Buffer] {
			errs = append(errs, fmt.Errorf("vertex_buffers: buffer %q: %w", vb.Buffer, ErrDuplicate))
		}
		usedAttrs[vb.Attribute] = true
		usedBuffers[vb.Buffer] = true
		if t := layout.Type(vb.Format); !layout.IsBuiltin(t) || !t.IsFloat() || t == layout.Mat4x4F {
			errs = append(errs, fmt.Errorf("vertex_buffers: attribute %q: format %q: %w", vb.Attribute, vb.Format, ErrInvalid))
		}
	}
	return errs
}

func (s *Schema) validateBindings() []error {
	var errs []error
	if len(s.Bindings) == 0 {
		return nil
	}
	buffers, ok := s.Enum(EnumBufferIndex)
	if !ok {
		return []error{fmt.Errorf("bindings: enum %s is required: %w", EnumBufferIndex, ErrUnknownReference)}
	}
	slots := make(map[string]bool)
	vars := make(map[string]bool)
	for _, vb := range s.VertexBuffers {
		slots[vb.Buffer] = true
	}
	for _, b := range s.Bindings {
		if _, ok := buffers.Variant(b.Slot); !ok {
			errs = append(errs, fmt.Errorf("bindings: slot %q: %w", b.Slot, ErrUnknownReference))
		}
		if slots[b.Slot] {
			errs = append(errs, fmt.Errorf("bindings: slot %q: %w", b.Slot, ErrDuplicate))
		}
		slots[b.Slot] = true
		if b.Var == "" {
			errs = append(errs, fmt.Errorf("bindings: slot %q: %w: var must not be empty", b.Slot, ErrInvalid))
		} else if vars[b.Var] {
			errs = append(errs, fmt.Errorf("bindings: var %q: %w", b.Var, ErrDuplicate))
		}
		vars[b.Var] = true
		if _, isType := s.Resolve(b.Type); !isType {
			if _, isRecord := s.Record(b.Type); !isRecord {
				errs = append(errs, fmt.Errorf("bindings: slot %q: type %q: %w", b.Slot, b.Type, ErrUnknownReference))
			}
		}
		if !slices.Contains(validSpaces, b.Space) {
			errs = append(errs, fmt.Errorf("bindings: slot %q: space %q: %w", b.Slot, b.Space, ErrInvalid))
		}
		if b.Array && b.Space != SpaceStorageRead {
			errs = append(errs, fmt.Errorf("bindings: slot %q: %w: runtime arrays require %s", b.Slot, ErrInvalid, SpaceStorageRead))
		}
		errs = append(errs, validateStages("bindings", b.Slot, b.Stages)...)
	}
	return errs
}

func (s *Schema) validateTextures() []error {
	var errs []error
	if len(s.Textures) == 0 {
		return nil
	}
	textures, ok := s.Enum(EnumTextureIndex)
	if !ok {
		return []error{fmt.Errorf("textures: enum %s is required: %w", EnumTextureIndex, ErrUnknownReference)}
	}
	slots := make(map[string]bool)
	for _, t := range s.Textures {
		if _, ok := textures.Variant(t.Slot); !ok {
			errs = append(errs, fmt.Errorf("textures: slot %q: %w", t.Slot, ErrUnknownReference))
		}
		if slots[t.Slot] {
			errs = append(errs, fmt.Errorf("textures: slot %q: %w", t.Slot, ErrDuplicate))
		}
		slots[t.Slot] = true
		if !slices.Contains(validSamples, t.Sample) {
			errs = append(errs, fmt.Errorf("textures: slot %q: sample %q: %w", t.Slot, t.Sample, ErrInvalid))
		}
		errs = append(errs, validateStages("textures", t.Slot, t.Stages)...)
	}
	return errs
}

// validateSharedGroup rejects a buffer and a texture landing on the same @binding when both
// kinds share one bind group.
func (s *Schema) validateSharedGroup() []error {
	if s.BufferGroup != s.TextureGroup {
		return nil
	}
	taken := make(map[int32]string, len(s.Bindings))
	for _, b := range s.Bindings {
		if v, ok := s.Value(EnumBufferIndex, b.Slot); ok {
			taken[v] = b.Slot
		}
	}
	var errs []error
	for _, t := range s.Textures {
		v, ok := s.Value(EnumTextureIndex, t.Slot)
		if !ok {
			continue
		}
		if buf, clash := taken[v]; clash {
			errs = append(errs, fmt.Errorf("textures: slot %q: %w @group(%d) @binding(%d), also bound by buffer %q",
				t.Slot, ErrDuplicate, s.TextureGroup, v, buf))
		}
	}
	return errs
}

func validateStages(section, slot string, stages []string) []error {
	if len(stages) == 0 {
		return []error{fmt.Errorf("%s: slot %q: %w: at least one stage is required", section, slot, ErrInvalid)}
	}
	var errs []error
	for _, st := range stages {
		if !slices.Contains(validStages, st) {
			errs = append(errs, fmt.Errorf("%s: slot %q: stage %q: %w", section, slot, st, ErrInvalid))
		}
	}
	return errs
}
