// annotations.go defines the annotation types, argument constants, and parser for the
// Oxy WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed
// with @oxy: that inject the generated shared types and declare bind group variables whose
// binding numbers come from the schema's BufferIndex and TextureIndex enumerations.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeInclude injects generated WGSL at the annotation site: every shared
	// declaration, the generated bind group declarations, or the struct of a single record.
	// This annotation does not produce a declaration and is consumed entirely during
	// pre-processing.
	//
	// Syntax: //@oxy:include <types|bindings|record_name>
	//
	// Example: //@oxy:include Light
	AnnotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and appends an Annotation to the PreProcessor's declarations list. The binding may be
	// written as a number or as the constant name of a BufferIndex or TextureIndex variant,
	// in which case the variant's value is used.
	//
	// Syntax: //@oxy:group <group> <binding|slot_name> <address_space> <var_name> <type>
	//
	// Example: //@oxy:group 0 BufferIndexLights storage_read lights array<Light>
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// Annotation represents a single parsed @oxy: annotation from a WGSL shader source line.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include: [0] = include target
	//   - group:   [0] = address space, [1] = var name, [2] = WGSL type
	Args []AnnotationArg

	// Line is the 1-based line number in the original WGSL source where this annotation
	// was found. Used for error reporting.
	Line int

	// Group is the @group index for group annotations. Nil for include annotations.
	Group *int

	// Binding is the @binding index for group annotations. Nil for include annotations.
	Binding *int

	// Slot is the slot constant the binding was written as, e.g. "BufferIndexLights".
	// Empty when the binding was written as a number.
	Slot string
}

// AnnotationArg is a typed string used as an argument in annotations.
type AnnotationArg string

const (
	// AnnotationArgTypes includes every generated enum constant and record struct.
	AnnotationArgTypes AnnotationArg = "types"

	// AnnotationArgBindings includes the generated vertex input struct and every generated
	// @group/@binding declaration. The types must be included before it.
	AnnotationArgBindings AnnotationArg = "bindings"
)

// ── Address space arguments ────────────────────────────────────────────────────
// These specify the WGSL variable address space in @oxy:group annotations.

const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"

	// annotationArgStorageTypeReadWrite maps to var<storage, read_write> in WGSL.
	annotationArgStorageTypeReadWrite AnnotationArg = "storage_read_write"

	// annotationArgHandle maps to a plain var, used for textures and samplers.
	annotationArgHandle AnnotationArg = "handle"
)

// validAddressSpaces lists all AnnotationArg values that are accepted as address
// space arguments in @oxy:group annotations.
var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
	annotationArgStorageTypeReadWrite,
	annotationArgHandle,
}

// slotEnums are the enumerations whose variant names may stand in for a binding number.
var slotEnums = []string{schema.EnumBufferIndex, schema.EnumTextureIndex}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix. Returns
// a populated Annotation for valid annotations, or an error describing the problem for
// malformed annotations with correct prefix but invalid syntax or unknown arguments.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//   - s: the schema that resolves record names and slot names
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int, s *schema.Schema) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch args[0] {
	case string(AnnotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		target := AnnotationArg(args[1])
		if target != AnnotationArgTypes && target != AnnotationArgBindings {
			if _, ok := s.Record(args[1]); !ok {
				return nil, fmt.Errorf("line %d: unknown include target %q in @oxy include annotation", lineNum, args[1])
			}
		}
		return &Annotation{
			Type: AnnotationTypeInclude,
			Args: []AnnotationArg{target},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group annotation requires exactly five arguments (group, binding, address space, var name, type)", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q in @oxy group annotation: %v", lineNum, args[1], err)
		}
		bindingInt, slot, err := resolveBinding(args[2], s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w in @oxy group annotation", lineNum, err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @oxy group annotation", lineNum, args[3])
		}
		typeArg := args[5]
		if inner, ok := strings.CutPrefix(typeArg, "array<"); ok {
			inner = strings.TrimSuffix(inner, ">")
			if !knownType(inner, s) {
				return nil, fmt.Errorf("line %d: unknown array element type %q in @oxy group annotation", lineNum, inner)
			}
		} else if !knownType(typeArg, s) {
			return nil, fmt.Errorf("line %d: unknown type %q in @oxy group annotation", lineNum, typeArg)
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(typeArg)},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
			Slot:    slot,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}

// resolveBinding parses a binding argument written either as a number or as a slot constant
// name such as "BufferIndexLights".
func resolveBinding(arg string, s *schema.Schema) (int, string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		return n, "", nil
	}
	for _, name := range slotEnums {
		variant, ok := strings.CutPrefix(arg, name)
		if !ok {
			continue
		}
		if v, ok := s.Value(name, variant); ok {
			return int(v), arg, nil
		}
	}
	return 0, "", fmt.Errorf("unknown binding %q", arg)
}

// knownType reports whether typeName is a schema record or a WGSL type the parser can lay
// out or classify.
func knownType(typeName string, s *schema.Schema) bool {
	if _, ok := s.Record(typeName); ok {
		return true
	}
	if _, ok := wgslPrimitiveLayoutMap[typeName]; ok {
		return true
	}
	switch {
	case typeName == "sampler", typeName == "sampler_comparison":
		return true
	case strings.HasPrefix(typeName, "texture_"):
		return true
	}
	return false
}
