// pre_processor.go implements the Oxy WGSL shader pre-processor. It scans shader
// source code for @oxy: annotations, replaces them with generated WGSL declarations
// or injected struct source, and collects a declarations list used to wire GPU resources
// to bind groups by slot instead of by variable name.
//
// Included sources are the checked-in generated WGSL artifacts, so a shader that includes
// them always agrees with the host-side records in package shadertypes.
package shader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	schema *schema.Schema

	// typesSource is injected by //@oxy:include types and sliced for single records.
	typesSource string

	// bindingsSource is injected by //@oxy:include bindings.
	bindingsSource string

	// addressSpaceRegistry maps address space argument keys to WGSL var<> syntax strings.
	addressSpaceRegistry map[AnnotationArg]string

	// declarations accumulates annotations of type AnnotationTypeBindingGroup during a
	// Process call. Reset at the start of each Process invocation.
	declarations []Annotation
}

// PreProcessor processes raw WGSL shader source code containing @oxy: annotations,
// replacing them with generated declarations or injected struct sources while collecting
// a declarations list for downstream resource wiring.
type PreProcessor interface {
	// Process takes raw WGSL shader source code and pre-processes it by replacing
	// @oxy: annotations with their corresponding WGSL output. @oxy:include annotations
	// are replaced with generated source text. @oxy:group annotations are replaced
	// with @group/@binding variable declarations.
	//
	// The declarations list is reset at the start of each call and can be retrieved
	// via Declarations() after Process returns.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed WGSL shader source code with annotations replaced
	//   - error: an error if any annotation is malformed or references an unknown type or slot
	Process(source string) (string, error)

	// Declarations returns the AnnotationTypeBindingGroup annotations collected during the
	// most recent call to Process, in source order.
	// Returns nil if Process has not been called.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// PreProcessorOption configures a PreProcessor during construction.
type PreProcessorOption func(*preProcessor)

// WithSchema sets the schema that resolves record names and slot constants. It should be
// the schema the included sources were generated from.
//
// Parameters:
//   - s: the schema
//
// Returns:
//   - PreProcessorOption: a function that applies the schema to a preProcessor
func WithSchema(s *schema.Schema) PreProcessorOption {
	return func(p *preProcessor) {
		p.schema = s
	}
}

// WithIncludeSources replaces the WGSL injected by //@oxy:include types and
// //@oxy:include bindings.
//
// Parameters:
//   - types: generated WGSL type declarations
//   - bindings: generated WGSL bind group declarations
//
// Returns:
//   - PreProcessorOption: a function that applies the sources to a preProcessor
func WithIncludeSources(types, bindings string) PreProcessorOption {
	return func(p *preProcessor) {
		p.typesSource = types
		p.bindingsSource = bindings
	}
}

// NewPreProcessor creates a new PreProcessor over the embedded schema and the checked-in
// generated WGSL.
//
// Parameters:
//   - opts: pre-processor options
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(opts ...PreProcessorOption) PreProcessor {
	p := &preProcessor{
		typesSource:    shadertypes.ShaderTypesSource,
		bindingsSource: shadertypes.ShaderBindingsSource,
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform:   "var<uniform>",
			annotationArgStorageTypeRead:      "var<storage, read>",
			annotationArgStorageTypeReadWrite: "var<storage, read_write>",
			annotationArgHandle:               "var",
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.schema == nil {
		p.schema = schema.Default()
	}
	return p
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1, p.schema)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case AnnotationTypeInclude:
			src, err := p.include(a.Args[0])
			if err != nil {
				return "", fmt.Errorf("line %d: %w", i+1, err)
			}
			out = append(out, strings.TrimRight(src, "\n"))
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, a.Args[1], a.Args[2]))
			p.declarations = append(p.declarations, *a)
		default:
			return "", fmt.Errorf("line %d: unknown annotation type %q", i+1, a.Type)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

// include returns the source injected for an include target.
func (p *preProcessor) include(target AnnotationArg) (string, error) {
	switch target {
	case AnnotationArgTypes:
		return p.typesSource, nil
	case AnnotationArgBindings:
		return p.bindingsSource, nil
	}
	return recordSource(p.typesSource, string(target))
}

// recordSource slices the documented struct declaration of one record out of generated
// WGSL types.
func recordSource(types, name string) (string, error) {
	q := regexp.QuoteMeta(name)
	re := regexp.MustCompile(`(?m)^// ` + q + `: .*\n// size .*\nstruct ` + q + ` \{\n(?:    .*\n)*\}`)
	src := re.FindString(types)
	if src == "" {
		return "", fmt.Errorf("record %q not found in generated types", name)
	}
	return src, nil
}
