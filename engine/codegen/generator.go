// Package codegen emits the host-side Go declarations and the shader-side WGSL and Metal
// declarations of a schema.Schema. Every artifact is derived from the same schema, so a slot
// renumbered or a field reordered in the schema changes both sides of the boundary together.
package codegen

import (
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
)

// generatedHeader formats the provenance line placed at the top of every artifact.
const generatedHeader = "Code generated by shadergen from %s. DO NOT EDIT."

// Generator produces artifacts from a schema.
type Generator struct {
	logger *slog.Logger
	pkg    string
	source string
}

// GeneratorOption is a function that configures a Generator during construction.
type GeneratorOption func(*Generator)

// WithLogger sets the structured logger used to report generation steps.
//
// Parameters:
//   - logger: the logger; nil keeps the discard logger
//
// Returns:
//   - GeneratorOption: a function that applies the logger to a Generator
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithPackage overrides the Go package name of the generated host source.
// When unset, the schema's package name is used.
//
// Parameters:
//   - name: the Go package name
//
// Returns:
//   - GeneratorOption: a function that applies the package name to a Generator
func WithPackage(name string) GeneratorOption {
	return func(g *Generator) {
		g.pkg = name
	}
}

// WithSource sets the schema file name written in each artifact's provenance line.
//
// Parameters:
//   - source: the schema file name
//
// Returns:
//   - GeneratorOption: a function that applies the source name to a Generator
func WithSource(source string) GeneratorOption {
	return func(g *Generator) {
		g.source = source
	}
}

// NewGenerator creates a Generator with all specified options applied.
//
// Parameters:
//   - opts: generator options
//
// Returns:
//   - *Generator: the configured generator
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		source: "shader_types.yaml",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) packageName(s *schema.Schema) string {
	if g.pkg != "" {
		return g.pkg
	}
	return s.Package
}

// exportedName converts a schema field name to an exported Go identifier.
func exportedName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// lowerFirst converts a variant name such as "Texcoord" to a shader identifier.
func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// wgslReserved lists schema identifiers that WGSL reserves and therefore cannot be used
// verbatim as struct member names.
//
// Reference: https://www.w3.org/TR/WGSL/#reserved-words
var wgslReserved = map[string]bool{
	"type":      true,
	"target":    true,
	"enum":      true,
	"class":     true,
	"filter":    true,
	"layout":    true,
	"module":    true,
	"package":   true,
	"resource":  true,
	"set":       true,
	"self":      true,
	"shared":    true,
	"static":    true,
	"template":  true,
	"this":      true,
	"union":     true,
	"using":     true,
	"attribute": true,
	"common":    true,
	"precision": true,
}

// WGSLName returns the WGSL member name for a schema field name. Reserved words get a
// trailing underscore; every other name is emitted unchanged.
//
// Parameters:
//   - name: the schema field name
//
// Returns:
//   - string: a valid WGSL identifier
func WGSLName(name string) string {
	if wgslReserved[name] {
		return name + "_"
	}
	return name
}

// docLine collapses a doc string to a single line suitable for a trailing comment.
func docLine(doc string) string {
	return strings.Join(strings.Fields(doc), " ")
}
