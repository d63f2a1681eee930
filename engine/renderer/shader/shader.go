package shader

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType defines the type of shader, such as compute, vertex, or fragment.
type ShaderType int

const (
	// ShaderTypeCompute represents a compute shader.
	ShaderTypeCompute ShaderType = iota

	// ShaderTypeVertex represents a vertex shader.
	ShaderTypeVertex

	// ShaderTypeFragment represents a fragment shader.
	ShaderTypeFragment
)

// stage returns the wgpu visibility flag of the shader type.
func (t ShaderType) stage() wgpu.ShaderStage {
	switch t {
	case ShaderTypeVertex:
		return wgpu.ShaderStageVertex
	case ShaderTypeFragment:
		return wgpu.ShaderStageFragment
	case ShaderTypeCompute:
		return wgpu.ShaderStageCompute
	}
	return wgpu.ShaderStageNone
}

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindings                   []Binding
	vertexLayouts              []wgpu.VertexBufferLayout
	structLayouts              map[string]layout.Record
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor
	declarations               []Annotation
}

// Shader is a pre-processed WGSL shader together with everything parsed from it.
type Shader interface {
	// Key returns the unique identifier of the shader.
	Key() string

	// Source returns the pre-processed WGSL source.
	Source() string

	// ShaderType returns the stage of the shader.
	ShaderType() ShaderType

	// EntryPoint returns the name of the shader's entry point function for its stage.
	EntryPoint() string

	// Module returns the shader module descriptor for pipeline creation.
	Module() *wgpu.ShaderModuleDescriptor

	// BindGroupLayoutDescriptor returns the bind group layout descriptor of one group.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, empty if the group is not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors returns every declared group's layout descriptor.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// Bindings returns every @group/@binding declaration in source order.
	Bindings() []Binding

	// BindGroupVarName returns the variable name declared at a group and binding.
	//
	// Parameters:
	//   - group: the @group index
	//   - binding: the @binding index
	//
	// Returns:
	//   - string: the variable name, or "" if nothing is declared there
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName returns the binding index of a variable within a group.
	//
	// Parameters:
	//   - group: the @group index
	//   - varName: the variable name
	//
	// Returns:
	//   - int: the binding index, or -1
	//   - bool: false if the variable is not declared in the group
	BindGroupFromVarName(group int, varName string) (int, bool)

	// VertexLayouts returns one single-attribute layout per vertex input location. Empty
	// for non-vertex shaders.
	VertexLayouts() []wgpu.VertexBufferLayout

	// StructLayouts returns the WGSL layout of every struct in the source.
	StructLayouts() map[string]layout.Record

	// Declarations returns the @oxy:group annotations found during pre-processing.
	Declarations() []Annotation
}

var _ Shader = &shader{}

// ShaderBuilderOption is a function that configures shader construction.
type ShaderBuilderOption func(*shaderBuilder)

type shaderBuilder struct {
	source     string
	sourcePath string
	pp         PreProcessor
}

// WithSource sets the raw WGSL source.
//
// Parameters:
//   - source: WGSL source that may contain @oxy: annotations
//
// Returns:
//   - ShaderBuilderOption: a function that applies the source
func WithSource(source string) ShaderBuilderOption {
	return func(b *shaderBuilder) {
		b.source = source
	}
}

// WithSourceFromPath reads the raw WGSL source from a file.
//
// Parameters:
//   - path: the WGSL file
//
// Returns:
//   - ShaderBuilderOption: a function that applies the source path
func WithSourceFromPath(path string) ShaderBuilderOption {
	return func(b *shaderBuilder) {
		b.sourcePath = path
	}
}

// WithPreProcessor replaces the default pre-processor.
//
// Parameters:
//   - pp: the pre-processor
//
// Returns:
//   - ShaderBuilderOption: a function that applies the pre-processor
func WithPreProcessor(pp PreProcessor) ShaderBuilderOption {
	return func(b *shaderBuilder) {
		b.pp = pp
	}
}

// NewShader creates a Shader and panics on any error. Use LoadShader to handle errors.
//
// Parameters:
//   - key: the unique identifier of the shader
//   - shaderType: the stage of the shader
//   - opts: the source and pre-processor options
//
// Returns:
//   - Shader: the shader
func NewShader(key string, shaderType ShaderType, opts ...ShaderBuilderOption) Shader {
	s, err := LoadShader(key, shaderType, opts...)
	if err != nil {
		panic(fmt.Sprintf("shader: %v", err))
	}
	return s
}

// LoadShader pre-processes and parses a WGSL shader.
//
// Parameters:
//   - key: the unique identifier of the shader
//   - shaderType: the stage of the shader
//   - opts: the source and pre-processor options; one of WithSource or WithSourceFromPath is required
//
// Returns:
//   - Shader: the shader
//   - error: a read, annotation or vertex layout error
func LoadShader(key string, shaderType ShaderType, opts ...ShaderBuilderOption) (Shader, error) {
	b := &shaderBuilder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.sourcePath != "" {
		data, err := os.ReadFile(b.sourcePath)
		if err != nil {
			return nil, fmt.Errorf("%s: reading source: %w", key, err)
		}
		b.source = string(data)
	}
	if b.source == "" {
		return nil, fmt.Errorf("%s must have a source provided via WithSource or WithSourceFromPath", key)
	}
	if b.pp == nil {
		b.pp = NewPreProcessor()
	}

	processed, err := b.pp.Process(b.source)
	if err != nil {
		return nil, fmt.Errorf("%s: pre-processing: %w", key, err)
	}

	s := &shader{
		key:          key,
		source:       processed,
		shaderType:   shaderType,
		entryPoint:   parseEntryPoint(processed, shaderType),
		declarations: append([]Annotation(nil), b.pp.Declarations()...),
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: processed,
			},
		},
	}
	if shaderType == ShaderTypeVertex {
		if s.vertexLayouts, err = ParseVertexLayouts(processed); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	s.bindGroupLayoutDescriptors, s.bindings = ParseBindings(processed, shaderType.stage())
	s.structLayouts = ParseStructLayouts(processed)
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) Bindings() []Binding {
	return s.bindings
}

func (s *shader) BindGroupVarName(group, binding int) string {
	for _, b := range s.bindings {
		if int(b.Group) == group && int(b.Binding) == binding {
			return b.Var
		}
	}
	return ""
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	for _, b := range s.bindings {
		if int(b.Group) == group && b.Var == varName {
			return int(b.Binding), true
		}
	}
	return -1, false
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) StructLayouts() map[string]layout.Record {
	return s.structLayouts
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}
