package pipeline

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrMissingShader is returned when a pass is missing a shader its stage requires.
	ErrMissingShader = errors.New("pipeline is missing a shader")

	// ErrBindingMismatch is returned when a shader declares a binding the shared layout does not.
	ErrBindingMismatch = errors.New("shader binding does not match the shared layout")
)

// Pass identifies which stage of the deferred frame a pipeline draws.
type Pass int

const (
	// PassShadow renders scene depth from the first sunlight into the shadow map.
	PassShadow Pass = iota

	// PassGBuffer renders the mesh attributes into the G-buffer.
	PassGBuffer

	// PassComposition shades a screen-space quad from the G-buffer and the light list.
	PassComposition
)

func (p Pass) String() string {
	switch p {
	case PassShadow:
		return "shadow"
	case PassGBuffer:
		return "gbuffer"
	case PassComposition:
		return "composition"
	default:
		return fmt.Sprintf("Pass(%d)", int(p))
	}
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pass        Pass
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	// vertexLayouts overrides the layouts parsed from the vertex shader when set
	vertexLayouts []wgpu.VertexBufferLayout

	bindGroupLayouts []wgpu.BindGroupLayoutDescriptor
}

// Pipeline is the interface of one pass of the deferred frame as seen by the host: the
// shaders it runs, the vertex buffers it reads and the bind group layouts it binds.
type Pipeline interface {
	// Pass returns the frame stage this pipeline draws.
	//
	// Returns:
	//   - Pass: the pass
	Pass() Pass

	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader associated with the specified type if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the type of shader to retrieve (vertex or fragment)
	//
	// Returns:
	//   - shader.Shader: the shader associated with the specified type, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// VertexLayouts returns the vertex buffer layouts bound by this pipeline.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the explicit layouts, or those parsed from the vertex shader
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayouts returns the bind group layouts in group order.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutDescriptor: index i is @group(i)
	BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline for a pass.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - pass: the frame stage the pipeline draws
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, pass Pass, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		pass:        pass,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Pass() Pass {
	return p.pass
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	if p.vertexLayouts != nil {
		return p.vertexLayouts
	}
	if p.vertexShader == nil {
		return nil
	}
	return p.vertexShader.VertexLayouts()
}

func (p *pipeline) BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	return p.bindGroupLayouts
}
