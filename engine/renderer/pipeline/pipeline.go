package pipeline

import (
	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It describes a fullscreen render pipeline and holds the WebGPU object once created.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used as its debug label
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	// renderPipeline is nil until the backend registers the pipeline
	renderPipeline *wgpu.RenderPipeline
	// bindGroupLayouts are created alongside renderPipeline, indexed by group
	bindGroupLayouts []*wgpu.BindGroupLayout

	targetFormat wgpu.TextureFormat
	cullMode     wgpu.CullMode
	topology     wgpu.PrimitiveTopology
	frontFace    wgpu.FrontFace
	writeMask    wgpu.ColorWriteMask
}

// Pipeline defines the interface for a render pipeline pairing a vertex and a fragment
// shader with a single colour target. No depth or blending is involved: every pass
// in this renderer overwrites its target.
type Pipeline interface {
	// PipelineKey returns the unique key of the pipeline.
	//
	// Returns:
	//   - string: the key of the pipeline
	PipelineKey() string

	// Shader returns the shader attached for the given stage, or nil.
	//
	// Parameters:
	//   - shaderType: the stage to look up
	//
	// Returns:
	//   - shader.Shader: the attached shader or nil
	Shader(shaderType shader.ShaderType) shader.Shader

	// TargetFormat returns the colour attachment format the pipeline renders into.
	TargetFormat() wgpu.TextureFormat

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order considered front facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the colour write mask of the target.
	WriteMask() wgpu.ColorWriteMask

	// RenderPipeline returns the created WebGPU pipeline, or nil if not registered.
	RenderPipeline() *wgpu.RenderPipeline

	// BindGroupLayout returns the created layout for a bind group index, or nil.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout or nil
	BindGroupLayout(group int) *wgpu.BindGroupLayout

	// SetRenderPipeline stores the created WebGPU pipeline and its bind group layouts.
	//
	// Parameters:
	//   - rp: the WebGPU render pipeline
	//   - layouts: the bind group layouts indexed by group
	SetRenderPipeline(rp *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout)

	// Release releases the GPU pipeline and layouts. Safe to call more than once.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new Pipeline description.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:  pipelineKey,
		targetFormat: wgpu.TextureFormatRGBA8Unorm,
		cullMode:     wgpu.CullModeNone,
		topology:     wgpu.PrimitiveTopologyTriangleList,
		frontFace:    wgpu.FrontFaceCCW,
		writeMask:    wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
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

func (p *pipeline) TargetFormat() wgpu.TextureFormat {
	return p.targetFormat
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) BindGroupLayout(group int) *wgpu.BindGroupLayout {
	if group < 0 || group >= len(p.bindGroupLayouts) {
		return nil
	}
	return p.bindGroupLayouts[group]
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout) {
	p.renderPipeline = rp
	p.bindGroupLayouts = layouts
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	for i, l := range p.bindGroupLayouts {
		if l != nil {
			l.Release()
		}
		p.bindGroupLayouts[i] = nil
	}
	p.bindGroupLayouts = nil
}
