package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the render state a WebGPU render pipeline is created from and, once created, the pipeline itself.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// shaderSource is the WGSL module holding both entry points
	shaderSource   string
	vertexEntry    string
	fragmentEntry  string
	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled    bool
	depthWriteEnabled   bool
	depthBias           int32
	depthBiasSlopeScale float32
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
}

// Pipeline defines the interface for a GPU render pipeline: a WGSL module with vertex and fragment
// entry points plus the depth, cull and topology state the pipeline is created with.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// ShaderSource returns the WGSL source of the pipeline's shader module.
	//
	// Returns:
	//   - string: the WGSL source
	ShaderSource() string

	// VertexEntryPoint returns the name of the vertex stage entry point.
	//
	// Returns:
	//   - string: the entry point
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the fragment stage entry point. Empty for depth-only pipelines.
	//
	// Returns:
	//   - string: the entry point
	FragmentEntryPoint() string

	// RenderPipeline returns the created WebGPU pipeline, or nil before the backend has created it.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the pipeline or nil
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the created WebGPU pipeline.
	//
	// Parameters:
	//   - rp: the created pipeline
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// DepthTestEnabled reports whether fragments are depth tested.
	//
	// Returns:
	//   - bool: true if depth testing is on
	DepthTestEnabled() bool

	// DepthWriteEnabled reports whether fragments write depth.
	//
	// Returns:
	//   - bool: true if depth writes are on
	DepthWriteEnabled() bool

	// DepthBias returns the constant depth bias added to every fragment.
	//
	// Returns:
	//   - int32: the bias
	DepthBias() int32

	// DepthBiasSlopeScale returns the depth bias scaled by the fragment's depth slope.
	//
	// Returns:
	//   - float32: the slope scale
	DepthBiasSlopeScale() float32

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the topology
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order treated as front facing.
	//
	// Returns:
	//   - wgpu.FrontFace: the winding order
	FrontFace() wgpu.FrontFace

	// WriteMask returns the colour channels the pipeline writes.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the write mask
	WriteMask() wgpu.ColorWriteMask

	// Release releases the created WebGPU pipeline.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new render Pipeline with the given key and options.
// Defaults: depth test and write on, back-face culling, triangle list, counter-clockwise front faces, all channels written.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: functional options to configure the pipeline
//
// Returns:
//   - Pipeline: the configured pipeline, not yet created on the GPU
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		vertexEntry:       "vs_main",
		fragmentEntry:     "fs_main",
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeBack,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) ShaderSource() string {
	return p.shaderSource
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntry
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntry
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthBias() int32 {
	return p.depthBias
}

func (p *pipeline) DepthBiasSlopeScale() float32 {
	return p.depthBiasSlopeScale
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

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
