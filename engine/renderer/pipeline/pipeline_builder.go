package pipeline

import "github.com/cogentcore/webgpu/wgpu"

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithShaderSource sets the WGSL module and the names of its vertex and fragment entry points.
//
// Parameters:
//   - source: the WGSL source
//   - vertexEntry: the vertex stage entry point
//   - fragmentEntry: the fragment stage entry point
//
// Returns:
//   - PipelineBuilderOption: a function that applies the shader to a pipeline
func WithShaderSource(source, vertexEntry, fragmentEntry string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.shaderSource = source
		p.vertexEntry = vertexEntry
		p.fragmentEntry = fragmentEntry
	}
}

// WithDepthTestEnabled toggles depth testing.
//
// Parameters:
//   - enabled: true to depth test fragments
//
// Returns:
//   - PipelineBuilderOption: a function that applies the option to a pipeline
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled toggles depth writes.
//
// Parameters:
//   - enabled: true to write depth
//
// Returns:
//   - PipelineBuilderOption: a function that applies the option to a pipeline
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithDepthBias sets the depth bias parameters for this pipeline.
//
// Parameters:
//   - bias: the constant depth bias to apply
//   - slopeScale: the slope scale depth bias to apply
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth bias parameters for this pipeline
func WithDepthBias(bias int32, slopeScale float32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthBias = bias
		p.depthBiasSlopeScale = slopeScale
	}
}

// WithCullMode sets the face culling mode.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: a function that applies the option to a pipeline
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology.
//
// Parameters:
//   - topology: the topology
//
// Returns:
//   - PipelineBuilderOption: a function that applies the option to a pipeline
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the winding order treated as front facing.
//
// Parameters:
//   - frontFace: the winding order
//
// Returns:
//   - PipelineBuilderOption: a function that applies the option to a pipeline
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithWriteMask sets the colour channels the pipeline writes.
//
// Parameters:
//   - writeMask: the write mask
//
// Returns:
//   - PipelineBuilderOption: a function that applies the option to a pipeline
func WithWriteMask(writeMask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = writeMask
	}
}
