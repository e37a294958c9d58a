package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("forward")
	assert.Equal(t, "forward", p.PipelineKey())
	assert.Equal(t, "vs_main", p.VertexEntryPoint())
	assert.Equal(t, "fs_main", p.FragmentEntryPoint())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Zero(t, p.DepthBias())
	assert.Nil(t, p.RenderPipeline())
}

func TestDepthOnlyPipeline(t *testing.T) {
	p := NewPipeline("shadow",
		WithShaderSource("// wgsl", "vs_shadow", ""),
		WithDepthBias(2, 1.5),
	)
	assert.Equal(t, "vs_shadow", p.VertexEntryPoint())
	assert.Empty(t, p.FragmentEntryPoint())
	assert.Equal(t, int32(2), p.DepthBias())
	assert.Equal(t, float32(1.5), p.DepthBiasSlopeScale())
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline("double",
		WithShaderSource("// wgsl", "vert", "frag"),
		WithCullMode(wgpu.CullModeNone),
		WithDepthWriteEnabled(false),
		WithDepthTestEnabled(false),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)
	assert.Equal(t, "// wgsl", p.ShaderSource())
	assert.Equal(t, "vert", p.VertexEntryPoint())
	assert.Equal(t, "frag", p.FragmentEntryPoint())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.False(t, p.DepthWriteEnabled())
	assert.False(t, p.DepthTestEnabled())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())

	p.Release()
}
