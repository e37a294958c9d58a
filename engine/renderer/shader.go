package renderer

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-grove/engine/camera"
	"github.com/Carmen-Shannon/oxy-grove/engine/light"
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer/material"
)

//go:embed shaders/forward.wgsl
var forwardShaderBody string

// ForwardShaderSource returns the complete WGSL module of the forward pass: the shared uniform
// struct definitions followed by the main and depth-only vertex stages and the fragment stage.
//
// Returns:
//   - string: the WGSL source
func ForwardShaderSource() string {
	return camera.GPUCameraUniformSource +
		light.GPULightsSource +
		light.GPUShadowDataSource +
		material.GPUMaterialUniformSource +
		GPUFrameUniformSource +
		forwardShaderBody
}
