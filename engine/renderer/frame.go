package renderer

import (
	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/model"
)

// DrawItem is one instanced model: its geometry is drawn once per material group for every visible instance.
type DrawItem struct {
	Model     model.Model
	Instances []GPUInstance
}

// ShadowPass is the depth-only pass drawn from the shadow-casting directional light before the main pass.
type ShadowPass struct {
	// Resolution is the width and height of the shadow map in texels.
	Resolution int

	// Casters are the shadow-casting objects inside the light's shadow box, one item per model.
	Casters []DrawItem
}

// Frame is everything a backend needs to draw one frame.
type Frame struct {
	Width   int
	Height  int
	Clear   common.Color
	Uniform GPUFrameUniform
	Draws   []DrawItem

	// Shadow is nil when no enabled directional light casts shadows.
	Shadow *ShadowPass
}

// FrameStats counts what the renderer has drawn.
type FrameStats struct {
	// Frames is the number of frames drawn.
	Frames uint64
	// Skipped is the number of frames not drawn, because the surface was zero-sized or unavailable.
	Skipped uint64
	// DrawCalls is the number of instanced draws of the main pass in the last frame, one per material group.
	DrawCalls int
	// Instances is the number of objects drawn in the last frame.
	Instances int
	// ShadowCasters is the number of objects drawn into the shadow map in the last frame.
	ShadowCasters int
}
