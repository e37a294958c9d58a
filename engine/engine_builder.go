package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-grove/engine/camera"
	"github.com/Carmen-Shannon/oxy-grove/engine/profiler"
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer"
	"github.com/Carmen-Shannon/oxy-grove/engine/scene"
	"github.com/Carmen-Shannon/oxy-grove/engine/tween"
	"github.com/Carmen-Shannon/oxy-grove/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler ticked once per frame while profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose events drive the frame loop.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer that draws each frame.
//
// Parameters:
//   - r: a renderer bound to the window's surface
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene sets the scene drawn each frame.
//
// Parameters:
//   - s: the Scene to draw
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithCamera sets the camera the scene is drawn from.
//
// Parameters:
//   - c: the viewing camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithController sets the input controller applied to the camera each frame.
//
// Parameters:
//   - c: the camera controller
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithController(c camera.CameraController) EngineBuilderOption {
	return func(e *engine) {
		e.controller = c
	}
}

// WithTweens sets the tween group advanced each frame.
//
// Parameters:
//   - g: the tween group
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTweens(g tween.Group) EngineBuilderOption {
	return func(e *engine) {
		e.tweens = g
	}
}

// WithTickCallback registers the function called once per frame before rendering.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithLogger sets the logger used by the engine and its default profiler.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}
