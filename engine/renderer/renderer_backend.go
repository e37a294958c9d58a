package renderer

import "errors"

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless selects a backend that records frames without a GPU.
	BackendTypeHeadless
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ErrFrameSkipped is returned by a backend when no surface image could be acquired this frame,
// for example while the surface is being reconfigured. The renderer counts it and moves on.
var ErrFrameSkipped = errors.New("frame skipped")

// ErrSurfaceUnsupported is returned when the surface cannot produce what the selected backend needs.
var ErrSurfaceUnsupported = errors.New("surface does not support the selected backend")

// RendererBackend draws fully prepared frames.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and size-dependent attachments.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode changes the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// DrawFrame clears the surface, draws every item of the frame and presents it.
	//
	// Parameters:
	//   - frame: the frame to draw
	//
	// Returns:
	//   - error: ErrFrameSkipped if nothing was drawn, or any GPU error
	DrawFrame(frame *Frame) error

	// Release frees every GPU resource held by the backend.
	Release()
}
