package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/camera"
	"github.com/Carmen-Shannon/oxy-grove/engine/light"
	"github.com/Carmen-Shannon/oxy-grove/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// Surface is anything with a pixel size the renderer can draw to. window.Window satisfies it.
type Surface interface {
	Width() int
	Height() int
}

// WGPUSurface is a Surface that can also describe itself to WebGPU. Required by BackendTypeWGPU.
type WGPUSurface interface {
	Surface
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	logger      *slog.Logger

	width  int
	height int
	stats  FrameStats

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer draws a scene from a camera.
//
// Each Render culls the scene against the camera frustum and groups what is left into one instanced draw per model
// and material group. When a directional light casts shadows, the shadow casters inside its shadow box are collected
// for a depth-only pass. The frame uniform carries the camera, fog, lights, shadow light and exposure.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	// A zero width or height pauses drawing until the next non-zero resize.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Render draws one frame of the scene as seen by the camera and presents it.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the viewing camera
	//
	// Returns:
	//   - error: an error if the backend failed to draw
	Render(s scene.Scene, cam camera.Camera) error

	// Stats returns the counters of drawn and skipped frames.
	//
	// Returns:
	//   - FrameStats: the counters
	Stats() FrameStats

	// Release frees every GPU resource held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend, drawing to the given surface.
// BackendTypeWGPU needs a surface implementing WGPUSurface; BackendTypeHeadless only uses its size.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surface: the surface to draw to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if the backend could not be created
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		logger:      slog.Default(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	r.logger = r.logger.With("component", "renderer")

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeHeadless:
		r.backend = newHeadlessRendererBackend()
	case BackendTypeWGPU:
		ws, ok := surface.(WGPUSurface)
		if !ok {
			return nil, fmt.Errorf("wgpu backend: %w", ErrSurfaceUnsupported)
		}
		b, err := newWGPURendererBackend(ws.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
		if err != nil {
			return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = b
	default:
		return nil, fmt.Errorf("unknown renderer backend type %d", backendType)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if surface != nil {
		r.width, r.height = surface.Width(), surface.Height()
	}
	if r.width > 0 && r.height > 0 {
		r.backend.ConfigureSurface(r.width, r.height)
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend.SetPresentMode(mode)
	if r.width > 0 && r.height > 0 {
		r.backend.ConfigureSurface(r.width, r.height)
	}
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.width <= 0 || r.height <= 0 {
		r.stats.Skipped++
		return nil
	}

	frustum := common.ExtractFrustum(cam.ViewProjectionMatrix())
	batches := s.Batches(&frustum)

	frame := &Frame{
		Width:   r.width,
		Height:  r.height,
		Clear:   s.Background(),
		Uniform: NewFrameUniform(cam, s),
		Draws:   make([]DrawItem, 0, len(batches)),
	}
	instances, drawCalls := 0, 0
	for _, b := range batches {
		item := DrawItem{Model: b.Model, Instances: make([]GPUInstance, len(b.Objects))}
		for i, obj := range b.Objects {
			item.Instances[i] = NewGPUInstance(obj)
		}
		frame.Draws = append(frame.Draws, item)
		instances += len(item.Instances)
		drawCalls += len(b.Model.Groups())
	}
	casters := 0
	if sl := light.ShadowCaster(s.Lights()); sl != nil {
		frame.Shadow = r.shadowPass(s, sl)
		for _, c := range frame.Shadow.Casters {
			casters += len(c.Instances)
		}
	}

	if err := r.backend.DrawFrame(frame); err != nil {
		if errors.Is(err, ErrFrameSkipped) {
			r.stats.Skipped++
			r.logger.Debug("frame skipped", "error", err)
			return nil
		}
		return fmt.Errorf("failed to draw frame %d: %w", r.stats.Frames, err)
	}

	r.stats.Frames++
	r.stats.DrawCalls = drawCalls
	r.stats.Instances = instances
	r.stats.ShadowCasters = casters
	return nil
}

// shadowPass collects the shadow casters that fall inside the light's shadow box.
func (r *renderer) shadowPass(s scene.Scene, sl light.Light) *ShadowPass {
	box := common.ExtractFrustum(sl.ShadowViewProjection())
	pass := &ShadowPass{Resolution: light.ShadowMapResolution}
	for _, b := range s.Batches(&box) {
		var item DrawItem
		for _, obj := range b.Objects {
			if obj.CastShadow() {
				item.Instances = append(item.Instances, NewGPUInstance(obj))
			}
		}
		if len(item.Instances) > 0 {
			item.Model = b.Model
			pass.Casters = append(pass.Casters, item)
		}
	}
	return pass
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}
