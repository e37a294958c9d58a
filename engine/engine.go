package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-grove/engine/camera"
	"github.com/Carmen-Shannon/oxy-grove/engine/profiler"
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer"
	"github.com/Carmen-Shannon/oxy-grove/engine/scene"
	"github.com/Carmen-Shannon/oxy-grove/engine/tween"
	"github.com/Carmen-Shannon/oxy-grove/engine/window"
)

var (
	// ErrNoWindow is returned by NewEngine when no window was supplied.
	ErrNoWindow = errors.New("engine: no window")

	// ErrNoRenderer is returned by NewEngine when no renderer was supplied.
	ErrNoRenderer = errors.New("engine: no renderer")
)

// engine implements the Engine interface.
// Everything it owns is touched only from the goroutine running Run or Step.
type engine struct {
	mu     *sync.Mutex
	posted []func()

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window     window.Window
	renderer   renderer.Renderer
	scene      scene.Scene
	camera     camera.Camera
	controller camera.CameraController
	tweens     tween.Group
	logger     *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It owns the frame loop: each frame polls window events, runs posted tasks, advances tweens,
// applies the camera controller, calls the tick callback and renders the scene.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer used to draw each frame.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Scene returns the scene drawn each frame.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Camera returns the camera the scene is drawn from.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Controller returns the input controller applied to the camera each frame.
	//
	// Returns:
	//   - camera.CameraController: the controller
	Controller() camera.CameraController

	// Tweens returns the tween group advanced each frame.
	//
	// Returns:
	//   - tween.Group: the group
	Tweens() tween.Group

	// Post queues fn to run on the frame loop before the next frame's tweens advance.
	// Safe to call from any goroutine. Satisfies loader.Dispatcher.
	//
	// Parameters:
	//   - fn: the function to run
	Post(fn func())

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per frame, after tweens and the controller
	// and before rendering.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Step runs exactly one frame with the given delta time.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous frame
	//
	// Returns:
	//   - error: the render error, if any
	Step(dt float32) error

	// Run runs frames until the window closes, Quit is called or ctx is done.
	// Must be called from the goroutine that created the window.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() on cancellation, a render error, or a recovered panic
	Run(ctx context.Context) error

	// Quit stops Run after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// A window and a renderer are required. The scene, camera, controller and tween group default to empty ones;
// the default orbit controller is disabled.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: ErrNoWindow or ErrNoRenderer when either is missing
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		mu:          &sync.Mutex{},
		quitChannel: make(chan struct{}),
		logger:      slog.Default(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		return nil, ErrNoWindow
	}
	if e.renderer == nil {
		return nil, ErrNoRenderer
	}
	if e.scene == nil {
		e.scene = scene.NewScene("main")
	}
	if e.camera == nil {
		e.camera = camera.NewCamera()
	}
	if e.controller == nil {
		e.controller = camera.NewOrbitController()
	}
	if e.tweens == nil {
		e.tweens = tween.NewGroup()
	}
	e.logger = e.logger.With("component", "engine")
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	e.window.SetResizeCallback(func(width, height int) {
		if height > 0 {
			e.camera.SetAspect(float32(width) / float32(height))
			e.camera.UpdateProjection()
		}
		e.renderer.Resize(width, height)
	})
	e.window.SetDragCallback(func(button window.MouseButton, dx, dy float32) {
		if button == window.MouseButtonLeft {
			e.controller.Rotate(dx, dy)
		}
	})
	e.window.SetScrollCallback(func(delta float32) {
		e.controller.Zoom(delta)
	})

	if w, h := e.window.Width(), e.window.Height(); h > 0 {
		e.camera.SetAspect(float32(w) / float32(h))
		e.camera.UpdateProjection()
	}
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Controller() camera.CameraController {
	return e.controller
}

func (e *engine) Tweens() tween.Group {
	return e.tweens
}

func (e *engine) Post(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.posted = append(e.posted, fn)
}

// runPosted runs the tasks queued so far. Tasks posted while running wait for the next frame.
func (e *engine) runPosted() {
	e.mu.Lock()
	tasks := e.posted
	e.posted = nil
	e.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
}

func (e *engine) Step(dt float32) error {
	e.window.PollEvents()
	e.runPosted()

	e.tweens.Update(dt)
	e.controller.Update(e.camera)

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if err := e.renderer.Render(e.scene, e.camera); err != nil {
		return err
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}
	return nil
}

func (e *engine) Run(ctx context.Context) (err error) {
	// Recover from panics inside the frame loop and report them as an error.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("frame loop recovered from panic", "panic", r)
			err = fmt.Errorf("frame loop panic: %v", r)
		}
		e.signalQuit()
	}()

	lastFrame := time.Now()
	for e.window.IsRunning() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quitChannel:
			return nil
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		if err := e.Step(dt); err != nil {
			return err
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
	return nil
}

// Quit signals the frame loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickCallback registers the function called each frame.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
