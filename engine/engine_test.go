package engine

import (
	"context"
	"testing"

	"github.com/Carmen-Shannon/oxy-grove/engine/camera"
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer"
	"github.com/Carmen-Shannon/oxy-grove/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, options ...EngineBuilderOption) (Engine, *window.Headless) {
	t.Helper()
	win := window.NewHeadless(window.WithWidth(800), window.WithHeight(600))
	r, err := renderer.NewRenderer(renderer.BackendTypeHeadless, win)
	require.NoError(t, err)
	e, err := NewEngine(append([]EngineBuilderOption{WithWindow(win), WithRenderer(r)}, options...)...)
	require.NoError(t, err)
	return e, win
}

func TestNewEngineRequiresWindowAndRenderer(t *testing.T) {
	_, err := NewEngine()
	assert.ErrorIs(t, err, ErrNoWindow)

	_, err = NewEngine(WithWindow(window.NewHeadless()))
	assert.ErrorIs(t, err, ErrNoRenderer)
}

func TestNewEngineDefaults(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.NotNil(t, e.Scene())
	assert.NotNil(t, e.Camera())
	assert.NotNil(t, e.Tweens())
	require.NotNil(t, e.Controller())
	assert.False(t, e.Controller().Enabled())
	assert.InDelta(t, 800.0/600.0, e.Camera().Aspect(), 1e-6)
}

func TestStepOrder(t *testing.T) {
	var order []string
	e, win := newTestEngine(t, WithTickCallback(func(dt float32) {
		order = append(order, "tick")
	}))
	win.SetClickCallback(func(window.MouseButton, float32, float32) {
		order = append(order, "click")
	})

	var field float32
	e.Tweens().New(func() float32 { return field }, func(v float32) { field = v }, 1, 1).Start()

	win.Click(window.MouseButtonLeft, 10, 10)
	e.Post(func() { order = append(order, "posted") })

	require.NoError(t, e.Step(0.5))
	assert.Equal(t, []string{"click", "posted", "tick"}, order)
	assert.Greater(t, field, float32(0))
	assert.Equal(t, uint64(1), e.Renderer().Stats().Frames)
}

func TestPostFromTaskWaitsForNextFrame(t *testing.T) {
	e, _ := newTestEngine(t)
	ran := 0
	e.Post(func() {
		e.Post(func() { ran++ })
	})

	require.NoError(t, e.Step(0.016))
	assert.Zero(t, ran)
	require.NoError(t, e.Step(0.016))
	assert.Equal(t, 1, ran)
}

func TestResizeUpdatesAspectOnly(t *testing.T) {
	cam := camera.NewCamera(camera.WithFov(45), camera.WithPosition(0, 2, 5))
	e, win := newTestEngine(t, WithCamera(cam))

	win.Resize(1000, 500)
	require.NoError(t, e.Step(0.016))

	assert.InDelta(t, 2.0, cam.Aspect(), 1e-6)
	assert.Equal(t, float32(45), cam.Fov())
	assert.Equal(t, mgl32.Vec3{0, 2, 5}, cam.Position())
	assert.Equal(t, 1000, win.Width())
}

func TestZeroHeightResizeKeepsAspect(t *testing.T) {
	e, win := newTestEngine(t)
	before := e.Camera().Aspect()

	win.Resize(800, 0)
	require.NoError(t, e.Step(0.016))

	assert.Equal(t, before, e.Camera().Aspect())
	assert.Equal(t, uint64(1), e.Renderer().Stats().Skipped)
}

func TestDragOrbitsWhenControllerEnabled(t *testing.T) {
	e, win := newTestEngine(t, WithController(camera.NewOrbitController(camera.WithEnabled(true))))
	start := e.Camera().Position()

	win.MoveCursor(100, 100)
	win.Press(window.MouseButtonLeft)
	win.MoveCursor(160, 100)
	win.Release(window.MouseButtonLeft)
	require.NoError(t, e.Step(0.016))

	assert.NotEqual(t, start, e.Camera().Position())
}

func TestDragIgnoredWhenControllerDisabled(t *testing.T) {
	e, win := newTestEngine(t)
	start := e.Camera().Position()

	win.MoveCursor(100, 100)
	win.Press(window.MouseButtonLeft)
	win.MoveCursor(160, 100)
	win.Release(window.MouseButtonLeft)
	win.Scroll(3)
	require.NoError(t, e.Step(0.016))

	assert.Equal(t, start, e.Camera().Position())
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	frames := 0
	var win *window.Headless
	var e Engine
	e, win = newTestEngine(t, WithTickCallback(func(float32) {
		frames++
		if frames == 5 {
			win.RequestClose()
		}
	}))

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 5, frames)
	assert.Equal(t, uint64(5), e.Renderer().Stats().Frames)
}

func TestRunStopsOnQuit(t *testing.T) {
	frames := 0
	var e Engine
	e, _ = newTestEngine(t, WithTickCallback(func(float32) {
		frames++
		if frames == 3 {
			e.Quit()
			e.Quit()
		}
	}))

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 3, frames)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	e, _ := newTestEngine(t, WithTickCallback(func(float32) {
		frames++
		if frames == 2 {
			cancel()
		}
	}))

	assert.ErrorIs(t, e.Run(ctx), context.Canceled)
	assert.Equal(t, 2, frames)
}

func TestRunRecoversPanic(t *testing.T) {
	e, _ := newTestEngine(t, WithTickCallback(func(float32) {
		panic("boom")
	}))

	err := e.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestFrameDuration(t *testing.T) {
	assert.Zero(t, frameDuration(0))
	assert.Zero(t, frameDuration(-30))
	assert.InDelta(t, 16.666e6, float64(frameDuration(60)), 1e3)
}
