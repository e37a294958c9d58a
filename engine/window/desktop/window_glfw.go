package desktop

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-grove/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW-backed window.Window that can also produce a WebGPU surface descriptor.
type Window struct {
	window.Events

	win     *glfw.Window
	title   string
	running bool
}

var _ window.Window = &Window{}

// NewWindow creates and shows a GLFW window. The calling goroutine is locked to its OS thread,
// and every later call on the window must come from that goroutine.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - *Window: the window
//   - error: error if GLFW or the window could not be initialized
func NewWindow(options ...window.WindowBuilderOption) (*Window, error) {
	c := window.NewConfig(options...)
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(c.Width, c.Height, c.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(c.MinWidth, c.MinHeight, c.MaxWidth, c.MaxHeight)

	w := &Window{
		win:     win,
		title:   c.Title,
		running: true,
	}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.running = false
			win.SetShouldClose(true)
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.EmitScroll(float32(yoff))
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		var b window.MouseButton
		switch button {
		case glfw.MouseButtonLeft:
			b = window.MouseButtonLeft
		case glfw.MouseButtonRight:
			b = window.MouseButtonRight
		case glfw.MouseButtonMiddle:
			b = window.MouseButtonMiddle
		default:
			return
		}
		xpos, ypos := win.GetCursorPos()
		w.EmitCursor(float32(xpos), float32(ypos))
		w.EmitButton(b, action == glfw.Press)
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.EmitCursor(float32(xpos), float32(ypos))
	})

	// Framebuffer size, not window size: on high-DPI displays the two differ and the surface needs pixels.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.EmitResize(width, height)
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.EmitResize(fbWidth, fbHeight)

	return w, nil
}

// SurfaceDescriptor returns a wgpu.SurfaceDescriptor for the window, created by the wgpuglfw bridge
// (Windows HWND, X11 Xlib, Wayland, macOS Metal).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
//
// Returns:
//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if the window is closed
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.win == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}

func (w *Window) SetTitle(title string) {
	w.title = title
	if w.win != nil {
		w.win.SetTitle(title)
	}
}

func (w *Window) Title() string {
	return w.title
}

// PollEvents polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (w *Window) PollEvents() {
	if w.win == nil {
		return
	}
	glfw.PollEvents()
}

func (w *Window) IsRunning() bool {
	return w.win != nil && w.running && !w.win.ShouldClose()
}

func (w *Window) Close() error {
	if w.win == nil {
		return fmt.Errorf("window is not initialized")
	}
	w.running = false
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	return nil
}
