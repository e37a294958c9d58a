package window

import "sync"

// Headless is a Window with no platform surface. Input is injected with its methods, queued,
// and delivered on the next PollEvents like a real event queue.
type Headless struct {
	Events

	mu     *sync.Mutex
	title  string
	queue  []func()
	closed bool
}

var _ Window = &Headless{}

// NewHeadless creates a headless window sized from the configuration.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - *Headless: the window
func NewHeadless(options ...WindowBuilderOption) *Headless {
	c := NewConfig(options...)
	h := &Headless{
		mu:    &sync.Mutex{},
		title: c.Title,
	}
	h.width, h.height = c.Width, c.Height
	return h
}

func (h *Headless) SetTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.title = title
}

func (h *Headless) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

func (h *Headless) PollEvents() {
	h.mu.Lock()
	pending := h.queue
	h.queue = nil
	h.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

func (h *Headless) IsRunning() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.closed
}

func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

// Resize queues a framebuffer resize.
func (h *Headless) Resize(width, height int) {
	h.push(func() { h.EmitResize(width, height) })
}

// MoveCursor queues a cursor move.
func (h *Headless) MoveCursor(x, y float32) {
	h.push(func() { h.EmitCursor(x, y) })
}

// Press queues a button press.
func (h *Headless) Press(button MouseButton) {
	h.push(func() { h.EmitButton(button, true) })
}

// Release queues a button release.
func (h *Headless) Release(button MouseButton) {
	h.push(func() { h.EmitButton(button, false) })
}

// Click queues a cursor move to (x, y) followed by a press and release of button.
func (h *Headless) Click(button MouseButton, x, y float32) {
	h.MoveCursor(x, y)
	h.Press(button)
	h.Release(button)
}

// Scroll queues a scroll wheel event.
func (h *Headless) Scroll(delta float32) {
	h.push(func() { h.EmitScroll(delta) })
}

// RequestClose closes the window as if the user had closed it.
func (h *Headless) RequestClose() {
	_ = h.Close()
}

func (h *Headless) push(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, fn)
}
