package renderer

import "sync"

// headlessRendererBackend records frames instead of drawing them.
type headlessRendererBackend struct {
	mu *sync.Mutex

	width       int
	height      int
	configured  int
	presentMode PresentMode
	frames      int
	last        *Frame
	released    bool
}

var _ RendererBackend = &headlessRendererBackend{}

func newHeadlessRendererBackend() *headlessRendererBackend {
	return &headlessRendererBackend{mu: &sync.Mutex{}}
}

func (b *headlessRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
	b.configured++
}

func (b *headlessRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *headlessRendererBackend) DrawFrame(frame *Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames++
	b.last = frame
	return nil
}

func (b *headlessRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.released = true
}
