package window

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle

	mouseButtonCount
)

// ClickSlop is the distance in pixels the cursor may travel between press and release for the pair to count as a click.
// Anything further is a drag.
const ClickSlop float32 = 4

// Window provides platform windowing and input event handling.
// Callbacks fire from inside PollEvents, on the goroutine that polls.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetClickCallback sets the callback for a press and release of the same button without a drag in between.
	//
	// Parameters:
	//   - callback: function receiving the button and the release position
	SetClickCallback(callback func(button MouseButton, x, y float32))

	// SetDragCallback sets the callback for cursor movement while a button is held past ClickSlop.
	//
	// Parameters:
	//   - callback: function receiving the held button and the movement since the previous event
	SetDragCallback(callback func(button MouseButton, dx, dy float32))

	// SetTitle sets the window title.
	//
	// Parameters:
	//   - title: the title text
	SetTitle(title string)

	// Title returns the current window title.
	//
	// Returns:
	//   - string: the title text
	Title() string

	// PollEvents processes pending platform events without blocking and fires the registered callbacks.
	PollEvents()

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

type buttonState struct {
	down     bool
	dragging bool
	travel   float32
}

// Events turns raw platform input into the Window callbacks and tracks the framebuffer size.
// Platform windows embed it and feed it through the Emit methods.
type Events struct {
	width  int
	height int

	cursorX, cursorY float32
	cursorKnown      bool
	buttons          [mouseButtonCount]buttonState

	onResize func(width, height int)
	onScroll func(delta float32)
	onClick  func(button MouseButton, x, y float32)
	onDrag   func(button MouseButton, dx, dy float32)
}

func (e *Events) SetResizeCallback(callback func(width, height int)) {
	e.onResize = callback
}

func (e *Events) SetScrollCallback(callback func(delta float32)) {
	e.onScroll = callback
}

func (e *Events) SetClickCallback(callback func(button MouseButton, x, y float32)) {
	e.onClick = callback
}

func (e *Events) SetDragCallback(callback func(button MouseButton, dx, dy float32)) {
	e.onDrag = callback
}

func (e *Events) Width() int {
	return e.width
}

func (e *Events) Height() int {
	return e.height
}

// EmitResize records the new framebuffer size and fires the resize callback.
//
// Parameters:
//   - width: new width in pixels
//   - height: new height in pixels
func (e *Events) EmitResize(width, height int) {
	e.width, e.height = width, height
	if e.onResize != nil {
		e.onResize(width, height)
	}
}

// EmitScroll fires the scroll callback.
//
// Parameters:
//   - delta: vertical scroll offset
func (e *Events) EmitScroll(delta float32) {
	if e.onScroll != nil {
		e.onScroll(delta)
	}
}

// EmitCursor records a cursor position and fires drag callbacks for held buttons that have moved past ClickSlop.
//
// Parameters:
//   - x: cursor x in pixels
//   - y: cursor y in pixels
func (e *Events) EmitCursor(x, y float32) {
	if !e.cursorKnown {
		e.cursorX, e.cursorY, e.cursorKnown = x, y, true
		return
	}
	dx, dy := x-e.cursorX, y-e.cursorY
	e.cursorX, e.cursorY = x, y

	for i := range e.buttons {
		b := &e.buttons[i]
		if !b.down {
			continue
		}
		if !b.dragging {
			b.travel += abs(dx) + abs(dy)
			if b.travel <= ClickSlop {
				continue
			}
			b.dragging = true
		}
		if e.onDrag != nil {
			e.onDrag(MouseButton(i), dx, dy)
		}
	}
}

// EmitButton records a press or release at the last known cursor position.
// A release that ends a press without a drag fires the click callback.
//
// Parameters:
//   - button: the button
//   - pressed: true for press, false for release
func (e *Events) EmitButton(button MouseButton, pressed bool) {
	if button < 0 || button >= mouseButtonCount {
		return
	}
	b := &e.buttons[button]
	if pressed {
		*b = buttonState{down: true}
		return
	}
	if !b.down {
		return
	}
	click := !b.dragging
	*b = buttonState{}
	if click && e.onClick != nil {
		e.onClick(button, e.cursorX, e.cursorY)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
