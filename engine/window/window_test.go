package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	clicks  []MouseButton
	drags   [][2]float32
	resizes [][2]int
	scrolls []float32
}

func record(w Window) *recorded {
	r := &recorded{}
	w.SetClickCallback(func(b MouseButton, x, y float32) { r.clicks = append(r.clicks, b) })
	w.SetDragCallback(func(b MouseButton, dx, dy float32) { r.drags = append(r.drags, [2]float32{dx, dy}) })
	w.SetResizeCallback(func(width, height int) { r.resizes = append(r.resizes, [2]int{width, height}) })
	w.SetScrollCallback(func(d float32) { r.scrolls = append(r.scrolls, d) })
	return r
}

func TestNewConfigDefaultsAndOptions(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, 1280, c.Width)
	assert.Equal(t, 720, c.Height)

	c = NewConfig(WithTitle("grove"), WithWidth(800), WithHeight(600), WithMinSize(10, 20), WithMaxSize(30, 40))
	assert.Equal(t, Config{Title: "grove", Width: 800, Height: 600, MinWidth: 10, MinHeight: 20, MaxWidth: 30, MaxHeight: 40}, c)
}

func TestHeadlessDeliversOnPoll(t *testing.T) {
	h := NewHeadless(WithWidth(640), WithHeight(480))
	r := record(h)

	h.Click(MouseButtonLeft, 10, 10)
	h.Resize(1024, 512)
	h.Scroll(-1)
	assert.Empty(t, r.clicks)
	assert.Equal(t, 640, h.Width())

	h.PollEvents()
	assert.Equal(t, []MouseButton{MouseButtonLeft}, r.clicks)
	assert.Equal(t, [][2]int{{1024, 512}}, r.resizes)
	assert.Equal(t, []float32{-1}, r.scrolls)
	assert.Equal(t, 1024, h.Width())
	assert.Equal(t, 512, h.Height())

	h.PollEvents()
	assert.Len(t, r.clicks, 1)
}

func TestDragSuppressesClick(t *testing.T) {
	h := NewHeadless()
	r := record(h)

	h.MoveCursor(0, 0)
	h.Press(MouseButtonLeft)
	h.MoveCursor(2, 0)
	h.MoveCursor(10, 0)
	h.MoveCursor(10, 5)
	h.Release(MouseButtonLeft)
	h.PollEvents()

	assert.Empty(t, r.clicks)
	require.Len(t, r.drags, 2)
	assert.Equal(t, [2]float32{8, 0}, r.drags[0])
	assert.Equal(t, [2]float32{0, 5}, r.drags[1])
}

func TestSmallMovementStillClicks(t *testing.T) {
	h := NewHeadless()
	r := record(h)

	h.MoveCursor(0, 0)
	h.Press(MouseButtonRight)
	h.MoveCursor(1, 1)
	h.Release(MouseButtonRight)
	h.PollEvents()

	assert.Equal(t, []MouseButton{MouseButtonRight}, r.clicks)
	assert.Empty(t, r.drags)
}

func TestReleaseWithoutPressIsIgnored(t *testing.T) {
	h := NewHeadless()
	r := record(h)
	h.Release(MouseButtonLeft)
	h.Press(MouseButton(7))
	h.PollEvents()
	assert.Empty(t, r.clicks)
}

func TestHeadlessTitleAndClose(t *testing.T) {
	h := NewHeadless(WithTitle("click to zoom"))
	assert.Equal(t, "click to zoom", h.Title())
	h.SetTitle("")
	assert.Empty(t, h.Title())

	assert.True(t, h.IsRunning())
	h.RequestClose()
	assert.False(t, h.IsRunning())
}
