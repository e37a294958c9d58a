package tween

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

type field struct {
	v float32
}

func (f *field) get() float32  { return f.v }
func (f *field) set(v float32) { f.v = v }

func TestTweenReachesTargetExactly(t *testing.T) {
	g := NewGroup()
	f := &field{v: 45}
	completed := 0
	tw := g.New(f.get, f.set, 110, 1, WithEasing(ease.InQuad), WithOnComplete(func() { completed++ }))

	tw.Start()
	require.True(t, tw.Active())
	for range 4 {
		g.Update(0.25)
	}

	assert.Equal(t, float32(110), f.v)
	assert.Equal(t, 1, completed)
	assert.False(t, tw.Active())
	assert.Equal(t, 0, g.ActiveCount())
}

func TestTweenEaseInQuadMidpoint(t *testing.T) {
	g := NewGroup()
	f := &field{v: 0}
	tw := g.New(f.get, f.set, 100, 1, WithEasing(ease.InQuad))

	tw.Start()
	g.Update(0.5)
	assert.InDelta(t, 25, f.v, 1e-4)
}

func TestTweenSamplesStartOnEachStart(t *testing.T) {
	g := NewGroup()
	f := &field{v: 5}
	tw := g.New(f.get, f.set, 3, 1)

	tw.Start()
	g.Update(1)
	require.Equal(t, float32(3), f.v)

	f.v = 10
	tw.Start()
	g.Update(0.5)
	assert.InDelta(t, 6.5, f.v, 1e-5)
}

func TestTweenOnUpdateReceivesWrittenValue(t *testing.T) {
	g := NewGroup()
	f := &field{}
	var seen []float32
	tw := g.New(f.get, f.set, 1, 1, WithOnUpdate(func(v float32) {
		assert.Equal(t, f.v, v)
		seen = append(seen, v)
	}))

	tw.Start()
	g.Update(0.5)
	g.Update(0.5)
	g.Update(0.5)

	assert.Equal(t, []float32{0.5, 1}, seen)
}

func TestTweenStopSkipsCompletion(t *testing.T) {
	g := NewGroup()
	f := &field{}
	completed := false
	tw := g.New(f.get, f.set, 1, 1, WithOnComplete(func() { completed = true }))

	tw.Start()
	g.Update(0.5)
	tw.Stop()
	g.Update(1)

	assert.False(t, completed)
	assert.InDelta(t, 0.5, f.v, 1e-6)
	assert.Equal(t, 0, g.ActiveCount())
}

func TestTweenRestartDoesNotDuplicate(t *testing.T) {
	g := NewGroup()
	f := &field{}
	tw := g.New(f.get, f.set, 1, 1)

	tw.Start()
	tw.Start()
	assert.Equal(t, 1, g.ActiveCount())
}

func TestCompletionMayStartAnotherTween(t *testing.T) {
	g := NewGroup()
	a, b := &field{}, &field{}
	second := g.New(b.get, b.set, 1, 1)
	first := g.New(a.get, a.set, 1, 1, WithOnComplete(second.Start))

	first.Start()
	g.Update(1)
	assert.True(t, second.Active())
	assert.Equal(t, float32(0), b.v)

	g.Update(1)
	assert.Equal(t, float32(1), b.v)
	assert.Equal(t, 0, g.ActiveCount())
}
