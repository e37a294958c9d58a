package tween

import (
	"sync"

	"github.com/tanema/gween/ease"
)

type groupImpl struct {
	mu     *sync.Mutex
	active []*tweenImpl
}

// Group owns a set of tweens and advances the active ones together.
// Update is meant to be called once per frame from the frame loop.
type Group interface {
	// New creates a tween bound to this group. The tween is inactive until Start is called.
	//
	// Parameters:
	//   - get: reads the field's current value
	//   - set: writes a new value to the field
	//   - to: the target value
	//   - duration: duration in seconds
	//   - options: functional options to configure easing and callbacks
	//
	// Returns:
	//   - Tween: the newly created tween
	New(get func() float32, set func(float32), to, duration float32, options ...TweenBuilderOption) Tween

	// Update advances every active tween by dt seconds, in the order they were started.
	// Tweens started by a callback during Update are first advanced on the next call.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// ActiveCount returns the number of running tweens.
	//
	// Returns:
	//   - int: the number of active tweens
	ActiveCount() int
}

var _ Group = &groupImpl{}

// NewGroup creates an empty tween group.
//
// Returns:
//   - Group: the new group
func NewGroup() Group {
	return &groupImpl{mu: &sync.Mutex{}}
}

func (g *groupImpl) New(get func() float32, set func(float32), to, duration float32, options ...TweenBuilderOption) Tween {
	t := &tweenImpl{
		mu:       &sync.Mutex{},
		group:    g,
		get:      get,
		set:      set,
		to:       to,
		duration: duration,
		easing:   ease.Linear,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (g *groupImpl) Update(dt float32) {
	g.mu.Lock()
	snapshot := make([]*tweenImpl, len(g.active))
	copy(snapshot, g.active)
	g.mu.Unlock()

	for _, t := range snapshot {
		if t.advance(dt) {
			g.deactivate(t)
		}
	}
}

func (g *groupImpl) ActiveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.active)
}

func (g *groupImpl) activate(t *tweenImpl) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, a := range g.active {
		if a == t {
			return
		}
	}
	g.active = append(g.active, t)
}

// deactivate removes t unless it was restarted in the meantime.
func (g *groupImpl) deactivate(t *tweenImpl) {
	if t.Active() {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, a := range g.active {
		if a == t {
			g.active = append(g.active[:i], g.active[i+1:]...)
			return
		}
	}
}
