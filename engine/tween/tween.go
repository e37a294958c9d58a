// Package tween schedules eased interpolations of numeric fields and advances them from the frame loop.
package tween

import (
	"sync"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween is a reusable interpolation of a single float32 field toward a fixed target value.
// The start value is sampled from the field each time the tween is started, so a tween created once can be replayed
// from wherever the field currently sits.
type Tween interface {
	// Start samples the field's current value and (re)starts the interpolation toward the target.
	// Starting an active tween restarts it from the field's current value.
	Start()

	// Stop deactivates the tween without firing its completion callback.
	Stop()

	// Active reports whether the tween is currently running.
	//
	// Returns:
	//   - bool: true between Start and completion or Stop
	Active() bool

	// To returns the target value.
	//
	// Returns:
	//   - float32: the value the field holds once the tween completes
	To() float32

	// Duration returns the tween duration in seconds.
	//
	// Returns:
	//   - float32: duration in seconds
	Duration() float32

	// advance steps the tween by dt seconds and reports whether it finished.
	advance(dt float32) bool
}

type tweenImpl struct {
	mu *sync.Mutex

	group *groupImpl

	get func() float32
	set func(float32)

	to       float32
	duration float32
	easing   ease.TweenFunc

	onUpdate   func(value float32)
	onComplete func()

	active bool
	anim   *gween.Tween
}

var _ Tween = &tweenImpl{}

func (t *tweenImpl) Start() {
	t.mu.Lock()
	t.anim = gween.New(t.get(), t.to, t.duration, t.easing)
	t.active = true
	t.mu.Unlock()

	t.group.activate(t)
}

func (t *tweenImpl) Stop() {
	t.mu.Lock()
	t.active = false
	t.anim = nil
	t.mu.Unlock()

	t.group.deactivate(t)
}

func (t *tweenImpl) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *tweenImpl) To() float32 {
	return t.to
}

func (t *tweenImpl) Duration() float32 {
	return t.duration
}

// advance writes the eased value back to the field and fires callbacks outside the lock, so callbacks may start or
// stop other tweens in the same group.
func (t *tweenImpl) advance(dt float32) bool {
	t.mu.Lock()
	if !t.active || t.anim == nil {
		t.mu.Unlock()
		return true
	}
	value, finished := t.anim.Update(dt)
	if finished {
		// completion always leaves the field exactly on the target
		value = t.to
		t.active = false
		t.anim = nil
	}
	onUpdate, onComplete := t.onUpdate, t.onComplete
	t.mu.Unlock()

	t.set(value)
	if onUpdate != nil {
		onUpdate(value)
	}
	if finished && onComplete != nil {
		onComplete()
	}
	return finished
}
