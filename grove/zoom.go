package grove

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-grove/engine/camera"
	"github.com/Carmen-Shannon/oxy-grove/engine/tween"
	"github.com/go-gl/mathgl/mgl32"
)

// ZoomState is the resting state of the zoom.
type ZoomState int

const (
	// ZoomFar is the initial state: narrow field of view, camera pulled back.
	ZoomFar ZoomState = iota

	// ZoomNear is the wide field of view with the camera moved in.
	ZoomNear
)

func (s ZoomState) String() string {
	switch s {
	case ZoomFar:
		return "far"
	case ZoomNear:
		return "near"
	default:
		return "unknown"
	}
}

// zoomImpl is the implementation of the Zoom interface.
type zoomImpl struct {
	mu *sync.Mutex

	state         ZoomState
	transitioning bool

	// Each direction pairs a field-of-view tween with a depth tween of the same duration and easing.
	toNear [2]tween.Tween
	toFar  [2]tween.Tween
}

// Zoom toggles the camera between a far and a near framing.
// A transition animates the field of view and the camera depth together; only the depth tween
// commits the new state when it completes.
type Zoom interface {
	// Toggle starts a transition toward the other state.
	// Does nothing while a transition is running.
	//
	// Returns:
	//   - bool: true if a transition started
	Toggle() bool

	// State returns the current resting state. It changes only when a transition completes.
	//
	// Returns:
	//   - ZoomState: ZoomFar or ZoomNear
	State() ZoomState

	// Transitioning reports whether a transition is running.
	//
	// Returns:
	//   - bool: true between Toggle and the depth tween's completion
	Transitioning() bool
}

var _ Zoom = &zoomImpl{}

// NewZoom creates the zoom tweens on group, bound to cam. The zoom starts in ZoomFar.
// Tweens are created once and restarted on every toggle.
//
// Parameters:
//   - cam: the camera whose field of view and depth are animated
//   - group: the tween group advanced by the frame loop
//   - cfg: the zoom targets, duration and easing
//
// Returns:
//   - Zoom: the zoom state machine
//   - error: error if the easing name is unknown
func NewZoom(cam camera.Camera, group tween.Group, cfg ZoomConfig) (Zoom, error) {
	easing, err := cfg.EasingFunc()
	if err != nil {
		return nil, err
	}
	z := &zoomImpl{
		mu:    &sync.Mutex{},
		state: ZoomFar,
	}

	getFov := cam.Fov
	setFov := cam.SetFov
	getDepth := func() float32 { return cam.Position().Z() }
	setDepth := func(v float32) {
		p := cam.Position()
		cam.SetPosition(mgl32.Vec3{p.X(), p.Y(), v})
	}
	updateProjection := tween.WithOnUpdate(func(float32) { cam.UpdateProjection() })

	z.toNear = [2]tween.Tween{
		group.New(getFov, setFov, cfg.NearFov, cfg.Duration, tween.WithEasing(easing), updateProjection),
		group.New(getDepth, setDepth, cfg.NearDepth, cfg.Duration, tween.WithEasing(easing),
			tween.WithOnComplete(func() { z.commit(ZoomNear) })),
	}
	z.toFar = [2]tween.Tween{
		group.New(getFov, setFov, cfg.FarFov, cfg.Duration, tween.WithEasing(easing), updateProjection),
		group.New(getDepth, setDepth, cfg.FarDepth, cfg.Duration, tween.WithEasing(easing),
			tween.WithOnComplete(func() { z.commit(ZoomFar) })),
	}
	return z, nil
}

func (z *zoomImpl) Toggle() bool {
	z.mu.Lock()
	if z.transitioning {
		z.mu.Unlock()
		return false
	}
	z.transitioning = true
	pair := z.toNear
	if z.state == ZoomNear {
		pair = z.toFar
	}
	z.mu.Unlock()

	for _, t := range pair {
		t.Start()
	}
	return true
}

// commit is the depth tween's completion. The field-of-view tween finishes on the same frame
// but has no completion of its own, so this is the single place the state changes.
func (z *zoomImpl) commit(state ZoomState) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.state = state
	z.transitioning = false
}

func (z *zoomImpl) State() ZoomState {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.state
}

func (z *zoomImpl) Transitioning() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.transitioning
}
