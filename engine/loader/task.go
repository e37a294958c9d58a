package loader

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-grove/engine/model"
)

// Stage is the progress of an asynchronous load.
type Stage int

const (
	// StageAwaitingMaterial means the material library is being fetched and its textures decoded.
	StageAwaitingMaterial Stage = iota

	// StageAwaitingGeometry means the geometry file is being fetched and parsed.
	StageAwaitingGeometry

	// StageReady means the model is loaded and its ready callback has been dispatched.
	StageReady

	// StageFailed means a stage failed; the error callback has been dispatched.
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingMaterial:
		return "awaiting-material"
	case StageAwaitingGeometry:
		return "awaiting-geometry"
	case StageReady:
		return "ready"
	case StageFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether no further stage follows s.
func (s Stage) Terminal() bool {
	return s == StageReady || s == StageFailed
}

// Task is the handle of an asynchronous load.
type Task interface {
	// Request returns what is being loaded.
	//
	// Returns:
	//   - Request: the load request
	Request() Request

	// Stage returns the current stage.
	//
	// Returns:
	//   - Stage: the current stage
	Stage() Stage

	// Err returns the failure, or nil while running or after success.
	//
	// Returns:
	//   - error: the load error
	Err() error

	// Done is closed once the task reaches a terminal stage, after its callback has been handed to the dispatcher.
	//
	// Returns:
	//   - <-chan struct{}: the completion channel
	Done() <-chan struct{}
}

type taskImpl struct {
	mu *sync.Mutex

	req   Request
	stage Stage
	err   error
	done  chan struct{}
	once  sync.Once

	dispatch Dispatcher
	onReady  func(*model.ImportedModel)
	onError  func(error)
}

var _ Task = &taskImpl{}

func (t *taskImpl) Request() Request {
	return t.req
}

func (t *taskImpl) Stage() Stage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stage
}

func (t *taskImpl) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *taskImpl) Done() <-chan struct{} {
	return t.done
}

func (t *taskImpl) setStage(s Stage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stage = s
}

// finish moves the task to its terminal stage and dispatches exactly one callback.
func (t *taskImpl) finish(im *model.ImportedModel, err error) {
	t.once.Do(func() {
		t.mu.Lock()
		if err != nil {
			t.stage, t.err = StageFailed, err
		} else {
			t.stage = StageReady
		}
		t.mu.Unlock()

		if err != nil {
			if t.onError != nil {
				t.dispatch(func() { t.onError(err) })
			}
		} else if t.onReady != nil {
			t.dispatch(func() { t.onReady(im) })
		}
		close(t.done)
	})
}
