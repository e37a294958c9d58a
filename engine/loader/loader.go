package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/model"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ/MTL loader backend.
	BackendTypeOBJ LoaderBackendType = iota
)

// ErrLoaderReleased is the error of every asynchronous load submitted after Release.
var ErrLoaderReleased = errors.New("loader released")

// Dispatcher hands a callback to the thread that owns the scene. The engine's Post method is the usual dispatcher.
type Dispatcher func(fn func())

// Request names the files of one load. Paths are relative to the loader's file system.
type Request struct {
	// MaterialPath is the material library to load and preload first. Empty skips the material stage.
	MaterialPath string

	// GeometryPath is the geometry file that references the library's materials.
	GeometryPath string

	// TexturePaths are standalone textures decoded during the material stage and returned in ImportedModel.Textures.
	TexturePaths []string
}

func (r Request) key() string {
	k := r.MaterialPath + "|" + r.GeometryPath
	for _, t := range r.TexturePaths {
		k += "|" + t
	}
	return k
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu *sync.RWMutex

	fsys     fs.FS
	backend  loaderBackend
	dispatch Dispatcher
	logger   *slog.Logger

	workers  int
	pool     worker.DynamicWorkerPool
	taskID   atomic.Int64
	released bool
	stopOnce sync.Once

	cache map[string]*model.ImportedModel
}

// Loader defines the public-facing interface for loading and caching model assets.
// A load runs in two dependent stages, material library then geometry, and results are cached by request.
type Loader interface {
	// Load runs both stages on the calling goroutine and caches the result.
	// If the request is already cached, the cached model is returned.
	//
	// Parameters:
	//   - req: the files to load
	//
	// Returns:
	//   - *model.ImportedModel: the loaded model
	//   - error: error if any stage fails
	Load(req Request) (*model.ImportedModel, error)

	// LoadAsync runs both stages on the loader's worker pool and returns immediately.
	// When the load finishes, exactly one of onReady or the task's error callback is handed to the dispatcher.
	// Errors are logged at debug level and otherwise discarded unless WithOnError is given.
	//
	// Parameters:
	//   - req: the files to load
	//   - onReady: called through the dispatcher with the loaded model; may be nil
	//   - options: per-task options
	//
	// Returns:
	//   - Task: the task handle
	LoadAsync(req Request, onReady func(*model.ImportedModel), options ...TaskOption) Task

	// DecodeGeometry parses geometry from a stream with no material library.
	//
	// Parameters:
	//   - name: the model name
	//   - r: the reader providing geometry data
	//
	// Returns:
	//   - *model.ImportedModel: the decoded model
	//   - error: error if parsing fails
	DecodeGeometry(name string, r io.Reader) (*model.ImportedModel, error)

	// Get retrieves a cached model. Returns nil if the request has not completed.
	//
	// Parameters:
	//   - req: the request to look up
	//
	// Returns:
	//   - *model.ImportedModel: the cached model or nil
	Get(req Request) *model.ImportedModel

	// CacheSize returns the number of cached models.
	//
	// Returns:
	//   - int: the cache size
	CacheSize() int

	// Release stops the worker pool. Later LoadAsync calls fail with ErrLoaderReleased; Load and the cache keep working.
	// Calling Release more than once is a no-op.
	Release()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader reading from fsys with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeOBJ)
//   - fsys: the asset file system
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, fsys fs.FS, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:      &sync.RWMutex{},
		fsys:    fsys,
		logger:  slog.Default().With("component", "loader"),
		workers: max(runtime.NumCPU()/2, 1),
		cache:   make(map[string]*model.ImportedModel),
	}

	switch backendType {
	case BackendTypeOBJ:
		l.backend = newOBJLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	if l.dispatch == nil {
		l.dispatch = func(fn func()) { fn() }
	}

	l.pool = worker.NewDynamicWorkerPool(l.workers, 64, 1*time.Second)
	return l
}

func (l *loader) Load(req Request) (*model.ImportedModel, error) {
	return l.run(req, nil)
}

func (l *loader) LoadAsync(req Request, onReady func(*model.ImportedModel), options ...TaskOption) Task {
	t := &taskImpl{
		mu:       &sync.Mutex{},
		req:      req,
		stage:    StageAwaitingMaterial,
		done:     make(chan struct{}),
		dispatch: l.dispatch,
		onReady:  onReady,
	}
	t.onError = func(err error) {
		l.logger.Debug("asset load failed", "geometry", req.GeometryPath, "material", req.MaterialPath, "error", err)
	}
	for _, option := range options {
		option(t)
	}

	if cached := l.Get(req); cached != nil {
		t.finish(cached, nil)
		return t
	}
	l.mu.RLock()
	released := l.released
	l.mu.RUnlock()
	if released {
		t.finish(nil, ErrLoaderReleased)
		return t
	}

	l.pool.SubmitTask(worker.Task{
		ID: int(l.taskID.Add(1)),
		Do: func() (any, error) {
			im, err := l.run(req, t)
			t.finish(im, err)
			return nil, nil
		},
	})
	return t
}

func (l *loader) DecodeGeometry(name string, r io.Reader) (*model.ImportedModel, error) {
	return l.backend.DecodeGeometry(name, r, nil)
}

func (l *loader) Get(req Request) *model.ImportedModel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[req.key()]
}

func (l *loader) CacheSize() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cache)
}

func (l *loader) Release() {
	l.mu.Lock()
	l.released = true
	l.mu.Unlock()
	l.stopOnce.Do(l.pool.Stop)
}

// run executes the material stage then the geometry stage, reporting progress on t when it is non-nil.
func (l *loader) run(req Request, t *taskImpl) (*model.ImportedModel, error) {
	if cached := l.Get(req); cached != nil {
		return cached, nil
	}
	if req.GeometryPath == "" {
		return nil, fmt.Errorf("load request has no geometry path")
	}

	var lib *materialLibrary
	if req.MaterialPath != "" {
		var err error
		lib, err = l.backend.LoadMaterials(l.fsys, req.MaterialPath)
		if err != nil {
			return nil, err
		}
		l.preload(lib)
	}
	textures := make(map[string]*common.ImportedTexture, len(req.TexturePaths))
	for _, p := range req.TexturePaths {
		tex := &common.ImportedTexture{Path: path.Clean(p)}
		if err := tex.Decode(l.fsys); err != nil {
			return nil, err
		}
		textures[p] = tex
	}

	if t != nil {
		t.setStage(StageAwaitingGeometry)
	}
	im, err := l.backend.LoadGeometry(l.fsys, req.GeometryPath, lib)
	if err != nil {
		return nil, err
	}
	im.Textures = textures

	l.mu.Lock()
	l.cache[req.key()] = im
	l.mu.Unlock()
	return im, nil
}

// preload decodes every texture the library references. A texture that fails to decode is dropped from its material.
func (l *loader) preload(lib *materialLibrary) {
	for i := range lib.Materials {
		tex := lib.Materials[i].DiffuseTexture
		if tex == nil || tex.Decoded() {
			continue
		}
		if err := tex.Decode(l.fsys); err != nil {
			l.logger.Debug("texture preload failed", "material", lib.Materials[i].Name, "error", err)
			lib.Materials[i].DiffuseTexture = nil
		}
	}
}
