package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/game_object"
	"github.com/Carmen-Shannon/oxy-grove/engine/light"
	"github.com/Carmen-Shannon/oxy-grove/engine/model"
)

// Fog describes linear distance fog: fully clear at Near, fully Color at Far.
type Fog struct {
	Color common.Color
	Near  float32
	Far   float32
}

// Batch is a group of enabled objects that share one Model and can be drawn with a single instanced draw call.
type Batch struct {
	Model   model.Model
	Objects []game_object.GameObject
}

// Scene defines the interface for the world graph: the set of game objects, lights, background and fog that a
// renderer draws each frame. The scene holds no GPU state.
type Scene interface {
	// Name returns the scene name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Add inserts an object into the scene, assigning it a fresh ID if it has none.
	// Adding an object whose ID is already registered replaces the previous entry.
	//
	// Parameters:
	//   - obj: the object to add (must have a Model)
	//
	// Returns:
	//   - uint64: the object's ID, or 0 if the object has no Model
	Add(obj game_object.GameObject) uint64

	// Get returns the object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove deletes the object with the given ID. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Objects returns all objects in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: a copy of the object list
	Objects() []game_object.GameObject

	// CountModel returns the number of objects drawing the given Model.
	//
	// Parameters:
	//   - m: the model
	//
	// Returns:
	//   - int: the object count for m
	CountModel(m model.Model) int

	// Batches groups enabled objects by Model, in the order each Model was first added.
	// When a frustum is given, objects whose bounding sphere lies fully outside it are skipped and empty batches dropped.
	//
	// Parameters:
	//   - frustum: optional view frustum for culling, or nil to keep everything
	//
	// Returns:
	//   - []Batch: the draw batches
	Batches(frustum *common.Frustum) []Batch

	// AddLight adds a light to the scene.
	//
	// Parameters:
	//   - l: the light
	AddLight(l light.Light)

	// Lights returns the scene lights.
	//
	// Returns:
	//   - []light.Light: a copy of the light list
	Lights() []light.Light

	// Background returns the clear colour.
	//
	// Returns:
	//   - common.Color: the background colour
	Background() common.Color

	// SetBackground sets the clear colour.
	//
	// Parameters:
	//   - c: the background colour
	SetBackground(c common.Color)

	// Fog returns the scene fog, or nil if fog is off.
	//
	// Returns:
	//   - *Fog: a copy of the fog settings or nil
	Fog() *Fog

	// SetFog sets the scene fog; nil turns fog off.
	//
	// Parameters:
	//   - fog: the fog settings or nil
	SetFog(fog *Fog)

	// Exposure returns the multiplier applied to lit colour before filmic tone mapping.
	//
	// Returns:
	//   - float32: the exposure
	Exposure() float32

	// SetExposure sets the tone mapping exposure. Values at or below zero are ignored.
	//
	// Parameters:
	//   - exposure: the exposure
	SetExposure(exposure float32)
}

type scene struct {
	mu *sync.RWMutex

	name string

	registry map[uint64]game_object.GameObject
	order    []uint64
	byModel  map[model.Model][]uint64
	models   []model.Model
	nextID   uint64

	lights     []light.Light
	background common.Color
	fog        *Fog
	exposure   float32
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new, empty Scene with a black background, no fog and an exposure of 1.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		registry:   make(map[uint64]game_object.GameObject),
		byModel:    make(map[model.Model][]uint64),
		nextID:     1,
		background: common.Color{A: 1},
		exposure:   1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

// add registers obj. Caller must hold the write lock.
func (s *scene) add(obj game_object.GameObject) uint64 {
	mdl := obj.Model()
	if mdl == nil {
		return 0
	}
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	id := obj.ID()

	if _, exists := s.registry[id]; exists {
		s.remove(id)
	}
	s.registry[id] = obj
	s.order = append(s.order, id)
	if _, seen := s.byModel[mdl]; !seen {
		s.models = append(s.models, mdl)
	}
	s.byModel[mdl] = append(s.byModel[mdl], id)
	return id
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

// remove unregisters id. Caller must hold the write lock.
func (s *scene) remove(id uint64) {
	obj, exists := s.registry[id]
	if !exists {
		return
	}
	delete(s.registry, id)
	s.order = slices.DeleteFunc(s.order, func(v uint64) bool { return v == id })

	mdl := obj.Model()
	ids := slices.DeleteFunc(s.byModel[mdl], func(v uint64) bool { return v == id })
	if len(ids) == 0 {
		delete(s.byModel, mdl)
		s.models = slices.DeleteFunc(s.models, func(m model.Model) bool { return m == mdl })
		return
	}
	s.byModel[mdl] = ids
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.registry[id])
	}
	return out
}

func (s *scene) CountModel(m model.Model) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byModel[m])
}

func (s *scene) Batches(frustum *common.Frustum) []Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batches := make([]Batch, 0, len(s.models))
	for _, mdl := range s.models {
		center, radius := mdl.BoundingSphere()
		var objs []game_object.GameObject
		for _, id := range s.byModel[mdl] {
			obj := s.registry[id]
			if !obj.Enabled() {
				continue
			}
			if frustum != nil {
				m := obj.ModelMatrix()
				world := m.Mul4x1(center.Vec4(1)).Vec3()
				sc := obj.Scale()
				r := radius * max(abs(sc.X()), abs(sc.Y()), abs(sc.Z()))
				if !frustum.ContainsSphere(world, r) {
					continue
				}
			}
			objs = append(objs, obj)
		}
		if len(objs) > 0 {
			batches = append(batches, Batch{Model: mdl, Objects: objs})
		}
	}
	return batches
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) Background() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Fog() *Fog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fog == nil {
		return nil
	}
	f := *s.fog
	return &f
}

func (s *scene) SetFog(fog *Fog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fog == nil {
		s.fog = nil
		return
	}
	f := *fog
	s.fog = &f
}

func (s *scene) Exposure() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exposure
}

func (s *scene) SetExposure(exposure float32) {
	if exposure <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exposure = exposure
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
