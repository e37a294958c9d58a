package game_object

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	enabled bool
	mdl     model.Model

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3

	castShadow    bool
	receiveShadow bool
}

// GameObject defines the interface for a scene entity: a shared Model drawn with the object's own transform.
// Many game objects may reference the same Model; the transform and shadow flags belong to the object alone.
type GameObject interface {
	// ID returns the object's unique identifier. Zero until the object is added to a scene.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Name returns the object's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether this object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to render the object
	SetEnabled(enabled bool)

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Position returns the world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: position
	Position() mgl32.Vec3

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - p: position
	SetPosition(p mgl32.Vec3)

	// Rotation returns the Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: rotation angles around X, Y and Z
	Rotation() mgl32.Vec3

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - r: rotation angles around X, Y and Z
	SetRotation(r mgl32.Vec3)

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - mgl32.Vec3: scale factors
	Scale() mgl32.Vec3

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - s: scale factors
	SetScale(s mgl32.Vec3)

	// CastShadow reports whether the object casts shadows.
	//
	// Returns:
	//   - bool: true if the object casts shadows
	CastShadow() bool

	// SetCastShadow sets whether the object casts shadows.
	//
	// Parameters:
	//   - cast: shadow casting flag
	SetCastShadow(cast bool)

	// ReceiveShadow reports whether the object receives shadows.
	//
	// Returns:
	//   - bool: true if the object receives shadows
	ReceiveShadow() bool

	// ModelMatrix returns the object's model matrix built from position, rotation and scale.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// Clone returns a new, unregistered object that shares this object's Model and copies its transform and flags.
	// Mutating the clone's transform never affects the original.
	//
	// Returns:
	//   - GameObject: the clone
	Clone() GameObject
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject at the origin with unit scale, enabled for rendering.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:      &sync.Mutex{},
		enabled: true,
		scale:   mgl32.Vec3{1, 1, 1},
	}
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (o *gameObject) ID() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.id
}

func (o *gameObject) SetID(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.id = id
}

func (o *gameObject) Name() string {
	return o.name
}

func (o *gameObject) Enabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enabled
}

func (o *gameObject) SetEnabled(enabled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enabled = enabled
}

func (o *gameObject) Model() model.Model {
	return o.mdl
}

func (o *gameObject) Position() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.position
}

func (o *gameObject) SetPosition(p mgl32.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.position = p
}

func (o *gameObject) Rotation() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rotation
}

func (o *gameObject) SetRotation(r mgl32.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rotation = r
}

func (o *gameObject) Scale() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.scale
}

func (o *gameObject) SetScale(s mgl32.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scale = s
}

func (o *gameObject) CastShadow() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.castShadow
}

func (o *gameObject) SetCastShadow(cast bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.castShadow = cast
}

func (o *gameObject) ReceiveShadow() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.receiveShadow
}

func (o *gameObject) ModelMatrix() mgl32.Mat4 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return common.ModelMatrix(o.position, o.rotation, o.scale)
}

func (o *gameObject) Clone() GameObject {
	o.mu.Lock()
	defer o.mu.Unlock()
	return &gameObject{
		mu:            &sync.Mutex{},
		name:          o.name,
		enabled:       o.enabled,
		mdl:           o.mdl,
		position:      o.position,
		rotation:      o.rotation,
		scale:         o.scale,
		castShadow:    o.castShadow,
		receiveShadow: o.receiveShadow,
	}
}
