package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient represents light that reaches every surface equally, regardless of position or orientation.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a distant source like the sun. It shines from its position toward its target
	// with no distance attenuation, so only the direction between the two matters for shading.
	LightTypeDirectional
)

// ShadowBounds is the orthographic box, in the light's view space, that a directional light's shadow covers.
type ShadowBounds struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
}

// DefaultShadowBounds is a 10 unit box around the light's target.
var DefaultShadowBounds = ShadowBounds{Left: -5, Right: 5, Bottom: -5, Top: 5, Near: 0.5, Far: 500}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	lightType    LightType
	position     mgl32.Vec3
	target       mgl32.Vec3
	color        common.Color
	intensity    float32
	enabled      bool
	castsShadows bool
	shadowBounds ShadowBounds
}

// Light defines the interface for a light source in the scene.
// Lights are scene-level entities that contribute to the final pixel colour of lambert materials. Type-specific
// properties (position, direction, shadows) return zero values for ambient lights.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position
	Position() mgl32.Vec3

	// Target returns the point a directional light shines toward.
	//
	// Returns:
	//   - mgl32.Vec3: target position
	Target() mgl32.Vec3

	// Direction returns the normalized direction the light travels, from position to target.
	// Returns (0, -1, 0) when position and target coincide.
	//
	// Returns:
	//   - mgl32.Vec3: normalized direction
	Direction() mgl32.Vec3

	// Color returns the sRGB colour of the light.
	//
	// Returns:
	//   - common.Color: the light colour
	Color() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled reports whether the light contributes to shading.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled enables or disables the light.
	//
	// Parameters:
	//   - enabled: whether the light contributes
	SetEnabled(enabled bool)

	// CastsShadows reports whether the light is flagged as a shadow caster.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// ShadowBounds returns the orthographic shadow box.
	//
	// Returns:
	//   - ShadowBounds: the shadow box
	ShadowBounds() ShadowBounds

	// ShadowViewProjection returns the light-space matrix that maps world positions into the shadow box.
	//
	// Returns:
	//   - mgl32.Mat4: the orthographic projection * light view matrix
	ShadowViewProjection() mgl32.Mat4
}

var _ Light = &lightImpl{}

// NewAmbientLight creates an ambient light.
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewAmbientLight(options ...LightBuilderOption) Light {
	return newLight(LightTypeAmbient, options...)
}

// NewDirectionalLight creates a directional light positioned at (0, 1, 0) shining at the origin.
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewDirectionalLight(options ...LightBuilderOption) Light {
	return newLight(LightTypeDirectional, append([]LightBuilderOption{WithPosition(0, 1, 0)}, options...)...)
}

func newLight(lightType LightType, options ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:           &sync.Mutex{},
		lightType:    lightType,
		color:        common.White,
		intensity:    1,
		enabled:      true,
		shadowBounds: DefaultShadowBounds,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Target() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	d := l.target.Sub(l.position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

func (l *lightImpl) Color() common.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) CastsShadows() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.castsShadows
}

func (l *lightImpl) ShadowBounds() ShadowBounds {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shadowBounds
}

func (l *lightImpl) ShadowViewProjection() mgl32.Mat4 {
	l.mu.Lock()
	defer l.mu.Unlock()
	b := l.shadowBounds
	up := mgl32.Vec3{0, 1, 0}
	if d := l.target.Sub(l.position); d.Len() > 0 && mgl32.Abs(d.Normalize().Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	return common.Orthographic(b.Left, b.Right, b.Bottom, b.Top, b.Near, b.Far).
		Mul4(common.LookAt(l.position, l.target, up))
}
