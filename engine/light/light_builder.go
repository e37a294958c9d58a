package light

import (
	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a functional option for configuring a Light during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition sets the world-space position of the light.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - LightBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the point a directional light shines toward.
//
// Parameters:
//   - x, y, z: target components
//
// Returns:
//   - LightBuilderOption: functional option to set the target
func WithTarget(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = mgl32.Vec3{x, y, z}
	}
}

// WithColor sets the sRGB colour of the light.
//
// Parameters:
//   - c: the light colour
//
// Returns:
//   - LightBuilderOption: functional option to set the colour
func WithColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithIntensity sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: functional option to set the intensity
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithEnabled sets whether the light initially contributes to shading.
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithCastsShadows flags the light as a shadow caster and sets its orthographic shadow box.
//
// Parameters:
//   - bounds: the shadow box in light view space
//
// Returns:
//   - LightBuilderOption: functional option to enable shadows
func WithCastsShadows(bounds ShadowBounds) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = true
		l.shadowBounds = bounds
	}
}
