package scene

import (
	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/game_object"
	"github.com/Carmen-Shannon/oxy-grove/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj)
		}
	}
}

// WithLights adds initial lights to the scene.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithBackground sets the clear colour.
//
// Parameters:
//   - c: the background colour
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}

// WithFog enables linear fog.
//
// Parameters:
//   - c: the fog colour
//   - near: distance where fog starts
//   - far: distance where fog is opaque
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFog(c common.Color, near, far float32) SceneBuilderOption {
	return func(s *scene) {
		s.fog = &Fog{Color: c, Near: near, Far: far}
	}
}

// WithExposure sets the tone mapping exposure. Values at or below zero are ignored.
//
// Parameters:
//   - exposure: the exposure
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithExposure(exposure float32) SceneBuilderOption {
	return func(s *scene) {
		if exposure > 0 {
			s.exposure = exposure
		}
	}
}
