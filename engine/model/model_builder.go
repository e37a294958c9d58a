package model

import "github.com/Carmen-Shannon/oxy-grove/engine/renderer/material"

// ModelBuilderOption is a functional option for configuring a Model during construction.
type ModelBuilderOption func(*model)

// WithName sets the model identifier.
//
// Parameters:
//   - name: the model name
//
// Returns:
//   - ModelBuilderOption: functional option to set the name
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithGeometry sets the model geometry. The model takes ownership of g.
//
// Parameters:
//   - g: the geometry
//
// Returns:
//   - ModelBuilderOption: functional option to set the geometry
func WithGeometry(g *Geometry) ModelBuilderOption {
	return func(m *model) {
		m.geometry = g
	}
}

// WithMaterial sets the model material.
//
// Parameters:
//   - mat: the material
//
// Returns:
//   - ModelBuilderOption: functional option to set the material
func WithMaterial(mat material.Material) ModelBuilderOption {
	return func(m *model) {
		m.material = mat
	}
}

// WithGroups splits the model's indices into material groups. Groups without a material use the model material.
//
// Parameters:
//   - groups: the groups in index order
//
// Returns:
//   - ModelBuilderOption: functional option to set the groups
func WithGroups(groups ...Group) ModelBuilderOption {
	return func(m *model) {
		m.groups = append(m.groups[:0], groups...)
	}
}
