package model

import (
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// Group is a contiguous index range of a model's geometry drawn with one material.
type Group struct {
	// Start is the first index of the range.
	Start uint32

	// Count is the number of indices in the range.
	Count uint32

	// Material is the surface material for the range.
	Material material.Material
}

// model is the implementation of the Model interface.
type model struct {
	name     string
	geometry *Geometry
	material material.Material
	groups   []Group

	boundsCenter mgl32.Vec3
	boundsRadius float32
}

// Model defines the interface for a renderable mesh: one geometry split into one or more material groups.
// A Model is read-only once built and may be shared by any number of game objects, each drawing it with its own transform.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Geometry retrieves the vertex and index data.
	//
	// Returns:
	//   - *Geometry: the geometry
	Geometry() *Geometry

	// Material retrieves the material of the first group.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// Groups retrieves the material groups in index order. Every model has at least one.
	//
	// Returns:
	//   - []Group: the groups
	Groups() []Group

	// BoundingSphere returns the model-space bounding sphere computed when the model was built.
	//
	// Returns:
	//   - center: sphere center
	//   - radius: sphere radius
	BoundingSphere() (center mgl32.Vec3, radius float32)
}

var _ Model = &model{}

// NewModel creates a new Model. A model without geometry gets an empty one; a model without material gets the default material.
// A model without groups gets a single group that covers every index with the model's material.
// Groups with no indices are dropped and ranges past the end of the index buffer are clamped.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, option := range options {
		option(m)
	}
	if m.geometry == nil {
		m.geometry = &Geometry{}
	}
	if m.material == nil {
		m.material = material.NewMaterial()
	}
	m.groups = normalizeGroups(m.groups, uint32(len(m.geometry.Indices)), m.material)
	m.material = m.groups[0].Material
	m.boundsCenter, m.boundsRadius = m.geometry.BoundingSphere()
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Geometry() *Geometry {
	return m.geometry
}

func (m *model) Material() material.Material {
	return m.material
}

func (m *model) Groups() []Group {
	return m.groups
}

func normalizeGroups(groups []Group, indexCount uint32, fallback material.Material) []Group {
	out := make([]Group, 0, max(len(groups), 1))
	for _, g := range groups {
		if g.Start >= indexCount {
			continue
		}
		g.Count = min(g.Count, indexCount-g.Start)
		if g.Count == 0 {
			continue
		}
		if g.Material == nil {
			g.Material = fallback
		}
		out = append(out, g)
	}
	if len(out) == 0 {
		out = append(out, Group{Start: 0, Count: indexCount, Material: fallback})
	}
	return out
}

func (m *model) BoundingSphere() (mgl32.Vec3, float32) {
	return m.boundsCenter, m.boundsRadius
}
