package model

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer/material"
)

// ImportedModel represents a model decoded from an external format, before it is turned into renderable Models.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Meshes contains one entry per object or group in the source file, in file order.
	Meshes []ImportedMesh

	// Materials are the materials the meshes reference, indexed by ImportedMesh.MaterialIndex.
	Materials []common.ImportedMaterial

	// Textures are standalone textures loaded alongside the model, keyed by the path they were requested with.
	Textures map[string]*common.ImportedTexture
}

// ImportedMesh represents a single mesh within an imported model.
type ImportedMesh struct {
	// Name is the mesh identifier.
	Name string

	// Geometry is the triangulated mesh data.
	Geometry *Geometry

	// MaterialIndex references ImportedModel.Materials for the first group, or -1 when the mesh has no material.
	MaterialIndex int

	// Groups splits the mesh's indices by material, in index order. Empty means one group using MaterialIndex.
	Groups []ImportedGroup
}

// ImportedGroup is a range of an imported mesh's indices that shares one material.
type ImportedGroup struct {
	Start, Count  uint32
	MaterialIndex int
}

// MeshModel builds a renderable Model from the mesh at index i, with one material group per imported group.
// The geometry is deep-copied so the result can be modified without touching the imported data.
//
// Parameters:
//   - i: the mesh index
//   - options: material options applied on top of the imported material
//
// Returns:
//   - Model: the renderable model
//   - error: error if the index is out of range
func (m *ImportedModel) MeshModel(i int, options ...material.MaterialBuilderOption) (Model, error) {
	if m == nil || i < 0 || i >= len(m.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", i)
	}
	mesh := m.Meshes[i]

	name := mesh.Name
	if name == "" {
		name = m.Name
	}
	modelOpts := []ModelBuilderOption{WithName(name), WithGeometry(mesh.Geometry.Clone())}
	if len(mesh.Groups) == 0 {
		modelOpts = append(modelOpts, WithMaterial(m.groupMaterial(mesh.MaterialIndex, options)))
	} else {
		// materials are shared between groups that reference the same imported material
		byIndex := make(map[int]material.Material, len(mesh.Groups))
		groups := make([]Group, len(mesh.Groups))
		for j, g := range mesh.Groups {
			mat, ok := byIndex[g.MaterialIndex]
			if !ok {
				mat = m.groupMaterial(g.MaterialIndex, options)
				byIndex[g.MaterialIndex] = mat
			}
			groups[j] = Group{Start: g.Start, Count: g.Count, Material: mat}
		}
		modelOpts = append(modelOpts, WithGroups(groups...))
	}
	return NewModel(modelOpts...), nil
}

func (m *ImportedModel) groupMaterial(idx int, options []material.MaterialBuilderOption) material.Material {
	var opts []material.MaterialBuilderOption
	if idx >= 0 && idx < len(m.Materials) {
		opts = append(opts, material.FromImported(m.Materials[idx])...)
	}
	opts = append(opts, options...)
	return material.NewMaterial(opts...)
}
