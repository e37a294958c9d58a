package material

import "github.com/Carmen-Shannon/oxy-grove/common"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the sRGB diffuse colour of the material.
//
// Parameters:
//   - color: the diffuse colour
//
// Returns:
//   - MaterialBuilderOption: a function that applies the colour option to a material
func WithColor(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = color
	}
}

// WithDiffuseTexture is an option builder that sets the diffuse texture of the material.
// A nil texture leaves the material untextured.
//
// Parameters:
//   - tex: the diffuse texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithDiffuseTexture(tex *common.ImportedTexture) MaterialBuilderOption {
	return func(m *material) {
		if tex != nil {
			m.diffuseTexture = tex
		}
	}
}

// WithShading is an option builder that sets the lighting model.
//
// Parameters:
//   - shading: ShadingLambert or ShadingBasic
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shading option to a material
func WithShading(shading Shading) MaterialBuilderOption {
	return func(m *material) {
		m.shading = shading
	}
}

// WithSide is an option builder that sets which faces are drawn.
//
// Parameters:
//   - side: SideFront or SideDouble
//
// Returns:
//   - MaterialBuilderOption: a function that applies the side option to a material
func WithSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.side = side
	}
}

// WithFog is an option builder that sets whether scene fog applies.
//
// Parameters:
//   - fog: true to apply fog
//
// Returns:
//   - MaterialBuilderOption: a function that applies the fog option to a material
func WithFog(fog bool) MaterialBuilderOption {
	return func(m *material) {
		m.fog = fog
	}
}
