package material

import (
	"github.com/Carmen-Shannon/oxy-grove/common"
)

// Shading selects the lighting model a material is drawn with.
type Shading int

const (
	// ShadingLambert lights the surface with the scene's ambient and diffuse lights.
	ShadingLambert Shading = iota

	// ShadingBasic ignores lights and draws the surface colour as-is.
	ShadingBasic
)

// Side selects which triangle faces are drawn.
type Side int

const (
	// SideFront draws counter-clockwise faces only.
	SideFront Side = iota

	// SideDouble draws both faces.
	SideDouble
)

// material is the implementation of the Material interface.
type material struct {
	name           string
	color          common.Color
	diffuseTexture *common.ImportedTexture
	shading        Shading
	side           Side
	fog            bool
}

// Material defines the interface for a render material, encapsulating surface properties and texture references.
// Materials are read-only after construction and may be shared across models.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the sRGB diffuse colour. When a diffuse texture is set, the colour multiplies the sampled texel.
	//
	// Returns:
	//   - common.Color: the diffuse colour
	Color() common.Color

	// DiffuseTexture retrieves the diffuse texture, or nil if none is set.
	//
	// Returns:
	//   - *common.ImportedTexture: the diffuse texture, or nil
	DiffuseTexture() *common.ImportedTexture

	// Shading retrieves the lighting model.
	//
	// Returns:
	//   - Shading: the lighting model
	Shading() Shading

	// Side retrieves which faces are drawn.
	//
	// Returns:
	//   - Side: the face selection
	Side() Side

	// Fog reports whether scene fog applies to this material.
	//
	// Returns:
	//   - bool: true if fogged
	Fog() bool

	// Uniform returns the material packed for upload to the GPU.
	//
	// Returns:
	//   - GPUMaterialUniform: the packed uniform
	Uniform() GPUMaterialUniform
}

var _ Material = &material{}

// NewMaterial creates a new Material. The default is an opaque mid-grey lambert surface, front faces only, fogged.
//
// Parameters:
//   - options: functional options to configure the material
//
// Returns:
//   - Material: the newly created material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		color: common.ColorFromHex(0xa0a0a0),
		fog:   true,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FromImported converts imported material properties into builder options.
//
// Parameters:
//   - im: the imported material
//
// Returns:
//   - []MaterialBuilderOption: options reproducing the imported material
func FromImported(im common.ImportedMaterial) []MaterialBuilderOption {
	c := im.Diffuse
	c.A = im.Opacity
	if c.A == 0 {
		c.A = 1
	}
	return []MaterialBuilderOption{
		WithName(im.Name),
		WithColor(c),
		WithDiffuseTexture(im.DiffuseTexture),
	}
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() common.Color {
	return m.color
}

func (m *material) DiffuseTexture() *common.ImportedTexture {
	return m.diffuseTexture
}

func (m *material) Shading() Shading {
	return m.shading
}

func (m *material) Side() Side {
	return m.side
}

func (m *material) Fog() bool {
	return m.fog
}

func (m *material) Uniform() GPUMaterialUniform {
	var flags uint32
	if m.shading == ShadingBasic {
		flags |= MaterialFlagUnlit
	}
	if m.diffuseTexture.Decoded() {
		flags |= MaterialFlagTextured
	}
	if m.fog {
		flags |= MaterialFlagFog
	}
	return GPUMaterialUniform{Color: m.color.Linear(), Flags: flags}
}
