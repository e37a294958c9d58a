package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/stretchr/testify/assert"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial()
	assert.Equal(t, ShadingLambert, m.Shading())
	assert.Equal(t, SideFront, m.Side())
	assert.True(t, m.Fog())
	assert.Nil(t, m.DiffuseTexture())
	assert.Equal(t, "#a0a0a0", m.Color().Hex())
}

func TestUniformFlags(t *testing.T) {
	sun := NewMaterial(WithShading(ShadingBasic), WithFog(false), WithColor(common.ColorFromHex(0xecec1a)))
	u := sun.Uniform()
	assert.Equal(t, MaterialFlagUnlit, u.Flags)
	assert.Len(t, u.Marshal(), 32)

	textured := NewMaterial(WithDiffuseTexture(&common.ImportedTexture{Pixels: []byte{1, 2, 3, 4}, Width: 1, Height: 1}))
	assert.Equal(t, MaterialFlagTextured|MaterialFlagFog, textured.Uniform().Flags)

	// a texture that never decoded is not sampled
	pending := NewMaterial(WithDiffuseTexture(&common.ImportedTexture{Path: "x.png"}))
	assert.Equal(t, MaterialFlagFog, pending.Uniform().Flags)
}

func TestFromImportedOpacity(t *testing.T) {
	m := NewMaterial(FromImported(common.ImportedMaterial{Name: "Leaves", Diffuse: common.ColorFromHex(0x00ff00)})...)
	assert.Equal(t, "Leaves", m.Name())
	assert.Equal(t, float32(1), m.Color().A)

	m = NewMaterial(FromImported(common.ImportedMaterial{Opacity: 0.5})...)
	assert.Equal(t, float32(0.5), m.Color().A)
}
