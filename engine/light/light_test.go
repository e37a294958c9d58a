package light

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionalLightDirection(t *testing.T) {
	l := NewDirectionalLight(WithPosition(0, 10, 0))
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())

	l = NewDirectionalLight(WithPosition(3, 0, 0), WithTarget(3, 0, 0))
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())
}

func TestShadowViewProjectionCoversTarget(t *testing.T) {
	l := NewDirectionalLight(
		WithPosition(7, 16, -10),
		WithCastsShadows(ShadowBounds{Left: -9, Right: 26, Bottom: -25, Top: 6, Near: 0.5, Far: 500}),
	)
	require.True(t, l.CastsShadows())

	p := l.ShadowViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.True(t, p.Z() >= 0 && p.Z() <= 1)
	assert.True(t, p.X() >= -1 && p.X() <= 1)
	assert.True(t, p.Y() >= -1 && p.Y() <= 1)
}

func TestShadowViewProjectionStraightDown(t *testing.T) {
	l := NewDirectionalLight(WithPosition(0, 10, 0), WithCastsShadows(DefaultShadowBounds))
	m := l.ShadowViewProjection()
	for _, v := range m {
		assert.False(t, math.IsNaN(float64(v)), "matrix contains NaN")
	}
}

func TestPackLights(t *testing.T) {
	lights := []Light{
		NewAmbientLight(WithIntensity(0.3)),
		NewDirectionalLight(WithColor(common.ColorFromHex(0xffff00)), WithIntensity(0.7), WithPosition(0, 1, 0)),
		NewAmbientLight(WithEnabled(false)),
	}

	g := PackLights(lights)
	assert.InDelta(t, 0.3, g.Ambient[0], 1e-6)
	assert.Equal(t, float32(1), g.Ambient[3])
	assert.InDelta(t, 0.7, g.Directional[0].Color[0], 1e-6)
	assert.InDelta(t, 0, g.Directional[0].Color[2], 1e-6)
	assert.Equal(t, [4]float32{0, -1, 0, 0}, g.Directional[0].Direction)
	assert.Equal(t, GPUDirectionalLight{}, g.Directional[1])

	assert.Equal(t, 144, g.Size())
	assert.Len(t, g.Marshal(), 144)
}

func TestPackLightsCapsDirectional(t *testing.T) {
	var lights []Light
	for range MaxGPUDirectionalLights + 2 {
		lights = append(lights, NewDirectionalLight())
	}
	g := PackLights(lights)
	assert.Equal(t, float32(MaxGPUDirectionalLights), g.Ambient[3])
}
