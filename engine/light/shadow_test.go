package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShadowCasterPicksFirstEnabledDirectional(t *testing.T) {
	bounds := ShadowBounds{Left: -9, Right: 26, Bottom: -25, Top: 6, Near: 0.5, Far: 500}
	off := NewDirectionalLight(WithCastsShadows(bounds), WithEnabled(false))
	plain := NewDirectionalLight()
	sun := NewDirectionalLight(WithPosition(7, 16, -10), WithCastsShadows(bounds))

	assert.Nil(t, ShadowCaster(nil))
	assert.Nil(t, ShadowCaster([]Light{NewAmbientLight(), plain, off}))
	assert.Same(t, sun, ShadowCaster([]Light{NewAmbientLight(), off, plain, sun}))
}

func TestNewShadowData(t *testing.T) {
	bounds := ShadowBounds{Left: -9, Right: 26, Bottom: -25, Top: 6, Near: 0.5, Far: 500}
	sun := NewDirectionalLight(WithPosition(7, 16, -10), WithCastsShadows(bounds))

	d := NewShadowData(sun, ShadowMapResolution)
	assert.Equal(t, float32(1), d.Enabled)
	assert.Equal(t, [16]float32(sun.ShadowViewProjection()), d.LightVP)
	assert.InDelta(t, 1.0/2048, d.TexelSize, 1e-9)
	assert.Equal(t, float32(DefaultShadowBias), d.Bias)
	// the box is 35 wide and 31 tall
	assert.InDelta(t, 35.0/2048*3, d.NormalBias, 1e-6)

	assert.Equal(t, GPUShadowData{}, NewShadowData(nil, ShadowMapResolution))
}

func TestGPUShadowDataMarshal(t *testing.T) {
	d := GPUShadowData{TexelSize: 0.5, Bias: 0.25, NormalBias: 2, Enabled: 1}
	d.LightVP[0] = 3

	require.Equal(t, 80, d.Size())
	buf := d.Marshal()
	require.Len(t, buf, 80)
	at := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, float32(3), at(0))
	assert.Equal(t, float32(0.5), at(64))
	assert.Equal(t, float32(0.25), at(68))
	assert.Equal(t, float32(2), at(72))
	assert.Equal(t, float32(1), at(76))
}

func TestPackLightsFlagsShadowLight(t *testing.T) {
	plain := NewDirectionalLight()
	sun := NewDirectionalLight(WithPosition(7, 16, -10), WithCastsShadows(DefaultShadowBounds))

	g := PackLights([]Light{plain, sun})
	assert.Zero(t, g.Directional[0].Direction[3])
	assert.Equal(t, float32(1), g.Directional[1].Direction[3])
}
