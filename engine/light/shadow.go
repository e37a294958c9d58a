package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

const (
	// ShadowMapResolution is the width and height of the directional shadow depth texture.
	ShadowMapResolution = 2048

	// DefaultShadowBias is the constant depth offset applied when comparing against the shadow map.
	DefaultShadowBias = 0.001

	// DefaultShadowNormalBiasScale scales the world-space size of one shadow texel to give the normal offset.
	DefaultShadowNormalBiasScale = 3.0
)

// GPUShadowDataSource is the WGSL definition of the ShadowData struct.
// Matches GPUShadowData layout exactly (80 bytes).
const GPUShadowDataSource = `struct ShadowData {
    light_vp: mat4x4<f32>,
    texel_size: f32,
    bias: f32,
    normal_bias: f32,
    enabled: f32,
};
`

// GPUShadowData is the GPU-aligned shadow block of the single shadow-casting directional light.
// Size: 80 bytes.
type GPUShadowData struct {
	LightVP    [16]float32 // offset  0: world to shadow clip space
	TexelSize  float32     // offset 64: 1 / ShadowMapResolution
	Bias       float32     // offset 68
	NormalBias float32     // offset 72: world units along the surface normal
	Enabled    float32     // offset 76: 0 or 1
}

// ShadowCaster returns the first enabled directional light that casts shadows, or nil.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - Light: the shadow light or nil
func ShadowCaster(lights []Light) Light {
	for _, l := range lights {
		if l.Type() == LightTypeDirectional && l.Enabled() && l.CastsShadows() {
			return l
		}
	}
	return nil
}

// NewShadowData packs the shadow box of l for a shadow map of the given resolution.
// A nil light gives a disabled block.
//
// Parameters:
//   - l: the shadow-casting directional light
//   - resolution: the shadow map width and height in texels
//
// Returns:
//   - GPUShadowData: the packed block
func NewShadowData(l Light, resolution int) GPUShadowData {
	if l == nil || resolution <= 0 {
		return GPUShadowData{}
	}
	b := l.ShadowBounds()
	return GPUShadowData{
		LightVP:    l.ShadowViewProjection(),
		TexelSize:  1 / float32(resolution),
		Bias:       DefaultShadowBias,
		NormalBias: ComputeNormalBias(b, resolution, DefaultShadowNormalBiasScale),
		Enabled:    1,
	}
}

// ComputeNormalBias returns the world-space normal offset for a shadow box: the size of one texel along its
// longer side, multiplied by scale.
//
// Parameters:
//   - b: the shadow box
//   - resolution: the shadow map width and height in texels
//   - scale: the multiplier
//
// Returns:
//   - float32: the offset in world units
func ComputeNormalBias(b ShadowBounds, resolution int, scale float32) float32 {
	extent := max(b.Right-b.Left, b.Top-b.Bottom)
	return extent / float32(resolution) * scale
}

// Size returns the size of the GPUShadowData struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUShadowData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUShadowData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (g *GPUShadowData) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.LightVP {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(g.TexelSize))
	binary.LittleEndian.PutUint32(buf[68:], math.Float32bits(g.Bias))
	binary.LittleEndian.PutUint32(buf[72:], math.Float32bits(g.NormalBias))
	binary.LittleEndian.PutUint32(buf[76:], math.Float32bits(g.Enabled))
	return buf
}
