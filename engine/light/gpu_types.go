package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPUDirectionalLights is the number of directional lights the shader evaluates. Extra lights are ignored.
const MaxGPUDirectionalLights = 4

// GPULightsSource is the WGSL definition of the Lights struct.
// Matches GPULights layout exactly (144 bytes).
const GPULightsSource = `struct DirectionalLight {
    direction: vec4<f32>,
    color: vec4<f32>,
};

struct Lights {
    ambient: vec4<f32>,
    directional: array<DirectionalLight, 4>,
};
`

// GPUDirectionalLight is a directional light packed for the shader.
type GPUDirectionalLight struct {
	Direction [4]float32 // normalized travel direction, w = 1 for the light drawn into the shadow map
	Color     [4]float32 // linear RGB premultiplied by intensity, w unused
}

// GPULights is the GPU-aligned lighting block: the summed ambient term and a fixed array of directional lights.
// Unused directional slots are zero and contribute nothing.
// Size: 144 bytes.
type GPULights struct {
	Ambient     [4]float32 // offset  0: linear RGB sum of ambient lights, w = directional count
	Directional [MaxGPUDirectionalLights]GPUDirectionalLight
}

// PackLights builds the lighting block from a light list, skipping disabled lights.
// The light ShadowCaster picks is flagged so the shader only shadows its contribution.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - GPULights: the packed block
func PackLights(lights []Light) GPULights {
	var out GPULights
	shadowed := ShadowCaster(lights)
	n := 0
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		c := l.Color().Linear()
		k := l.Intensity()
		switch l.Type() {
		case LightTypeAmbient:
			out.Ambient[0] += c[0] * k
			out.Ambient[1] += c[1] * k
			out.Ambient[2] += c[2] * k
		case LightTypeDirectional:
			if n == MaxGPUDirectionalLights {
				continue
			}
			d := l.Direction()
			var w float32
			if l == shadowed {
				w = 1
			}
			out.Directional[n] = GPUDirectionalLight{
				Direction: [4]float32{d[0], d[1], d[2], w},
				Color:     [4]float32{c[0] * k, c[1] * k, c[2] * k, 0},
			}
			n++
		}
	}
	out.Ambient[3] = float32(n)
	return out
}

// Size returns the size of the GPULights struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPULights) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULights struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (g *GPULights) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(off int, v [4]float32) {
		for i := range 4 {
			binary.LittleEndian.PutUint32(buf[off+i*4:], math.Float32bits(v[i]))
		}
	}
	put(0, g.Ambient)
	for i, d := range g.Directional {
		put(16+i*32, d.Direction)
		put(32+i*32, d.Color)
	}
	return buf
}
