package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Material flag bits packed into GPUMaterialUniform.Flags.
const (
	MaterialFlagUnlit    uint32 = 1 << 0
	MaterialFlagTextured uint32 = 1 << 1
	MaterialFlagFog      uint32 = 1 << 2
)

// GPUMaterialUniformSource is the WGSL definition of the MaterialUniform struct.
// Matches GPUMaterialUniform layout exactly (32 bytes).
const GPUMaterialUniformSource = `struct MaterialUniform {
    color: vec4<f32>,
    flags: u32,
    _pad0: u32,
    _pad1: u32,
    _pad2: u32,
};
`

// GPUMaterialUniform is the GPU-aligned per-material uniform.
// Size: 32 bytes.
type GPUMaterialUniform struct {
	Color [4]float32 // offset  0: linear RGBA colour (vec4<f32>)
	Flags uint32     // offset 16: MaterialFlag* bits (u32)
	_pad  [3]uint32  // offset 20: padding to 32 bytes
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[16:], g.Flags)
	return buf
}
