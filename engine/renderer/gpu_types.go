package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-grove/engine/camera"
	"github.com/Carmen-Shannon/oxy-grove/engine/game_object"
	"github.com/Carmen-Shannon/oxy-grove/engine/light"
	"github.com/Carmen-Shannon/oxy-grove/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUFrameUniformSource is the WGSL definition of the FrameUniform struct.
// Matches GPUFrameUniform layout exactly (352 bytes).
const GPUFrameUniformSource = `struct FrameUniform {
    camera: CameraUniform,
    fog_color: vec4<f32>,
    fog: vec4<f32>,
    lights: Lights,
    shadow: ShadowData,
    tone: vec4<f32>,
};
`

// GPUFrameUniform is the per-frame uniform block bound at group 0.
// Size: 352 bytes.
type GPUFrameUniform struct {
	Camera   camera.GPUCameraUniform // offset   0
	FogColor [4]float32              // offset  80: linear RGB
	Fog      [4]float32              // offset  96: near, far, enabled (0 or 1), unused
	Lights   light.GPULights         // offset 112
	Shadow   light.GPUShadowData     // offset 256
	Tone     [4]float32              // offset 336: exposure, unused
}

// GPUInstance is the per-instance vertex data of a draw.
// Size: 80 bytes, the instance buffer stride.
type GPUInstance struct {
	Model  mgl32.Mat4 // locations 3-6
	Params [4]float32 // location 7: receives shadows (0 or 1), unused
}

// NewGPUInstance packs the world matrix and shadow flags of an object.
//
// Parameters:
//   - obj: the drawn object
//
// Returns:
//   - GPUInstance: the packed instance
func NewGPUInstance(obj game_object.GameObject) GPUInstance {
	inst := GPUInstance{Model: obj.ModelMatrix()}
	if obj.ReceiveShadow() {
		inst.Params[0] = 1
	}
	return inst
}

// NewFrameUniform packs the camera, fog, lights, shadow light and exposure of a scene into the per-frame block.
//
// Parameters:
//   - cam: the viewing camera
//   - s: the scene being drawn
//
// Returns:
//   - GPUFrameUniform: the packed block
func NewFrameUniform(cam camera.Camera, s scene.Scene) GPUFrameUniform {
	lights := s.Lights()
	u := GPUFrameUniform{
		Camera: cam.Uniform(),
		Lights: light.PackLights(lights),
		Shadow: light.NewShadowData(light.ShadowCaster(lights), light.ShadowMapResolution),
		Tone:   [4]float32{s.Exposure(), 0, 0, 0},
	}
	if fog := s.Fog(); fog != nil {
		u.FogColor = fog.Color.Linear()
		u.Fog = [4]float32{fog.Near, fog.Far, 1, 0}
	}
	return u
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (352)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, 0, g.Size())
	buf = append(buf, g.Camera.Marshal()...)
	buf = appendVec4(buf, g.FogColor)
	buf = appendVec4(buf, g.Fog)
	buf = append(buf, g.Lights.Marshal()...)
	buf = append(buf, g.Shadow.Marshal()...)
	buf = appendVec4(buf, g.Tone)
	return buf
}

func appendVec4(buf []byte, v [4]float32) []byte {
	for _, f := range v {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}
