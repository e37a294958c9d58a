package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// clipCorrection remaps OpenGL clip depth [-1, 1] to the WebGPU range [0, 1].
var clipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(unsafe.Sizeof(zero))*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice.
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}

// Perspective builds a perspective projection matrix for WebGPU clip space, where depth runs from 0 at the near plane to 1 at
// the far plane.
//
// Parameters:
//   - fovYDegrees: vertical field of view in degrees
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovYDegrees, aspect, near, far float32) mgl32.Mat4 {
	return clipCorrection.Mul4(mgl32.Perspective(mgl32.DegToRad(fovYDegrees), aspect, near, far))
}

// Orthographic builds an orthographic projection matrix for WebGPU clip space.
func Orthographic(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	return clipCorrection.Mul4(mgl32.Ortho(left, right, bottom, top, near, far))
}

// LookAt builds a view matrix for an eye at the given position looking at target.
// A degenerate configuration (eye == target) falls back to looking down -Z.
//
// Parameters:
//   - eye: camera position in world space
//   - target: point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - mgl32.Mat4: the column-major view matrix
func LookAt(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	if eye.Sub(target).Len() == 0 {
		target = eye.Sub(mgl32.Vec3{0, 0, 1})
	}
	return mgl32.LookAtV(eye, target, up)
}

// ModelMatrix constructs a model matrix from position, Euler rotation and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll), applied after scale.
//
// Parameters:
//   - position: translation in world space
//   - rotation: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ModelMatrix(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	r := mgl32.HomogRotate3DY(rotation.Y()).
		Mul4(mgl32.HomogRotate3DX(rotation.X())).
		Mul4(mgl32.HomogRotate3DZ(rotation.Z()))
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(r).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}
