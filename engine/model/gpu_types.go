package model

import "unsafe"

// Vertex is the interleaved per-vertex layout uploaded to the GPU.
// Size: 32 bytes.
type Vertex struct {
	Position [3]float32 // offset  0: location 0
	Normal   [3]float32 // offset 12: location 1
	UV       [2]float32 // offset 24: location 2
}

// VertexStride is the byte size of a Vertex.
const VertexStride = uint64(unsafe.Sizeof(Vertex{}))
