package model

import "math"

// NewPlane builds a width x height plane in the XY plane facing +Z, centered on the origin.
// Rotate it -90 degrees about X to lay it flat as ground.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//
// Returns:
//   - *Geometry: the plane geometry (4 vertices, 2 triangles)
func NewPlane(width, height float32) *Geometry {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	return &Geometry{
		Vertices: []Vertex{
			{Position: [3]float32{-hw, -hh, 0}, Normal: n, UV: [2]float32{0, 1}},
			{Position: [3]float32{hw, -hh, 0}, Normal: n, UV: [2]float32{1, 1}},
			{Position: [3]float32{hw, hh, 0}, Normal: n, UV: [2]float32{1, 0}},
			{Position: [3]float32{-hw, hh, 0}, Normal: n, UV: [2]float32{0, 0}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// NewCircle builds a flat disc in the XY plane facing +Z as a triangle fan around a center vertex.
//
// Parameters:
//   - radius: disc radius
//   - segments: number of rim segments (at least 3)
//
// Returns:
//   - *Geometry: the disc geometry (segments+2 vertices, segments triangles)
func NewCircle(radius float32, segments int) *Geometry {
	segments = max(segments, 3)
	n := [3]float32{0, 0, 1}
	g := &Geometry{
		Vertices: make([]Vertex, 0, segments+2),
		Indices:  make([]uint32, 0, segments*3),
	}
	g.Vertices = append(g.Vertices, Vertex{Normal: n, UV: [2]float32{0.5, 0.5}})
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x := float32(math.Cos(theta))
		y := float32(math.Sin(theta))
		g.Vertices = append(g.Vertices, Vertex{
			Position: [3]float32{x * radius, y * radius, 0},
			Normal:   n,
			UV:       [2]float32{(x + 1) / 2, 1 - (y+1)/2},
		})
	}
	for i := 1; i <= segments; i++ {
		g.Indices = append(g.Indices, 0, uint32(i), uint32(i+1))
	}
	return g
}
