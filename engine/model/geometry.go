package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is an indexed triangle list. Indices are counter-clockwise when viewed from the front face.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// Clone returns a deep copy of the geometry.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	return &Geometry{
		Vertices: append([]Vertex(nil), g.Vertices...),
		Indices:  append([]uint32(nil), g.Indices...),
	}
}

// Translate offsets every vertex position by v, baking the offset into the geometry itself.
//
// Parameters:
//   - v: the offset to apply
func (g *Geometry) Translate(v mgl32.Vec3) {
	for i := range g.Vertices {
		p := &g.Vertices[i].Position
		p[0] += v[0]
		p[1] += v[1]
		p[2] += v[2]
	}
}

// Bounds returns the axis-aligned bounding box of the vertex positions.
// An empty geometry yields a zero box.
//
// Returns:
//   - min: the minimum corner
//   - max: the maximum corner
func (g *Geometry) Bounds() (min, max mgl32.Vec3) {
	if len(g.Vertices) == 0 {
		return
	}
	min = g.Vertices[0].Position
	max = min
	for _, v := range g.Vertices[1:] {
		for a := range 3 {
			min[a] = float32(math.Min(float64(min[a]), float64(v.Position[a])))
			max[a] = float32(math.Max(float64(max[a]), float64(v.Position[a])))
		}
	}
	return
}

// BoundingSphere returns a sphere enclosing the bounding box.
//
// Returns:
//   - center: the sphere center in model space
//   - radius: the sphere radius
func (g *Geometry) BoundingSphere() (center mgl32.Vec3, radius float32) {
	lo, hi := g.Bounds()
	center = lo.Add(hi).Mul(0.5)
	radius = hi.Sub(center).Len()
	return
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}
