package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// Triangles returns the number of triangles.
func (m Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of the positions.
func (m Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return
	}
	inf := float32(math.Inf(1))
	lo = mgl32.Vec3{inf, inf, inf}
	hi = mgl32.Vec3{-inf, -inf, -inf}
	for _, p := range m.Positions {
		for i := range 3 {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi
}

// Shape builds a mesh.
type Shape interface {
	Mesh() Mesh
}

// NewMesh builds the mesh of a shape.
func NewMesh(s Shape) Mesh {
	return s.Mesh()
}
