package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned cuboid given by its extents on each axis.
type Box struct {
	MinX, MaxX float32
	MinY, MaxY float32
	MinZ, MaxZ float32
}

// NewBox returns a box of the given size centered on the origin.
func NewBox(xLength, yLength, zLength float32) Box {
	return Box{
		MinX: -xLength / 2, MaxX: xLength / 2,
		MinY: -yLength / 2, MaxY: yLength / 2,
		MinZ: -zLength / 2, MaxZ: zLength / 2,
	}
}

// Cube returns a box with edges of length size.
func Cube(size float32) Box {
	return NewBox(size, size, size)
}

// Size returns the edge lengths.
func (b Box) Size() mgl32.Vec3 {
	return mgl32.Vec3{b.MaxX - b.MinX, b.MaxY - b.MinY, b.MaxZ - b.MinZ}
}

// boxFaces lists each face as normal, u, v with u x v = normal.
var boxFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

// Mesh builds 4 vertices per face with counter-clockwise outward winding.
func (b Box) Mesh() Mesh {
	c := mgl32.Vec3{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2, (b.MinZ + b.MaxZ) / 2}
	h := b.Size().Mul(0.5)
	m := Mesh{
		Positions: make([]mgl32.Vec3, 0, 24),
		Normals:   make([]mgl32.Vec3, 0, 24),
		Indices:   make([]uint32, 0, 36),
	}
	for _, f := range boxFaces {
		n, u, v := hadamard(f[0], h), hadamard(f[1], h), hadamard(f[2], h)
		base := uint32(len(m.Positions))
		center := c.Add(n)
		m.Positions = append(m.Positions,
			center.Sub(u).Sub(v),
			center.Add(u).Sub(v),
			center.Add(u).Add(v),
			center.Sub(u).Add(v),
		)
		m.Normals = append(m.Normals, f[0], f[0], f[0], f[0])
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

func hadamard(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Icosphere approximates a sphere by subdividing an icosahedron.
type Icosphere struct {
	Radius float32
	// Subdivisions is the number of times each face is split in four; 5 when
	// zero. Values above 7 are clamped.
	Subdivisions int
}

// DefaultIcosphere returns a unit-radius sphere with 5 subdivisions.
func DefaultIcosphere() Icosphere {
	return Icosphere{Radius: 1, Subdivisions: 5}
}

const maxIcosphereSubdivisions = 7

// Mesh builds the sphere with smooth normals.
func (s Icosphere) Mesh() Mesh {
	subdivisions := s.Subdivisions
	if subdivisions <= 0 {
		subdivisions = 5
	}
	subdivisions = min(subdivisions, maxIcosphereSubdivisions)

	t := float32((1 + math.Sqrt(5)) / 2)
	verts := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range verts {
		verts[i] = verts[i].Normalize()
	}
	faces := [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	midpoints := make(map[[2]uint32]uint32)
	midpoint := func(a, b uint32) uint32 {
		key := [2]uint32{min(a, b), max(a, b)}
		if i, ok := midpoints[key]; ok {
			return i
		}
		verts = append(verts, verts[a].Add(verts[b]).Normalize())
		i := uint32(len(verts) - 1)
		midpoints[key] = i
		return i
	}
	for range subdivisions {
		next := make([][3]uint32, 0, len(faces)*4)
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]uint32{f[0], ab, ca},
				[3]uint32{f[1], bc, ab},
				[3]uint32{f[2], ca, bc},
				[3]uint32{ab, bc, ca},
			)
		}
		faces = next
		clear(midpoints)
	}

	m := Mesh{
		Positions: make([]mgl32.Vec3, len(verts)),
		Normals:   verts,
		Indices:   make([]uint32, 0, len(faces)*3),
	}
	for i, v := range verts {
		m.Positions[i] = v.Mul(s.Radius)
	}
	for _, f := range faces {
		m.Indices = append(m.Indices, f[0], f[1], f[2])
	}
	return m
}

// Plane is a flat square on the XZ plane facing +Y.
type Plane struct {
	Size float32
}

// Mesh builds two triangles.
func (p Plane) Mesh() Mesh {
	h := p.Size / 2
	up := mgl32.Vec3{0, 1, 0}
	return Mesh{
		Positions: []mgl32.Vec3{{-h, 0, h}, {h, 0, h}, {h, 0, -h}, {-h, 0, -h}},
		Normals:   []mgl32.Vec3{up, up, up, up},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}
