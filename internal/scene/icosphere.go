package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is an indexed triangle mesh on the unit sphere. Normals equal
// positions.
type Geometry struct {
	Vertices []mgl32.Vec3
	Indices  []uint16
}

// VertexCount of an icosphere at level n is 10*4^n + 2.
func VertexCount(subdivisions int) int {
	return 10*(1<<(2*subdivisions)) + 2
}

// Icosphere subdivides an icosahedron n times and projects every vertex onto
// the unit sphere.
func Icosphere(subdivisions int) Geometry {
	p := float32((1 + math.Sqrt(5)) / 2)
	verts := []mgl32.Vec3{
		{-1, p, 0}, {1, p, 0}, {-1, -p, 0}, {1, -p, 0},
		{0, -1, p}, {0, 1, p}, {0, -1, -p}, {0, 1, -p},
		{p, 0, -1}, {p, 0, 1}, {-p, 0, -1}, {-p, 0, 1},
	}
	for i := range verts {
		verts[i] = verts[i].Normalize()
	}
	faces := [][3]uint16{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for level := 0; level < subdivisions; level++ {
		mid := make(map[[2]uint16]uint16)
		midpoint := func(a, b uint16) uint16 {
			key := [2]uint16{min(a, b), max(a, b)}
			if idx, ok := mid[key]; ok {
				return idx
			}
			verts = append(verts, verts[a].Add(verts[b]).Normalize())
			idx := uint16(len(verts) - 1)
			mid[key] = idx
			return idx
		}

		next := make([][3]uint16, 0, len(faces)*4)
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]uint16{f[0], ab, ca},
				[3]uint16{f[1], bc, ab},
				[3]uint16{f[2], ca, bc},
				[3]uint16{ab, bc, ca},
			)
		}
		faces = next
	}

	g := Geometry{Vertices: verts, Indices: make([]uint16, 0, len(faces)*3)}
	for _, f := range faces {
		g.Indices = append(g.Indices, f[0], f[1], f[2])
	}
	return g
}

// Flatten returns the vertices as packed xyz floats.
func (g Geometry) Flatten() []float32 {
	out := make([]float32, 0, len(g.Vertices)*3)
	for _, v := range g.Vertices {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}
