package gltf

import (
	"github.com/Faultbox/bimgltf/pkg/math3d"
)

type fakeProduct struct {
	id    string
	class string
	geom  *Geometry
}

func (p *fakeProduct) GlobalID() string    { return p.id }
func (p *fakeProduct) Class() string       { return p.class }
func (p *fakeProduct) Geometry() *Geometry { return p.geom }

type fakeSource []Product

func (s fakeSource) Products() []Product { return s }

// triangles builds a geometry with n independent triangles: every index
// slot references its own vertex, so index i maps to vertex (i, i+1, 0).
func triangles(n int) *Geometry {
	g := &Geometry{Transform: math3d.Identity()}
	for i := 0; i < n*3; i++ {
		g.Indices = append(g.Indices, uint32(i))
		g.Vertices = append(g.Vertices, float64(i), float64(i+1), 0)
		g.Normals = append(g.Normals, 0, 0, 1)
	}
	return g
}

// quadStrip builds a strip of 4 triangles over 6 shared vertices, so
// splitting has real index remapping to do.
func quadStrip() *Geometry {
	return &Geometry{
		Indices: []uint32{0, 1, 2, 2, 1, 3, 2, 3, 4, 4, 3, 5},
		Vertices: []float64{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			1, 1, 0,
			0, 2, 0,
			1, 2, 0,
		},
		Normals: []float32{
			0, 0, 1, 0, 0, 1, 0, 0, 1,
			0, 0, 1, 0, 0, 1, 0, 0, 1,
		},
		Transform: math3d.Identity(),
	}
}
