package gltf

import (
	"math"

	"github.com/Faultbox/bimgltf/pkg/math3d"
)

// Extents is a running world-space axis-aligned bounding box. The zero
// value is not useful; use NewExtents. Extents is a value: Add returns
// the folded accumulator instead of mutating shared state.
type Extents struct {
	Min, Max math3d.Vec3
}

// NewExtents returns an empty accumulator.
func NewExtents() Extents {
	inf := math.Inf(1)
	return Extents{
		Min: math3d.Vec3{X: inf, Y: inf, Z: inf},
		Max: math3d.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Valid reports whether at least one vertex has been folded in.
func (e Extents) Valid() bool {
	return e.Min.X <= e.Max.X
}

// Add transforms every vertex of the record to world space and folds
// it into the bounding box. Records without vertex data are ignored.
func (e Extents) Add(g *Geometry) Extents {
	if g == nil || len(g.Vertices) == 0 {
		return e
	}
	for i := 0; i+2 < len(g.Vertices); i += 3 {
		p := g.Transform.TransformPoint(math3d.Vec3{
			X: g.Vertices[i],
			Y: g.Vertices[i+1],
			Z: g.Vertices[i+2],
		})
		e.Min.X = math.Min(e.Min.X, p.X)
		e.Min.Y = math.Min(e.Min.Y, p.Y)
		e.Min.Z = math.Min(e.Min.Z, p.Z)
		e.Max.X = math.Max(e.Max.X, p.X)
		e.Max.Y = math.Max(e.Max.Y, p.Y)
		e.Max.Z = math.Max(e.Max.Z, p.Z)
	}
	return e
}

// Center returns the center of the accumulated box. Recentering the
// scene by -Center moves the bounding box center to the origin. The
// translation ignores object rotation, so the result is close to the
// origin rather than exact; downstream consumers rely on this offset
// convention.
func (e Extents) Center() math3d.Vec3 {
	return math3d.Vec3{
		X: e.Min.X + (e.Max.X-e.Min.X)/2,
		Y: e.Min.Y + (e.Max.Y-e.Min.Y)/2,
		Z: e.Min.Z + (e.Max.Z-e.Min.Z)/2,
	}
}
