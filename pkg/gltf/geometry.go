package gltf

import (
	"fmt"

	"github.com/Faultbox/bimgltf/pkg/math3d"
)

// RGBA is a color with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// Bytes returns the color quantized to 4 unsigned bytes. Components
// outside [0, 1] are clamped.
func (c RGBA) Bytes() [4]byte {
	return [4]byte{quantize(c.R), quantize(c.G), quantize(c.B), quantize(c.A)}
}

func quantize(v float32) byte {
	n := int(v * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return byte(n)
}

// defaultGray is the last-resort color when a record carries no color
// information at all.
var defaultGray = [4]byte{50, 50, 50, 255}

// Geometry is one triangulated mesh with its object-to-world transform.
// Vertices hold 3 doubles per vertex, Normals 3 floats per vertex, and
// Indices reference vertex triples. Colors, when present, hold one
// quantized RGBA quad per vertex.
type Geometry struct {
	Indices  []uint32
	Vertices []float64
	Normals  []float32
	Colors   []byte

	// Flat color fallbacks, tried in order when Colors is absent.
	Color         *RGBA
	MostUsedColor *RGBA

	// Object-to-world transform, row-major.
	Transform math3d.Mat4
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Vertices) / 3
}

// validate checks the cross-buffer invariants the packer relies on.
func (g *Geometry) validate() error {
	if len(g.Vertices) == 0 || len(g.Normals) == 0 {
		return ErrMissingGeometryData
	}
	if len(g.Vertices)%3 != 0 {
		return fmt.Errorf("%w: vertex buffer length %d is not a multiple of 3", ErrMalformedGeometry, len(g.Vertices))
	}
	if len(g.Normals) != len(g.Vertices) {
		return fmt.Errorf("%w: %d normal components for %d vertex components", ErrMalformedGeometry, len(g.Normals), len(g.Vertices))
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrMalformedGeometry, len(g.Indices))
	}
	for _, idx := range g.Indices {
		if int(idx) >= g.VertexCount() {
			return fmt.Errorf("%w: index %d exceeds vertex count %d", ErrMalformedGeometry, idx, g.VertexCount())
		}
	}
	if g.Colors != nil && len(g.Colors) != g.VertexCount()*4 {
		return fmt.Errorf("%w: %d color bytes for %d vertices", ErrMalformedGeometry, len(g.Colors), g.VertexCount())
	}
	return nil
}

// resolveColor returns the quantized flat color for a record without
// per-vertex colors: the flat color if set, then the most-used color,
// then neutral gray. The ordered fallback is intentional default
// behavior, not an error path.
func resolveColor(g *Geometry) [4]byte {
	if g.Color != nil {
		return g.Color.Bytes()
	}
	if g.MostUsedColor != nil {
		return g.MostUsedColor.Bytes()
	}
	return defaultGray
}

// Product is one entity of the upstream catalog.
type Product interface {
	// GlobalID returns a stable identifier used in node metadata.
	GlobalID() string
	// Class returns the entity class name used for default materials.
	Class() string
	// Geometry returns the product's geometry record, or nil.
	Geometry() *Geometry
}

// Source yields the products of one scene. Products must return the
// same slice contents in the same order for every call during a run;
// the serializer caches the result so both passes see identical input.
type Source interface {
	Products() []Product
}

// HasEligibleGeometry reports whether a product takes part in packing.
// Non-strict mode accepts any product with a geometry record, even one
// without triangle data; it is used only for extent computation.
func HasEligibleGeometry(p Product, strict bool) bool {
	g := p.Geometry()
	if g == nil {
		return false
	}
	if !strict {
		return true
	}
	return len(g.Indices) > 0
}
