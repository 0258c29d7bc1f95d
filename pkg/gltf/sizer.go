package gltf

import "fmt"

// segmentSizes holds the exact byte capacity of each output segment.
// Capacities are computed once and never resized; the packer must fill
// each segment to the byte.
type segmentSizes struct {
	indices  int
	vertices int
	normals  int
	colors   int
}

// body returns the total packed body length.
func (s segmentSizes) body() int {
	return s.indices + s.vertices + s.normals + s.colors
}

// measureSegments is the first pass: it scans every strictly eligible
// record and sums the bytes it will contribute to each segment under
// the policy. Splitting duplicates every referenced vertex, normal and
// color, so a split record is sized by its index count, not its vertex
// count.
func measureSegments(products []Product, policy Policy) (segmentSizes, error) {
	var sizes segmentSizes
	for _, p := range products {
		if !HasEligibleGeometry(p, true) {
			continue
		}
		g := p.Geometry()
		if err := g.validate(); err != nil {
			return segmentSizes{}, fmt.Errorf("product %s: %w", p.GlobalID(), err)
		}

		indexCount := len(g.Indices)
		sizes.indices += indexCount * policy.indexByteSize()

		if policy.needsSplit(indexCount) {
			// One duplicated vertex per index slot.
			sizes.vertices += indexCount * 3 * 4
			sizes.normals += indexCount * 3 * 4
			if g.Colors != nil {
				sizes.colors += indexCount * 4
			}
			continue
		}

		sizes.vertices += len(g.Vertices) * 4 // doubles narrowed to float32
		sizes.normals += len(g.Normals) * 4
		switch {
		case g.Colors != nil:
			sizes.colors += len(g.Colors)
		case policy.SynthesizeColors:
			sizes.colors += g.VertexCount() * 4
		}
	}
	return sizes, nil
}
