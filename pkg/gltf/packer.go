package gltf

import (
	"fmt"
	"math"
)

// packer is the second pass: it writes remapped index, vertex, normal
// and color data into the preallocated segments and records the
// per-primitive accessor metadata in the scene model. It must visit
// products in exactly the order the sizer did.
type packer struct {
	policy Policy
	model  *sceneModel

	indices  *segment
	vertices *segment
	normals  *segment
	colors   *segment
}

func newPacker(policy Policy, sizes segmentSizes, model *sceneModel) *packer {
	return &packer{
		policy:   policy,
		model:    model,
		indices:  newSegment("indices", sizes.indices),
		vertices: newSegment("vertices", sizes.vertices),
		normals:  newSegment("normals", sizes.normals),
		colors:   newSegment("colors", sizes.colors),
	}
}

// packAll processes every strictly eligible product and then verifies
// that each segment landed exactly on its precomputed capacity.
func (pk *packer) packAll(products []Product) error {
	for _, p := range products {
		if !HasEligibleGeometry(p, true) {
			continue
		}
		if err := pk.packProduct(p); err != nil {
			return err
		}
	}
	for _, s := range []*segment{pk.indices, pk.vertices, pk.normals, pk.colors} {
		if err := s.checkFull(); err != nil {
			return err
		}
	}
	return nil
}

// body concatenates the four segments in their fixed order.
func (pk *packer) body() []byte {
	out := make([]byte, 0, pk.indices.pos()+pk.vertices.pos()+pk.normals.pos()+pk.colors.pos())
	out = append(out, pk.indices.buf...)
	out = append(out, pk.vertices.buf...)
	out = append(out, pk.normals.buf...)
	out = append(out, pk.colors.buf...)
	return out
}

func (pk *packer) packProduct(p Product) error {
	g := p.Geometry()

	var meshIDs []int
	if pk.policy.needsSplit(len(g.Indices)) {
		ids, err := pk.packSplit(p, g)
		if err != nil {
			return err
		}
		meshIDs = ids
	} else {
		id, err := pk.packWhole(p, g)
		if err != nil {
			return err
		}
		meshIDs = []int{id}
	}

	pk.model.addNode(p, meshIDs, g.Transform)
	return nil
}

// packWhole copies one record into the segments without splitting:
// indices verbatim (widened or narrowed to the policy width), vertices
// narrowed to float32, normals and colors as-is.
func (pk *packer) packWhole(p Product, g *Geometry) (int, error) {
	startIndices := pk.indices.pos()
	startVertices := pk.vertices.pos()
	startNormals := pk.normals.pos()
	startColors := pk.colors.pos()

	narrow := pk.policy.IndexComponent == ComponentUnsignedShort
	for _, idx := range g.Indices {
		if narrow {
			if idx > math.MaxInt16 {
				return 0, fmt.Errorf("product %s: %w: %d", p.GlobalID(), ErrIndexTooLarge, idx)
			}
			pk.indices.putUint16(uint16(idx))
		} else {
			pk.indices.putUint32(idx)
		}
	}

	min, max := newBounds()
	for i := 0; i+2 < len(g.Vertices); i += 3 {
		for j := 0; j < 3; j++ {
			f := float32(g.Vertices[i+j])
			pk.vertices.putFloat32(f)
			foldBounds(&min, &max, j, f)
		}
	}
	for _, n := range g.Normals {
		pk.normals.putFloat32(n)
	}

	hasColors := false
	switch {
	case g.Colors != nil:
		pk.colors.putBytes(g.Colors)
		hasColors = true
	case pk.policy.SynthesizeColors:
		c := resolveColor(g)
		for i := 0; i < g.VertexCount(); i++ {
			pk.colors.putBytes(c[:])
		}
		hasColors = true
	}

	vertexCount := g.VertexCount()
	prim := primitive{
		indices:   pk.model.addIndicesAccessor(startIndices, len(g.Indices)),
		positions: pk.model.addVertexAccessor(startVertices, vertexCount, min, max),
		normals:   pk.model.addNormalsAccessor(startNormals, vertexCount),
		colors:    -1,
	}
	if hasColors {
		prim.colors = pk.model.addColorsAccessor(startColors, vertexCount)
		prim.material = pk.model.vertexColorMaterial()
	} else {
		prim.material = pk.model.materialFor(p.Class())
	}
	return pk.model.addMesh(meshName(p, 0, 1), []primitive{prim}), nil
}

// packSplit partitions an over-threshold record into runs of at most
// MaxIndexValues indices. Each partition re-emits a fresh 0-based
// index sequence and duplicates every referenced vertex, normal and
// color quad into its own slice of the segments; nothing is
// deduplicated, not even inside one partition. One mesh is emitted per
// partition, all owned by the product's single node.
func (pk *packer) packSplit(p Product, g *Geometry) ([]int, error) {
	total := len(g.Indices)
	maxValues := pk.policy.MaxIndexValues
	parts := (total + maxValues - 1) / maxValues

	meshIDs := make([]int, 0, parts)
	for part := 0; part < parts; part++ {
		first := part * maxValues
		upto := first + maxValues
		if upto > total {
			upto = total
		}
		count := upto - first

		startIndices := pk.indices.pos()
		startVertices := pk.vertices.pos()
		startNormals := pk.normals.pos()
		startColors := pk.colors.pos()

		for i := 0; i < count; i++ {
			pk.indices.putUint16(uint16(i))
		}

		min, max := newBounds()
		for i := first; i < upto; i++ {
			old := int(g.Indices[i])
			if old*3+2 >= len(g.Vertices) {
				return nil, fmt.Errorf("product %s: %w: index %d exceeds vertex count %d", p.GlobalID(), ErrMalformedGeometry, old, g.VertexCount())
			}
			for j := 0; j < 3; j++ {
				f := float32(g.Vertices[old*3+j])
				pk.vertices.putFloat32(f)
				foldBounds(&min, &max, j, f)
			}
		}
		for i := first; i < upto; i++ {
			old := int(g.Indices[i])
			pk.normals.putFloat32(g.Normals[old*3])
			pk.normals.putFloat32(g.Normals[old*3+1])
			pk.normals.putFloat32(g.Normals[old*3+2])
		}
		hasColors := g.Colors != nil
		if hasColors {
			for i := first; i < upto; i++ {
				old := int(g.Indices[i])
				pk.colors.putBytes(g.Colors[old*4 : old*4+4])
			}
		}

		prim := primitive{
			indices:   pk.model.addIndicesAccessor(startIndices, count),
			positions: pk.model.addVertexAccessor(startVertices, count, min, max),
			normals:   pk.model.addNormalsAccessor(startNormals, count),
			colors:    -1,
		}
		if hasColors {
			prim.colors = pk.model.addColorsAccessor(startColors, count)
			prim.material = pk.model.vertexColorMaterial()
		} else {
			prim.material = pk.model.materialFor(p.Class())
		}
		meshIDs = append(meshIDs, pk.model.addMesh(meshName(p, part, parts), []primitive{prim}))
	}
	return meshIDs, nil
}

func newBounds() ([3]float64, [3]float64) {
	inf := math.Inf(1)
	return [3]float64{inf, inf, inf}, [3]float64{-inf, -inf, -inf}
}

func foldBounds(min, max *[3]float64, axis int, v float32) {
	f := float64(v)
	if f < min[axis] {
		min[axis] = f
	}
	if f > max[axis] {
		max[axis] = f
	}
}
