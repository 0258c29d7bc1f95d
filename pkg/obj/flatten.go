package obj

import "github.com/Faultbox/bimgltf/pkg/math3d"

// TriangleMesh is an indexed triangle list in the layout the packing
// pipeline consumes: 3 position doubles and 3 normal floats per vertex.
type TriangleMesh struct {
	Indices   []uint32
	Positions []float64
	Normals   []float32
}

// VertexCount returns the number of unique vertices.
func (m *TriangleMesh) VertexCount() int {
	return len(m.Positions) / 3
}

type vertKey struct {
	position int
	normal   int
}

// Flatten triangulates the file into an indexed triangle mesh. Faces
// with more than 3 corners are fanned from their first corner. Corners
// sharing the same position/normal reference pair share one output
// vertex. Files without normal references get a flat normal per
// triangle, with the three corner vertices duplicated per face.
func (f *File) Flatten() *TriangleMesh {
	mesh := &TriangleMesh{}
	seen := make(map[vertKey]uint32)

	emit := func(fv FaceVert, flatNormal math3d.Vec3) uint32 {
		key := vertKey{position: fv.Position, normal: fv.Normal}
		if fv.Normal >= 0 {
			if id, ok := seen[key]; ok {
				return id
			}
		}
		p := f.Positions[fv.Position]
		n := flatNormal
		if fv.Normal >= 0 {
			n = f.Normals[fv.Normal]
		}
		id := uint32(mesh.VertexCount())
		mesh.Positions = append(mesh.Positions, p.X, p.Y, p.Z)
		mesh.Normals = append(mesh.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		if fv.Normal >= 0 {
			seen[key] = id
		}
		return id
	}

	for _, face := range f.Faces {
		for i := 1; i+1 < len(face.Verts); i++ {
			corners := [3]FaceVert{face.Verts[0], face.Verts[i], face.Verts[i+1]}

			var flat math3d.Vec3
			if corners[0].Normal < 0 || corners[1].Normal < 0 || corners[2].Normal < 0 {
				flat = f.flatNormal(corners)
			}
			for _, c := range corners {
				mesh.Indices = append(mesh.Indices, emit(c, flat))
			}
		}
	}
	return mesh
}

// flatNormal computes the face normal of one triangle from its winding.
func (f *File) flatNormal(corners [3]FaceVert) math3d.Vec3 {
	a := f.Positions[corners[0].Position]
	b := f.Positions[corners[1].Position]
	c := f.Positions[corners[2].Position]
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}
