package gltf

import "encoding/json"

// glTF 2.0 document types. Only the subset the packer emits is
// modeled; indices into the flat tables replace the 1.0 name keys.
type gltf2Document struct {
	Asset       gltf2Asset        `json:"asset"`
	Scene       int               `json:"scene"`
	Scenes      []gltf2Scene      `json:"scenes"`
	Nodes       []gltf2Node       `json:"nodes"`
	Meshes      []gltf2Mesh       `json:"meshes"`
	Materials   []gltf2Material   `json:"materials"`
	Accessors   []gltf2Accessor   `json:"accessors"`
	BufferViews []gltf2BufferView `json:"bufferViews"`
	Buffers     []gltf2Buffer     `json:"buffers"`
}

type gltf2Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type gltf2Scene struct {
	Nodes []int `json:"nodes"`
}

type gltf2Node struct {
	Mesh        *int           `json:"mesh,omitempty"`
	Children    []int          `json:"children,omitempty"`
	Matrix      []float64      `json:"matrix,omitempty"`
	Translation []float64      `json:"translation,omitempty"`
	Rotation    []float64      `json:"rotation,omitempty"`
	Extras      map[string]any `json:"extras,omitempty"`
}

type gltf2Mesh struct {
	Primitives []gltf2Primitive `json:"primitives"`
}

type gltf2Primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    int            `json:"indices"`
	Mode       int            `json:"mode"`
	Material   int            `json:"material"`
}

type gltf2Material struct {
	Name      string    `json:"name,omitempty"`
	AlphaMode string    `json:"alphaMode,omitempty"`
	PBR       *gltf2PBR `json:"pbrMetallicRoughness,omitempty"`
}

type gltf2PBR struct {
	BaseColorFactor [4]float32 `json:"baseColorFactor"`
	MetallicFactor  float32    `json:"metallicFactor"`
	RoughnessFactor float32    `json:"roughnessFactor"`
}

type gltf2Accessor struct {
	BufferView    int       `json:"bufferView"`
	ByteOffset    int       `json:"byteOffset"`
	ComponentType int       `json:"componentType"`
	Normalized    bool      `json:"normalized,omitempty"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float64 `json:"min,omitempty"`
	Max           []float64 `json:"max,omitempty"`
}

type gltf2BufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	ByteStride int `json:"byteStride,omitempty"`
	Target     int `json:"target,omitempty"`
}

type gltf2Buffer struct {
	ByteLength int `json:"byteLength"`
}

// encodeGLTF2 renders the scene model as a glTF 2.0 JSON document.
// Node numbering: 0 is the recentering translation node, 1 the
// axis-correction rotation node (the scene root), product nodes
// follow in packing order.
func encodeGLTF2(m *sceneModel) ([]byte, error) {
	const rootOffset = 2

	doc := gltf2Document{
		Asset:  gltf2Asset{Version: "2.0", Generator: "bimgltf"},
		Scene:  0,
		Scenes: []gltf2Scene{{Nodes: []int{1}}},
	}

	translationChildren := make([]int, 0, len(m.rootChildren))
	for _, id := range m.rootChildren {
		translationChildren = append(translationChildren, id+rootOffset)
	}
	doc.Nodes = append(doc.Nodes, gltf2Node{
		Children:    translationChildren,
		Translation: []float64{m.translation.X, m.translation.Y, m.translation.Z},
	})
	doc.Nodes = append(doc.Nodes, gltf2Node{
		Children: []int{0},
		Rotation: []float64{axisCorrection.X, axisCorrection.Y, axisCorrection.Z, axisCorrection.W},
	})

	for _, n := range m.nodes {
		meshID := n.meshes[0]
		node := gltf2Node{
			Mesh:   &meshID,
			Extras: map[string]any{"globalId": n.globalID},
		}
		if n.matrix != nil {
			// glTF matrices are column-major.
			t := n.matrix.Transposed()
			node.Matrix = t[:]
		}
		doc.Nodes = append(doc.Nodes, node)
	}

	for _, me := range m.meshes {
		mesh := gltf2Mesh{}
		for _, p := range me.primitives {
			attrs := map[string]int{
				"POSITION": p.positions,
				"NORMAL":   p.normals,
			}
			if p.colors != -1 {
				attrs["COLOR_0"] = p.colors
			}
			mesh.Primitives = append(mesh.Primitives, gltf2Primitive{
				Attributes: attrs,
				Indices:    p.indices,
				Mode:       ModeTriangles,
				Material:   p.material,
			})
		}
		doc.Meshes = append(doc.Meshes, mesh)
	}

	for _, mat := range m.materials {
		out := gltf2Material{
			Name: mat.name,
			PBR: &gltf2PBR{
				BaseColorFactor: [4]float32{mat.diffuse.R, mat.diffuse.G, mat.diffuse.B, mat.diffuse.A},
				MetallicFactor:  0,
				RoughnessFactor: 1,
			},
		}
		if mat.diffuse.A < 1 {
			out.AlphaMode = "BLEND"
		}
		doc.Materials = append(doc.Materials, out)
	}

	for _, a := range m.accessors {
		doc.Accessors = append(doc.Accessors, gltf2Accessor{
			BufferView:    a.view,
			ByteOffset:    a.byteOffset,
			ComponentType: a.componentType,
			Normalized:    a.normalized,
			Count:         a.count,
			Type:          a.elementType,
			Min:           a.min,
			Max:           a.max,
		})
	}

	for _, v := range m.bufferViews {
		doc.BufferViews = append(doc.BufferViews, gltf2BufferView{
			Buffer:     0,
			ByteOffset: v.byteOffset,
			ByteLength: v.byteLength,
			ByteStride: v.byteStride,
			Target:     v.target,
		})
	}

	doc.Buffers = []gltf2Buffer{{ByteLength: m.bodyLength}}

	return json.Marshal(doc)
}
