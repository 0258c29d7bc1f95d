package gltf

import (
	"encoding/json"
	"fmt"
)

// encodeGLTF1 renders the scene model as a name-keyed glTF 1.0 JSON
// document with the KHR_binary_glTF extension and the fixed technique,
// program and shader boilerplate. Collection entries are keyed by
// generated names instead of indices.
func encodeGLTF1(m *sceneModel) ([]byte, error) {
	doc := map[string]any{
		"asset": map[string]any{
			"generator": "bimgltf",
			"version":   "1.0",
		},
		"animations":     map[string]any{},
		"skins":          map[string]any{},
		"scene":          "defaultScene",
		"extensionsUsed": []string{"KHR_binary_glTF"},
	}

	doc["buffers"] = map[string]any{
		"binary_glTF": map[string]any{
			"byteLength": m.bodyLength,
			"type":       "arraybuffer",
			"uri":        "data:,",
		},
	}

	views := map[string]any{}
	for i, v := range m.bufferViews {
		entry := map[string]any{
			"buffer":     "binary_glTF",
			"byteLength": v.byteLength,
			"byteOffset": v.byteOffset,
		}
		if v.target != 0 {
			entry["target"] = v.target
		}
		views[legacyViewName(i)] = entry
	}
	doc["bufferViews"] = views

	accessors := map[string]any{}
	accessorNames := make([]string, len(m.accessors))
	for i, a := range m.accessors {
		name := fmt.Sprintf("accessor_%s_%d", a.kind, i)
		accessorNames[i] = name
		entry := map[string]any{
			"bufferView":    legacyViewName(a.view),
			"byteOffset":    a.byteOffset,
			"byteStride":    legacyStride(a.kind),
			"componentType": a.componentType,
			"count":         a.count,
			"type":          a.elementType,
		}
		switch a.kind {
		case accessorVertex:
			entry["min"] = a.min
			entry["max"] = a.max
		case accessorNormal:
			entry["min"] = []float64{-1, -1, -1}
			entry["max"] = []float64{1, 1, 1}
		}
		accessors[name] = entry
	}
	doc["accessors"] = accessors

	meshes := map[string]any{}
	for _, me := range m.meshes {
		prims := make([]any, 0, len(me.primitives))
		for _, p := range me.primitives {
			attrs := map[string]any{
				"NORMAL":   accessorNames[p.normals],
				"POSITION": accessorNames[p.positions],
			}
			if p.colors != -1 {
				attrs["COLOR"] = accessorNames[p.colors]
			}
			prims = append(prims, map[string]any{
				"attributes": attrs,
				"indices":    accessorNames[p.indices],
				"material":   m.materials[p.material].key,
				"mode":       ModeTriangles,
			})
		}
		meshes[me.name] = map[string]any{
			"name":       me.name,
			"primitives": prims,
		}
	}
	doc["meshes"] = meshes

	materials := map[string]any{}
	for _, mat := range m.materials {
		if mat.vertexColor {
			materials[mat.key] = map[string]any{
				"name":      mat.name,
				"technique": "vertexColorTechnique",
				"values":    map[string]any{},
			}
			continue
		}
		materials[mat.key] = map[string]any{
			"name":      mat.name,
			"technique": "materialColorTechnique",
			"values": map[string]any{
				"diffuse":   []float32{mat.diffuse.R, mat.diffuse.G, mat.diffuse.B, mat.diffuse.A},
				"specular":  []float64{0.2, 0.2, 0.2},
				"shininess": 256,
			},
		}
	}
	doc["materials"] = materials

	nodes := map[string]any{}
	translationChildren := make([]string, 0, len(m.rootChildren))
	for _, id := range m.rootChildren {
		translationChildren = append(translationChildren, m.nodes[id].name)
	}
	nodes["translationNode"] = map[string]any{
		"children":    translationChildren,
		"translation": []float64{m.translation.X, m.translation.Y, m.translation.Z},
	}
	nodes["rotationNode"] = map[string]any{
		"children": []string{"translationNode"},
		"rotation": []float64{axisCorrection.X, axisCorrection.Y, axisCorrection.Z, axisCorrection.W},
	}
	for _, n := range m.nodes {
		meshNames := make([]string, 0, len(n.meshes))
		for _, id := range n.meshes {
			meshNames = append(meshNames, m.meshes[id].name)
		}
		entry := map[string]any{"meshes": meshNames}
		if n.matrix != nil {
			t := n.matrix.Transposed() // glTF matrices are column-major
			entry["matrix"] = t[:]
		}
		nodes[n.name] = entry
	}
	doc["nodes"] = nodes

	doc["scenes"] = map[string]any{
		"defaultScene": map[string]any{
			"nodes": []string{"rotationNode"},
		},
	}

	shaders := map[string]any{}
	for _, sh := range legacyShaders {
		viewID, ok := m.shaderViews[sh.name]
		if !ok {
			return nil, fmt.Errorf("shader %s has no bufferView", sh.name)
		}
		shaders[sh.name] = map[string]any{
			"type": sh.glType,
			"uri":  "data:,",
			"extensions": map[string]any{
				"KHR_binary_glTF": map[string]any{
					"bufferView": legacyViewName(viewID),
				},
			},
		}
	}
	doc["shaders"] = shaders
	doc["programs"] = legacyPrograms()
	doc["techniques"] = legacyTechniques()

	return json.Marshal(doc)
}

func legacyViewName(i int) string {
	return fmt.Sprintf("bufferView_%d", i)
}

// legacyStride returns the accessor byteStride the 1.0 format expects
// per attribute kind.
func legacyStride(kind string) int {
	switch kind {
	case accessorVertex, accessorNormal:
		return 12
	case accessorColor:
		return 4
	default:
		return 0
	}
}

func legacyPrograms() map[string]any {
	return map[string]any{
		"vertexColorProgram": map[string]any{
			"attributes":     []string{"a_normal", "a_position", "a_color"},
			"fragmentShader": "vertexColorFragmentShader",
			"vertexShader":   "vertexColorVertexShader",
		},
		"materialColorProgram": map[string]any{
			"attributes":     []string{"a_normal", "a_position"},
			"fragmentShader": "materialColorFragmentShader",
			"vertexShader":   "materialColorVertexShader",
		},
	}
}

func legacyTechniques() map[string]any {
	matrixParams := func() map[string]any {
		return map[string]any{
			"modelViewMatrix": map[string]any{
				"semantic": "MODELVIEW",
				"type":     35676,
			},
			"projectionMatrix": map[string]any{
				"semantic": "PROJECTION",
				"type":     35676,
			},
			"normalMatrix": map[string]any{
				"semantic": "MODELVIEWINVERSETRANSPOSE",
				"type":     35675,
			},
			"normal": map[string]any{
				"semantic": "NORMAL",
				"type":     35665,
			},
			"position": map[string]any{
				"semantic": "POSITION",
				"type":     35665,
			},
		}
	}

	states := map[string]any{
		"enable": []int{2929, 2884}, // DEPTH_TEST, CULL_FACE
	}

	vertexColorParams := matrixParams()
	vertexColorParams["color"] = map[string]any{
		"semantic": "COLOR",
		"type":     35666,
	}

	materialColorParams := matrixParams()
	materialColorParams["diffuse"] = map[string]any{"type": 35666}
	materialColorParams["specular"] = map[string]any{"type": 35666}
	materialColorParams["shininess"] = map[string]any{"type": 5126}

	return map[string]any{
		"vertexColorTechnique": map[string]any{
			"program": "vertexColorProgram",
			"attributes": map[string]any{
				"a_normal":   "normal",
				"a_position": "position",
				"a_color":    "color",
			},
			"parameters": vertexColorParams,
			"states":     states,
			"uniforms": map[string]any{
				"u_modelViewMatrix":  "modelViewMatrix",
				"u_normalMatrix":     "normalMatrix",
				"u_projectionMatrix": "projectionMatrix",
			},
		},
		"materialColorTechnique": map[string]any{
			"program": "materialColorProgram",
			"attributes": map[string]any{
				"a_normal":   "normal",
				"a_position": "position",
			},
			"parameters": materialColorParams,
			"states":     states,
			"uniforms": map[string]any{
				"u_modelViewMatrix":  "modelViewMatrix",
				"u_normalMatrix":     "normalMatrix",
				"u_projectionMatrix": "projectionMatrix",
				"u_diffuse":          "diffuse",
				"u_specular":         "specular",
				"u_shininess":        "shininess",
			},
		},
	}
}
