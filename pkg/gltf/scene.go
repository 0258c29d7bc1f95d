package gltf

import (
	"fmt"

	"github.com/Faultbox/bimgltf/pkg/math3d"
)

// axisCorrection is the fixed scene-root rotation flipping the source
// Z-up convention to the glTF Y-up convention.
var axisCorrection = math3d.Quat{X: 1, Y: 0, Z: 0, W: -1}.Normalize()

// Accessor kinds, used for the name-keyed glTF 1.0 encoding.
const (
	accessorIndex  = "index"
	accessorVertex = "vertex"
	accessorNormal = "normal"
	accessorColor  = "color"
)

type bufferView struct {
	byteOffset int
	byteLength int
	target     int // 0 = none
	byteStride int // 0 = none
}

type accessor struct {
	kind          string
	view          int
	byteOffset    int
	componentType int
	count         int
	elementType   string // SCALAR, VEC3, VEC4
	normalized    bool
	min, max      []float64
}

type material struct {
	key         string // dedup key; class name for default materials
	name        string
	diffuse     RGBA
	vertexColor bool
}

type primitive struct {
	indices   int
	positions int
	normals   int
	colors    int // -1 when absent
	material  int
}

type meshEntry struct {
	name       string
	primitives []primitive
}

type nodeEntry struct {
	name     string
	meshes   []int
	matrix   *math3d.Mat4 // nil: identity or singular, omitted
	globalID string
}

// sceneModel is the descriptive tree built while packing: material,
// bufferView, accessor, mesh and node tables referencing the packed
// segments. It is policy-neutral; the two JSON encoders render it into
// the variant-specific document shapes.
type sceneModel struct {
	policy Policy
	sizes  segmentSizes

	materials     []material
	materialIndex map[string]int

	bufferViews []bufferView
	accessors   []accessor
	meshes      []meshEntry
	nodes       []nodeEntry

	// Children of the recentering translation node, in packing order.
	rootChildren []int

	translation math3d.Vec3
	bodyLength  int

	indicesView, verticesView, normalsView int
	colorsView                             int // -1 until first color accessor

	// glTF 1.0 shader blobs appended behind the segments, keyed by
	// shader name.
	shaderViews map[string]int

	warnings []Warning
}

func newSceneModel(policy Policy, sizes segmentSizes) *sceneModel {
	m := &sceneModel{
		policy:        policy,
		sizes:         sizes,
		materialIndex: make(map[string]int),
		colorsView:    -1,
		shaderViews:   make(map[string]int),
	}

	// The shared vertex-color material is always materials[0].
	m.materials = append(m.materials, material{
		key:         "VertexColorMaterial",
		name:        "VertexColorMaterial",
		diffuse:     RGBA{R: 1, G: 1, B: 1, A: 1},
		vertexColor: true,
	})

	m.indicesView = m.addBufferView(bufferView{
		byteOffset: 0,
		byteLength: sizes.indices,
		target:     TargetElementArrayBuffer,
	})
	m.verticesView = m.addBufferView(bufferView{
		byteOffset: sizes.indices,
		byteLength: sizes.vertices,
		target:     TargetArrayBuffer,
		byteStride: 12,
	})
	m.normalsView = m.addBufferView(bufferView{
		byteOffset: sizes.indices + sizes.vertices,
		byteLength: sizes.normals,
		target:     TargetArrayBuffer,
		byteStride: 12,
	})
	return m
}

func (m *sceneModel) addBufferView(v bufferView) int {
	m.bufferViews = append(m.bufferViews, v)
	return len(m.bufferViews) - 1
}

// ensureColorsView creates the colors bufferView on first use. Its
// offset is fixed behind the normals segment regardless of when the
// first color accessor appears.
func (m *sceneModel) ensureColorsView() int {
	if m.colorsView == -1 {
		m.colorsView = m.addBufferView(bufferView{
			byteOffset: m.sizes.indices + m.sizes.vertices + m.sizes.normals,
			byteLength: m.sizes.colors,
			target:     TargetArrayBuffer,
			byteStride: 4,
		})
	}
	return m.colorsView
}

// addShaderView registers a bufferView for a shader blob appended
// behind the packed segments (glTF 1.0 only).
func (m *sceneModel) addShaderView(shaderName string, byteOffset, byteLength int) int {
	id := m.addBufferView(bufferView{byteOffset: byteOffset, byteLength: byteLength})
	m.shaderViews[shaderName] = id
	return id
}

func (m *sceneModel) addAccessor(a accessor) int {
	m.accessors = append(m.accessors, a)
	return len(m.accessors) - 1
}

func (m *sceneModel) addIndicesAccessor(byteOffset, count int) int {
	return m.addAccessor(accessor{
		kind:          accessorIndex,
		view:          m.indicesView,
		byteOffset:    byteOffset,
		componentType: m.policy.IndexComponent,
		count:         count,
		elementType:   "SCALAR",
	})
}

func (m *sceneModel) addVertexAccessor(byteOffset, count int, min, max [3]float64) int {
	return m.addAccessor(accessor{
		kind:          accessorVertex,
		view:          m.verticesView,
		byteOffset:    byteOffset,
		componentType: ComponentFloat,
		count:         count,
		elementType:   "VEC3",
		min:           min[:],
		max:           max[:],
	})
}

func (m *sceneModel) addNormalsAccessor(byteOffset, count int) int {
	return m.addAccessor(accessor{
		kind:          accessorNormal,
		view:          m.normalsView,
		byteOffset:    byteOffset,
		componentType: ComponentFloat,
		count:         count,
		elementType:   "VEC3",
	})
}

func (m *sceneModel) addColorsAccessor(byteOffset, count int) int {
	return m.addAccessor(accessor{
		kind:          accessorColor,
		view:          m.ensureColorsView(),
		byteOffset:    byteOffset,
		componentType: ComponentUnsignedByte,
		count:         count,
		elementType:   "VEC4",
		normalized:    true,
	})
}

// vertexColorMaterial returns the shared vertex-color material index.
func (m *sceneModel) vertexColorMaterial() int {
	return 0
}

// materialFor returns the default material for an entity class,
// creating it on first request. Repeated requests for the same class
// yield the same index.
func (m *sceneModel) materialFor(class string) int {
	if id, ok := m.materialIndex[class]; ok {
		return id
	}
	m.materials = append(m.materials, material{
		key:     class,
		name:    class + "Material",
		diffuse: DefaultClassColor(class),
	})
	id := len(m.materials) - 1
	m.materialIndex[class] = id
	return id
}

func (m *sceneModel) addMesh(name string, prims []primitive) int {
	m.meshes = append(m.meshes, meshEntry{name: name, primitives: prims})
	return len(m.meshes) - 1
}

// addNode creates the scene node for one packed product and attaches
// it to the recentering translation node. The object matrix is omitted
// when it is the identity; a non-invertible matrix is also omitted,
// with a recorded diagnostic, because consumers needing the inverse
// for normal transforms cannot use a singular matrix.
func (m *sceneModel) addNode(p Product, meshIDs []int, transform math3d.Mat4) int {
	entry := nodeEntry{
		name:     "node_" + p.GlobalID(),
		meshes:   meshIDs,
		globalID: p.GlobalID(),
	}
	if !transform.IsIdentity() {
		if _, ok := transform.Invert(); !ok {
			m.warnings = append(m.warnings, Warning{
				ProductID: p.GlobalID(),
				Message:   "transform not invertible, omitted from node",
			})
		} else {
			t := transform
			entry.matrix = &t
		}
	}
	m.nodes = append(m.nodes, entry)
	id := len(m.nodes) - 1
	m.rootChildren = append(m.rootChildren, id)
	return id
}

// meshName returns the mesh table name for a product, with a partition
// suffix when the record was split.
func meshName(p Product, part, parts int) string {
	if parts > 1 {
		return fmt.Sprintf("mesh_%s_%d", p.GlobalID(), part)
	}
	return "mesh_" + p.GlobalID()
}
