package gltf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/bimgltf/pkg/math3d"
)

func TestSerializerNoGeometry(t *testing.T) {
	sources := []fakeSource{
		{},
		{&fakeProduct{id: "empty", class: "IfcWall"}},
		{&fakeProduct{id: "noIndices", class: "IfcWall", geom: &Geometry{
			Vertices:  []float64{0, 0, 0},
			Normals:   []float32{0, 0, 1},
			Transform: math3d.Identity(),
		}}},
	}
	for _, src := range sources {
		var out bytes.Buffer
		_, err := NewSerializer(src, Binary2).Write(&out)
		if !errors.Is(err, ErrNoGeometry) {
			t.Errorf("err = %v, want %v", err, ErrNoGeometry)
		}
		if out.Len() != 0 {
			t.Errorf("failed run wrote %d bytes", out.Len())
		}
	}
}

func TestSerializerGLB(t *testing.T) {
	src := fakeSource{
		&fakeProduct{id: "wall", class: "IfcWall", geom: quadStrip()},
		&fakeProduct{id: "ghost", class: "IfcSpace"}, // no geometry
		&fakeProduct{id: "door", class: "IfcDoor", geom: triangles(1)},
	}

	var out bytes.Buffer
	report, err := NewSerializer(src, Binary2).Write(&out)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if report.Products != 2 || report.Meshes != 2 || report.Primitives != 2 {
		t.Errorf("report = %+v, want 2 products, 2 meshes, 2 primitives", report)
	}

	raw := out.Bytes()
	if got := binary.LittleEndian.Uint32(raw[0:]); got != glbMagic {
		t.Fatalf("magic = %#x, want %#x", got, glbMagic)
	}
	if got := binary.LittleEndian.Uint32(raw[8:]); int(got) != len(raw) {
		t.Errorf("total length = %d, file is %d bytes", got, len(raw))
	}

	jsonLen := binary.LittleEndian.Uint32(raw[12:])
	sceneJSON := raw[20 : 20+jsonLen]

	var doc struct {
		Asset struct {
			Version string `json:"version"`
		} `json:"asset"`
		Scenes []struct {
			Nodes []int `json:"nodes"`
		} `json:"scenes"`
		Nodes []struct {
			Mesh        *int      `json:"mesh"`
			Children    []int     `json:"children"`
			Translation []float64 `json:"translation"`
			Rotation    []float64 `json:"rotation"`
			Extras      struct {
				GlobalID string `json:"globalId"`
			} `json:"extras"`
		} `json:"nodes"`
		Meshes  []any `json:"meshes"`
		Buffers []struct {
			ByteLength int `json:"byteLength"`
		} `json:"buffers"`
	}
	if err := json.Unmarshal(sceneJSON, &doc); err != nil {
		t.Fatalf("scene JSON: %v", err)
	}

	if doc.Asset.Version != "2.0" {
		t.Errorf("asset version = %q, want 2.0", doc.Asset.Version)
	}
	// Scene root is the rotation node wrapping the translation node
	// wrapping both product nodes.
	if len(doc.Scenes) != 1 || len(doc.Scenes[0].Nodes) != 1 || doc.Scenes[0].Nodes[0] != 1 {
		t.Fatalf("scenes = %+v, want single scene rooted at node 1", doc.Scenes)
	}
	if len(doc.Nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(doc.Nodes))
	}
	if got := doc.Nodes[1].Children; len(got) != 1 || got[0] != 0 {
		t.Errorf("rotation node children = %v, want [0]", got)
	}
	if len(doc.Nodes[1].Rotation) != 4 {
		t.Errorf("rotation node rotation = %v, want quaternion", doc.Nodes[1].Rotation)
	}
	if got := doc.Nodes[0].Children; len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("translation node children = %v, want [2 3]", got)
	}
	if doc.Nodes[2].Extras.GlobalID != "wall" || doc.Nodes[3].Extras.GlobalID != "door" {
		t.Errorf("product order = %q, %q, want wall, door",
			doc.Nodes[2].Extras.GlobalID, doc.Nodes[3].Extras.GlobalID)
	}
	if doc.Nodes[2].Mesh == nil || doc.Nodes[3].Mesh == nil {
		t.Error("product nodes missing mesh references")
	}
	if len(doc.Buffers) != 1 || doc.Buffers[0].ByteLength != report.BodyBytes {
		t.Errorf("buffers = %+v, want byteLength %d", doc.Buffers, report.BodyBytes)
	}
}

func TestSerializerRecentering(t *testing.T) {
	g := quadStrip()
	g.Transform = math3d.Translate(99, 0, 0)
	src := fakeSource{&fakeProduct{id: "p", class: "IfcWall", geom: g}}

	var out bytes.Buffer
	if _, err := NewSerializer(src, Binary2).Write(&out); err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw := out.Bytes()
	jsonLen := binary.LittleEndian.Uint32(raw[12:])

	var doc struct {
		Nodes []struct {
			Translation []float64 `json:"translation"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(raw[20:20+jsonLen], &doc); err != nil {
		t.Fatalf("scene JSON: %v", err)
	}
	// World-space box [99, 100] x [0, 2] x {0}; translation is -center.
	want := []float64{-99.5, -1, 0}
	got := doc.Nodes[0].Translation
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("translation = %v, want %v", got, want)
	}
}

func TestSerializerGLTF1(t *testing.T) {
	src := fakeSource{&fakeProduct{id: "wall", class: "IfcWall", geom: quadStrip()}}

	var out bytes.Buffer
	report, err := NewSerializer(src, Binary1).Write(&out)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw := out.Bytes()
	if got := string(raw[:4]); got != "glTF" {
		t.Fatalf("magic = %q, want glTF", got)
	}
	if got := binary.LittleEndian.Uint32(raw[4:]); got != 1 {
		t.Errorf("version = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(raw[8:]); int(got) != len(raw) {
		t.Errorf("total length = %d, file is %d bytes", got, len(raw))
	}
	sceneLen := binary.LittleEndian.Uint32(raw[12:])
	if int(sceneLen) != report.SceneBytes {
		t.Errorf("scene length = %d, report says %d", sceneLen, report.SceneBytes)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw[20:20+sceneLen], &doc); err != nil {
		t.Fatalf("scene JSON: %v", err)
	}
	for _, key := range []string{"buffers", "bufferViews", "accessors", "meshes", "materials", "nodes", "scenes", "shaders", "programs", "techniques"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("scene JSON missing %q", key)
		}
	}
	var ext []string
	if err := json.Unmarshal(doc["extensionsUsed"], &ext); err != nil || len(ext) != 1 || ext[0] != "KHR_binary_glTF" {
		t.Errorf("extensionsUsed = %v, want [KHR_binary_glTF]", ext)
	}

	// Shader sources ride at the tail of the body, appended after the
	// packed segments in declaration order.
	body := string(raw[20+sceneLen:])
	for _, sh := range legacyShaders {
		if !strings.Contains(body, sh.source) {
			t.Errorf("body missing shader %s", sh.name)
		}
	}
	if !strings.HasSuffix(body, legacyShaders[len(legacyShaders)-1].source) {
		t.Error("body does not end with the last shader blob")
	}
}

func TestSerializerSingularTransformWarning(t *testing.T) {
	g := quadStrip()
	g.Transform = math3d.Scale(0, 1, 1) // collapses x, not invertible
	src := fakeSource{&fakeProduct{id: "flat", class: "IfcWall", geom: g}}

	var out bytes.Buffer
	report, err := NewSerializer(src, Binary2).Write(&out)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(report.Warnings))
	}
	if report.Warnings[0].ProductID != "flat" {
		t.Errorf("warning product = %q, want flat", report.Warnings[0].ProductID)
	}
}

func TestSerializerMeasureBody(t *testing.T) {
	src := fakeSource{&fakeProduct{id: "p", class: "IfcWall", geom: triangles(1)}}

	got, err := NewSerializer(src, Binary2).MeasureBody()
	if err != nil {
		t.Fatalf("MeasureBody: %v", err)
	}
	want := [4]int{12, 36, 36, 12}
	if got != want {
		t.Errorf("sizes = %v, want %v", got, want)
	}

	if _, err := NewSerializer(fakeSource{}, Binary2).MeasureBody(); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("empty source err = %v, want %v", err, ErrNoGeometry)
	}
}
