package obj

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Faultbox/bimgltf/pkg/math3d"
)

const quadObj = `# unit quad in the xy plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
f 1//1 3//1 4//1
`

func TestParseQuad(t *testing.T) {
	f, err := Parse(strings.NewReader(quadObj))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Positions) != 4 || len(f.Normals) != 1 || len(f.Faces) != 2 {
		t.Fatalf("parsed %d positions, %d normals, %d faces; want 4, 1, 2",
			len(f.Positions), len(f.Normals), len(f.Faces))
	}
	if got, want := f.Positions[2], (math3d.Vec3{X: 1, Y: 1, Z: 0}); got != want {
		t.Errorf("position 2 = %+v, want %+v", got, want)
	}
	if got := f.Faces[0].Verts[1]; got.Position != 1 || got.Normal != 0 {
		t.Errorf("face corner = %+v, want position 1 normal 0", got)
	}
}

func TestParseNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	f, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []int{0, 1, 2}
	for i, fv := range f.Faces[0].Verts {
		if fv.Position != want[i] {
			t.Errorf("corner %d position = %d, want %d", i, fv.Position, want[i])
		}
		if fv.Normal != -1 {
			t.Errorf("corner %d normal = %d, want -1", i, fv.Normal)
		}
	}
}

func TestParseSkipsUnknownDirectives(t *testing.T) {
	src := `mtllib scene.mtl
o box
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
usemtl concrete
s off
f 1/1 2/1 3/1
`
	f, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Faces) != 1 {
		t.Fatalf("faces = %d, want 1", len(f.Faces))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"no faces", "v 0 0 0\n", ErrNoFaces},
		{"short vertex", "v 1 2\nf 1 1 1\n", ErrMalformedDirective},
		{"bad float", "v a b c\n", ErrMalformedDirective},
		{"short face", "v 0 0 0\nf 1 1\n", ErrMalformedDirective},
		{"index out of range", "v 0 0 0\nf 1 2 3\n", ErrIndexOutOfRange},
		{"zero index", "v 0 0 0\nf 0 1 1\n", ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.src)); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFlattenDedupsSharedCorners(t *testing.T) {
	f, err := Parse(strings.NewReader(quadObj))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	mesh := f.Flatten()

	// Two triangles over 4 positions sharing one normal: 4 unique
	// vertices, 6 indices.
	if mesh.VertexCount() != 4 {
		t.Errorf("vertices = %d, want 4", mesh.VertexCount())
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	if len(mesh.Indices) != len(want) {
		t.Fatalf("indices = %v, want %v", mesh.Indices, want)
	}
	for i := range want {
		if mesh.Indices[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, mesh.Indices[i], want[i])
		}
	}
	for v := 0; v < mesh.VertexCount(); v++ {
		if mesh.Normals[v*3+2] != 1 {
			t.Errorf("vertex %d normal z = %v, want 1", v, mesh.Normals[v*3+2])
		}
	}
}

func TestFlattenFansPolygons(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1 4//1
`
	f, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	mesh := f.Flatten()
	want := []uint32{0, 1, 2, 0, 2, 3}
	if len(mesh.Indices) != len(want) {
		t.Fatalf("indices = %v, want %v", mesh.Indices, want)
	}
	for i := range want {
		if mesh.Indices[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, mesh.Indices[i], want[i])
		}
	}
}

func TestFlattenComputesFlatNormals(t *testing.T) {
	// Counter-clockwise triangle in the xy plane: flat normal +z.
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	f, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	mesh := f.Flatten()

	// Without normal references nothing dedups; each face owns its
	// corner vertices.
	if mesh.VertexCount() != 3 {
		t.Fatalf("vertices = %d, want 3", mesh.VertexCount())
	}
	for v := 0; v < 3; v++ {
		nx, ny, nz := mesh.Normals[v*3], mesh.Normals[v*3+1], mesh.Normals[v*3+2]
		if nx != 0 || ny != 0 || math.Abs(float64(nz)-1) > 1e-6 {
			t.Errorf("vertex %d normal = (%v, %v, %v), want (0, 0, 1)", v, nx, ny, nz)
		}
	}
}
