package gltf

import (
	"testing"

	"github.com/Faultbox/bimgltf/pkg/math3d"
)

func TestExtentsEmpty(t *testing.T) {
	e := NewExtents()
	if e.Valid() {
		t.Error("empty extents reported valid")
	}
	e = e.Add(nil)
	e = e.Add(&Geometry{Transform: math3d.Identity()})
	if e.Valid() {
		t.Error("extents valid after folding empty records")
	}
}

func TestExtentsAdd(t *testing.T) {
	e := NewExtents()
	e = e.Add(quadStrip())
	if !e.Valid() {
		t.Fatal("extents not valid after adding geometry")
	}

	wantMin := math3d.Vec3{X: 0, Y: 0, Z: 0}
	wantMax := math3d.Vec3{X: 1, Y: 2, Z: 0}
	if e.Min != wantMin || e.Max != wantMax {
		t.Errorf("extents = [%+v, %+v], want [%+v, %+v]", e.Min, e.Max, wantMin, wantMax)
	}
	if got, want := e.Center(), (math3d.Vec3{X: 0.5, Y: 1, Z: 0}); got != want {
		t.Errorf("center = %+v, want %+v", got, want)
	}
}

func TestExtentsAppliesTransform(t *testing.T) {
	g := quadStrip()
	g.Transform = math3d.Translate(10, -5, 2)

	e := NewExtents().Add(g)
	wantMin := math3d.Vec3{X: 10, Y: -5, Z: 2}
	wantMax := math3d.Vec3{X: 11, Y: -3, Z: 2}
	if e.Min != wantMin || e.Max != wantMax {
		t.Errorf("extents = [%+v, %+v], want [%+v, %+v]", e.Min, e.Max, wantMin, wantMax)
	}
}

func TestExtentsFoldsMultipleRecords(t *testing.T) {
	a := quadStrip()
	b := quadStrip()
	b.Transform = math3d.Translate(100, 0, 0)

	e := NewExtents().Add(a).Add(b)
	if e.Min.X != 0 || e.Max.X != 101 {
		t.Errorf("x range = [%v, %v], want [0, 101]", e.Min.X, e.Max.X)
	}
	if got := e.Center().X; got != 50.5 {
		t.Errorf("center x = %v, want 50.5", got)
	}
}
