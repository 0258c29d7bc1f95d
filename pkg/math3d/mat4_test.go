package math3d

import (
	"math"
	"testing"
)

func TestMat4Identity(t *testing.T) {
	id := Identity()
	if !id.IsIdentity() {
		t.Error("Identity() not recognized as identity")
	}
	p := Vec3{1, 2, 3}
	if got := id.TransformPoint(p); got != p {
		t.Errorf("identity transform moved point: %+v", got)
	}
}

func TestMat4Translate(t *testing.T) {
	m := Translate(10, -5, 2)
	got := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{11, -4, 3}
	if got != want {
		t.Errorf("TransformPoint = %+v, want %+v", got, want)
	}
}

func TestMat4Scale(t *testing.T) {
	m := Scale(2, 3, 4)
	got := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{2, 3, 4}
	if got != want {
		t.Errorf("TransformPoint = %+v, want %+v", got, want)
	}
}

func TestMat4Mul(t *testing.T) {
	// Translation after scale: point is scaled first, then moved.
	m := Translate(1, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{3, 2, 2}
	if got != want {
		t.Errorf("TransformPoint = %+v, want %+v", got, want)
	}

	if got := Identity().Mul(m); got != m {
		t.Error("identity multiplication changed matrix")
	}
}

func TestMat4Transposed(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transposed()
	if tr[12] != 1 || tr[13] != 2 || tr[14] != 3 {
		t.Errorf("transposed translation column = [%v %v %v], want [1 2 3]", tr[12], tr[13], tr[14])
	}
	if got := tr.Transposed(); got != m {
		t.Error("double transpose not the original")
	}
}

func TestMat4Invert(t *testing.T) {
	m := Translate(3, -7, 2).Mul(Scale(2, 4, 0.5))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("invertible matrix reported singular")
	}
	round := m.Mul(inv)
	id := Identity()
	for i := range round {
		if math.Abs(round[i]-id[i]) > 1e-12 {
			t.Fatalf("m * m^-1 = %v, want identity", round)
		}
	}
}

func TestMat4InvertSingular(t *testing.T) {
	for _, m := range []Mat4{{}, Scale(0, 1, 1)} {
		if _, ok := m.Invert(); ok {
			t.Errorf("singular matrix %v reported invertible", m)
		}
	}
}
