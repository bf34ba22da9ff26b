package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})

	// Translation lives in the fourth column (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(Vec3{2, 3, 4})

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotateAxisZeroIsIdentity(t *testing.T) {
	if got := RotateAxis(Vec3{0, 1, 0}, 0); got != Identity() {
		t.Errorf("RotateAxis(y, 0) = %v, want identity", got)
	}
}

func TestRotateAxisY90(t *testing.T) {
	m := RotateAxis(Vec3{0, 1, 0}, float32(math.Pi/2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After a 90 degree Y rotation, (1,0,0) becomes approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateAxis Y 90: got %v, want (0, 0, -1)", result)
	}
}

func TestTranslateRotateScaleOrder(t *testing.T) {
	// Scale first, then rotate, then translate.
	m := Translate(Vec3{0, 1, 0}).
		Mul(RotateAxis(Vec3{0, 1, 0}, float32(math.Pi/2))).
		Mul(Scale(Vec3{2, 2, 2}))
	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{0, 1, -2}
	if abs(got.X-want.X) > 0.001 || abs(got.Y-want.Y) > 0.001 || abs(got.Z-want.Z) > 0.001 {
		t.Errorf("T*R*S applied to (1,0,0) = %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(Radians(45), 1.0, 0.1, 100.0)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestPerspectiveAspect(t *testing.T) {
	square := Perspective(Radians(45), 1, 0.1, 100)
	wide := Perspective(Radians(45), 2, 0.1, 100)
	if abs(wide[0]*2-square[0]) > 1e-6 {
		t.Errorf("x scale should halve when aspect doubles: %f vs %f", wide[0], square[0])
	}
	if wide[5] != square[5] {
		t.Errorf("y scale should not depend on aspect: %f vs %f", wide[5], square[5])
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0})

	// The eye maps to the origin of view space.
	got := m.TransformPoint(Vec3{0, 0, 5})
	if got.Length() > 1e-5 {
		t.Errorf("LookAt eye in view space = %v, want origin", got)
	}
	// The target sits on the -Z axis.
	target := m.TransformPoint(Vec3{0, 0, 0})
	if abs(target.Z+5) > 1e-5 {
		t.Errorf("LookAt target z = %f, want -5", target.Z)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
