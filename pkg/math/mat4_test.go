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
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	p := [3]float32{1, 0, 0}           // Point on X axis
	result := m.TransformPoint(p)

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestEulerDegreesMatchesRadians(t *testing.T) {
	got := EulerDegrees(0, 90, 0)
	want := RotateY(float32(math.Pi / 2))
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("EulerDegrees(0, 90, 0) = %v, want %v", got, want)
	}
}

func TestTRS(t *testing.T) {
	m := TRS(Vec3{1, 0, 0}, Vec3{0, 0, 0}, Vec3{2, 2, 2})
	result := m.TransformPoint([3]float32{1, 1, 1})

	// Scale first, then translate
	expected := [3]float32{3, 2, 2}
	if result != expected {
		t.Errorf("TRS: got %v, want %v", result, expected)
	}
}

func TestTRSIdentity(t *testing.T) {
	m := TRS(Vec3{}, Vec3{}, Vec3{1, 1, 1})
	if !m.ApproxEqual(Identity(), 1e-6) {
		t.Errorf("TRS with neutral components should be identity, got %v", m)
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); abs(got-float32(math.Pi)) > 1e-6 {
		t.Errorf("Radians(180) = %f, want pi", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
