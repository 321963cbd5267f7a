package math

import (
	"testing"
)

func TestVec3Scale(t *testing.T) {
	v := Vec3{16, 8, 0}.Scale(1.0 / 16)
	want := Vec3{1, 0.5, 0}
	if v != want {
		t.Errorf("Vec3.Scale() = %v, want %v", v, want)
	}
}

func TestVec3ArrayRoundTrip(t *testing.T) {
	a := [3]float32{1, 2, 3}
	if got := Vec3FromArray(a).Array(); got != a {
		t.Errorf("Vec3FromArray(%v).Array() = %v", a, got)
	}
}
