// Package math provides the small vector and matrix types used by block models.
package math

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec3FromArray converts a [3]float32 triplet.
func Vec3FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Array returns the components as a [3]float32.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
