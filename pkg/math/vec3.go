// Package math provides the leaf value types stored in vertex streams.
package math

import (
	"fmt"
	"math"
)

// Vec3 is a 3D vector stored as three little-endian float32 values.
type Vec3 struct {
	X, Y, Z float32
}

// String returns the vector as "(x, y, z)".
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// IsUnit reports whether the vector length is within eps of 1.
func (v Vec3) IsUnit(eps float32) bool {
	d := v.Length() - 1
	return d >= -eps && d <= eps
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
