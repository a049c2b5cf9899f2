package math

import "fmt"

// Vec2 is a 2D vector, usually a texture coordinate.
type Vec2 struct {
	X, Y float32
}

// String returns the vector as "(x, y)".
func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}
