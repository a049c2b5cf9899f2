package math

import "fmt"

// Color is an 8-bit per channel color.
// On disk it is stored in blue-green-red-alpha byte order.
type Color struct {
	R, G, B, A uint8
}

// ColorFromBGRA builds a color from channels given in storage order.
func ColorFromBGRA(b, g, r, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// BGRA returns the channels in storage order.
func (c Color) BGRA() [4]uint8 {
	return [4]uint8{c.B, c.G, c.R, c.A}
}

// String returns the color as "bgra(b, g, r, a)".
func (c Color) String() string {
	return fmt.Sprintf("bgra(%d, %d, %d, %d)", c.B, c.G, c.R, c.A)
}
