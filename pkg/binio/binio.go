// Package binio reads and writes the fixed-width leaf values of vertex streams.
//
// All values are little-endian. Widths are load-bearing: every vertex size in
// the formats package is a sum of these constants.
package binio

import (
	"encoding/binary"
	"errors"
	"io"
	stdmath "math"

	"github.com/Faultbox/vertexcodec/pkg/math"
)

// Encoded widths in bytes.
const (
	Vec3Size  = 12
	Vec2Size  = 8
	ColorSize = 4
)

// ErrTruncated is returned when fewer bytes remain than a value requires.
var ErrTruncated = errors.New("truncated stream")

// ReadVec3 reads three float32 values.
func ReadVec3(r io.Reader) (math.Vec3, error) {
	var v math.Vec3
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return math.Vec3{}, wrapRead(err)
	}
	return v, nil
}

// ReadVec2 reads two float32 values.
func ReadVec2(r io.Reader) (math.Vec2, error) {
	var v math.Vec2
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return math.Vec2{}, wrapRead(err)
	}
	return v, nil
}

// ReadColor reads a color stored as B, G, R, A bytes.
func ReadColor(r io.Reader) (math.Color, error) {
	var b [ColorSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return math.Color{}, wrapRead(err)
	}
	return math.ColorFromBGRA(b[0], b[1], b[2], b[3]), nil
}

// WriteVec3 writes three float32 values.
func WriteVec3(w io.Writer, v math.Vec3) error {
	return binary.Write(w, binary.LittleEndian, v)
}

// WriteVec2 writes two float32 values.
func WriteVec2(w io.Writer, v math.Vec2) error {
	return binary.Write(w, binary.LittleEndian, v)
}

// WriteColor writes a color as B, G, R, A bytes.
func WriteColor(w io.Writer, c math.Color) error {
	b := c.BGRA()
	_, err := w.Write(b[:])
	return err
}

// PutVec3 encodes v into the start of b and returns the bytes written.
// b must hold at least Vec3Size bytes.
func PutVec3(b []byte, v math.Vec3) int {
	binary.LittleEndian.PutUint32(b[0:], stdmath.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], stdmath.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], stdmath.Float32bits(v.Z))
	return Vec3Size
}

// PutVec2 encodes v into the start of b and returns the bytes written.
// b must hold at least Vec2Size bytes.
func PutVec2(b []byte, v math.Vec2) int {
	binary.LittleEndian.PutUint32(b[0:], stdmath.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], stdmath.Float32bits(v.Y))
	return Vec2Size
}

// PutColor encodes c into the start of b and returns the bytes written.
// b must hold at least ColorSize bytes.
func PutColor(b []byte, c math.Color) int {
	bgra := c.BGRA()
	return copy(b[:ColorSize], bgra[:])
}

// wrapRead maps short reads to ErrTruncated and passes other errors through.
func wrapRead(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
