// Package formats provides parsers for 3D asset vertex formats.
//
// Each format lives in its own file with its names prefixed by the format:
// MGEO map geometry vertices (variable layout), NVR world render vertices
// (fixed layouts selected by material) and WGEO world geometry vertices.
// Container framing is handled by callers; these parsers only see vertex
// streams and the metadata that governs them.
package formats

import (
	"errors"
	"fmt"
	"io"

	"github.com/Faultbox/vertexcodec/pkg/binio"
	"github.com/Faultbox/vertexcodec/pkg/math"
)

// fieldReader reads a run of leaf values, keeping the first error.
// Once err is set further reads are no-ops.
type fieldReader struct {
	r   io.Reader
	err error
}

func (fr *fieldReader) vec3(field string) math.Vec3 {
	if fr.err != nil {
		return math.Vec3{}
	}
	v, err := binio.ReadVec3(fr.r)
	fr.fail(field, err)
	return v
}

func (fr *fieldReader) vec2(field string) math.Vec2 {
	if fr.err != nil {
		return math.Vec2{}
	}
	v, err := binio.ReadVec2(fr.r)
	fr.fail(field, err)
	return v
}

func (fr *fieldReader) color(field string) math.Color {
	if fr.err != nil {
		return math.Color{}
	}
	c, err := binio.ReadColor(fr.r)
	fr.fail(field, err)
	return c
}

func (fr *fieldReader) fail(field string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, binio.ErrTruncated) {
		fr.err = fmt.Errorf("%w: reading %s: %w", ErrTruncatedVertexData, field, err)
		return
	}
	fr.err = fmt.Errorf("reading %s: %w", field, err)
}

// fieldWriter writes a run of leaf values, keeping the first error.
type fieldWriter struct {
	w   io.Writer
	err error
}

func (fw *fieldWriter) vec3(v math.Vec3) {
	if fw.err == nil {
		fw.err = binio.WriteVec3(fw.w, v)
	}
}

func (fw *fieldWriter) vec2(v math.Vec2) {
	if fw.err == nil {
		fw.err = binio.WriteVec2(fw.w, v)
	}
}

func (fw *fieldWriter) color(c math.Color) {
	if fw.err == nil {
		fw.err = binio.WriteColor(fw.w, c)
	}
}
