// Package formats provides parsers for 3D asset vertex formats.
// WGEO (world geometry) vertex codec.
package formats

import (
	"io"

	"github.com/Faultbox/vertexcodec/pkg/math"
)

// WGEOVertexSize is the encoded size of a WGEOVertex.
const WGEOVertexSize = 20

// WGEOVertex is a textured world geometry vertex.
type WGEOVertex struct {
	Position math.Vec3
	UV       math.Vec2
}

// ReadWGEOVertex reads a position followed by a UV.
func ReadWGEOVertex(r io.Reader) (WGEOVertex, error) {
	fr := &fieldReader{r: r}
	v := WGEOVertex{
		Position: fr.vec3("position"),
		UV:       fr.vec2("uv"),
	}
	if fr.err != nil {
		return WGEOVertex{}, fr.err
	}
	return v, nil
}

// Write encodes the vertex.
func (v WGEOVertex) Write(w io.Writer) error {
	fw := &fieldWriter{w: w}
	fw.vec3(v.Position)
	fw.vec2(v.UV)
	return fw.err
}
