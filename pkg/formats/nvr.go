// Package formats provides parsers for 3D asset vertex formats.
// NVR (world render) vertex codec for fixed-layout vertex streams.
package formats

import (
	"errors"
	"fmt"
	"io"

	"github.com/Faultbox/vertexcodec/pkg/binio"
	"github.com/Faultbox/vertexcodec/pkg/math"
)

// NVR format errors.
var (
	ErrUnknownVertexType = errors.New("unknown NVR vertex type")
	ErrMixedVertexTypes  = errors.New("NVR vertex does not match stream vertex type")
)

// NVRVertexType tags one layout of the closed NVR vertex family.
type NVRVertexType int32

const (
	NVRVertexTypeBase NVRVertexType = 0 // Position only
	NVRVertexType4    NVRVertexType = 1 // Position, Normal, UV, DiffuseColor
	NVRVertexType8    NVRVertexType = 2 // Vertex4 layout plus EmissiveColor
	NVRVertexType12   NVRVertexType = 3 // Position, Normal, Unknown, UV, DiffuseColor
)

// Fixed encoded sizes in bytes.
const (
	NVRBaseVertexSize = binio.Vec3Size
	NVRVertex4Size    = NVRBaseVertexSize + binio.Vec3Size + binio.Vec2Size + binio.ColorSize
	NVRVertex8Size    = NVRVertex4Size + binio.ColorSize
	NVRVertex12Size   = NVRVertex4Size + binio.Vec2Size
)

// String returns a human-readable vertex type name.
func (t NVRVertexType) String() string {
	switch t {
	case NVRVertexTypeBase:
		return "Base"
	case NVRVertexType4:
		return "4"
	case NVRVertexType8:
		return "8"
	case NVRVertexType12:
		return "12"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(t))
	}
}

// Size returns the encoded size of the layout, or 0 for an unknown tag.
func (t NVRVertexType) Size() int {
	switch t {
	case NVRVertexTypeBase:
		return NVRBaseVertexSize
	case NVRVertexType4:
		return NVRVertex4Size
	case NVRVertexType8:
		return NVRVertex8Size
	case NVRVertexType12:
		return NVRVertex12Size
	default:
		return 0
	}
}

// NVRVertex is one of NVRBaseVertex, NVRVertex4, NVRVertex8 or NVRVertex12.
// The set is closed; dispatch on it with a type switch.
type NVRVertex interface {
	// Type returns the layout tag. It always matches the concrete type.
	Type() NVRVertexType
	// Size returns the fixed encoded size.
	Size() int
	// Write encodes the vertex in its fixed field order.
	Write(w io.Writer) error

	nvrVertex()
}

// NVRBaseVertex holds only a position.
type NVRBaseVertex struct {
	Position math.Vec3
}

// NVRVertex4 is the default lit vertex.
type NVRVertex4 struct {
	Position     math.Vec3
	Normal       math.Vec3
	UV           math.Vec2
	DiffuseColor math.Color
}

// NVRVertex8 is used by default materials with colored vertices.
type NVRVertex8 struct {
	Position      math.Vec3
	Normal        math.Vec3
	UV            math.Vec2
	DiffuseColor  math.Color
	EmissiveColor math.Color
}

// NVRVertex12 is used by four-blend materials.
type NVRVertex12 struct {
	Position     math.Vec3
	Normal       math.Vec3
	Unknown      math.Vec2 // Second UV set, meaning not known
	UV           math.Vec2
	DiffuseColor math.Color
}

func (NVRBaseVertex) nvrVertex() {}
func (NVRVertex4) nvrVertex()    {}
func (NVRVertex8) nvrVertex()    {}
func (NVRVertex12) nvrVertex()   {}

func (NVRBaseVertex) Type() NVRVertexType { return NVRVertexTypeBase }
func (NVRVertex4) Type() NVRVertexType    { return NVRVertexType4 }
func (NVRVertex8) Type() NVRVertexType    { return NVRVertexType8 }
func (NVRVertex12) Type() NVRVertexType   { return NVRVertexType12 }

func (NVRBaseVertex) Size() int { return NVRBaseVertexSize }
func (NVRVertex4) Size() int    { return NVRVertex4Size }
func (NVRVertex8) Size() int    { return NVRVertex8Size }
func (NVRVertex12) Size() int   { return NVRVertex12Size }

// ReadNVRBaseVertex reads a position-only vertex.
func ReadNVRBaseVertex(r io.Reader) (NVRBaseVertex, error) {
	fr := &fieldReader{r: r}
	v := NVRBaseVertex{Position: fr.vec3("position")}
	if fr.err != nil {
		return NVRBaseVertex{}, fr.err
	}
	return v, nil
}

// ReadNVRVertex4 reads a 36-byte vertex.
func ReadNVRVertex4(r io.Reader) (NVRVertex4, error) {
	fr := &fieldReader{r: r}
	v := NVRVertex4{
		Position:     fr.vec3("position"),
		Normal:       fr.vec3("normal"),
		UV:           fr.vec2("uv"),
		DiffuseColor: fr.color("diffuse color"),
	}
	if fr.err != nil {
		return NVRVertex4{}, fr.err
	}
	return v, nil
}

// ReadNVRVertex8 reads a 40-byte vertex.
func ReadNVRVertex8(r io.Reader) (NVRVertex8, error) {
	fr := &fieldReader{r: r}
	v := NVRVertex8{
		Position:      fr.vec3("position"),
		Normal:        fr.vec3("normal"),
		UV:            fr.vec2("uv"),
		DiffuseColor:  fr.color("diffuse color"),
		EmissiveColor: fr.color("emissive color"),
	}
	if fr.err != nil {
		return NVRVertex8{}, fr.err
	}
	return v, nil
}

// ReadNVRVertex12 reads a 44-byte vertex.
func ReadNVRVertex12(r io.Reader) (NVRVertex12, error) {
	fr := &fieldReader{r: r}
	v := NVRVertex12{
		Position:     fr.vec3("position"),
		Normal:       fr.vec3("normal"),
		Unknown:      fr.vec2("unknown"),
		UV:           fr.vec2("uv"),
		DiffuseColor: fr.color("diffuse color"),
	}
	if fr.err != nil {
		return NVRVertex12{}, fr.err
	}
	return v, nil
}

// Write encodes the vertex.
func (v NVRBaseVertex) Write(w io.Writer) error {
	fw := &fieldWriter{w: w}
	fw.vec3(v.Position)
	return fw.err
}

// Write encodes the vertex.
func (v NVRVertex4) Write(w io.Writer) error {
	fw := &fieldWriter{w: w}
	fw.vec3(v.Position)
	fw.vec3(v.Normal)
	fw.vec2(v.UV)
	fw.color(v.DiffuseColor)
	return fw.err
}

// Write encodes the vertex.
func (v NVRVertex8) Write(w io.Writer) error {
	fw := &fieldWriter{w: w}
	fw.vec3(v.Position)
	fw.vec3(v.Normal)
	fw.vec2(v.UV)
	fw.color(v.DiffuseColor)
	fw.color(v.EmissiveColor)
	return fw.err
}

// Write encodes the vertex.
func (v NVRVertex12) Write(w io.Writer) error {
	fw := &fieldWriter{w: w}
	fw.vec3(v.Position)
	fw.vec3(v.Normal)
	fw.vec2(v.Unknown)
	fw.vec2(v.UV)
	fw.color(v.DiffuseColor)
	return fw.err
}

// ReadNVRVertex reads one vertex of the layout selected by t.
// The stream itself carries no tag.
func ReadNVRVertex(r io.Reader, t NVRVertexType) (NVRVertex, error) {
	var (
		v   NVRVertex
		err error
	)
	switch t {
	case NVRVertexTypeBase:
		v, err = ReadNVRBaseVertex(r)
	case NVRVertexType4:
		v, err = ReadNVRVertex4(r)
	case NVRVertexType8:
		v, err = ReadNVRVertex8(r)
	case NVRVertexType12:
		v, err = ReadNVRVertex12(r)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownVertexType, int32(t))
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ReadNVRVertices reads count vertices of layout t.
func ReadNVRVertices(r io.Reader, t NVRVertexType, count int) ([]NVRVertex, error) {
	if t.Size() == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVertexType, int32(t))
	}
	capacity, err := checkVertexCount(count)
	if err != nil {
		return nil, err
	}

	vertices := make([]NVRVertex, 0, capacity)
	for i := 0; i < count; i++ {
		v, err := ReadNVRVertex(r, t)
		if err != nil {
			return nil, fmt.Errorf("parsing vertex %d: %w", i, err)
		}
		vertices = append(vertices, v)
	}
	return vertices, nil
}

// WriteNVRVertices writes a stream of layout t. Every vertex must be of that layout.
func WriteNVRVertices(w io.Writer, t NVRVertexType, vertices []NVRVertex) error {
	for i, v := range vertices {
		if v == nil || v.Type() != t {
			return fmt.Errorf("%w: vertex %d is %v, stream is %s", ErrMixedVertexTypes, i, vertexTypeOf(v), t)
		}
		if err := v.Write(w); err != nil {
			return fmt.Errorf("writing vertex %d: %w", i, err)
		}
	}
	return nil
}

func vertexTypeOf(v NVRVertex) string {
	if v == nil {
		return "nil"
	}
	return v.Type().String()
}

// NVRVertexPosition returns the position shared by every layout.
func NVRVertexPosition(v NVRVertex) math.Vec3 {
	switch v := v.(type) {
	case NVRBaseVertex:
		return v.Position
	case NVRVertex4:
		return v.Position
	case NVRVertex8:
		return v.Position
	case NVRVertex12:
		return v.Position
	default:
		return math.Vec3{}
	}
}
