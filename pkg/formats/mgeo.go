// Package formats provides parsers for 3D asset vertex formats.
// MGEO (map geometry) vertex codec for variable-layout vertex streams.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Faultbox/vertexcodec/pkg/binio"
	"github.com/Faultbox/vertexcodec/pkg/math"
)

// MGEO format errors.
var (
	ErrUnknownElement       = errors.New("unknown vertex element")
	ErrTruncatedVertexData  = errors.New("truncated vertex data")
	ErrVertexSizeTooSmall   = errors.New("declared vertex size too small")
	ErrInvalidStreamLength  = errors.New("vertex stream length is not a multiple of the stride")
	ErrStreamLengthMismatch = errors.New("vertex streams differ in length")
	ErrInvalidVertexCount   = errors.New("invalid vertex count")
)

// maxPreallocVertices caps the up-front allocation for a declared vertex
// count; larger streams grow as vertices are actually read.
const maxPreallocVertices = 1024

// checkVertexCount rejects negative counts and returns the initial capacity
// for a stream of count vertices.
func checkVertexCount(count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidVertexCount, count)
	}
	return min(count, maxPreallocVertices), nil
}

// MGEOElementName identifies the semantic field an element describes.
type MGEOElementName uint32

const (
	MGEOElementPosition       MGEOElementName = 0
	MGEOElementBlendWeight    MGEOElementName = 1
	MGEOElementNormal         MGEOElementName = 2
	MGEOElementFogCoordinate  MGEOElementName = 3
	MGEOElementPrimaryColor   MGEOElementName = 4
	MGEOElementSecondaryColor MGEOElementName = 5
	MGEOElementBlendIndex     MGEOElementName = 6
	MGEOElementDiffuseUV      MGEOElementName = 7
	MGEOElementTexcoord1      MGEOElementName = 8
	MGEOElementTexcoord2      MGEOElementName = 9
	MGEOElementTexcoord3      MGEOElementName = 10
	MGEOElementTexcoord4      MGEOElementName = 11
	MGEOElementTexcoord5      MGEOElementName = 12
	MGEOElementTexcoord6      MGEOElementName = 13
	MGEOElementLightmapUV     MGEOElementName = 14
)

var mgeoElementNames = map[MGEOElementName]string{
	MGEOElementPosition:       "Position",
	MGEOElementBlendWeight:    "BlendWeight",
	MGEOElementNormal:         "Normal",
	MGEOElementFogCoordinate:  "FogCoordinate",
	MGEOElementPrimaryColor:   "PrimaryColor",
	MGEOElementSecondaryColor: "SecondaryColor",
	MGEOElementBlendIndex:     "BlendIndex",
	MGEOElementDiffuseUV:      "DiffuseUV",
	MGEOElementTexcoord1:      "Texcoord1",
	MGEOElementTexcoord2:      "Texcoord2",
	MGEOElementTexcoord3:      "Texcoord3",
	MGEOElementTexcoord4:      "Texcoord4",
	MGEOElementTexcoord5:      "Texcoord5",
	MGEOElementTexcoord6:      "Texcoord6",
	MGEOElementLightmapUV:     "LightmapUV",
}

// String returns the element name.
func (n MGEOElementName) String() string {
	if s, ok := mgeoElementNames[n]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(%d)", uint32(n))
}

// Width returns the encoded byte width of the field.
// Only the fields an MGEOVertex can hold have a width.
func (n MGEOElementName) Width() (int, error) {
	switch n {
	case MGEOElementPosition, MGEOElementNormal:
		return binio.Vec3Size, nil
	case MGEOElementDiffuseUV, MGEOElementLightmapUV:
		return binio.Vec2Size, nil
	case MGEOElementSecondaryColor:
		return binio.ColorSize, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownElement, n)
	}
}

// ParseMGEOElementName looks up an element name by its string form.
func ParseMGEOElementName(s string) (MGEOElementName, error) {
	for n, name := range mgeoElementNames {
		if name == s {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownElement, s)
}

// MGEOElementFormat is the on-disk format recorded next to an element name.
// Decoding never consults it; widths are intrinsic to the name.
type MGEOElementFormat uint32

const (
	MGEOFormatXFloat32       MGEOElementFormat = 0
	MGEOFormatXYFloat32      MGEOElementFormat = 1
	MGEOFormatXYZFloat32     MGEOElementFormat = 2
	MGEOFormatXYZWFloat32    MGEOElementFormat = 3
	MGEOFormatBGRAPacked8888 MGEOElementFormat = 4
	MGEOFormatZYXWPacked8888 MGEOElementFormat = 5
	MGEOFormatRGBAPacked8888 MGEOElementFormat = 6
	MGEOFormatXYZWPacked8888 MGEOElementFormat = 7
)

var mgeoFormatNames = []string{
	"XFloat32",
	"XYFloat32",
	"XYZFloat32",
	"XYZWFloat32",
	"BGRAPacked8888",
	"ZYXWPacked8888",
	"RGBAPacked8888",
	"XYZWPacked8888",
}

// String returns the format name.
func (f MGEOElementFormat) String() string {
	if int(f) < len(mgeoFormatNames) {
		return mgeoFormatNames[f]
	}
	return fmt.Sprintf("Unknown(%d)", uint32(f))
}

// ParseMGEOElementFormat looks up a format by its string form.
func ParseMGEOElementFormat(s string) (MGEOElementFormat, error) {
	for i, name := range mgeoFormatNames {
		if name == s {
			return MGEOElementFormat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown element format %q", s)
}

// DefaultFormat returns the format a field is normally stored with.
func (n MGEOElementName) DefaultFormat() MGEOElementFormat {
	switch n {
	case MGEOElementDiffuseUV, MGEOElementLightmapUV:
		return MGEOFormatXYFloat32
	case MGEOElementSecondaryColor, MGEOElementPrimaryColor:
		return MGEOFormatBGRAPacked8888
	case MGEOElementFogCoordinate, MGEOElementBlendWeight:
		return MGEOFormatXFloat32
	default:
		return MGEOFormatXYZFloat32
	}
}

// MGEOElement declares one field of a variable-layout vertex stream.
// Format is carried for reporting only.
type MGEOElement struct {
	Name   MGEOElementName
	Format MGEOElementFormat
}

// String returns the element as "Name:Format".
func (e MGEOElement) String() string {
	return e.Name.String() + ":" + e.Format.String()
}

// MGEOStride returns the byte size of every vertex in a stream governed by elements.
func MGEOStride(elements []MGEOElement) (int, error) {
	stride := 0
	for i, e := range elements {
		w, err := e.Name.Width()
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", i, err)
		}
		stride += w
	}
	return stride, nil
}

// MGEOVertex is a vertex whose fields are declared by an external element list.
// A nil field is absent.
type MGEOVertex struct {
	Position       *math.Vec3
	Normal         *math.Vec3
	DiffuseUV      *math.Vec2
	LightmapUV     *math.Vec2
	SecondaryColor *math.Color
}

// NewMGEOVertex returns a vertex with position, normal and diffuse UV set.
func NewMGEOVertex(position, normal math.Vec3, diffuseUV math.Vec2) MGEOVertex {
	return MGEOVertex{
		Position:  &position,
		Normal:    &normal,
		DiffuseUV: &diffuseUV,
	}
}

// NewLightmappedMGEOVertex returns a vertex that also carries a lightmap UV.
func NewLightmappedMGEOVertex(position, normal math.Vec3, diffuseUV, lightmapUV math.Vec2) MGEOVertex {
	v := NewMGEOVertex(position, normal, diffuseUV)
	v.LightmapUV = &lightmapUV
	return v
}

// ReadMGEOVertex reads one vertex, consuming fields in element order.
func ReadMGEOVertex(r io.Reader, elements []MGEOElement) (MGEOVertex, error) {
	var v MGEOVertex
	fr := &fieldReader{r: r}

	for _, e := range elements {
		switch e.Name {
		case MGEOElementPosition:
			p := fr.vec3("position")
			v.Position = &p
		case MGEOElementNormal:
			n := fr.vec3("normal")
			v.Normal = &n
		case MGEOElementDiffuseUV:
			uv := fr.vec2("diffuse uv")
			v.DiffuseUV = &uv
		case MGEOElementLightmapUV:
			uv := fr.vec2("lightmap uv")
			v.LightmapUV = &uv
		case MGEOElementSecondaryColor:
			c := fr.color("secondary color")
			v.SecondaryColor = &c
		default:
			// The width is unknown, so nothing after this field can be located.
			return MGEOVertex{}, fmt.Errorf("%w: %s", ErrUnknownElement, e.Name)
		}
		if fr.err != nil {
			return MGEOVertex{}, fr.err
		}
	}

	return v, nil
}

// Size returns the encoded size of the present fields.
func (v MGEOVertex) Size() int {
	size := 0
	if v.Position != nil {
		size += binio.Vec3Size
	}
	if v.Normal != nil {
		size += binio.Vec3Size
	}
	if v.DiffuseUV != nil {
		size += binio.Vec2Size
	}
	if v.LightmapUV != nil {
		size += binio.Vec2Size
	}
	if v.SecondaryColor != nil {
		size += binio.ColorSize
	}
	return size
}

// Encode packs the present fields in canonical order into a buffer of
// exactly vertexSize bytes. Bytes past Size() are left zero.
func (v MGEOVertex) Encode(vertexSize int) ([]byte, error) {
	if size := v.Size(); vertexSize < size {
		return nil, fmt.Errorf("%w: declared %d, need %d", ErrVertexSizeTooSmall, vertexSize, size)
	}

	buf := make([]byte, vertexSize)
	off := 0

	if v.Position != nil {
		off += binio.PutVec3(buf[off:], *v.Position)
	}
	if v.Normal != nil {
		off += binio.PutVec3(buf[off:], *v.Normal)
	}
	if v.DiffuseUV != nil {
		off += binio.PutVec2(buf[off:], *v.DiffuseUV)
	}
	if v.LightmapUV != nil {
		off += binio.PutVec2(buf[off:], *v.LightmapUV)
	}
	if v.SecondaryColor != nil {
		binio.PutColor(buf[off:], *v.SecondaryColor)
	}

	return buf, nil
}

// Write writes the present fields in canonical order with no padding.
func (v MGEOVertex) Write(w io.Writer) error {
	data, err := v.Encode(v.Size())
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// CombineMGEOVertices merges two partial vertices field by field.
// Each field takes a's value when present, else b's. The merge is not
// commutative: when both carry a field, b's value is dropped.
func CombineMGEOVertices(a, b MGEOVertex) MGEOVertex {
	return MGEOVertex{
		Position:       pick(a.Position, b.Position),
		Normal:         pick(a.Normal, b.Normal),
		DiffuseUV:      pick(a.DiffuseUV, b.DiffuseUV),
		LightmapUV:     pick(a.LightmapUV, b.LightmapUV),
		SecondaryColor: pick(a.SecondaryColor, b.SecondaryColor),
	}
}

// pick returns a copy of a if set, else a copy of b, else nil.
func pick[T any](a, b *T) *T {
	src := a
	if src == nil {
		src = b
	}
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

// ReadMGEOVertices reads count vertices governed by elements.
func ReadMGEOVertices(r io.Reader, elements []MGEOElement, count int) ([]MGEOVertex, error) {
	// Reject bad layouts before reading anything.
	if _, err := MGEOStride(elements); err != nil {
		return nil, err
	}
	capacity, err := checkVertexCount(count)
	if err != nil {
		return nil, err
	}

	vertices := make([]MGEOVertex, 0, capacity)
	for i := 0; i < count; i++ {
		v, err := ReadMGEOVertex(r, elements)
		if err != nil {
			return nil, fmt.Errorf("parsing vertex %d: %w", i, err)
		}
		vertices = append(vertices, v)
	}
	return vertices, nil
}

// ParseMGEOVertices decodes a whole vertex buffer. The vertex count is
// derived from the buffer length and the stride of elements.
func ParseMGEOVertices(data []byte, elements []MGEOElement) ([]MGEOVertex, error) {
	stride, err := MGEOStride(elements)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		if len(data) != 0 {
			return nil, fmt.Errorf("%w: %d bytes with empty layout", ErrInvalidStreamLength, len(data))
		}
		return nil, nil
	}
	if len(data)%stride != 0 {
		return nil, fmt.Errorf("%w: %d bytes, stride %d", ErrInvalidStreamLength, len(data), stride)
	}
	return ReadMGEOVertices(bytes.NewReader(data), elements, len(data)/stride)
}

// WriteMGEOVertices encodes each vertex into stride bytes.
func WriteMGEOVertices(w io.Writer, vertices []MGEOVertex, stride int) error {
	for i, v := range vertices {
		data, err := v.Encode(stride)
		if err != nil {
			return fmt.Errorf("encoding vertex %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing vertex %d: %w", i, err)
		}
	}
	return nil
}

// CombineMGEOStreams merges two attribute streams that address the same
// vertices, index by index, with a preferred.
func CombineMGEOStreams(a, b []MGEOVertex) ([]MGEOVertex, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d and %d", ErrStreamLengthMismatch, len(a), len(b))
	}
	out := make([]MGEOVertex, len(a))
	for i := range a {
		out[i] = CombineMGEOVertices(a[i], b[i])
	}
	return out, nil
}
