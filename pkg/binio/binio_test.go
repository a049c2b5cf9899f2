package binio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/Faultbox/vertexcodec/pkg/math"
)

func TestReadVec3(t *testing.T) {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, float32(1))
	binary.Write(buf, binary.LittleEndian, float32(-2.5))
	binary.Write(buf, binary.LittleEndian, float32(3))

	v, err := ReadVec3(buf)
	if err != nil {
		t.Fatalf("ReadVec3 failed: %v", err)
	}
	if want := (math.Vec3{X: 1, Y: -2.5, Z: 3}); v != want {
		t.Errorf("got %v, want %v", v, want)
	}
}

func TestReadColor_BGRAOrder(t *testing.T) {
	c, err := ReadColor(bytes.NewReader([]byte{1, 2, 3, 4}))
	if err != nil {
		t.Fatalf("ReadColor failed: %v", err)
	}
	if c.B != 1 || c.G != 2 || c.R != 3 || c.A != 4 {
		t.Errorf("got %+v, want B=1 G=2 R=3 A=4", c)
	}
}

func TestRead_Truncated(t *testing.T) {
	tests := []struct {
		name string
		read func(r *bytes.Reader) error
		data []byte
	}{
		{"vec3 empty", func(r *bytes.Reader) error { _, err := ReadVec3(r); return err }, nil},
		{"vec3 short", func(r *bytes.Reader) error { _, err := ReadVec3(r); return err }, make([]byte, 11)},
		{"vec2 short", func(r *bytes.Reader) error { _, err := ReadVec2(r); return err }, make([]byte, 7)},
		{"color short", func(r *bytes.Reader) error { _, err := ReadColor(r); return err }, make([]byte, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrTruncated) {
				t.Errorf("expected ErrTruncated, got %v", err)
			}
		})
	}
}

func TestWriteWidths(t *testing.T) {
	buf := new(bytes.Buffer)

	if err := WriteVec3(buf, math.Vec3{X: 1, Y: 2, Z: 3}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != Vec3Size {
		t.Errorf("Vec3 wrote %d bytes, want %d", buf.Len(), Vec3Size)
	}

	buf.Reset()
	if err := WriteVec2(buf, math.Vec2{X: 1, Y: 2}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != Vec2Size {
		t.Errorf("Vec2 wrote %d bytes, want %d", buf.Len(), Vec2Size)
	}

	buf.Reset()
	if err := WriteColor(buf, math.ColorFromBGRA(9, 8, 7, 6)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{9, 8, 7, 6}) {
		t.Errorf("Color wrote %v, want [9 8 7 6]", buf.Bytes())
	}
}

func TestPutMatchesWrite(t *testing.T) {
	v3 := math.Vec3{X: 0.5, Y: -1, Z: 1e6}
	v2 := math.Vec2{X: 0.25, Y: 0.75}
	c := math.ColorFromBGRA(1, 2, 3, 4)

	want := new(bytes.Buffer)
	WriteVec3(want, v3)
	WriteVec2(want, v2)
	WriteColor(want, c)

	got := make([]byte, Vec3Size+Vec2Size+ColorSize)
	n := PutVec3(got, v3)
	n += PutVec2(got[n:], v2)
	n += PutColor(got[n:], c)

	if n != len(got) {
		t.Errorf("Put helpers wrote %d bytes, want %d", n, len(got))
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Errorf("Put output %v differs from Write output %v", got, want.Bytes())
	}
}
