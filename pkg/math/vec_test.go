package math

import (
	"math"
	"testing"
)

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	got := v.Length()
	want := float32(7)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	if !n.IsUnit(0.001) {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", n.Length())
	}
	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("zero vector normalized to %v, want zero", zero)
	}
}

func TestVec3IsUnit(t *testing.T) {
	tests := []struct {
		v    Vec3
		want bool
	}{
		{Vec3{0, 1, 0}, true},
		{Vec3{0, 0, 1}, true},
		{Vec3{0, 0, 0}, false},
		{Vec3{1, 1, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			if got := tt.v.IsUnit(0.001); got != tt.want {
				t.Errorf("IsUnit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("expected finite Vec3")
	}
	if (Vec3{1, nan, 3}).IsFinite() {
		t.Error("expected NaN Vec3 to be non-finite")
	}
	if (Vec2{inf, 0}).IsFinite() {
		t.Error("expected Inf Vec2 to be non-finite")
	}
}

func TestVecString(t *testing.T) {
	if got := (Vec3{1, 2, 3}).String(); got != "(1, 2, 3)" {
		t.Errorf("Vec3.String() = %q", got)
	}
	if got := (Vec2{0.5, 0.25}).String(); got != "(0.5, 0.25)" {
		t.Errorf("Vec2.String() = %q", got)
	}
}

func TestColorBGRA(t *testing.T) {
	c := ColorFromBGRA(255, 10, 20, 128)
	if c.B != 255 || c.G != 10 || c.R != 20 || c.A != 128 {
		t.Errorf("ColorFromBGRA() = %+v", c)
	}
	if got, want := c.BGRA(), [4]uint8{255, 10, 20, 128}; got != want {
		t.Errorf("BGRA() = %v, want %v", got, want)
	}
	if got := c.String(); got != "bgra(255, 10, 20, 128)" {
		t.Errorf("String() = %q", got)
	}
}
