package formats

import (
	"errors"
	"testing"
)

func TestSelectNVRVertexType(t *testing.T) {
	tests := []struct {
		name  string
		typ   NVRMaterialType
		flags NVRMaterialFlags
		want  NVRVertexType
	}{
		{"default", NVRMaterialDefault, 0, NVRVertexType4},
		{"default colored", NVRMaterialDefault, NVRFlagColoredVertex, NVRVertexType8},
		{"default colored ground", NVRMaterialDefault, NVRFlagColoredVertex | NVRFlagGroundVertex, NVRVertexType8},
		{"four blend", NVRMaterialFourBlend, 0, NVRVertexType12},
		{"four blend colored", NVRMaterialFourBlend, NVRFlagColoredVertex, NVRVertexType12},
		{"decal colored", NVRMaterialDecal, NVRFlagColoredVertex, NVRVertexType4},
		{"wall of grass", NVRMaterialWallOfGrass, NVRFlagGroundVertex, NVRVertexType4},
		{"unknown type", NVRMaterialType(42), NVRFlagColoredVertex, NVRVertexType4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mat := NVRMaterial{Type: tt.typ, Flags: tt.flags}
			if got := SelectNVRVertexType(mat); got != tt.want {
				t.Errorf("SelectNVRVertexType() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSelectNVRVertexType_Total(t *testing.T) {
	types := []NVRMaterialType{NVRMaterialDefault, NVRMaterialDecal, NVRMaterialWallOfGrass, NVRMaterialFourBlend, -1, 99}
	for _, typ := range types {
		for flags := NVRMaterialFlags(0); flags < 64; flags++ {
			got := SelectNVRVertexType(NVRMaterial{Type: typ, Flags: flags})
			switch got {
			case NVRVertexType4, NVRVertexType8, NVRVertexType12:
			default:
				t.Fatalf("type %s flags %#x selected %s", typ, uint32(flags), got)
			}
		}
	}
}

func TestIsGroundMaterial(t *testing.T) {
	tests := []struct {
		name     string
		flags    NVRMaterialFlags
		channels []NVRChannel
		want     bool
		wantErr  error
	}{
		{"no flag", 0, []NVRChannel{{Name: "grass_01.dds"}}, false, nil},
		{"no flag no channels", 0, nil, false, nil},
		{"floor", NVRFlagGroundVertex, []NVRChannel{{Name: "maps/base_floor.dds"}}, true, nil},
		{"dirt", NVRFlagGroundVertex, []NVRChannel{{Name: "path_dirt_02.dds"}}, true, nil},
		{"grass", NVRFlagGroundVertex, []NVRChannel{{Name: "jungle_grass.dds"}}, true, nil},
		{"river bed", NVRFlagGroundVertex, []NVRChannel{{Name: "RiverBed_mud.dds"}}, true, nil},
		{"project", NVRFlagGroundVertex, []NVRChannel{{Name: "sr_project_a.dds"}}, true, nil},
		{"tile", NVRFlagGroundVertex, []NVRChannel{{Name: "tile_stone.dds"}}, true, nil},
		{"case sensitive", NVRFlagGroundVertex, []NVRChannel{{Name: "GRASS.dds"}}, false, nil},
		{"riverbed lower", NVRFlagGroundVertex, []NVRChannel{{Name: "riverbed.dds"}}, false, nil},
		{"only first channel", NVRFlagGroundVertex, []NVRChannel{{Name: "rock.dds"}, {Name: "grass.dds"}}, false, nil},
		{"empty channels", NVRFlagGroundVertex, nil, false, ErrEmptyChannelList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mat := NVRMaterial{Name: tt.name, Flags: tt.flags, Channels: tt.channels}
			got, err := IsGroundMaterial(mat)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsGroundMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNVRMaterialNames(t *testing.T) {
	for _, name := range []string{"Default", "Decal", "WallOfGrass", "FourBlend"} {
		typ, err := ParseNVRMaterialType(name)
		if err != nil {
			t.Fatalf("ParseNVRMaterialType(%q): %v", name, err)
		}
		if typ.String() != name {
			t.Errorf("round trip %q -> %q", name, typ.String())
		}
	}
	if _, err := ParseNVRMaterialType("Glass"); err == nil {
		t.Error("expected error for unknown material type")
	}

	flag, err := ParseNVRMaterialFlag("ColoredVertex")
	if err != nil || flag != NVRFlagColoredVertex {
		t.Errorf("ParseNVRMaterialFlag(ColoredVertex) = %v, %v", flag, err)
	}
	if _, err := ParseNVRMaterialFlag("Shiny"); err == nil {
		t.Error("expected error for unknown flag")
	}

	if !(NVRFlagGroundVertex | NVRFlagColoredVertex).Has(NVRFlagGroundVertex) {
		t.Error("expected Has to find GroundVertex")
	}
	if NVRFlagColoredVertex.Has(NVRFlagGroundVertex) {
		t.Error("unexpected GroundVertex")
	}
}
