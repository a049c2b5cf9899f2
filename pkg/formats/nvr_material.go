package formats

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyChannelList is returned when a ground-flagged material has no channels.
var ErrEmptyChannelList = errors.New("NVR material has no channels")

// NVRMaterialType is the shading model of an NVR material.
type NVRMaterialType int32

const (
	NVRMaterialDefault     NVRMaterialType = 0
	NVRMaterialDecal       NVRMaterialType = 1
	NVRMaterialWallOfGrass NVRMaterialType = 2
	NVRMaterialFourBlend   NVRMaterialType = 3
)

var nvrMaterialTypeNames = []string{"Default", "Decal", "WallOfGrass", "FourBlend"}

// String returns a human-readable material type name.
func (t NVRMaterialType) String() string {
	if t >= 0 && int(t) < len(nvrMaterialTypeNames) {
		return nvrMaterialTypeNames[t]
	}
	return fmt.Sprintf("Unknown(%d)", int32(t))
}

// ParseNVRMaterialType looks up a material type by name.
func ParseNVRMaterialType(s string) (NVRMaterialType, error) {
	for i, name := range nvrMaterialTypeNames {
		if name == s {
			return NVRMaterialType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown NVR material type %q", s)
}

// NVRMaterialFlags is the flag bitset of an NVR material.
type NVRMaterialFlags uint32

const (
	NVRFlagGroundVertex  NVRMaterialFlags = 1 << 0
	NVRFlagColoredVertex NVRMaterialFlags = 1 << 4
)

var nvrFlagNames = map[string]NVRMaterialFlags{
	"GroundVertex":  NVRFlagGroundVertex,
	"ColoredVertex": NVRFlagColoredVertex,
}

// Has reports whether every bit of flag is set.
func (f NVRMaterialFlags) Has(flag NVRMaterialFlags) bool {
	return f&flag == flag
}

// ParseNVRMaterialFlag looks up a single named flag.
func ParseNVRMaterialFlag(s string) (NVRMaterialFlags, error) {
	if f, ok := nvrFlagNames[s]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unknown NVR material flag %q", s)
}

// NVRChannel is one texture channel of a material.
type NVRChannel struct {
	Name string // Texture path
}

// NVRMaterial is the material metadata that selects a vertex layout.
type NVRMaterial struct {
	Name     string
	Type     NVRMaterialType
	Flags    NVRMaterialFlags
	Channels []NVRChannel
}

// groundKeywords mark a first-channel texture as walkable terrain. Matching is case-sensitive.
var groundKeywords = []string{"_floor", "_dirt", "grass", "RiverBed", "_project", "tile_"}

// SelectNVRVertexType returns the vertex layout used by meshes of mat.
// Four-blend wins over colored vertices; everything else uses Vertex4.
func SelectNVRVertexType(mat NVRMaterial) NVRVertexType {
	switch {
	case mat.Type == NVRMaterialFourBlend:
		return NVRVertexType12
	case mat.Type == NVRMaterialDefault && mat.Flags.Has(NVRFlagColoredVertex):
		return NVRVertexType8
	default:
		return NVRVertexType4
	}
}

// IsGroundMaterial reports whether mat is walkable terrain: it must carry
// the GroundVertex flag and its first channel must name a ground texture.
func IsGroundMaterial(mat NVRMaterial) (bool, error) {
	if !mat.Flags.Has(NVRFlagGroundVertex) {
		return false, nil
	}
	if len(mat.Channels) == 0 {
		return false, fmt.Errorf("%w: %q", ErrEmptyChannelList, mat.Name)
	}

	texture := mat.Channels[0].Name
	for _, kw := range groundKeywords {
		if strings.Contains(texture, kw) {
			return true, nil
		}
	}
	return false, nil
}
