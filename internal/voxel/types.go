package voxel

import (
	"fmt"
	"strings"
)

// Type is the semantic kind of a voxel. The set is closed; the dense ID a
// Type maps to inside a grid is assigned by a Registry.
type Type uint8

const (
	Air Type = iota
	Dirt
	Grass
	Stone
	Sand
	Water

	numTypes
)

var typeNames = [numTypes]string{
	Air:   "air",
	Dirt:  "dirt",
	Grass: "grass",
	Stone: "stone",
	Sand:  "sand",
	Water: "water",
}

// ID is the small dense identifier stored per grid cell. It is 16 bits wide
// to match the material field of the packed face format.
type ID uint16

func (t Type) String() string {
	if t < numTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	return t < numTypes
}

// Types lists every known type in declaration order.
func Types() []Type {
	out := make([]Type, 0, numTypes)
	for t := Type(0); t < numTypes; t++ {
		out = append(out, t)
	}
	return out
}

// ParseType resolves a case-insensitive type name such as "dirt".
func ParseType(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for t, s := range typeNames {
		if s == n {
			return Type(t), nil
		}
	}
	return 0, fmt.Errorf("parse voxel type %q: %w", name, ErrUnknownVoxelType)
}
