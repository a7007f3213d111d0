package world

import (
	"errors"
	"fmt"
)

const (
	// ChunkSize is the logical edge length of a chunk.
	ChunkSize = 62
	// Padding is the border kept on every side so neighbor lookups at the
	// chunk edge stay inside the array.
	Padding = 1
	// PaddedSize is the stored edge length. It must fit the 6-bit packed
	// face fields.
	PaddedSize   = ChunkSize + 2*Padding
	PaddedArea   = PaddedSize * PaddedSize
	PaddedVolume = PaddedArea * PaddedSize

	// MaxCoord is the largest coordinate a Position accepts. It addresses
	// the +side padding border.
	MaxCoord = ChunkSize
)

// ErrOutOfBounds is returned for coordinates outside the padded grid.
var ErrOutOfBounds = errors.New("position out of bounds")

// Position is a validated chunk-local coordinate. The zero value is the
// chunk origin and is valid.
type Position struct {
	x, y, z uint8
}

// NewPosition validates x, y, z against [0, MaxCoord].
func NewPosition(x, y, z int) (Position, error) {
	if !inRange(x) || !inRange(y) || !inRange(z) {
		return Position{}, fmt.Errorf("(%d,%d,%d) not in [0,%d]: %w", x, y, z, MaxCoord, ErrOutOfBounds)
	}
	return Position{x: uint8(x), y: uint8(y), z: uint8(z)}, nil
}

// MustPosition is NewPosition for constants in tests and generators.
func MustPosition(x, y, z int) Position {
	p, err := NewPosition(x, y, z)
	if err != nil {
		panic(err)
	}
	return p
}

func inRange(c int) bool {
	return c >= 0 && c <= MaxCoord
}

func (p Position) X() int { return int(p.x) }
func (p Position) Y() int { return int(p.y) }
func (p Position) Z() int { return int(p.z) }

// Index linearizes p into the padded array, z fastest then x then y.
func (p Position) Index() int {
	return paddedIndex(int(p.x)+Padding, int(p.y)+Padding, int(p.z)+Padding)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.x, p.y, p.z)
}

// paddedIndex takes coordinates already shifted into padded space.
func paddedIndex(px, py, pz int) int {
	return pz + px*PaddedSize + py*PaddedArea
}
