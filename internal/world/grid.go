package world

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/goldeneas/vox-sub000/internal/voxel"
)

// Grid is the dense padded voxel array of one chunk.
type Grid struct {
	cells [PaddedVolume]voxel.ID

	hashValid bool
	hash      [32]byte
}

// NewGrid returns a grid with every cell set to fill.
func NewGrid(fill voxel.ID) *Grid {
	g := &Grid{}
	g.Fill(fill)
	return g
}

// Get returns the id stored at p.
func (g *Grid) Get(p Position) voxel.ID {
	return g.cells[p.Index()]
}

// Set stores id at p and reports whether the cell changed.
func (g *Grid) Set(p Position, id voxel.ID) bool {
	i := p.Index()
	if g.cells[i] == id {
		return false
	}
	g.cells[i] = id
	g.hashValid = false
	return true
}

// At reads a cell by padded coordinates, each in [0, PaddedSize). Meshers
// use it to look at the border cells a Position cannot reach.
func (g *Grid) At(px, py, pz int) voxel.ID {
	return g.cells[paddedIndex(px, py, pz)]
}

// Fill overwrites every cell, padding included.
func (g *Grid) Fill(id voxel.ID) {
	for i := range g.cells {
		g.cells[i] = id
	}
	g.hashValid = false
}

// Count returns how many cells hold id.
func (g *Grid) Count(id voxel.ID) int {
	n := 0
	for _, c := range g.cells {
		if c == id {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

// Digest is a sha256 over the little-endian cell values, cached until the
// next mutation. Equal digests mean byte-identical grids.
func (g *Grid) Digest() [32]byte {
	if g.hashValid {
		return g.hash
	}
	h := sha256.New()
	var buf [2 * PaddedSize]byte
	for row := 0; row < PaddedVolume; row += PaddedSize {
		for i := 0; i < PaddedSize; i++ {
			binary.LittleEndian.PutUint16(buf[2*i:], uint16(g.cells[row+i]))
		}
		h.Write(buf[:])
	}
	copy(g.hash[:], h.Sum(nil))
	g.hashValid = true
	return g.hash
}
