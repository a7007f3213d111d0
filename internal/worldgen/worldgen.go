// Package worldgen fills chunks with noise terrain for previews and
// benchmarks.
package worldgen

import (
	"fmt"
	"math"

	"github.com/goldeneas/vox-sub000/internal/chunk"
	"github.com/goldeneas/vox-sub000/internal/voxel"
	"github.com/goldeneas/vox-sub000/internal/world"
)

// Options controls terrain shape. Heights are world voxel rows.
type Options struct {
	Seed       int64
	BaseHeight int
	Amplitude  int
	SeaLevel   int
	Caves      bool
}

const (
	horizontalScale = 1.0 / 48.0
	caveScale       = 1.0 / 16.0
	caveThreshold   = 0.68
	dirtDepth       = 3
)

// Generator produces deterministic terrain for a seed.
type Generator struct {
	opts Options
}

func New(opts Options) *Generator {
	if opts.Amplitude < 0 {
		opts.Amplitude = 0
	}
	return &Generator{opts: opts}
}

// HeightAt returns the surface row at world column (x, z).
func (g *Generator) HeightAt(x, z int) int {
	n := fbm(4, 0.5, g.opts.Seed, func(freq float64, seed int64) float64 {
		return noise2(float64(x)*horizontalScale*freq, float64(z)*horizontalScale*freq, seed)
	})
	h := g.opts.BaseHeight + int(math.Floor(n*float64(g.opts.Amplitude)))
	return max(h, 0)
}

func (g *Generator) carved(x, y, z int) bool {
	if !g.opts.Caves || y <= 0 {
		return false
	}
	n := fbm(2, 0.5, g.opts.Seed^0x5eed, func(freq float64, seed int64) float64 {
		return noise3(float64(x)*caveScale*freq, float64(y)*caveScale*freq, float64(z)*caveScale*freq, seed)
	})
	return n > caveThreshold
}

// TypeAt classifies the world voxel at (x, y, z).
func (g *Generator) TypeAt(x, y, z int) voxel.Type {
	return g.classify(g.HeightAt(x, z), x, y, z)
}

func (g *Generator) classify(h, x, y, z int) voxel.Type {
	switch {
	case y > h:
		if y <= g.opts.SeaLevel {
			return voxel.Water
		}
		return voxel.Air
	case y < h-dirtDepth:
		if y < h-dirtDepth-1 && g.carved(x, y, z) {
			return voxel.Air
		}
		return voxel.Stone
	case y < h:
		return voxel.Dirt
	case h < g.opts.SeaLevel:
		return voxel.Sand
	default:
		return voxel.Grass
	}
}

// Fill writes terrain into every logical cell of c, offset by its
// coordinate. Padding cells are left as they are.
func (g *Generator) Fill(c *chunk.Chunk) error {
	ox := c.Coord.X * world.ChunkSize
	oy := c.Coord.Y * world.ChunkSize
	oz := c.Coord.Z * world.ChunkSize
	for x := 0; x < world.ChunkSize; x++ {
		for z := 0; z < world.ChunkSize; z++ {
			h := g.HeightAt(ox+x, oz+z)
			for y := 0; y < world.ChunkSize; y++ {
				t := g.classify(h, ox+x, oy+y, oz+z)
				if err := c.SetVoxel(x, y, z, t); err != nil {
					return fmt.Errorf("worldgen %s: %w", c.Coord, err)
				}
			}
		}
	}
	return nil
}
