package chunk

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/goldeneas/vox-sub000/internal/profiling"
	"github.com/goldeneas/vox-sub000/internal/world"
)

const raycastStep = float32(0.02)

// RaycastResult is the first solid voxel along a ray. Adjacent is the last
// empty cell before it and may lie outside the chunk. AdjacentOK is set only
// when Adjacent is a logical cell a voxel can be placed in; it stays false
// when the ray starts inside the hit voxel.
type RaycastResult struct {
	Hit        [3]int
	Adjacent   [3]int
	AdjacentOK bool
	Distance   float32
	OK         bool
}

// Raycast marches from origin along dir (normalised) in chunk-local
// coordinates, where voxel (x,y,z) fills [x,x+1) on every axis. Cells
// outside [0, ChunkSize), padding included, count as empty.
func (c *Chunk) Raycast(origin, dir mgl32.Vec3, minDist, maxDist float32) RaycastResult {
	defer profiling.Track("chunk.Raycast")()

	steps := int(maxDist / raycastStep)
	prev := [3]int{math.MinInt, math.MinInt, math.MinInt}
	var (
		last    [3]int
		crossed bool
	)
	for i := 0; i <= steps; i++ {
		dist := float32(i) * raycastStep
		if dist < minDist {
			continue
		}
		p := origin.Add(dir.Mul(dist))
		cell := [3]int{
			int(math.Floor(float64(p.X()))),
			int(math.Floor(float64(p.Y()))),
			int(math.Floor(float64(p.Z()))),
		}
		if cell == prev {
			continue
		}
		prev = cell

		if logical(cell) && c.grid.Get(world.MustPosition(cell[0], cell[1], cell[2])) != c.air {
			return RaycastResult{
				Hit:        cell,
				Adjacent:   last,
				AdjacentOK: crossed && logical(last),
				Distance:   dist,
				OK:         true,
			}
		}
		last, crossed = cell, true
	}
	return RaycastResult{}
}

func logical(cell [3]int) bool {
	for _, v := range cell {
		if v < 0 || v >= world.ChunkSize {
			return false
		}
	}
	return true
}
