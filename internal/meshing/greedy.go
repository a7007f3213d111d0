package meshing

import (
	"github.com/goldeneas/vox-sub000/internal/geometry"
	"github.com/goldeneas/vox-sub000/internal/voxel"
	"github.com/goldeneas/vox-sub000/internal/world"
)

// Mesher turns a padded grid into packed faces, one list per orientation.
// Implementations must only emit faces for logical cells; padding cells
// only occlude.
type Mesher interface {
	Mesh(g *world.Grid) FaceLists
}

// GreedyMesher is the default Mesher. For every face direction it builds a
// per-layer mask of exposed voxel ids and merges equal ids into maximal
// rectangles, width first.
type GreedyMesher struct {
	// Air is the id treated as empty space.
	Air voxel.ID
}

const edge = world.ChunkSize

func (m GreedyMesher) Mesh(g *world.Grid) FaceLists {
	var out FaceLists
	mask := make([]voxel.ID, edge*edge)
	exposed := make([]bool, edge*edge)
	for _, o := range geometry.Orientations() {
		out[o] = m.meshDirection(g, o, mask, exposed)
	}
	return out
}

// meshDirection performs 2D greedy meshing for one orientation, layer by
// layer along its normal axis. mask and exposed are scratch space.
func (m GreedyMesher) meshDirection(g *world.Grid, o geometry.Orientation, mask []voxel.ID, exposed []bool) []PackedFace {
	ax := o.Axes()
	step := o.Sign()
	var faces []PackedFace

	at := func(c [3]int) voxel.ID {
		return g.At(c[0]+world.Padding, c[1]+world.Padding, c[2]+world.Padding)
	}

	for d := 0; d < edge; d++ {
		// Mask over (i = width axis, j = height axis)
		for j := 0; j < edge; j++ {
			for i := 0; i < edge; i++ {
				k := j*edge + i
				exposed[k] = false

				var c [3]int
				c[ax.Normal] = d
				c[ax.Width] = i
				c[ax.Height] = j
				id := at(c)
				if id == m.Air {
					continue
				}
				// neighbor along the normal; may land in the padding
				c[ax.Normal] += step
				if at(c) != m.Air {
					continue
				}
				mask[k] = id
				exposed[k] = true
			}
		}

		for j := 0; j < edge; j++ {
			for i := 0; i < edge; i++ {
				k := j*edge + i
				if !exposed[k] {
					continue
				}
				id := mask[k]

				w := 1
				for i+w < edge && exposed[k+w] && mask[k+w] == id {
					w++
				}
				h := 1
			grow:
				for j+h < edge {
					row := (j + h) * edge
					for ii := i; ii < i+w; ii++ {
						if !exposed[row+ii] || mask[row+ii] != id {
							break grow
						}
					}
					h++
				}

				// zero-out merged region
				for jj := j; jj < j+h; jj++ {
					for ii := i; ii < i+w; ii++ {
						exposed[jj*edge+ii] = false
					}
				}

				var c [3]int
				c[ax.Normal] = d
				c[ax.Width] = i
				c[ax.Height] = j
				faces = append(faces, Pack(c[0], c[1], c[2], w, h, id))
			}
		}
	}
	return faces
}
