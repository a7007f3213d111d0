package meshing

import "github.com/goldeneas/vox-sub000/internal/geometry"

// QuadDescriptor is the merge key. Faces with equal descriptors share one
// geometry template.
type QuadDescriptor struct {
	Orientation   geometry.Orientation
	Width, Height uint8
	Material      uint32
}

// Placement is one instance offset, in cells, inside the chunk.
type Placement struct {
	X, Y, Z uint8
}

// Quad is one merged shape and every place it is drawn.
type Quad struct {
	QuadDescriptor
	Placements []Placement
}

func (q Quad) InstanceCount() int {
	return len(q.Placements)
}

// Merge groups faces by descriptor. Groups come out in the order their
// first face was seen and placements keep input order, so the same input
// always yields the same layout.
func Merge(faces []Face) []Quad {
	groups := make(map[QuadDescriptor]int)
	quads := make([]Quad, 0)
	for _, f := range faces {
		d := f.Descriptor()
		i, ok := groups[d]
		if !ok {
			i = len(quads)
			groups[d] = i
			quads = append(quads, Quad{QuadDescriptor: d})
		}
		quads[i].Placements = append(quads[i].Placements, f.Placement())
	}
	return quads
}

// TotalInstances sums InstanceCount over quads.
func TotalInstances(quads []Quad) int {
	n := 0
	for _, q := range quads {
		n += q.InstanceCount()
	}
	return n
}
