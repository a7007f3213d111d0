package meshing

import (
	"github.com/goldeneas/vox-sub000/internal/geometry"
	"github.com/goldeneas/vox-sub000/internal/voxel"
)

// Face is one decoded mesher face.
type Face struct {
	Orientation   geometry.Orientation
	X, Y, Z       uint8
	Width, Height uint8
	Voxel         voxel.ID
	Material      uint32
}

// Descriptor returns the merge key of f.
func (f Face) Descriptor() QuadDescriptor {
	return QuadDescriptor{
		Orientation: f.Orientation,
		Width:       f.Width,
		Height:      f.Height,
		Material:    f.Material,
	}
}

// Placement returns where f sits inside the chunk.
func (f Face) Placement() Placement {
	return Placement{X: f.X, Y: f.Y, Z: f.Z}
}

// MaterialResolver maps a voxel id to a material index. It is implemented
// by the asset layer.
type MaterialResolver interface {
	ResolveMaterial(id voxel.ID) uint32
}

// ConstantMaterial resolves every voxel to the same material. The zero
// value is the default: material 0 for everything.
type ConstantMaterial uint32

func (c ConstantMaterial) ResolveMaterial(voxel.ID) uint32 { return uint32(c) }

// MaterialTable is a fixed id -> material map. Ids missing from the table
// resolve to Fallback.
type MaterialTable struct {
	ByID     map[voxel.ID]uint32
	Fallback uint32
}

func (t MaterialTable) ResolveMaterial(id voxel.ID) uint32 {
	if m, ok := t.ByID[id]; ok {
		return m
	}
	return t.Fallback
}

// Decode unpacks every face in lists. Output is grouped by orientation in
// table order and keeps the mesher's order within an orientation. A nil
// resolver means ConstantMaterial(0).
func Decode(lists *FaceLists, res MaterialResolver) []Face {
	if res == nil {
		res = ConstantMaterial(0)
	}
	faces := make([]Face, 0, lists.Total())
	for o, packed := range lists {
		for _, p := range packed {
			id := p.Voxel()
			faces = append(faces, Face{
				Orientation: geometry.Orientation(o),
				X:           p.X(),
				Y:           p.Y(),
				Z:           p.Z(),
				Width:       p.Width(),
				Height:      p.Height(),
				Voxel:       id,
				Material:    res.ResolveMaterial(id),
			})
		}
	}
	return faces
}
