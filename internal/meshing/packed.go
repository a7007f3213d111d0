package meshing

import (
	"fmt"

	"github.com/goldeneas/vox-sub000/internal/geometry"
	"github.com/goldeneas/vox-sub000/internal/voxel"
)

// PackedFace is the mesher's 64-bit face encoding:
//
//	x[0:6) | y[6:12) | z[12:18) | width[18:24) | height[24:30) | material[32:48)
//
// Bits 30-31 and 48-63 are reserved.
type PackedFace uint64

const (
	fieldBits    = 6
	fieldMask    = 1<<fieldBits - 1
	shiftX       = 0
	shiftY       = 6
	shiftZ       = 12
	shiftW       = 18
	shiftH       = 24
	shiftMat     = 32
	materialMask = 0xFFFF
)

// FaceLists holds one packed list per orientation, indexed like the
// geometry table.
type FaceLists [geometry.NumOrientations][]PackedFace

// Pack encodes a face. Inputs wider than their field are truncated.
func Pack(x, y, z, width, height int, id voxel.ID) PackedFace {
	return PackedFace(uint64(x&fieldMask)<<shiftX |
		uint64(y&fieldMask)<<shiftY |
		uint64(z&fieldMask)<<shiftZ |
		uint64(width&fieldMask)<<shiftW |
		uint64(height&fieldMask)<<shiftH |
		uint64(uint16(id))<<shiftMat)
}

func (f PackedFace) X() uint8      { return uint8(f >> shiftX & fieldMask) }
func (f PackedFace) Y() uint8      { return uint8(f >> shiftY & fieldMask) }
func (f PackedFace) Z() uint8      { return uint8(f >> shiftZ & fieldMask) }
func (f PackedFace) Width() uint8  { return uint8(f >> shiftW & fieldMask) }
func (f PackedFace) Height() uint8 { return uint8(f >> shiftH & fieldMask) }

// Voxel returns the voxel id carried in the material field.
func (f PackedFace) Voxel() voxel.ID { return voxel.ID(f >> shiftMat & materialMask) }

func (f PackedFace) String() string {
	return fmt.Sprintf("face(%d,%d,%d %dx%d id=%d)", f.X(), f.Y(), f.Z(), f.Width(), f.Height(), f.Voxel())
}

// Total returns the number of faces across all orientations.
func (l *FaceLists) Total() int {
	n := 0
	for _, fs := range l {
		n += len(fs)
	}
	return n
}
