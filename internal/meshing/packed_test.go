package meshing

import (
	"testing"

	"github.com/goldeneas/vox-sub000/internal/geometry"
	"github.com/goldeneas/vox-sub000/internal/voxel"
)

func TestPackedFaceBitLayout(t *testing.T) {
	cases := []struct {
		name string
		word PackedFace
		want [5]uint8
		id   voxel.ID
	}{
		{"x only", 0x3F, [5]uint8{63, 0, 0, 0, 0}, 0},
		{"y only", 0x3F << 6, [5]uint8{0, 63, 0, 0, 0}, 0},
		{"z only", 0x3F << 12, [5]uint8{0, 0, 63, 0, 0}, 0},
		{"width only", 0x3F << 18, [5]uint8{0, 0, 0, 63, 0}, 0},
		{"height only", 0x3F << 24, [5]uint8{0, 0, 0, 0, 63}, 0},
		{"material only", 0xFFFF << 32, [5]uint8{}, 0xFFFF},
		{"reserved bits ignored", 0b11<<30 | 0xFFFF<<48, [5]uint8{}, 0},
		{"mixed", 1 | 2<<6 | 3<<12 | 4<<18 | 5<<24 | 0x1234<<32, [5]uint8{1, 2, 3, 4, 5}, 0x1234},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := tc.word
			got := [5]uint8{f.X(), f.Y(), f.Z(), f.Width(), f.Height()}
			if got != tc.want {
				t.Fatalf("fields: got %v, want %v", got, tc.want)
			}
			if f.Voxel() != tc.id {
				t.Fatalf("material: got %#x, want %#x", f.Voxel(), tc.id)
			}
		})
	}
}

func TestPackMatchesWireLayout(t *testing.T) {
	got := Pack(1, 2, 3, 4, 5, 0x1234)
	want := PackedFace(1 | 2<<6 | 3<<12 | 4<<18 | 5<<24 | 0x1234<<32)
	if got != want {
		t.Fatalf("pack: got %#x, want %#x", uint64(got), uint64(want))
	}
	// oversized inputs are truncated to their field
	if Pack(64, 0, 0, 0, 0, 0) != 0 {
		t.Fatalf("x=64 leaked out of its field")
	}
}

func TestDecodeKeepsOrderAndOrientation(t *testing.T) {
	var lists FaceLists
	lists[geometry.Front] = []PackedFace{Pack(9, 0, 0, 1, 1, 2), Pack(1, 0, 0, 1, 1, 2)}
	lists[geometry.Up] = []PackedFace{Pack(0, 4, 0, 2, 3, 1)}

	faces := Decode(&lists, nil)
	if len(faces) != 3 {
		t.Fatalf("faces: got %d, want 3", len(faces))
	}
	if faces[0].Orientation != geometry.Up || faces[0].Width != 2 || faces[0].Height != 3 {
		t.Fatalf("first face: %+v", faces[0])
	}
	if faces[1].X != 9 || faces[2].X != 1 {
		t.Fatalf("front order not preserved: %d then %d", faces[1].X, faces[2].X)
	}
	for _, f := range faces {
		if f.Material != 0 {
			t.Fatalf("default resolver gave material %d", f.Material)
		}
	}
}

func TestDecodeUsesResolver(t *testing.T) {
	var lists FaceLists
	lists[geometry.Down] = []PackedFace{Pack(0, 0, 0, 1, 1, 3), Pack(0, 0, 0, 1, 1, 4)}
	res := MaterialTable{ByID: map[voxel.ID]uint32{3: 17}, Fallback: 5}

	faces := Decode(&lists, res)
	if faces[0].Material != 17 || faces[1].Material != 5 {
		t.Fatalf("materials: got %d, %d", faces[0].Material, faces[1].Material)
	}
	if faces[1].Voxel != 4 {
		t.Fatalf("voxel id lost: %d", faces[1].Voxel)
	}
}
