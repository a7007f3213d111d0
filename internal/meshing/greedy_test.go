package meshing

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/goldeneas/vox-sub000/internal/geometry"
	"github.com/goldeneas/vox-sub000/internal/voxel"
	"github.com/goldeneas/vox-sub000/internal/world"
)

const grass voxel.ID = 2

func place(g *world.Grid, id voxel.ID, coords ...[3]int) {
	for _, c := range coords {
		g.Set(world.MustPosition(c[0], c[1], c[2]), id)
	}
}

func TestSingleVoxelMesh(t *testing.T) {
	g := world.NewGrid(0)
	place(g, grass, [3]int{0, 0, 0})

	lists := GreedyMesher{}.Mesh(g)
	if lists.Total() != 6 {
		t.Fatalf("single voxel: got %d faces, want 6\n%s", lists.Total(), spew.Sdump(lists))
	}
	for o, fs := range lists {
		f := fs[0]
		if f.Width() != 1 || f.Height() != 1 || f.Voxel() != grass {
			t.Fatalf("%s: got %s", geometry.Orientation(o), f)
		}
	}
}

func TestTwoVoxelsTouchingGreedy(t *testing.T) {
	g := world.NewGrid(0)
	place(g, grass, [3]int{0, 0, 0}, [3]int{1, 0, 0})

	lists := GreedyMesher{}.Mesh(g)
	// union is a 2x1x1 cuboid: still one face per side
	if lists.Total() != 6 {
		t.Fatalf("two touching voxels: got %d faces, want 6", lists.Total())
	}
	up := lists[geometry.Up][0]
	if up.Width() != 2 || up.Height() != 1 {
		t.Fatalf("up face: got %s, want 2x1", up)
	}
	right := lists[geometry.Right][0]
	if right.X() != 1 || right.Width() != 1 {
		t.Fatalf("right face: got %s, want at x=1", right)
	}
}

func TestDifferentIDsDoNotMerge(t *testing.T) {
	g := world.NewGrid(0)
	place(g, grass, [3]int{0, 0, 0})
	place(g, grass+1, [3]int{1, 0, 0})

	lists := GreedyMesher{}.Mesh(g)
	if got := len(lists[geometry.Up]); got != 2 {
		t.Fatalf("up faces: got %d, want 2", got)
	}
}

func TestPaddingOccludesButNeverEmits(t *testing.T) {
	g := world.NewGrid(0)
	place(g, grass, [3]int{world.ChunkSize - 1, 0, 0})
	// neighbor lives in the +X padding border
	place(g, grass, [3]int{world.ChunkSize, 0, 0})

	lists := GreedyMesher{}.Mesh(g)
	if lists.Total() != 5 {
		t.Fatalf("padding occlusion: got %d faces, want 5\n%s", lists.Total(), spew.Sdump(lists))
	}
	if len(lists[geometry.Right]) != 0 {
		t.Fatalf("face emitted against an occupied padding cell")
	}
}

func TestFullLayerMergesToOneQuad(t *testing.T) {
	g := world.NewGrid(0)
	for x := 0; x < world.ChunkSize; x++ {
		for z := 0; z < world.ChunkSize; z++ {
			place(g, grass, [3]int{x, 10, z})
		}
	}
	lists := GreedyMesher{}.Mesh(g)
	up := lists[geometry.Up]
	if len(up) != 1 || up[0].Width() != world.ChunkSize || up[0].Height() != world.ChunkSize {
		t.Fatalf("full layer: got %v", up)
	}
	if up[0].Y() != 10 {
		t.Fatalf("full layer y: got %d, want 10", up[0].Y())
	}
}

func BenchmarkGreedyMesher_FullSurface(b *testing.B) {
	g := world.NewGrid(0)
	for x := 0; x < world.ChunkSize; x++ {
		for z := 0; z < world.ChunkSize; z++ {
			place(g, grass, [3]int{x, world.ChunkSize - 1, z})
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GreedyMesher{}.Mesh(g)
	}
}
