package chunk

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/goldeneas/vox-sub000/internal/voxel"
	"github.com/goldeneas/vox-sub000/internal/world"
)

func TestRaycast(t *testing.T) {
	c, _ := newChunk(t)
	mustSet(t, c, 5, 0, 0, voxel.Stone)

	start := mgl32.Vec3{0.5, 0.5, 0.5}
	res := c.Raycast(start, mgl32.Vec3{1, 0, 0}, 0.1, 10)
	if !res.OK {
		t.Fatalf("expected hit")
	}
	if res.Hit != [3]int{5, 0, 0} || res.Adjacent != [3]int{4, 0, 0} {
		t.Errorf("hit %v adjacent %v", res.Hit, res.Adjacent)
	}
	// the ray enters x=5 after travelling 4.5
	if res.Distance < 4.49 || res.Distance > 4.53 {
		t.Errorf("distance: got %f", res.Distance)
	}

	if r := c.Raycast(start, mgl32.Vec3{1, 0, 0}, 0.1, 4); r.OK {
		t.Errorf("short ray should miss, hit %v", r.Hit)
	}
	if r := c.Raycast(start, mgl32.Vec3{0, 1, 0}, 0.1, 10); r.OK {
		t.Errorf("upward ray should miss, hit %v", r.Hit)
	}

	mustSet(t, c, 2, 2, 2, voxel.Dirt)
	diag := c.Raycast(start, mgl32.Vec3{1, 1, 1}.Normalize(), 0.1, 10)
	if !diag.OK || diag.Hit != [3]int{2, 2, 2} {
		t.Errorf("diagonal: got %+v", diag)
	}
}

func TestRaycastFromOutside(t *testing.T) {
	c, _ := newChunk(t)
	mustSet(t, c, 0, 10, 10, voxel.Grass)

	res := c.Raycast(mgl32.Vec3{-3.5, 10.5, 10.5}, mgl32.Vec3{1, 0, 0}, 0, 10)
	if !res.OK || res.Hit != [3]int{0, 10, 10} {
		t.Fatalf("got %+v", res)
	}
	if res.Adjacent != [3]int{-1, 10, 10} {
		t.Fatalf("adjacent outside the chunk: got %v", res.Adjacent)
	}
}

func TestRaycastStartingInsideVoxel(t *testing.T) {
	c, _ := newChunk(t)
	mustSet(t, c, 20, 20, 20, voxel.Stone)

	res := c.Raycast(mgl32.Vec3{20.5, 20.5, 20.5}, mgl32.Vec3{1, 0, 0}, 0, 10)
	if !res.OK || res.Hit != [3]int{20, 20, 20} {
		t.Fatalf("got %+v", res)
	}
	if res.AdjacentOK {
		t.Fatalf("no empty cell was crossed, adjacent %v", res.Adjacent)
	}

	front := c.Raycast(mgl32.Vec3{17.5, 20.5, 20.5}, mgl32.Vec3{1, 0, 0}, 0, 10)
	if !front.AdjacentOK || front.Adjacent != [3]int{19, 20, 20} {
		t.Fatalf("adjacent from the front: got %+v", front)
	}
}

func TestRaycastSkipsPadding(t *testing.T) {
	c, _ := newChunk(t)
	mustSet(t, c, world.MaxCoord, 5, 5, voxel.Stone)
	mustSet(t, c, world.ChunkSize-1, 6, 6, voxel.Stone)

	if r := c.Raycast(mgl32.Vec3{70.5, 5.5, 5.5}, mgl32.Vec3{-1, 0, 0}, 0, 8.5); r.OK {
		t.Fatalf("padding cell picked: %+v", r)
	}
	res := c.Raycast(mgl32.Vec3{70.5, 6.5, 6.5}, mgl32.Vec3{-1, 0, 0}, 0, 20)
	if !res.OK || res.Hit != [3]int{world.ChunkSize - 1, 6, 6} {
		t.Fatalf("got %+v", res)
	}
	if res.AdjacentOK {
		t.Fatalf("padding cell offered for placement: %v", res.Adjacent)
	}
}

func TestRaycastAfterAirEvicted(t *testing.T) {
	c, _ := newChunk(t)
	mustSet(t, c, 3, 0, 0, voxel.Stone)
	c.registry.Evict(voxel.Air)

	res := c.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 0, 10)
	if !res.OK || res.Hit != [3]int{3, 0, 0} || !res.AdjacentOK {
		t.Fatalf("got %+v", res)
	}
}
