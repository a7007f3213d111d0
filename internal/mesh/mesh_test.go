package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/goldeneas/vox-sub000/internal/draw"
	"github.com/goldeneas/vox-sub000/internal/geometry"
	"github.com/goldeneas/vox-sub000/internal/meshing"
)

func TestVariantsAgreeOnGeometry(t *testing.T) {
	face := meshing.Face{Orientation: geometry.Front, X: 2, Y: 3, Z: 4, Width: 2, Height: 3, Material: 7}
	q := meshing.Merge([]meshing.Face{face, {Orientation: geometry.Front, X: 9, Width: 2, Height: 3, Material: 7}})

	meshes := []Mesh{NewFace(face), NewQuad(q[0])}
	for _, m := range meshes {
		if len(m.Vertices()) != 4 || len(m.Indices()) != 6 {
			t.Fatalf("%T: %d vertices %d indices", m, len(m.Vertices()), len(m.Indices()))
		}
		if m.MaterialID() != 7 {
			t.Fatalf("%T material: got %d", m, m.MaterialID())
		}
		// corner (1,1): x=2 (width), y=3 (height), on the z=1 plane
		if m.Vertices()[2].Position != (mgl32.Vec3{2, 3, 1}) {
			t.Fatalf("%T scaled corner: got %v", m, m.Vertices()[2].Position)
		}
	}
	if got := len(NewQuad(q[0]).Instances()); got != 2 {
		t.Fatalf("quad instances: got %d, want 2", got)
	}
	if got := NewFace(face).Instances()[0].Translation; got != (mgl32.Vec3{2, 3, 4}) {
		t.Fatalf("face translation: got %v", got)
	}
}

func TestChunkMeshUsesSharedTable(t *testing.T) {
	quads := []meshing.Quad{{
		QuadDescriptor: meshing.QuadDescriptor{Orientation: geometry.Up, Width: 1, Height: 1, Material: 4},
		Placements:     []meshing.Placement{{}, {X: 3}},
	}}
	c := NewChunk(quads, draw.Compile(quads))
	if len(c.Vertices()) != geometry.TableVertices || len(c.Indices()) != geometry.TableIndices {
		t.Fatalf("chunk mesh is not the shared table")
	}
	if len(c.Instances()) != 2 || len(c.Commands()) != 1 {
		t.Fatalf("chunk buffers: %d instances %d commands", len(c.Instances()), len(c.Commands()))
	}
	if c.MaterialID() != 4 || len(c.Groups()) != 1 {
		t.Fatalf("chunk groups: material %d, %d groups", c.MaterialID(), len(c.Groups()))
	}
	if NewChunk(nil, draw.Compile(nil)).MaterialID() != 0 {
		t.Fatalf("empty chunk material should be 0")
	}
}
