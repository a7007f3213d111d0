package preview

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/goldeneas/vox-sub000/internal/chunk"
	dl "github.com/goldeneas/vox-sub000/internal/draw"
	"github.com/goldeneas/vox-sub000/internal/meshing"
	"github.com/goldeneas/vox-sub000/internal/voxel"
	"github.com/goldeneas/vox-sub000/internal/world"
)

func compiledChunk(t *testing.T) *chunk.Chunk {
	t.Helper()
	reg := voxel.NewDefaultRegistry()
	c, err := chunk.New(chunk.Coord{}, reg)
	if err != nil {
		t.Fatalf("new chunk: %v", err)
	}
	if err := c.SetVoxel(0, 0, 0, voxel.Stone); err != nil {
		t.Fatal(err)
	}
	if err := c.UpdateFaces(chunk.DefaultMesher(reg)); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestRenderPaintsQuads(t *testing.T) {
	c := compiledChunk(t)
	img, err := Render(c.Quads(), c.DrawList(), Options{CellPixels: 4, Outline: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	side := world.ChunkSize * 4
	panelW, panelH := side+2*margin, side+2*margin+labelHeight
	if got := img.Bounds().Size(); got != image.Pt(3*panelW, 2*panelH) {
		t.Fatalf("size: got %v", got)
	}

	// Up panel, voxel (0,0,0) sits at the bottom-left corner.
	ox, oy := margin, margin+labelHeight
	if got := img.RGBAAt(ox+2, oy+side-2); got == background {
		t.Fatalf("quad pixel not painted")
	}
	if got := img.RGBAAt(ox+side/2, oy+side/2); got != background {
		t.Fatalf("empty area painted: %v", got)
	}
}

func TestRenderRejectsMismatchedInput(t *testing.T) {
	c := compiledChunk(t)
	if _, err := Render(nil, c.DrawList(), Options{}); err == nil {
		t.Fatalf("expected error for missing groups")
	}

	out := c.DrawList()
	broken := dl.Output{Instances: out.Instances[:1], Commands: out.Commands}
	if _, err := Render(c.Quads(), broken, Options{}); !errors.Is(err, dl.ErrInvalidDrawList) {
		t.Fatalf("got %v", err)
	}
}

func TestEncodeProducesPNG(t *testing.T) {
	img, err := Render([]meshing.Quad{}, dl.Output{}, Options{CellPixels: 1})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("bounds: got %v want %v", decoded.Bounds(), img.Bounds())
	}
}
