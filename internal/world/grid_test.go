package world

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/goldeneas/vox-sub000/internal/voxel"
)

func TestPositionBounds(t *testing.T) {
	cases := []struct {
		name    string
		x, y, z int
		ok      bool
	}{
		{"origin", 0, 0, 0, true},
		{"max on every axis", MaxCoord, MaxCoord, MaxCoord, true},
		{"x one above max", MaxCoord + 1, 0, 0, false},
		{"y one above max", 0, MaxCoord + 1, 0, false},
		{"z one above max", 0, 0, MaxCoord + 1, false},
		{"negative", -1, 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPosition(tc.x, tc.y, tc.z)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("got %v, want ErrOutOfBounds", err)
			}
		})
	}
}

func TestPositionIndexIsPadded(t *testing.T) {
	if got, want := MustPosition(0, 0, 0).Index(), 1+PaddedSize+PaddedArea; got != want {
		t.Fatalf("origin index: got %d, want %d", got, want)
	}
	if got, want := MustPosition(0, 0, 1).Index()-MustPosition(0, 0, 0).Index(), 1; got != want {
		t.Fatalf("z stride: got %d, want %d", got, want)
	}
	if got, want := MustPosition(1, 0, 0).Index()-MustPosition(0, 0, 0).Index(), PaddedSize; got != want {
		t.Fatalf("x stride: got %d, want %d", got, want)
	}
	if got, want := MustPosition(0, 1, 0).Index()-MustPosition(0, 0, 0).Index(), PaddedArea; got != want {
		t.Fatalf("y stride: got %d, want %d", got, want)
	}
	if got := MustPosition(MaxCoord, MaxCoord, MaxCoord).Index(); got != PaddedVolume-1 {
		t.Fatalf("max index: got %d, want %d", got, PaddedVolume-1)
	}
}

func TestGridSetAndDigest(t *testing.T) {
	g := NewGrid(0)
	before := g.Digest()

	p := MustPosition(3, 4, 5)
	if !g.Set(p, 2) {
		t.Fatalf("first set reported no change")
	}
	if g.Set(p, 2) {
		t.Fatalf("second identical set reported a change")
	}
	if g.Get(p) != 2 {
		t.Fatalf("get: got %d, want 2", g.Get(p))
	}
	if g.At(4, 5, 6) != 2 {
		t.Fatalf("padded read does not match position read")
	}

	after := g.Digest()
	if after == before {
		t.Fatalf("digest unchanged after mutation")
	}
	if g.Clone().Digest() != after {
		t.Fatalf("clone digest differs")
	}
	if g.Count(2) != 1 {
		t.Fatalf("count: got %d, want 1", g.Count(2))
	}
}

func TestSnapshotPreservesCells(t *testing.T) {
	g := NewGrid(0)
	for i := 0; i < ChunkSize; i += 7 {
		g.Set(MustPosition(i, i/2, ChunkSize-i), voxel.ID(i+1))
	}
	g.Set(MustPosition(MaxCoord, 0, 0), 999)

	var buf bytes.Buffer
	if err := g.WriteSnapshot(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() >= 2*PaddedVolume {
		t.Fatalf("snapshot not compressed: %d bytes", buf.Len())
	}

	back, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if back.Digest() != g.Digest() {
		t.Fatalf("digest mismatch after snapshot")
	}
}

func TestSnapshotFileAndBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chunk.voxg")
	g := NewGrid(3)
	if err := g.SaveSnapshot(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back.Count(3) != PaddedVolume {
		t.Fatalf("loaded grid lost cells")
	}

	_, err = ReadSnapshot(bytes.NewReader([]byte("NOPE\x01\x00\x40\x00")))
	if !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("got %v, want ErrBadSnapshot", err)
	}
}
