package world

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/goldeneas/vox-sub000/internal/voxel"
)

const snapshotVersion = 1

var snapshotMagic = [4]byte{'V', 'O', 'X', 'G'}

// ErrBadSnapshot is returned for snapshots this build cannot read.
var ErrBadSnapshot = errors.New("bad grid snapshot")

type snapshotHeader struct {
	Magic      [4]byte
	Version    uint16
	PaddedSize uint16
}

// WriteSnapshot writes a fixed header followed by the zstd-compressed
// little-endian cell array.
func (g *Grid) WriteSnapshot(w io.Writer) error {
	hdr := snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, PaddedSize: PaddedSize}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	bw := bufio.NewWriter(enc)
	var buf [2]byte
	for _, c := range g.cells {
		binary.LittleEndian.PutUint16(buf[:], uint16(c))
		if _, err := bw.Write(buf[:]); err != nil {
			_ = enc.Close()
			return fmt.Errorf("write snapshot cells: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("flush snapshot cells: %w", err)
	}
	return enc.Close()
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Grid, error) {
	var hdr snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	if hdr.Magic != snapshotMagic {
		return nil, fmt.Errorf("magic %q: %w", hdr.Magic[:], ErrBadSnapshot)
	}
	if hdr.Version != snapshotVersion || hdr.PaddedSize != PaddedSize {
		return nil, fmt.Errorf("version %d size %d: %w", hdr.Version, hdr.PaddedSize, ErrBadSnapshot)
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	raw := make([]byte, 2*PaddedVolume)
	if _, err := io.ReadFull(dec, raw); err != nil {
		return nil, fmt.Errorf("read snapshot cells: %w", err)
	}

	g := &Grid{}
	for i := range g.cells {
		g.cells[i] = voxel.ID(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	return g, nil
}

// SaveSnapshot writes g to path, creating parent directories.
func (g *Grid) SaveSnapshot(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.WriteSnapshot(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadSnapshot reads a grid saved with SaveSnapshot.
func LoadSnapshot(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSnapshot(bufio.NewReader(f))
}
