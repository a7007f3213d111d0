// Package preview rasterises a compiled draw list into a PNG contact sheet
// with one orthographic panel per face orientation. It needs no GPU and is
// used to eyeball mesher output in CI artifacts.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	dl "github.com/goldeneas/vox-sub000/internal/draw"
	"github.com/goldeneas/vox-sub000/internal/geometry"
	"github.com/goldeneas/vox-sub000/internal/meshing"
	"github.com/goldeneas/vox-sub000/internal/world"
)

// Options controls the sheet layout.
type Options struct {
	CellPixels int  // pixels per voxel edge
	Outline    bool // draw quad borders
}

const (
	columns     = 3
	labelHeight = 16
	margin      = 4
)

var (
	background = color.RGBA{0x1e, 0x1f, 0x24, 0xff}
	labelColor = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	edgeColor  = color.RGBA{0x10, 0x10, 0x10, 0xff}
	palette    = []color.RGBA{
		{0x8b, 0x5a, 0x2b, 0xff},
		{0x5f, 0xa8, 0x3c, 0xff},
		{0x80, 0x80, 0x80, 0xff},
		{0xdb, 0xd0, 0x8c, 0xff},
		{0x3a, 0x6e, 0xc8, 0xff},
		{0xb0, 0x40, 0x40, 0xff},
		{0x9a, 0x6f, 0xc1, 0xff},
	}
)

type rect struct {
	u, v, w, h float32
	near       float32 // 0 at the far side of the chunk, 1 at the viewer
	material   uint32
}

// Render draws quads with their compiled instances. quads and out must come
// from the same compile: command i belongs to quads[i].
func Render(quads []meshing.Quad, out dl.Output, opts Options) (*image.RGBA, error) {
	if len(quads) != len(out.Commands) {
		return nil, fmt.Errorf("preview: %d groups but %d commands", len(quads), len(out.Commands))
	}
	if opts.CellPixels <= 0 {
		opts.CellPixels = 4
	}

	var panels [geometry.NumOrientations][]rect
	for i, cmd := range out.Commands {
		q := quads[i]
		ax := q.Orientation.Axes()
		end := int(cmd.FirstInstance + cmd.InstanceCount)
		if end > len(out.Instances) {
			return nil, fmt.Errorf("preview: command %d: %w", i, dl.ErrInvalidDrawList)
		}
		for _, inst := range out.Instances[cmd.FirstInstance:end] {
			near := inst.Translation[ax.Normal] / (world.ChunkSize - 1)
			if !q.Orientation.Positive() {
				near = 1 - near
			}
			panels[q.Orientation] = append(panels[q.Orientation], rect{
				u:        inst.Translation[ax.Width],
				v:        inst.Translation[ax.Height],
				w:        inst.Scale[ax.Width],
				h:        inst.Scale[ax.Height],
				near:     near,
				material: q.Material,
			})
		}
	}

	side := world.ChunkSize * opts.CellPixels
	panelW, panelH := side+2*margin, side+2*margin+labelHeight
	rows := (geometry.NumOrientations + columns - 1) / columns
	img := image.NewRGBA(image.Rect(0, 0, columns*panelW, rows*panelH))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for _, o := range geometry.Orientations() {
		ox := int(o)%columns*panelW + margin
		oy := int(o)/columns*panelH + margin + labelHeight
		label(img, ox, oy-4, fmt.Sprintf("%s (%d)", o, len(panels[o])))
		drawPanel(img, image.Pt(ox, oy), side, opts, panels[o])
	}
	return img, nil
}

// drawPanel paints far quads first so the face nearest the viewer wins.
func drawPanel(img *image.RGBA, origin image.Point, side int, opts Options, rects []rect) {
	sort.SliceStable(rects, func(i, j int) bool { return rects[i].near < rects[j].near })

	cell := float32(opts.CellPixels)
	r := vector.NewRasterizer(side, side)
	for _, q := range rects {
		// v grows up, image rows grow down
		x0, x1 := q.u*cell, (q.u+q.w)*cell
		y0, y1 := float32(side)-(q.v+q.h)*cell, float32(side)-q.v*cell

		fill := shade(palette[int(q.material)%len(palette)], q.near)
		if opts.Outline {
			r.Reset(side, side)
			box(r, x0, y0, x1, y1)
			r.Draw(img, image.Rect(origin.X, origin.Y, origin.X+side, origin.Y+side), image.NewUniform(edgeColor), image.Point{})
			x0, y0, x1, y1 = x0+1, y0+1, x1-1, y1-1
			if x1 <= x0 || y1 <= y0 {
				continue
			}
		}
		r.Reset(side, side)
		box(r, x0, y0, x1, y1)
		r.Draw(img, image.Rect(origin.X, origin.Y, origin.X+side, origin.Y+side), image.NewUniform(fill), image.Point{})
	}
}

func box(r *vector.Rasterizer, x0, y0, x1, y1 float32) {
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.ClosePath()
}

// shade darkens far faces down to half brightness.
func shade(c color.RGBA, near float32) color.RGBA {
	k := 0.5 + 0.5*min(max(near, 0), 1)
	return color.RGBA{uint8(float32(c.R) * k), uint8(float32(c.G) * k), uint8(float32(c.B) * k), c.A}
}

func label(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("preview: encode: %w", err)
	}
	return nil
}

// WriteFile renders and saves a sheet to path.
func WriteFile(path string, quads []meshing.Quad, out dl.Output, opts Options) error {
	img, err := Render(quads, out, opts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
