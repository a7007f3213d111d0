// Package mesh exposes the three drawable shapes of the compiler (a single
// face, a merged quad, a whole chunk) behind one interface.
package mesh

import (
	"github.com/goldeneas/vox-sub000/internal/draw"
	"github.com/goldeneas/vox-sub000/internal/geometry"
	"github.com/goldeneas/vox-sub000/internal/meshing"
)

// Mesh is implemented only by Face, Quad and Chunk.
type Mesh interface {
	Vertices() []geometry.Vertex
	Indices() []uint32
	Instances() []draw.Instance
	MaterialID() uint32

	sealed()
}

var (
	_ Mesh = Face{}
	_ Mesh = Quad{}
	_ Mesh = Chunk{}
)

// Face is one decoded face drawn on its own.
type Face struct {
	face meshing.Face
}

func NewFace(f meshing.Face) Face { return Face{face: f} }

func (f Face) Vertices() []geometry.Vertex {
	verts, _ := geometry.Shared().ScaledTemplate(f.face.Orientation, int(f.face.Width), int(f.face.Height))
	return verts[:]
}

func (f Face) Indices() []uint32 {
	_, idx := geometry.Shared().Template(f.face.Orientation)
	return idx[:]
}

func (f Face) Instances() []draw.Instance {
	return []draw.Instance{draw.NewInstance(f.face.Descriptor(), f.face.Placement())}
}

func (f Face) MaterialID() uint32 { return f.face.Material }

func (Face) sealed() {}

// Quad is one merged group: a scaled template and all of its placements.
type Quad struct {
	quad meshing.Quad
}

func NewQuad(q meshing.Quad) Quad { return Quad{quad: q} }

func (q Quad) Vertices() []geometry.Vertex {
	verts, _ := geometry.Shared().ScaledTemplate(q.quad.Orientation, int(q.quad.Width), int(q.quad.Height))
	return verts[:]
}

func (q Quad) Indices() []uint32 {
	_, idx := geometry.Shared().Template(q.quad.Orientation)
	return idx[:]
}

func (q Quad) Instances() []draw.Instance {
	out := make([]draw.Instance, len(q.quad.Placements))
	for i, p := range q.quad.Placements {
		out[i] = draw.NewInstance(q.quad.QuadDescriptor, p)
	}
	return out
}

func (q Quad) MaterialID() uint32 { return q.quad.Material }

func (Quad) sealed() {}

// Chunk is a whole compiled chunk: the shared unit table plus the chunk's
// instance and command buffers.
type Chunk struct {
	quads []meshing.Quad
	out   draw.Output
}

func NewChunk(quads []meshing.Quad, out draw.Output) Chunk {
	return Chunk{quads: quads, out: out}
}

func (c Chunk) Vertices() []geometry.Vertex { return geometry.Shared().Vertices() }

func (c Chunk) Indices() []uint32 { return geometry.Shared().Indices() }

func (c Chunk) Instances() []draw.Instance { return c.out.Instances }

// Commands returns the indirect draw list.
func (c Chunk) Commands() []draw.IndirectArgs { return c.out.Commands }

// MaterialID is the first group's material, or 0 for an empty chunk.
func (c Chunk) MaterialID() uint32 {
	if len(c.quads) == 0 {
		return 0
	}
	return c.quads[0].Material
}

// Groups returns one Quad mesh per merged group, in draw order.
func (c Chunk) Groups() []Quad {
	out := make([]Quad, len(c.quads))
	for i, q := range c.quads {
		out[i] = NewQuad(q)
	}
	return out
}

func (Chunk) sealed() {}
