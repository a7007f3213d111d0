package geometry

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	VerticesPerFace = 4
	IndicesPerFace  = 6

	TableVertices = NumOrientations * VerticesPerFace
	TableIndices  = NumOrientations * IndicesPerFace

	// VertexStride is the byte size of one encoded Vertex
	// (pos.xyz, normal.xyz, uv).
	VertexStride = 8 * 4
	IndexStride  = 4
)

// Vertex is one template corner.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Table holds the unit quad of every orientation in one 24-vertex, 36-index
// buffer. Orientation o owns vertices [4o, 4o+4) and indices [6o, 6o+6);
// index values are local to the face and become absolute through the draw's
// base vertex.
type Table struct {
	vertices [TableVertices]Vertex
	indices  [TableIndices]uint32
}

// corners of the unit square in (width, height) space, counter-clockwise.
var corners = [VerticesPerFace][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

var (
	ccwIndices = [IndicesPerFace]uint32{0, 1, 2, 0, 2, 3}
	cwIndices  = [IndicesPerFace]uint32{0, 2, 1, 0, 3, 2}
)

var shared = sync.OnceValue(buildTable)

// Shared returns the process-wide table. It is built once and never mutated.
func Shared() *Table {
	return shared()
}

func buildTable() *Table {
	t := &Table{}
	for _, o := range Orientations() {
		verts, idx := unitTemplate(o)
		copy(t.vertices[BaseVertex(o):], verts[:])
		copy(t.indices[FirstIndex(o):], idx[:])
	}
	return t
}

func unitTemplate(o Orientation) ([VerticesPerFace]Vertex, [IndicesPerFace]uint32) {
	ax := o.Axes()
	n := o.Normal()

	var verts [VerticesPerFace]Vertex
	for i, c := range corners {
		var p mgl32.Vec3
		if o.Positive() {
			p[ax.Normal] = 1
		}
		p[ax.Width] = c[0]
		p[ax.Height] = c[1]
		verts[i] = Vertex{Position: p, Normal: n, TexCoord: mgl32.Vec2{c[0], c[1]}}
	}

	// Front faces wind counter-clockwise seen from outside. When the
	// (width x height) basis points inward, flip the triangles.
	var u, v mgl32.Vec3
	u[ax.Width] = 1
	v[ax.Height] = 1
	if u.Cross(v).Dot(n) > 0 {
		return verts, ccwIndices
	}
	return verts, cwIndices
}

// BaseVertex is the first table vertex owned by o.
func BaseVertex(o Orientation) int32 {
	return int32(o) * VerticesPerFace
}

// FirstIndex is the first table index owned by o.
func FirstIndex(o Orientation) uint32 {
	return uint32(o) * IndicesPerFace
}

// Vertices returns a copy of all 24 template vertices.
func (t *Table) Vertices() []Vertex {
	out := make([]Vertex, TableVertices)
	copy(out, t.vertices[:])
	return out
}

// Indices returns a copy of all 36 template indices.
func (t *Table) Indices() []uint32 {
	out := make([]uint32, TableIndices)
	copy(out, t.indices[:])
	return out
}

// Template returns the unit quad of o.
func (t *Table) Template(o Orientation) ([VerticesPerFace]Vertex, [IndicesPerFace]uint32) {
	var verts [VerticesPerFace]Vertex
	var idx [IndicesPerFace]uint32
	copy(verts[:], t.vertices[BaseVertex(o):])
	copy(idx[:], t.indices[FirstIndex(o):])
	return verts, idx
}

// ScaledTemplate stretches the unit quad of o to width x height cells.
// Texture coordinates are scaled too so a texture tiles once per cell.
func (t *Table) ScaledTemplate(o Orientation, width, height int) ([VerticesPerFace]Vertex, [IndicesPerFace]uint32) {
	verts, idx := t.Template(o)
	ax := o.Axes()
	w, h := float32(width), float32(height)
	for i := range verts {
		verts[i].Position[ax.Width] *= w
		verts[i].Position[ax.Height] *= h
		verts[i].TexCoord = mgl32.Vec2{verts[i].TexCoord[0] * w, verts[i].TexCoord[1] * h}
	}
	return verts, idx
}

// AppendVertexBytes encodes vs little-endian, VertexStride bytes each.
func AppendVertexBytes(dst []byte, vs []Vertex) []byte {
	for _, v := range vs {
		dst = appendFloats(dst, v.Position[:]...)
		dst = appendFloats(dst, v.Normal[:]...)
		dst = appendFloats(dst, v.TexCoord[:]...)
	}
	return dst
}

// AppendIndexBytes encodes idx as little-endian u32.
func AppendIndexBytes(dst []byte, idx []uint32) []byte {
	for _, i := range idx {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}

func appendFloats(dst []byte, fs ...float32) []byte {
	for _, f := range fs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
