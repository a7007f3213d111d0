// Package gpu uploads compiled chunk meshes to OpenGL 4.1 and replays their
// indirect commands. All calls must happen on the thread that owns the GL
// context.
package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/goldeneas/vox-sub000/internal/draw"
	"github.com/goldeneas/vox-sub000/internal/geometry"
	"github.com/goldeneas/vox-sub000/internal/mesh"
	"github.com/goldeneas/vox-sub000/internal/profiling"
)

// Palette maps material ids to colors. Ids past the end wrap around.
var Palette = []mgl32.Vec3{
	{0.55, 0.36, 0.17},
	{0.37, 0.66, 0.24},
	{0.50, 0.50, 0.50},
	{0.86, 0.82, 0.55},
	{0.23, 0.43, 0.78},
	{0.69, 0.25, 0.25},
}

// ChunkRenderer owns the buffers for one uploaded chunk mesh.
//
// GL 4.1 has no base-instance or multi-draw-indirect entry points, so each
// IndirectArgs record is replayed as DrawElementsInstancedBaseVertex with
// the per-instance attribute pointers rebased to FirstInstance.
type ChunkRenderer struct {
	shader *Shader

	vao, vbo, ebo, ibo uint32

	commands  []draw.IndirectArgs
	materials []uint32
}

// NewChunkRenderer compiles the chunk shader and uploads the shared
// template table.
func NewChunkRenderer() (*ChunkRenderer, error) {
	shader, err := NewShader(chunkVertexShader, chunkFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("chunk renderer: %w", err)
	}
	r := &ChunkRenderer{shader: shader}

	table := geometry.Shared()
	vertices := geometry.AppendVertexBytes(nil, table.Vertices())
	indices := geometry.AppendIndexBytes(nil, table.Indices())

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(locPosition)
	gl.VertexAttribPointerWithOffset(locPosition, 3, gl.FLOAT, false, geometry.VertexStride, 0)
	gl.EnableVertexAttribArray(locNormal)
	gl.VertexAttribPointerWithOffset(locNormal, 3, gl.FLOAT, false, geometry.VertexStride, 12)
	gl.EnableVertexAttribArray(locTexCoord)
	gl.VertexAttribPointerWithOffset(locTexCoord, 2, gl.FLOAT, false, geometry.VertexStride, 24)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices), gl.Ptr(indices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ibo)
	for _, loc := range []uint32{locTranslation, locRotation, locScale} {
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}
	gl.BindVertexArray(0)
	return r, nil
}

// Upload replaces the instance buffer and command list with m's.
func (r *ChunkRenderer) Upload(m mesh.Chunk) {
	defer profiling.Track("gpu.Upload")()

	out := draw.Output{Instances: m.Instances(), Commands: m.Commands()}
	data := out.InstanceBytes()

	gl.BindBuffer(gl.ARRAY_BUFFER, r.ibo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.commands = append(r.commands[:0], out.Commands...)
	r.materials = r.materials[:0]
	for _, g := range m.Groups() {
		r.materials = append(r.materials, g.MaterialID())
	}
}

// Draw replays every command of the last upload.
func (r *ChunkRenderer) Draw(view, proj mgl32.Mat4, light mgl32.Vec3) {
	defer profiling.Track("gpu.Draw")()

	r.shader.Use()
	r.shader.SetMat4("view", view)
	r.shader.SetMat4("proj", proj)
	r.shader.SetVec3("lightDir", light)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.ibo)
	for i, cmd := range r.commands {
		base := uintptr(cmd.FirstInstance) * draw.InstanceStride
		gl.VertexAttribPointerWithOffset(locTranslation, 3, gl.FLOAT, false, draw.InstanceStride, base)
		gl.VertexAttribPointerWithOffset(locRotation, 4, gl.FLOAT, false, draw.InstanceStride, base+16)
		gl.VertexAttribPointerWithOffset(locScale, 3, gl.FLOAT, false, draw.InstanceStride, base+32)

		r.shader.SetVec3("materialColor", Palette[int(r.materials[i])%len(Palette)])
		gl.DrawElementsInstancedBaseVertex(
			gl.TRIANGLES,
			int32(cmd.IndexCount),
			gl.UNSIGNED_INT,
			gl.PtrOffset(int(cmd.FirstIndex)*geometry.IndexStride),
			int32(cmd.InstanceCount),
			cmd.BaseVertex,
		)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Dispose frees the GL objects.
func (r *ChunkRenderer) Dispose() {
	bufs := []uint32{r.vbo, r.ebo, r.ibo}
	gl.DeleteBuffers(int32(len(bufs)), &bufs[0])
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	r.shader.Delete()
	r.vao, r.vbo, r.ebo, r.ibo = 0, 0, 0, 0
}
