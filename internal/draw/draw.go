package draw

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/goldeneas/vox-sub000/internal/geometry"
	"github.com/goldeneas/vox-sub000/internal/meshing"
)

const (
	// InstanceStride is the byte size of one encoded Instance:
	// translation vec3 + pad, rotation vec4 (x,y,z,w), scale vec3 + pad.
	InstanceStride = 12 * 4
	// ArgsStride is the byte size of one encoded IndirectArgs record.
	ArgsStride = 5 * 4
)

// ErrInvalidDrawList is returned by Validate.
var ErrInvalidDrawList = errors.New("invalid draw list")

// Instance places one copy of a group's template. Scale stretches the unit
// template to the group's width and height on the face plane; Rotation is
// reserved and always identity.
type Instance struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// IndirectArgs mirrors the GPU's indexed indirect draw record.
type IndirectArgs struct {
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	BaseVertex    int32
	FirstInstance uint32
}

// Output is the buffer-ready result for one chunk. Instances are laid out
// group by group in the same order as Commands.
type Output struct {
	Instances []Instance
	Commands  []IndirectArgs
}

// NewInstance builds the instance for one placement of d.
func NewInstance(d meshing.QuadDescriptor, p meshing.Placement) Instance {
	ax := d.Orientation.Axes()
	scale := mgl32.Vec3{1, 1, 1}
	scale[ax.Width] = float32(d.Width)
	scale[ax.Height] = float32(d.Height)
	return Instance{
		Translation: mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)},
		Rotation:    mgl32.QuatIdent(),
		Scale:       scale,
	}
}

// Compile turns merged quads into one indirect command per quad. Command i
// draws the template of its orientation with instances
// [FirstInstance, FirstInstance+InstanceCount).
func Compile(quads []meshing.Quad) Output {
	out := Output{
		Instances: make([]Instance, 0, meshing.TotalInstances(quads)),
		Commands:  make([]IndirectArgs, 0, len(quads)),
	}
	for _, q := range quads {
		out.Commands = append(out.Commands, IndirectArgs{
			IndexCount:    geometry.IndicesPerFace,
			InstanceCount: uint32(q.InstanceCount()),
			FirstIndex:    geometry.FirstIndex(q.Orientation),
			BaseVertex:    geometry.BaseVertex(q.Orientation),
			FirstInstance: uint32(len(out.Instances)),
		})
		for _, p := range q.Placements {
			out.Instances = append(out.Instances, NewInstance(q.QuadDescriptor, p))
		}
	}
	return out
}

func (o Output) TotalInstances() int {
	return len(o.Instances)
}

// Validate checks that the commands partition the instance array in order
// and address a valid template.
func (o Output) Validate() error {
	next := uint32(0)
	for i, c := range o.Commands {
		if c.IndexCount != geometry.IndicesPerFace {
			return fmt.Errorf("command %d: index count %d: %w", i, c.IndexCount, ErrInvalidDrawList)
		}
		if c.FirstIndex%geometry.IndicesPerFace != 0 || c.FirstIndex >= geometry.TableIndices {
			return fmt.Errorf("command %d: first index %d: %w", i, c.FirstIndex, ErrInvalidDrawList)
		}
		if c.BaseVertex != int32(c.FirstIndex/geometry.IndicesPerFace)*geometry.VerticesPerFace {
			return fmt.Errorf("command %d: base vertex %d does not match first index %d: %w", i, c.BaseVertex, c.FirstIndex, ErrInvalidDrawList)
		}
		if c.FirstInstance != next {
			return fmt.Errorf("command %d: first instance %d, want %d: %w", i, c.FirstInstance, next, ErrInvalidDrawList)
		}
		next += c.InstanceCount
	}
	if int(next) != len(o.Instances) {
		return fmt.Errorf("commands cover %d of %d instances: %w", next, len(o.Instances), ErrInvalidDrawList)
	}
	return nil
}

// InstanceBytes encodes the instance buffer little-endian.
func (o Output) InstanceBytes() []byte {
	buf := make([]byte, 0, len(o.Instances)*InstanceStride)
	for _, in := range o.Instances {
		buf = appendFloats(buf, in.Translation[0], in.Translation[1], in.Translation[2], 0)
		buf = appendFloats(buf, in.Rotation.V[0], in.Rotation.V[1], in.Rotation.V[2], in.Rotation.W)
		buf = appendFloats(buf, in.Scale[0], in.Scale[1], in.Scale[2], 0)
	}
	return buf
}

// IndirectBytes encodes the command buffer little-endian.
func (o Output) IndirectBytes() []byte {
	buf := make([]byte, 0, len(o.Commands)*ArgsStride)
	for _, c := range o.Commands {
		buf = binary.LittleEndian.AppendUint32(buf, c.IndexCount)
		buf = binary.LittleEndian.AppendUint32(buf, c.InstanceCount)
		buf = binary.LittleEndian.AppendUint32(buf, c.FirstIndex)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(c.BaseVertex))
		buf = binary.LittleEndian.AppendUint32(buf, c.FirstInstance)
	}
	return buf
}

func appendFloats(dst []byte, fs ...float32) []byte {
	for _, f := range fs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
