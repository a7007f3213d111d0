package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Orientation is one of the six axis-aligned face directions. Its numeric
// value indexes both the packed face lists and the template table.
type Orientation uint8

const (
	Up    Orientation = iota // +Y
	Down                     // -Y
	Right                    // +X
	Left                     // -X
	Front                    // +Z
	Back                     // -Z

	NumOrientations = 6
)

// Axis indices into a Vec3.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// Axes names the axis a face is perpendicular to, and the in-plane axes its
// width and height extend along.
type Axes struct {
	Normal, Width, Height int
}

var orientationAxes = [NumOrientations]Axes{
	Up:    {Normal: AxisY, Width: AxisX, Height: AxisZ},
	Down:  {Normal: AxisY, Width: AxisX, Height: AxisZ},
	Right: {Normal: AxisX, Width: AxisZ, Height: AxisY},
	Left:  {Normal: AxisX, Width: AxisZ, Height: AxisY},
	Front: {Normal: AxisZ, Width: AxisX, Height: AxisY},
	Back:  {Normal: AxisZ, Width: AxisX, Height: AxisY},
}

var orientationNames = [NumOrientations]string{"up", "down", "right", "left", "front", "back"}

// Orientations lists all six in table order.
func Orientations() [NumOrientations]Orientation {
	return [NumOrientations]Orientation{Up, Down, Right, Left, Front, Back}
}

func (o Orientation) String() string {
	if int(o) < NumOrientations {
		return orientationNames[o]
	}
	return fmt.Sprintf("orientation(%d)", uint8(o))
}

func (o Orientation) Axes() Axes {
	return orientationAxes[o]
}

// Positive reports whether the face normal points along +axis.
func (o Orientation) Positive() bool {
	return o%2 == 0
}

// Sign is +1 for positive orientations and -1 otherwise.
func (o Orientation) Sign() int {
	if o.Positive() {
		return 1
	}
	return -1
}

// Normal returns the outward unit normal.
func (o Orientation) Normal() mgl32.Vec3 {
	var n mgl32.Vec3
	n[o.Axes().Normal] = float32(o.Sign())
	return n
}
