// Package camera provides the orbit camera used by the chunk viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit looks at Target from Distance along the direction given by Yaw and
// Pitch (radians).
type Orbit struct {
	Target   mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Distance float32

	AspectRatio float32
	FOV         float32 // degrees
	NearPlane   float32
	FarPlane    float32
}

const maxPitch = math.Pi/2 - 0.01

// NewOrbit frames a cube of the given edge length.
func NewOrbit(width, height int, edge float32) *Orbit {
	return &Orbit{
		Target:      mgl32.Vec3{edge / 2, edge / 2, edge / 2},
		Yaw:         mgl32.DegToRad(45),
		Pitch:       mgl32.DegToRad(30),
		Distance:    edge * 1.8,
		AspectRatio: float32(width) / float32(height),
		FOV:         60,
		NearPlane:   0.1,
		FarPlane:    1000,
	}
}

// Eye returns the camera position.
func (o *Orbit) Eye() mgl32.Vec3 {
	cp := float32(math.Cos(float64(o.Pitch)))
	dir := mgl32.Vec3{
		cp * float32(math.Cos(float64(o.Yaw))),
		float32(math.Sin(float64(o.Pitch))),
		cp * float32(math.Sin(float64(o.Yaw))),
	}
	return o.Target.Add(dir.Mul(o.Distance))
}

func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.Eye(), o.Target, mgl32.Vec3{0, 1, 0})
}

func (o *Orbit) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(o.FOV), o.AspectRatio, o.NearPlane, o.FarPlane)
}

// Rotate turns the camera by the given deltas, keeping pitch short of the
// poles.
func (o *Orbit) Rotate(dYaw, dPitch float32) {
	o.Yaw += dYaw
	o.Pitch = mgl32.Clamp(o.Pitch+dPitch, -maxPitch, maxPitch)
}

// Zoom scales the distance; factors below 1 move closer.
func (o *Orbit) Zoom(factor float32) {
	o.Distance = mgl32.Clamp(o.Distance*factor, 1, o.FarPlane/2)
}

func (o *Orbit) SetViewport(width, height int) {
	if height > 0 {
		o.AspectRatio = float32(width) / float32(height)
	}
}
