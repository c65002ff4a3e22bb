// Package camera provides the first-person view that steers movement.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/strafesim/pkg/math"
)

// FirstPerson is a yaw/pitch view attached to the player. Yaw 0 looks down +Z and
// positive yaw turns toward +X. Positive pitch looks down.
type FirstPerson struct {
	Yaw   float32 // Horizontal rotation (radians)
	Pitch float32 // Vertical rotation (radians)

	// Sensitivity converts look deltas to radians.
	Sensitivity float32

	// Constraints
	MinPitch float32
	MaxPitch float32
}

// NewFirstPerson creates a first-person view with default settings.
func NewFirstPerson() *FirstPerson {
	return &FirstPerson{
		Sensitivity: 0.0025,
		MinPitch:    -math32.Pi / 2,
		MaxPitch:    math32.Pi / 2,
	}
}

// HandleLook applies a look delta. Pitch is clamped, yaw wraps to [-Pi, Pi).
func (c *FirstPerson) HandleLook(deltaX, deltaY float32) {
	c.SetYaw(c.Yaw + deltaX*c.Sensitivity)
	c.Pitch += deltaY * c.Sensitivity

	// Clamp pitch
	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// SetYaw sets the heading directly.
func (c *FirstPerson) SetYaw(yaw float32) {
	c.Yaw = wrapAngle(yaw)
}

// Turn rotates the heading by delta radians.
func (c *FirstPerson) Turn(delta float32) {
	c.SetYaw(c.Yaw + delta)
}

// ViewYaw implements movement.ViewProvider.
func (c *FirstPerson) ViewYaw() float32 { return c.Yaw }

// ViewPitch implements movement.ViewProvider.
func (c *FirstPerson) ViewPitch() float32 { return c.Pitch }

// ForwardDirection returns the view's forward direction on the XZ plane.
func (c *FirstPerson) ForwardDirection() (x, z float32) {
	s, co := math32.Sincos(c.Yaw)
	return s, co
}

// RightDirection returns the view's right direction on the XZ plane.
func (c *FirstPerson) RightDirection() (x, z float32) {
	s, co := math32.Sincos(c.Yaw)
	return co, -s
}

// Forward returns the full look direction including pitch.
func (c *FirstPerson) Forward() math.Vec3 {
	return math.QuatFromYawPitch(c.Yaw, c.Pitch).Rotate(math.Vec3{Z: 1})
}

func wrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}
