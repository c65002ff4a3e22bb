package movement

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/strafesim/pkg/math"
)

// StrafeModel turns input into a horizontal velocity change.
type StrafeModel struct {
	groundAccel    float32
	airAccel       float32
	groundMaxSpeed float32
	airMaxSpeed    float32
	flySpeed       float32
	flyPitch       bool
	clampBlend     bool
}

// NewStrafeModel creates a model from the acceleration settings of p.
func NewStrafeModel(p Params) StrafeModel {
	return StrafeModel{
		groundAccel:    p.GroundAccel,
		airAccel:       p.AirAccel,
		groundMaxSpeed: p.GroundMaxSpeed,
		airMaxSpeed:    p.AirMaxSpeed,
		flySpeed:       p.FlySpeed,
		flyPitch:       p.FlyFollowsPitch,
		clampBlend:     p.ClampBlend,
	}
}

// WishVelocity returns the per-tick acceleration impulse the input asks for: the input
// scaled by accel, turned by the view heading only, and flattened onto the ground plane.
func WishVelocity(move math.Vec2, yaw, accel, dt float32) math.Vec3 {
	local := math.Vec3{X: move.X * accel, Z: move.Y * accel}
	return math.QuatFromYaw(yaw).Rotate(local).Horizontal().Scale(dt)
}

// Headroom is the fraction of maxSpeed still available at the given horizontal speed.
// It is zero at or above the cap.
func Headroom(speed, maxSpeed float32) float32 {
	return math32.Max(0, 1-speed/maxSpeed)
}

// HorizontalDelta computes the velocity change for one walking tick.
//
// The wish impulse is blended toward a copy capped by the remaining headroom, using the
// raw dot product of current horizontal velocity and wish as the blend factor. Input
// along the current motion at the cap collapses to the capped value; input
// perpendicular to it has a dot of zero and is applied in full, which is how strafing
// builds speed past the cap.
func (m StrafeModel) HorizontalDelta(move math.Vec2, velocity math.Vec3, grounded bool, yaw, dt float32) math.Vec3 {
	accel, maxSpeed := m.airAccel, m.airMaxSpeed
	if grounded {
		accel, maxSpeed = m.groundAccel, m.groundMaxSpeed
	}

	wish := WishVelocity(move, yaw, accel, dt)
	current := velocity.Horizontal()

	headroom := Headroom(current.Length(), maxSpeed)
	alignment := current.Dot(wish)
	capped := wish.Scale(headroom)

	if m.clampBlend {
		return wish.Lerp(capped, alignment)
	}
	return wish.LerpUnclamped(capped, alignment)
}

// FlyVelocity returns the absolute noclip velocity for the input.
func (m StrafeModel) FlyVelocity(move math.Vec2, yaw, pitch float32) math.Vec3 {
	rot := math.QuatFromYaw(yaw)
	if m.flyPitch {
		rot = math.QuatFromYawPitch(yaw, pitch)
	}
	return rot.Rotate(math.Vec3{X: move.X * m.flySpeed, Z: move.Y * m.flySpeed})
}
