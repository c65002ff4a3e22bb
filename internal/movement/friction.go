package movement

import "github.com/Faultbox/strafesim/pkg/math"

// RestSpeed is the speed below which friction stops a body outright.
const RestSpeed = 1e-6

// ApplyFriction decays v toward zero while grounded. It leaves v untouched in the air,
// while the jump key is held (so a takeoff tick keeps its speed) and at rest.
func ApplyFriction(v math.Vec3, grounded, jumpHeld bool, friction, dt float32) math.Vec3 {
	speed := v.Length()
	if !grounded || jumpHeld || speed == 0 {
		return v
	}

	drop := speed * friction * dt
	newSpeed := speed - drop
	if newSpeed < RestSpeed {
		return math.Vec3{}
	}
	return v.Scale(newSpeed / speed)
}
