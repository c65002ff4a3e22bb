package movement

import "github.com/Faultbox/strafesim/pkg/math"

// NoJumpPress marks an empty jump buffer.
const NoJumpPress = -1

// Mode selects which simulation a body runs.
type Mode uint8

const (
	// ModeWalking runs ground/air movement with gravity and collision.
	ModeWalking Mode = iota
	// ModeFlying moves freely along the view with gravity and collision off.
	ModeFlying
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeFlying {
		return "flying"
	}
	return "walking"
}

// MovementState is the per-body state the pipeline mutates every tick.
type MovementState struct {
	Velocity           math.Vec3
	Grounded           bool
	LastGroundDistance float32 // -1 when the last probe found nothing
	LastJumpPress      float64 // seconds; NoJumpPress when empty
	Mode               Mode
	Frozen             bool
}

func newMovementState() MovementState {
	return MovementState{
		LastGroundDistance: -1,
		LastJumpPress:      NoJumpPress,
		Mode:               ModeWalking,
	}
}
