package movement

import "github.com/Faultbox/strafesim/pkg/math"

// JumpBuffer remembers the latest jump press so a press shortly before landing still
// jumps.
type JumpBuffer struct {
	lastPress float64
	window    float64
	speed     float32
}

// NewJumpBuffer creates an empty buffer.
func NewJumpBuffer(window, speed float32) *JumpBuffer {
	return &JumpBuffer{
		lastPress: NoJumpPress,
		window:    float64(window),
		speed:     speed,
	}
}

// RecordPress stores a press at now, replacing any earlier one. Call it on every input
// sample the jump control is held.
func (b *JumpBuffer) RecordPress(now float64) {
	b.lastPress = now
}

// Pending reports whether a press is stored.
func (b *JumpBuffer) Pending() bool {
	return b.lastPress != NoJumpPress
}

// LastPress returns the stored press time, or NoJumpPress.
func (b *JumpBuffer) LastPress() float64 {
	return b.lastPress
}

// Clear drops any stored press.
func (b *JumpBuffer) Clear() {
	b.lastPress = NoJumpPress
}

// TryConsume turns a live press into an upward velocity delta that brings vy up to the
// jump speed. It returns zero, keeping the press, if the press is stale, the body is
// airborne, or it is already rising at least that fast.
func (b *JumpBuffer) TryConsume(now float64, vy float32, grounded bool) math.Vec3 {
	if !b.Pending() || now >= b.lastPress+b.window || vy >= b.speed || !grounded {
		return math.Vec3{}
	}
	b.lastPress = NoJumpPress
	return math.Vec3{Y: b.speed - vy}
}
