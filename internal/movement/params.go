// Package movement implements Source-style strafe movement for a single simulated body:
// ground probing, friction, acceleration-limited strafing, jump buffering and step-up.
package movement

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is wrapped by every Params validation failure.
var ErrInvalidParams = errors.New("invalid movement params")

// Params holds the tuning values for a body. They are set once when the controller is
// created and never change afterwards.
type Params struct {
	GroundAccel    float32 // acceleration while grounded (units/s^2 per input unit)
	AirAccel       float32 // acceleration while airborne
	GroundMaxSpeed float32 // horizontal speed cap used for headroom while grounded
	AirMaxSpeed    float32 // horizontal speed cap used for headroom while airborne
	Friction       float32 // ground friction coefficient
	JumpSpeed      float32 // vertical speed a jump brings the body up to
	JumpBuffer     float32 // seconds a jump press stays valid
	MaxStepHeight  float32 // highest ledge the body steps onto
	StepClearance  float32 // gap left between the body and the ledge after a step
	FlySpeed       float32 // speed per input unit in noclip
	FixedDt        float32 // physics tick length used before the host supplies one

	GroundRayCount    int       // probes on the footprint ring (plus one through the center)
	GroundMinNormalY  float32   // a hit is walkable only if normal.Y exceeds this
	GroundProbeOffset float32   // probes start this far above the body's bottom
	GroundProbeLength float32   // probe length, downwards
	GroundLayers      LayerMask // layers the probes collide with

	// FlyFollowsPitch makes noclip movement follow the full view rotation instead of
	// the heading alone.
	FlyFollowsPitch bool

	// ClampBlend clamps the strafe blend factor to [0, 1]. Off by default: the
	// unclamped factor is what lets perpendicular input gain speed past the cap.
	ClampBlend bool
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		GroundAccel:       200,
		AirAccel:          200,
		GroundMaxSpeed:    6.4,
		AirMaxSpeed:       0.6,
		Friction:          8,
		JumpSpeed:         5,
		JumpBuffer:        0.1,
		MaxStepHeight:     0.201,
		StepClearance:     0.001,
		FlySpeed:          10,
		FixedDt:           0.02,
		GroundRayCount:    8,
		GroundMinNormalY:  0.75,
		GroundProbeOffset: 0.05,
		GroundProbeLength: 0.1,
		GroundLayers:      LayerAll,
	}
}

// Validate reports the first tuning value that would make the pipeline divide by zero
// or never fire.
func (p Params) Validate() error {
	positive := []struct {
		name  string
		value float32
	}{
		{"ground_accel", p.GroundAccel},
		{"air_accel", p.AirAccel},
		{"ground_max_speed", p.GroundMaxSpeed},
		{"air_max_speed", p.AirMaxSpeed},
		{"jump_speed", p.JumpSpeed},
		{"jump_buffer", p.JumpBuffer},
		{"fly_speed", p.FlySpeed},
		{"fixed_dt", p.FixedDt},
		{"ground_probe_length", p.GroundProbeLength},
	}
	for _, f := range positive {
		if !(f.value > 0) {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidParams, f.name, f.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float32
	}{
		{"friction", p.Friction},
		{"max_step_height", p.MaxStepHeight},
		{"step_clearance", p.StepClearance},
		{"ground_probe_offset", p.GroundProbeOffset},
	}
	for _, f := range nonNegative {
		if !(f.value >= 0) {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidParams, f.name, f.value)
		}
	}

	if p.GroundRayCount < 1 {
		return fmt.Errorf("%w: ground_ray_count must be >= 1, got %d", ErrInvalidParams, p.GroundRayCount)
	}
	if !(p.GroundMinNormalY > 0 && p.GroundMinNormalY < 1) {
		return fmt.Errorf("%w: ground_min_normal_y must be in (0, 1), got %v", ErrInvalidParams, p.GroundMinNormalY)
	}
	if p.GroundLayers == 0 {
		return fmt.Errorf("%w: ground_layers is empty", ErrInvalidParams)
	}
	return nil
}
