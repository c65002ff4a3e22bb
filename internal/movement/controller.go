package movement

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/strafesim/pkg/math"
)

var (
	// ErrNoView is returned when a controller is created without a view provider.
	ErrNoView = errors.New("movement: view provider is required")
	// ErrNoBody is returned when a controller is created without a body.
	ErrNoBody = errors.New("movement: body is required")
)

// Controller drives one body through the movement pipeline. It is not safe for
// concurrent use; the host calls it from its simulation goroutine only.
//
// Per physics tick the controller probes the ground, applies friction, adds the strafe
// and jump deltas and writes the velocity back. Contacts reported by the backend during
// its step are queued and resolved by DrainSteps before the next tick.
type Controller struct {
	params Params
	body   Body
	view   ViewProvider
	log    *zap.Logger

	ground *GroundDetector
	strafe StrafeModel
	jump   *JumpBuffer
	steps  *StepResolver

	state    MovementState
	move     math.Vec2
	jumpHeld bool

	now          float64 // latest time seen by SampleInput or FixedUpdate
	dt           float32
	lastVelocity math.Vec3
	pending      []StepEvent
}

// New creates a controller for body in the walking, active state. The body's flags are
// reset to match: gravity and collision on, not kinematic.
func New(p Params, body Body, rays Raycaster, view ViewProvider, log *zap.Logger) (*Controller, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, ErrNoBody
	}
	if view == nil {
		return nil, ErrNoView
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Controller{
		params: p,
		body:   body,
		view:   view,
		log:    log,
		ground: NewGroundDetector(rays, p),
		strafe: NewStrafeModel(p),
		jump:   NewJumpBuffer(p.JumpBuffer, p.JumpSpeed),
		steps:  NewStepResolver(p, log),
		state:  newMovementState(),
		dt:     p.FixedDt,
	}
	body.SetFlags(FlagGravity | FlagCollision)
	c.lastVelocity = body.Velocity()
	c.state.Velocity = c.lastVelocity
	return c, nil
}

// Params returns the tuning the controller was created with.
func (c *Controller) Params() Params {
	return c.params
}

// State returns a snapshot of the movement state.
func (c *Controller) State() MovementState {
	s := c.state
	s.LastJumpPress = c.jump.LastPress()
	return s
}

// Freeze makes the body kinematic and stops the controller writing velocity.
func (c *Controller) Freeze() {
	c.state.Frozen = true
	c.body.SetFlags(c.body.Flags() | FlagKinematic)
	c.log.Debug("movement frozen")
}

// Unfreeze reverses Freeze.
func (c *Controller) Unfreeze() {
	c.body.SetFlags(c.body.Flags() &^ FlagKinematic)
	c.state.Frozen = false
	c.log.Debug("movement unfrozen")
}

// Frozen reports whether the body is frozen.
func (c *Controller) Frozen() bool {
	return c.state.Frozen
}

// SetNoclip switches between flying and walking. Gravity and collision change together
// in a single flag write.
func (c *Controller) SetNoclip(on bool) {
	flags := c.body.Flags()
	if on {
		flags &^= FlagGravity | FlagCollision
		c.state.Mode = ModeFlying
		c.state.Grounded = false
		c.pending = c.pending[:0]
	} else {
		flags |= FlagGravity | FlagCollision
		c.state.Mode = ModeWalking
	}
	c.body.SetFlags(flags)
	c.log.Debug("movement mode", zap.Stringer("mode", c.state.Mode))
}

// Noclip reports whether the body is flying.
func (c *Controller) Noclip() bool {
	return c.state.Mode == ModeFlying
}

// ResetVelocity zeroes the body's velocity immediately, e.g. after a teleport.
func (c *Controller) ResetVelocity() {
	c.body.SetVelocity(math.Vec3{})
	c.state.Velocity = math.Vec3{}
	c.lastVelocity = math.Vec3{}
}

// CheckGround probes under the body and records the result. Flying bodies are never
// grounded and cast no rays.
func (c *Controller) CheckGround() bool {
	if c.state.Mode == ModeFlying {
		c.state.Grounded = false
		return false
	}

	bounds := c.body.Bounds()
	probe := c.ground.DetectGround(bounds.Bottom(), bounds.Extents.X)

	c.state.Grounded = probe.Grounded
	c.state.LastGroundDistance = -1
	if probe.HasDistance {
		c.state.LastGroundDistance = probe.Distance
	}
	return probe.Grounded
}

// ComputeMovementDelta returns the velocity change for input at the latest known time,
// jump included, using the last tick length (Params.FixedDt before the first tick). In
// noclip it returns the absolute fly velocity instead.
func (c *Controller) ComputeMovementDelta(input StrafeInput, velocity math.Vec3) math.Vec3 {
	if c.state.Mode == ModeFlying {
		return c.strafe.FlyVelocity(input.Move, input.ViewYaw, input.ViewPitch)
	}
	return c.movementDelta(input, velocity, c.CheckGround())
}

func (c *Controller) movementDelta(input StrafeInput, velocity math.Vec3, grounded bool) math.Vec3 {
	delta := c.strafe.HorizontalDelta(input.Move, velocity, grounded, input.ViewYaw, c.dt)

	jump := c.jump.TryConsume(c.now, velocity.Y, grounded)
	if jump.Y != 0 {
		c.log.Debug("jump", zap.Float64("time", c.now), zap.Float32("impulse", jump.Y))
	}
	return delta.Add(jump)
}

// SampleInput records the latest input. It is the variable-rate input point: the jump
// press is timestamped here, nothing else is computed. Ignored while frozen.
func (c *Controller) SampleInput(now float64, move math.Vec2, jumpHeld bool) {
	if c.state.Frozen {
		return
	}
	c.now = max(c.now, now)
	c.move = move.ClampAxes()
	c.jumpHeld = jumpHeld
	if jumpHeld {
		c.jump.RecordPress(now)
	}
}

// FixedUpdate runs one physics tick at time now with step dt and writes the new
// velocity to the body.
func (c *Controller) FixedUpdate(now float64, dt float32) {
	c.now = now
	if dt > 0 {
		c.dt = dt
	}

	if c.state.Frozen {
		c.lastVelocity = c.body.Velocity()
		return
	}

	input := StrafeInput{
		Move:      c.move,
		ViewYaw:   c.view.ViewYaw(),
		ViewPitch: c.view.ViewPitch(),
	}
	velocity := c.body.Velocity()

	var next math.Vec3
	if c.state.Mode == ModeFlying {
		next = c.strafe.FlyVelocity(input.Move, input.ViewYaw, input.ViewPitch)
	} else {
		grounded := c.CheckGround()
		velocity = ApplyFriction(velocity, grounded, c.jumpHeld, c.params.Friction, dt)
		next = velocity.Add(c.movementDelta(input, velocity, grounded))
	}

	if !c.body.Flags().Has(FlagKinematic) {
		c.body.SetVelocity(next)
	}
	c.lastVelocity = c.body.Velocity()
	c.state.Velocity = c.lastVelocity
}

// OnCollisionEnter queues ev for DrainSteps. It implements ContactSink.
func (c *Controller) OnCollisionEnter(ev StepEvent) {
	if c.state.Mode == ModeFlying {
		return
	}
	c.pending = append(c.pending, ev)
}

// DrainSteps resolves queued collision events in arrival order and returns how many
// lifted the body. Call it after the backend step and before the next FixedUpdate.
func (c *Controller) DrainSteps() int {
	if len(c.pending) == 0 {
		return 0
	}

	stepped := 0
	for _, ev := range c.pending {
		if c.state.Frozen || c.state.Mode == ModeFlying {
			break
		}
		if c.steps.Resolve(ev, c.body, c.lastVelocity) {
			stepped++
		}
	}
	c.pending = c.pending[:0]
	c.state.Velocity = c.body.Velocity()
	return stepped
}

// PendingSteps returns how many collision events are queued.
func (c *Controller) PendingSteps() int {
	return len(c.pending)
}

// String describes the controller state for logs.
func (c *Controller) String() string {
	return fmt.Sprintf("mode=%s frozen=%v grounded=%v vel=%v", c.state.Mode, c.state.Frozen, c.state.Grounded, c.state.Velocity)
}
