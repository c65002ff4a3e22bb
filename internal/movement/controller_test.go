package movement

import (
	"errors"
	"testing"

	"github.com/Faultbox/strafesim/pkg/math"
)

// standingController returns a controller for a body resting on a floor at y=0.
func standingController(t *testing.T) (*Controller, *mockBody, *mockRays, *mockView) {
	t.Helper()
	body := newMockBody(math.Vec3{Y: 1})
	rays := flatGround(0)
	view := &mockView{}
	c, err := New(DefaultParams(), body, rays, view, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c, body, rays, view
}

func TestNew_Validation(t *testing.T) {
	body := newMockBody(math.Vec3{})

	if _, err := New(DefaultParams(), body, nil, nil, nil); !errors.Is(err, ErrNoView) {
		t.Errorf("nil view: err = %v, want ErrNoView", err)
	}
	if _, err := New(DefaultParams(), nil, nil, &mockView{}, nil); !errors.Is(err, ErrNoBody) {
		t.Errorf("nil body: err = %v, want ErrNoBody", err)
	}

	p := DefaultParams()
	p.GroundMaxSpeed = 0
	if _, err := New(p, body, nil, &mockView{}, nil); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("zero max speed: err = %v, want ErrInvalidParams", err)
	}
}

func TestNew_InitialState(t *testing.T) {
	c, body, _, _ := standingController(t)

	s := c.State()
	if s.Mode != ModeWalking || s.Frozen {
		t.Errorf("initial state = %+v, want walking and active", s)
	}
	if s.LastJumpPress != NoJumpPress {
		t.Errorf("LastJumpPress = %v, want %v", s.LastJumpPress, NoJumpPress)
	}
	if body.flags != FlagGravity|FlagCollision {
		t.Errorf("body flags = %b, want gravity|collision", body.flags)
	}
}

func TestController_EndToEndForward(t *testing.T) {
	c, body, _, _ := standingController(t)

	c.SampleInput(0, forward, false)
	c.FixedUpdate(0.02, tickDt)

	want := math.Vec3{Z: 4}
	if !body.vel.ApproxEqual(want, 1e-5) {
		t.Errorf("velocity = %v, want %v", body.vel, want)
	}
	if !c.State().Grounded {
		t.Error("expected grounded on the floor")
	}
}

func TestController_FrictionOnSecondTick(t *testing.T) {
	c, body, _, _ := standingController(t)

	body.vel = math.Vec3{Z: 4}
	c.SampleInput(0, math.Vec2{}, false)
	c.FixedUpdate(0.02, tickDt)

	// 4 - 4*8*0.02 = 3.36
	want := math.Vec3{Z: 3.36}
	if !body.vel.ApproxEqual(want, 1e-5) {
		t.Errorf("velocity = %v, want %v", body.vel, want)
	}
}

func TestController_BufferedJump(t *testing.T) {
	c, body, _, _ := standingController(t)
	body.vel = math.Vec3{X: 2}

	c.SampleInput(1.00, math.Vec2{}, true)
	c.FixedUpdate(1.02, tickDt)

	if body.vel.Y != 5 {
		t.Errorf("vertical velocity = %v, want 5", body.vel.Y)
	}
	if body.vel.X != 2 {
		t.Errorf("horizontal velocity = %v, friction should skip while jump is held", body.vel.X)
	}
	if c.State().LastJumpPress != NoJumpPress {
		t.Error("jump press should be consumed")
	}
}

func TestController_ComputeMovementDelta(t *testing.T) {
	c, _, _, _ := standingController(t)
	c.FixedUpdate(0, tickDt)

	got := c.ComputeMovementDelta(StrafeInput{Move: forward}, math.Vec3{})
	if !got.ApproxEqual(math.Vec3{Z: 4}, 1e-5) {
		t.Errorf("ComputeMovementDelta() = %v, want (0,0,4)", got)
	}
}

func TestController_ComputeMovementDeltaBeforeFirstTick(t *testing.T) {
	c, _, _, _ := standingController(t)

	got := c.ComputeMovementDelta(StrafeInput{Move: forward}, math.Vec3{})
	if !got.ApproxEqual(math.Vec3{Z: 4}, 1e-5) {
		t.Errorf("ComputeMovementDelta() on a fresh controller = %v, want (0,0,4)", got)
	}
}

func TestController_ComputeMovementDeltaUsesLatestInputTime(t *testing.T) {
	c, _, _, _ := standingController(t)

	c.SampleInput(0.02, math.Vec2{}, true)
	c.SampleInput(0.5, math.Vec2{}, false)

	// The press at 0.02 has aged out by 0.5.
	if got := c.ComputeMovementDelta(StrafeInput{}, math.Vec3{}); got.Y != 0 {
		t.Errorf("jump impulse = %v, want 0 for an expired press", got.Y)
	}

	c.SampleInput(0.52, math.Vec2{}, true)
	if got := c.ComputeMovementDelta(StrafeInput{}, math.Vec3{}); got.Y != 5 {
		t.Errorf("jump impulse = %v, want 5 for a fresh press", got.Y)
	}
}

func TestController_NoclipIsAtomic(t *testing.T) {
	c, body, _, _ := standingController(t)
	writes := body.flagWrites

	c.SetNoclip(true)
	if body.flagWrites != writes+1 {
		t.Errorf("SetNoclip(true) wrote flags %d times, want 1", body.flagWrites-writes)
	}
	if body.flags.Has(FlagGravity) || body.flags.Has(FlagCollision) {
		t.Errorf("noclip flags = %b, want gravity and collision off", body.flags)
	}
	if !c.Noclip() || c.State().Mode != ModeFlying {
		t.Error("expected flying mode")
	}

	c.SetNoclip(false)
	if body.flagWrites != writes+2 {
		t.Errorf("SetNoclip(false) wrote flags %d times, want 1", body.flagWrites-writes-1)
	}
	if !body.flags.Has(FlagGravity | FlagCollision) {
		t.Errorf("walking flags = %b, want gravity and collision on", body.flags)
	}
	if c.Noclip() {
		t.Error("expected walking mode")
	}
}

func TestController_FlyingSkipsGroundAndSubstitutesVelocity(t *testing.T) {
	c, body, rays, view := standingController(t)
	view.yaw = 0
	body.vel = math.Vec3{X: 7, Y: -2}

	c.SetNoclip(true)
	rays.origins = nil

	c.SampleInput(0, forward, false)
	c.FixedUpdate(0.02, tickDt)

	if len(rays.origins) != 0 {
		t.Errorf("flying cast %d ground probes", len(rays.origins))
	}
	if !body.vel.ApproxEqual(math.Vec3{Z: 10}, 1e-5) {
		t.Errorf("fly velocity = %v, want (0,0,10)", body.vel)
	}
	if c.CheckGround() {
		t.Error("flying bodies are never grounded")
	}
}

func TestController_FreezeSuppressesWrites(t *testing.T) {
	c, body, _, _ := standingController(t)
	body.vel = math.Vec3{X: 3}

	c.Freeze()
	if !body.flags.Has(FlagKinematic) || !c.Frozen() {
		t.Fatal("Freeze should make the body kinematic")
	}

	c.SampleInput(0, forward, true)
	c.FixedUpdate(0.02, tickDt)
	if body.vel != (math.Vec3{X: 3}) {
		t.Errorf("frozen velocity changed to %v", body.vel)
	}
	if c.State().LastJumpPress != NoJumpPress {
		t.Error("frozen controller should not record jump presses")
	}

	c.Unfreeze()
	if body.flags.Has(FlagKinematic) || c.Frozen() {
		t.Error("Unfreeze should clear kinematic")
	}
}

func TestController_ResetVelocity(t *testing.T) {
	c, body, _, _ := standingController(t)
	body.vel = math.Vec3{X: 1, Y: 2, Z: 3}

	c.ResetVelocity()
	if body.vel != (math.Vec3{}) || c.State().Velocity != (math.Vec3{}) {
		t.Errorf("velocity after reset = %v / %v", body.vel, c.State().Velocity)
	}
}

func TestController_CheckGroundRecordsDistance(t *testing.T) {
	c, body, _, _ := standingController(t)

	if !c.CheckGround() {
		t.Fatal("expected grounded")
	}
	if d := c.State().LastGroundDistance; d < 0.049 || d > 0.051 {
		t.Errorf("LastGroundDistance = %v, want ~0.05", d)
	}

	body.pos = math.Vec3{Y: 5}
	if c.CheckGround() {
		t.Error("expected airborne")
	}
	if d := c.State().LastGroundDistance; d != -1 {
		t.Errorf("LastGroundDistance = %v, want -1", d)
	}
}

func TestController_StepQueueDrainsAfterTick(t *testing.T) {
	c, body, _, _ := standingController(t)

	c.SampleInput(0, forward, false)
	c.FixedUpdate(0.02, tickDt)
	written := body.vel

	// Backend collision response stops the body against the ledge.
	body.vel = math.Vec3{}
	c.OnCollisionEnter(StepEvent{Contacts: []ContactPoint{contact(box(ColliderBox, 0.1, 0.1))}})
	if c.PendingSteps() != 1 {
		t.Fatalf("PendingSteps() = %d, want 1", c.PendingSteps())
	}

	if n := c.DrainSteps(); n != 1 {
		t.Fatalf("DrainSteps() = %d, want 1", n)
	}
	if c.PendingSteps() != 0 {
		t.Error("queue should be empty after draining")
	}
	if body.vel != written {
		t.Errorf("velocity = %v, want pre-contact %v", body.vel, written)
	}
	if body.pos.Y < 1.2 {
		t.Errorf("body y = %v, want lifted onto the ledge", body.pos.Y)
	}
}

func TestController_StepEventsIgnoredWhileFlying(t *testing.T) {
	c, _, _, _ := standingController(t)
	c.SetNoclip(true)

	c.OnCollisionEnter(StepEvent{Contacts: []ContactPoint{contact(box(ColliderBox, 0.1, 0.1))}})
	if c.PendingSteps() != 0 {
		t.Error("flying bodies should not queue step events")
	}
}
