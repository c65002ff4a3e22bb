package movement

import (
	"github.com/Faultbox/strafesim/pkg/math"
)

// mockBody is an in-memory Body that counts flag writes.
type mockBody struct {
	pos        math.Vec3
	vel        math.Vec3
	extents    math.Vec3
	flags      BodyFlags
	flagWrites int
}

func newMockBody(pos math.Vec3) *mockBody {
	return &mockBody{
		pos:     pos,
		extents: math.Vec3{X: 0.5, Y: 1, Z: 0.5},
		flags:   FlagGravity | FlagCollision,
	}
}

func (b *mockBody) Velocity() math.Vec3     { return b.vel }
func (b *mockBody) SetVelocity(v math.Vec3) { b.vel = v }
func (b *mockBody) Position() math.Vec3     { return b.pos }
func (b *mockBody) SetPosition(p math.Vec3) { b.pos = p }
func (b *mockBody) Bounds() Bounds          { return Bounds{Center: b.pos, Extents: b.extents} }
func (b *mockBody) Flags() BodyFlags        { return b.flags }
func (b *mockBody) SetFlags(f BodyFlags) {
	b.flags = f
	b.flagWrites++
}

// mockRays answers raycasts through a callback and records every origin.
type mockRays struct {
	fn      func(origin math.Vec3) (RayHit, bool)
	origins []math.Vec3
}

func (r *mockRays) Raycast(origin, dir math.Vec3, maxDist float32, layers LayerMask) (RayHit, bool) {
	r.origins = append(r.origins, origin)
	if r.fn == nil {
		return RayHit{}, false
	}
	return r.fn(origin)
}

// flatGround reports a level floor at the given height under every probe.
func flatGround(floorY float32) *mockRays {
	return &mockRays{fn: func(origin math.Vec3) (RayHit, bool) {
		d := origin.Y - floorY
		if d < 0 || d > 0.1 {
			return RayHit{}, false
		}
		return RayHit{Distance: d, Normal: math.Up}, true
	}}
}

type mockView struct {
	yaw, pitch float32
}

func (v *mockView) ViewYaw() float32   { return v.yaw }
func (v *mockView) ViewPitch() float32 { return v.pitch }
