package movement

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/strafesim/pkg/math"
)

const tickDt = 0.02

var forward = math.Vec2{X: 0, Y: 1}

func TestHeadroom(t *testing.T) {
	tests := []struct {
		speed, max, want float32
	}{
		{0, 6.4, 1},
		{3.2, 6.4, 0.5},
		{6.4, 6.4, 0},
		{12.8, 6.4, 0},
	}
	for _, tt := range tests {
		if got := Headroom(tt.speed, tt.max); math32.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Headroom(%v, %v) = %v, want %v", tt.speed, tt.max, got, tt.want)
		}
	}
}

func TestWishVelocity_FollowsYawOnly(t *testing.T) {
	got := WishVelocity(forward, math32.Pi/2, 200, tickDt)
	want := math.Vec3{X: 4}
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("WishVelocity(yaw=90deg) = %v, want %v", got, want)
	}
	if got.Y != 0 {
		t.Errorf("wish must stay horizontal, got Y=%v", got.Y)
	}
}

func TestHorizontalDelta_FromRest(t *testing.T) {
	m := NewStrafeModel(DefaultParams())

	got := m.HorizontalDelta(forward, math.Vec3{}, true, 0, tickDt)
	want := math.Vec3{Z: 4}
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("HorizontalDelta() = %v, want %v", got, want)
	}
}

func TestHorizontalDelta_AirAccel(t *testing.T) {
	p := DefaultParams()
	p.AirAccel = 100
	m := NewStrafeModel(p)

	got := m.HorizontalDelta(forward, math.Vec3{}, false, 0, tickDt)
	want := math.Vec3{Z: 2}
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("air HorizontalDelta() = %v, want %v", got, want)
	}
}

func TestHorizontalDelta_PerpendicularIsUncapped(t *testing.T) {
	m := NewStrafeModel(DefaultParams())
	wish := WishVelocity(forward, 0, 200, tickDt)

	for _, speed := range []float32{0.6, 6.4, 10, 40} {
		for _, grounded := range []bool{true, false} {
			v := math.Vec3{X: speed, Y: -3}
			got := m.HorizontalDelta(forward, v, grounded, 0, tickDt)
			if got != wish {
				t.Errorf("speed=%v grounded=%v: delta = %v, want full wish %v", speed, grounded, got, wish)
			}
		}
	}
}

func TestHorizontalDelta_StrafeGainsSpeedPastCap(t *testing.T) {
	m := NewStrafeModel(DefaultParams())
	v := math.Vec3{Z: 8} // well above both caps
	right := math.Vec2{X: 1}

	next := v.Add(m.HorizontalDelta(right, v, false, 0, tickDt))
	if next.Horizontal().Length() <= v.Length() {
		t.Errorf("perpendicular air input should gain speed: %v -> %v", v.Length(), next.Horizontal().Length())
	}
}

// With the unclamped blend, input along the motion at or above the cap can only shrink
// the forward component; the full "speed does not increase" property holds with
// ClampBlend. DESIGN.md (open question 1) records this choice.
func TestHorizontalDelta_ParallelAtCapDoesNotGain(t *testing.T) {
	p := DefaultParams()

	for _, grounded := range []bool{true, false} {
		maxSpeed := p.AirMaxSpeed
		if grounded {
			maxSpeed = p.GroundMaxSpeed
		}

		for _, speed := range []float32{maxSpeed, maxSpeed * 1.5, 20} {
			v := math.Vec3{Z: speed}

			m := NewStrafeModel(p)
			next := v.Add(m.HorizontalDelta(forward, v, grounded, 0, tickDt))
			if next.Z > speed {
				t.Errorf("grounded=%v speed=%v: forward speed rose to %v", grounded, speed, next.Z)
			}

			clamped := p
			clamped.ClampBlend = true
			m = NewStrafeModel(clamped)
			next = v.Add(m.HorizontalDelta(forward, v, grounded, 0, tickDt))
			if next.Horizontal().Length() > speed+1e-5 {
				t.Errorf("clamped grounded=%v speed=%v: speed rose to %v", grounded, speed, next.Horizontal().Length())
			}
		}
	}
}

func TestHorizontalDelta_BlendIsUnclamped(t *testing.T) {
	m := NewStrafeModel(DefaultParams())

	// Grounded at 3.2 moving forward: wish (0,0,4), headroom 0.5, alignment 12.8.
	v := math.Vec3{Z: 3.2}
	got := m.HorizontalDelta(forward, v, true, 0, tickDt)

	wish := math.Vec3{Z: 4}
	want := wish.LerpUnclamped(wish.Scale(0.5), 12.8)
	if !got.ApproxEqual(want, 1e-3) {
		t.Errorf("HorizontalDelta() = %v, want %v", got, want)
	}
	if got.Z >= 0 {
		t.Errorf("alignment > 1 should extrapolate past the capped wish, got %v", got)
	}
}

func TestHorizontalDelta_ZeroInput(t *testing.T) {
	m := NewStrafeModel(DefaultParams())
	got := m.HorizontalDelta(math.Vec2{}, math.Vec3{X: 5, Z: 5}, true, 1, tickDt)
	if got != (math.Vec3{}) {
		t.Errorf("zero input produced %v", got)
	}
}

func TestFlyVelocity(t *testing.T) {
	m := NewStrafeModel(DefaultParams())

	got := m.FlyVelocity(forward, math32.Pi/2, math32.Pi/4)
	want := math.Vec3{X: 10}
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("FlyVelocity() = %v, want %v", got, want)
	}

	p := DefaultParams()
	p.FlyFollowsPitch = true
	m = NewStrafeModel(p)
	got = m.FlyVelocity(forward, 0, math32.Pi/2)
	want = math.Vec3{Y: -10}
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("pitched FlyVelocity() = %v, want %v", got, want)
	}
}
