package physics

import (
	"github.com/Faultbox/strafesim/internal/movement"
	"github.com/Faultbox/strafesim/pkg/math"
)

// Body is the dynamic box simulated by a World. It implements movement.Body.
type Body struct {
	pos     math.Vec3
	vel     math.Vec3
	extents math.Vec3
	flags   movement.BodyFlags

	touching map[int]bool
}

// NewBody creates a body centered at pos with the given half-size. Gravity and
// collision start enabled.
func NewBody(pos, extents math.Vec3) *Body {
	return &Body{
		pos:      pos,
		extents:  extents,
		flags:    movement.FlagGravity | movement.FlagCollision,
		touching: make(map[int]bool),
	}
}

// Velocity returns the current velocity.
func (b *Body) Velocity() math.Vec3 { return b.vel }

// SetVelocity replaces the velocity.
func (b *Body) SetVelocity(v math.Vec3) { b.vel = v }

// Position returns the center of the body.
func (b *Body) Position() math.Vec3 { return b.pos }

// SetPosition teleports the body.
func (b *Body) SetPosition(p math.Vec3) { b.pos = p }

// Bounds returns the collider bounds in world space.
func (b *Body) Bounds() movement.Bounds {
	return movement.Bounds{Center: b.pos, Extents: b.extents}
}

// Flags returns the simulation flags.
func (b *Body) Flags() movement.BodyFlags { return b.flags }

// SetFlags replaces all flags at once. Turning collision off forgets current contacts.
func (b *Body) SetFlags(f movement.BodyFlags) {
	if !f.Has(movement.FlagCollision) {
		clear(b.touching)
	}
	b.flags = f
}

func (b *Body) aabb() AABB {
	return AABBFromBounds(b.Bounds())
}
