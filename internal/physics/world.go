package physics

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/strafesim/internal/movement"
	"github.com/Faultbox/strafesim/pkg/math"
)

// ErrNoBody is returned by Step when no body has been attached.
var ErrNoBody = errors.New("physics: no body in world")

const (
	// penetrationSlop is how deep two boxes must overlap before they collide.
	penetrationSlop = 1e-4
	// contactSkin keeps a resting contact alive across steps.
	contactSkin = 2e-3
)

// DefaultGravity is the downward acceleration in units/s^2.
const DefaultGravity = -9.81

// Collider is a static obstacle.
type Collider struct {
	Name  string
	Kind  movement.ColliderKind
	Box   AABB
	Layer movement.LayerMask

	// TopNormal overrides the normal reported for hits on the top face; zero means
	// straight up. It models ramps for ground probing without sloped geometry.
	TopNormal math.Vec3
}

func (c Collider) info() movement.ColliderInfo {
	return movement.ColliderInfo{Name: c.Name, Kind: c.Kind, Bounds: c.Box.Bounds()}
}

// World holds static colliders and one dynamic body.
type World struct {
	gravity   float32
	colliders []Collider
	body      *Body
	sink      movement.ContactSink
	log       *zap.Logger
}

// NewWorld creates an empty world.
func NewWorld(gravity float32, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{gravity: gravity, log: log}
}

// AddCollider adds a static collider and returns its index. A zero layer becomes
// movement.LayerDefault.
func (w *World) AddCollider(c Collider) int {
	if c.Layer == 0 {
		c.Layer = movement.LayerDefault
	}
	c.Box = NewAABB(c.Box.Min, c.Box.Max)
	w.colliders = append(w.colliders, c)
	w.log.Debug("collider added",
		zap.String("name", c.Name),
		zap.Stringer("kind", c.Kind),
		zap.Uint32("layer", uint32(c.Layer)),
	)
	return len(w.colliders) - 1
}

// Colliders returns the static colliders.
func (w *World) Colliders() []Collider {
	return w.colliders
}

// SetBody attaches the dynamic body. Colliders it already rests against count as
// touched, so placing a body on the floor reports no collision event.
func (w *World) SetBody(b *Body) {
	w.body = b
	if b == nil {
		return
	}
	clear(b.touching)
	skin := b.aabb().Expand(contactSkin)
	for idx, c := range w.colliders {
		if skin.Overlaps(c.Box, 0) {
			b.touching[idx] = true
		}
	}
}

// Body returns the dynamic body, or nil.
func (w *World) Body() *Body {
	return w.body
}

// SetContactSink registers the receiver of collision-enter events.
func (w *World) SetContactSink(s movement.ContactSink) {
	w.sink = s
}

// Raycast returns the closest collider hit along dir within maxDist on the given
// layers. Colliders the ray starts inside are ignored. It implements
// movement.Raycaster.
func (w *World) Raycast(origin, dir math.Vec3, maxDist float32, layers movement.LayerMask) (movement.RayHit, bool) {
	ray := Ray{Origin: origin, Direction: dir.Normalize()}

	var best movement.RayHit
	found := false
	for _, c := range w.colliders {
		if !layers.Contains(c.Layer) || c.Box.Contains(origin) {
			continue
		}
		t, normal, ok := ray.IntersectAABB(c.Box)
		if !ok || t > maxDist {
			continue
		}
		if found && t >= best.Distance {
			continue
		}
		if normal.Y > 0 && c.TopNormal != (math.Vec3{}) {
			normal = c.TopNormal.Normalize()
		}
		best = movement.RayHit{Distance: t, Normal: normal}
		found = true
	}
	return best, found
}

// Step advances the body by dt. Contacts with colliders the body was not already
// touching are delivered to the contact sink before Step returns.
func (w *World) Step(dt float32) error {
	b := w.body
	if b == nil {
		return ErrNoBody
	}
	if b.flags.Has(movement.FlagKinematic) {
		return nil
	}

	if b.flags.Has(movement.FlagGravity) {
		b.vel.Y += w.gravity * dt
	}

	if !b.flags.Has(movement.FlagCollision) {
		b.pos = b.pos.Add(b.vel.Scale(dt))
		return nil
	}

	hits := make(map[int][]movement.ContactPoint)
	// Horizontal axes first: a body just lifted onto a ledge has to clear it before
	// gravity pulls it back into the ledge's side.
	for _, i := range [3]int{0, 2, 1} {
		w.moveAxis(b, i, axis(b.vel, i)*dt, hits)
	}

	touching := make(map[int]bool, len(hits))
	skin := b.aabb().Expand(contactSkin)
	for idx, c := range w.colliders {
		if _, ok := hits[idx]; ok || skin.Overlaps(c.Box, 0) {
			touching[idx] = true
		}
	}

	var events []movement.StepEvent
	for idx := range w.colliders {
		points, ok := hits[idx]
		if !ok || b.touching[idx] {
			continue
		}
		events = append(events, movement.StepEvent{Contacts: points})
	}
	b.touching = touching

	if w.sink != nil {
		for _, ev := range events {
			w.sink.OnCollisionEnter(ev)
		}
	}
	return nil
}

// moveAxis moves b by delta along axis i and pushes it out of anything it enters,
// zeroing velocity on that axis.
func (w *World) moveAxis(b *Body, i int, delta float32, hits map[int][]movement.ContactPoint) {
	if delta == 0 {
		return
	}
	b.pos = withAxis(b.pos, i, axis(b.pos, i)+delta)

	for idx, c := range w.colliders {
		box := b.aabb()
		if !box.Overlaps(c.Box, penetrationSlop) {
			continue
		}

		var pushed float32
		if delta > 0 {
			pushed = axis(c.Box.Min, i) - axis(b.extents, i)
		} else {
			pushed = axis(c.Box.Max, i) + axis(b.extents, i)
		}
		b.pos = withAxis(b.pos, i, pushed)
		b.vel = withAxis(b.vel, i, 0)

		normal := faceNormal(i, -delta)
		point := withAxis(b.pos, i, pushed-axis(normal, i)*axis(b.extents, i))
		hits[idx] = append(hits[idx], movement.ContactPoint{
			Position: point,
			Normal:   normal,
			Other:    c.info(),
		})
	}
}

// String summarizes the world for logs.
func (w *World) String() string {
	return fmt.Sprintf("world{colliders=%d gravity=%v}", len(w.colliders), w.gravity)
}
