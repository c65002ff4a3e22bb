package movement

import "github.com/Faultbox/strafesim/pkg/math"

// LayerMask selects collision layers, one bit per layer.
type LayerMask uint32

const (
	// LayerDefault is the layer colliders land on when none is given.
	LayerDefault LayerMask = 1 << 0
	// LayerAll matches every layer.
	LayerAll LayerMask = ^LayerMask(0)
)

// Contains reports whether the mask includes any layer of other.
func (m LayerMask) Contains(other LayerMask) bool {
	return m&other != 0
}

// RayHit is the result of a successful raycast.
type RayHit struct {
	Distance float32
	Normal   math.Vec3
}

// Raycaster casts rays against the collision world.
type Raycaster interface {
	// Raycast returns the closest hit along dir within maxDist on any layer in layers.
	Raycast(origin, dir math.Vec3, maxDist float32, layers LayerMask) (RayHit, bool)
}

// Bounds is an axis-aligned box given by its center and half-size.
type Bounds struct {
	Center  math.Vec3
	Extents math.Vec3
}

// Bottom returns the center of the bottom face.
func (b Bounds) Bottom() math.Vec3 {
	return b.Center.WithY(b.Center.Y - b.Extents.Y)
}

// Top returns the height of the top face.
func (b Bounds) Top() float32 {
	return b.Center.Y + b.Extents.Y
}

// BodyFlags are the simulation switches of a physics body.
type BodyFlags uint8

const (
	// FlagGravity applies gravity while set.
	FlagGravity BodyFlags = 1 << iota
	// FlagCollision makes the body collide and report contacts.
	FlagCollision
	// FlagKinematic freezes the body: it ignores forces and velocity.
	FlagKinematic
)

// Has reports whether every flag in f is set.
func (b BodyFlags) Has(f BodyFlags) bool {
	return b&f == f
}

// Body is the slice of a physics body the movement pipeline reads and writes.
// SetFlags must apply all flags in one step; noclip relies on gravity and collision
// never being observed half-switched.
type Body interface {
	Velocity() math.Vec3
	SetVelocity(v math.Vec3)
	Position() math.Vec3
	SetPosition(p math.Vec3)
	Bounds() Bounds
	Flags() BodyFlags
	SetFlags(f BodyFlags)
}

// ViewProvider supplies the heading of the controlling view.
type ViewProvider interface {
	ViewYaw() float32   // radians, about the world up axis
	ViewPitch() float32 // radians, positive looks down
}

// ColliderKind tells the step resolver how much it may assume about a surface.
type ColliderKind uint8

const (
	// ColliderOther is any shape the step resolver has no rule for.
	ColliderOther ColliderKind = iota
	// ColliderBox is an axis-aligned box; its top face is known exactly.
	ColliderBox
	// ColliderMesh is arbitrary triangle geometry.
	ColliderMesh
)

// String returns the kind name.
func (k ColliderKind) String() string {
	switch k {
	case ColliderBox:
		return "box"
	case ColliderMesh:
		return "mesh"
	default:
		return "other"
	}
}

// ColliderInfo describes the surface on the other side of a contact.
type ColliderInfo struct {
	Name   string
	Kind   ColliderKind
	Bounds Bounds
}

// ContactPoint is one point of a collision.
type ContactPoint struct {
	Position math.Vec3
	Normal   math.Vec3
	Other    ColliderInfo
}

// StepEvent is a collision reported by the backend when the body starts touching
// another collider.
type StepEvent struct {
	Contacts []ContactPoint
}

// ContactSink receives collision-enter events from the backend.
type ContactSink interface {
	OnCollisionEnter(ev StepEvent)
}

// StrafeInput is one tick of player intent.
type StrafeInput struct {
	Move      math.Vec2 // X strafes right, Y moves forward; each in [-1, 1]
	ViewYaw   float32
	ViewPitch float32
}
