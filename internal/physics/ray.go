// Package physics is a small rigid-body backend for a single dynamic box in a world of
// static axis-aligned colliders. It provides the raycasts, flags and collision events
// the movement controller consumes.
package physics

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/strafesim/internal/movement"
	"github.com/Faultbox/strafesim/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from min and max corners, handling swapped corners.
func NewAABB(min, max math.Vec3) AABB {
	box := AABB{Min: min, Max: max}
	// Ensure min < max for each axis
	for i := 0; i < 3; i++ {
		lo, hi := axis(box.Min, i), axis(box.Max, i)
		if lo > hi {
			box.Min = withAxis(box.Min, i, hi)
			box.Max = withAxis(box.Max, i, lo)
		}
	}
	return box
}

// AABBFromBounds creates an AABB from center and half-size.
func AABBFromBounds(b movement.Bounds) AABB {
	return NewAABB(b.Center.Sub(b.Extents), b.Center.Add(b.Extents))
}

// Bounds returns the center/half-size form of the box.
func (a AABB) Bounds() movement.Bounds {
	return movement.Bounds{
		Center:  a.Min.Add(a.Max).Scale(0.5),
		Extents: a.Max.Sub(a.Min).Scale(0.5),
	}
}

// Overlaps reports whether a and b overlap by more than eps on every axis.
func (a AABB) Overlaps(b AABB, eps float32) bool {
	return a.Min.X < b.Max.X-eps && a.Max.X > b.Min.X+eps &&
		a.Min.Y < b.Max.Y-eps && a.Max.Y > b.Min.Y+eps &&
		a.Min.Z < b.Max.Z-eps && a.Max.Z > b.Min.Z+eps
}

// Contains reports whether p lies strictly inside the box. Points on a face are outside.
func (a AABB) Contains(p math.Vec3) bool {
	return p.X > a.Min.X && p.X < a.Max.X &&
		p.Y > a.Min.Y && p.Y < a.Max.Y &&
		p.Z > a.Min.Z && p.Z < a.Max.Z
}

// Expand grows the box by d on every side.
func (a AABB) Expand(d float32) AABB {
	pad := math.Vec3{X: d, Y: d, Z: d}
	return AABB{Min: a.Min.Sub(pad), Max: a.Max.Add(pad)}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t), the normal of the face entered and whether
// intersection occurred. If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, normal math.Vec3, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)
	enterAxis, exitAxis := -1, -1

	for i := 0; i < 3; i++ {
		o, d := axis(r.Origin, i), axis(r.Direction, i)
		lo, hi := axis(box.Min, i), axis(box.Max, i)

		if d == 0 {
			if o < lo || o > hi {
				return 0, math.Vec3{}, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis = i
		}
		if t2 < tmax {
			tmax = t2
			exitAxis = i
		}
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, math.Vec3{}, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, faceNormal(exitAxis, axis(r.Direction, exitAxis)), true
	}
	return tmin, faceNormal(enterAxis, -axis(r.Direction, enterAxis)), true
}

// faceNormal returns the unit normal on axis i pointing along sign.
func faceNormal(i int, sign float32) math.Vec3 {
	if i < 0 {
		return math.Vec3{}
	}
	return withAxis(math.Vec3{}, i, math32.Copysign(1, sign))
}

func axis(v math.Vec3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func withAxis(v math.Vec3, i int, f float32) math.Vec3 {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	default:
		v.Z = f
	}
	return v
}
