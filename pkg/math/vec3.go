package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the world up axis.
var Up = Vec3{X: 0, Y: 1, Z: 0}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSq())
}

// LengthSq returns the squared magnitude.
func (v Vec3) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// XZ returns the XZ components as Vec2.
func (v Vec3) XZ() Vec2 {
	return Vec2{v.X, v.Z}
}

// Horizontal returns v with the vertical component zeroed.
func (v Vec3) Horizontal() Vec3 {
	return Vec3{v.X, 0, v.Z}
}

// WithY returns v with the vertical component replaced.
func (v Vec3) WithY(y float32) Vec3 {
	return Vec3{v.X, y, v.Z}
}

// LerpUnclamped interpolates from v to other by t without restricting t to [0, 1],
// so t outside that range extrapolates along the line through both points.
func (v Vec3) LerpUnclamped(other Vec3, t float32) Vec3 {
	return Vec3{
		v.X + (other.X-v.X)*t,
		v.Y + (other.Y-v.Y)*t,
		v.Z + (other.Z-v.Z)*t,
	}
}

// Lerp interpolates from v to other with t clamped to [0, 1].
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return v.LerpUnclamped(other, mgl32.Clamp(t, 0, 1))
}

// ApproxEqual reports whether every component is within eps of other.
func (v Vec3) ApproxEqual(other Vec3, eps float32) bool {
	return v.ToMgl().ApproxEqualThreshold(other.ToMgl(), eps)
}

// ToMgl converts v to a mathgl vector.
func (v Vec3) ToMgl() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Vec3FromMgl converts a mathgl vector.
func Vec3FromMgl(m mgl32.Vec3) Vec3 {
	return Vec3{m[0], m[1], m[2]}
}
