package math

import "github.com/go-gl/mathgl/mgl32"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	return quatFromMgl(mgl32.QuatRotate(angle, axis.ToMgl()))
}

// QuatFromYaw returns a rotation about the world up axis.
// Yaw is in radians; a yaw of +Pi/2 turns +Z into +X.
func QuatFromYaw(yaw float32) Quat {
	return QuatFromAxisAngle(Up, yaw)
}

// QuatFromYawPitch returns a view rotation: pitch about X applied first, then yaw
// about Y. Positive pitch looks down.
func QuatFromYawPitch(yaw, pitch float32) Quat {
	return QuatFromYaw(yaw).Mul(QuatFromAxisAngle(Vec3{X: 1}, pitch))
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	m := q.toMgl()
	if m.Len() < 0.0001 {
		return QuatIdentity()
	}
	return quatFromMgl(m.Normalize())
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return Vec3FromMgl(q.toMgl().Rotate(v.ToMgl()))
}

func (q Quat) toMgl() mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

func quatFromMgl(m mgl32.Quat) Quat {
	return Quat{X: m.V[0], Y: m.V[1], Z: m.V[2], W: m.W}
}
