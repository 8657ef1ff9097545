package pose

import (
	"fmt"
	"math"
)

// Quat is a rotation quaternion W + Xi + Yj + Zk.
//
// Composition follows the usual convention: q.Mul(r) applies r first, then q.
type Quat struct {
	W, X, Y, Z float64
}

// IdentityQuat returns the quaternion representing no rotation.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// AngleAxis returns the rotation of angle radians about axis.
// The axis does not need to be normalized.
func AngleAxis(angle float64, axis Vec3) Quat {
	a := axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return Quat{W: c, X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// Mul returns the Hamilton product q * r.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conjugate returns W - Xi - Yj - Zk.
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Inverse returns the multiplicative inverse of q.
// Returns the zero quaternion if q has zero length.
func (q Quat) Inverse() Quat {
	n := q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
	if n == 0 {
		return Quat{}
	}
	c := q.Conjugate()
	return Quat{W: c.W / n, X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

// Length returns the norm of q.
func (q Quat) Length() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Rotate applies the rotation q to v. q must be a unit quaternion.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// ReflectX returns the rotation mirrored across the lateral (YZ) plane, so
// that q.ReflectX().Rotate(v.ReflectX()) == q.Rotate(v).ReflectX().
func (q Quat) ReflectX() Quat {
	return Quat{W: q.W, X: q.X, Y: -q.Y, Z: -q.Z}
}

// Neg returns -q, which represents the same rotation as q.
func (q Quat) Neg() Quat {
	return Quat{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Approx reports whether q and r are component-wise equal within epsilon.
func (q Quat) Approx(r Quat, epsilon float64) bool {
	return math.Abs(q.W-r.W) < epsilon &&
		math.Abs(q.X-r.X) < epsilon &&
		math.Abs(q.Y-r.Y) < epsilon &&
		math.Abs(q.Z-r.Z) < epsilon
}

// SameRotation reports whether q and r describe the same rotation,
// accounting for the q / -q double cover.
func (q Quat) SameRotation(r Quat, epsilon float64) bool {
	return q.Approx(r, epsilon) || q.Approx(r.Neg(), epsilon)
}

// String returns a compact representation, e.g. "[w=1 x=0 y=0 z=0]".
func (q Quat) String() string {
	return fmt.Sprintf("[w=%.4g x=%.4g y=%.4g z=%.4g]", q.W, q.X, q.Y, q.Z)
}
