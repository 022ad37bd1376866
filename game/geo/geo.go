/*
Package geo provides the plain vector and quaternion value types shared by
the maze, layout, station, and vehicle packages.

The types carry no engine-specific state so the game core can be exercised
against lightweight physics and renderer fakes.
*/
package geo

import "math"

// Vector3 is a three-component vector in world space.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns the component-wise sum of v and o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns the component-wise difference of v and o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v scaled by factor.
func (v Vector3) Scale(factor float64) Vector3 {
	return Vector3{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

// Cross returns the cross product of v and o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean magnitude of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length. A near-zero vector normalizes
// to the zero vector instead of producing NaNs.
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length < 1e-9 {
		return Vector3{}
	}
	return v.Scale(1 / length)
}

// Distance returns the Euclidean distance between v and o.
func (v Vector3) Distance(o Vector3) float64 {
	return v.Sub(o).Length()
}

// IsZero reports whether every component of v is exactly zero.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Quaternion is a rotation in world space. The identity rotation is
// {X: 0, Y: 0, Z: 0, W: 1}.
type Quaternion struct {
	X float64
	Y float64
	Z float64
	W float64
}

// IdentityQuaternion returns the no-rotation quaternion.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// YawQuaternion returns a rotation of angle radians about the +Y axis.
func YawQuaternion(angle float64) Quaternion {
	half := angle / 2
	return Quaternion{Y: math.Sin(half), W: math.Cos(half)}
}

// Mul returns the Hamilton product q*o, the rotation o followed by q.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Conjugate returns the quaternion with the vector part negated. For unit
// quaternions this is the inverse rotation.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// RotateSandwich applies the full sandwich product q v q̄ with v treated as
// a pure quaternion. Unlike Rotate it does not assume q is normalized: a
// denormalized q scales the result, and a zero q collapses it to zero.
func (q Quaternion) RotateSandwich(v Vector3) Vector3 {
	p := q.Mul(Quaternion{X: v.X, Y: v.Y, Z: v.Z}).Mul(q.Conjugate())
	return Vector3{X: p.X, Y: p.Y, Z: p.Z}
}

// Rotate applies the rotation q to v using the expanded sandwich product
// for unit quaternions: t = 2(q.xyz × v), v' = v + w·t + (q.xyz × t).
func (q Quaternion) Rotate(v Vector3) Vector3 {
	axis := Vector3{X: q.X, Y: q.Y, Z: q.Z}
	t := axis.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(axis.Cross(t))
}

// Normalize returns q scaled to unit length. A near-zero quaternion
// normalizes to the identity.
func (q Quaternion) Normalize() Quaternion {
	length := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length < 1e-9 {
		return IdentityQuaternion()
	}
	return Quaternion{X: q.X / length, Y: q.Y / length, Z: q.Z / length, W: q.W / length}
}
