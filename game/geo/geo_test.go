package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3(t *testing.T) {
	t.Run("Normalize returns unit length", func(t *testing.T) {
		v := Vector3{X: 3, Y: 4, Z: 12}.Normalize()
		assert.InDelta(t, 1, v.Length(), 1e-12)
	})

	t.Run("Normalize of near-zero vector is zero", func(t *testing.T) {
		v := Vector3{X: 1e-12}.Normalize()
		assert.True(t, v.IsZero())
	})

	t.Run("Distance is symmetric", func(t *testing.T) {
		a := Vector3{X: 1, Z: -2}
		b := Vector3{X: -3, Y: 5}
		assert.InDelta(t, a.Distance(b), b.Distance(a), 1e-12)
	})
}

func TestQuaternionRotate(t *testing.T) {
	forward := Vector3{Z: -1}

	t.Run("identity keeps vector", func(t *testing.T) {
		got := IdentityQuaternion().Rotate(forward)
		assert.InDelta(t, forward.X, got.X, 1e-12)
		assert.InDelta(t, forward.Y, got.Y, 1e-12)
		assert.InDelta(t, forward.Z, got.Z, 1e-12)
	})

	t.Run("quarter yaw turns forward to the left", func(t *testing.T) {
		got := YawQuaternion(math.Pi / 2).Rotate(forward)
		assert.InDelta(t, -1, got.X, 1e-9)
		assert.InDelta(t, 0, got.Y, 1e-9)
		assert.InDelta(t, 0, got.Z, 1e-9)
	})

	t.Run("half yaw reverses forward", func(t *testing.T) {
		got := YawQuaternion(math.Pi).Rotate(forward)
		assert.InDelta(t, 0, got.X, 1e-9)
		assert.InDelta(t, 1, got.Z, 1e-9)
	})

	t.Run("rotation preserves length", func(t *testing.T) {
		v := Vector3{X: 2, Y: -1, Z: 3}
		got := YawQuaternion(1.2345).Rotate(v)
		assert.InDelta(t, v.Length(), got.Length(), 1e-9)
	})
}

func TestQuaternionRotateSandwich(t *testing.T) {
	forward := Vector3{Z: -1}

	t.Run("matches Rotate for unit quaternions", func(t *testing.T) {
		for _, angle := range []float64{0, 0.4, math.Pi / 2, 2.8} {
			q := YawQuaternion(angle)
			fast := q.Rotate(forward)
			full := q.RotateSandwich(forward)
			assert.InDelta(t, fast.X, full.X, 1e-9)
			assert.InDelta(t, fast.Y, full.Y, 1e-9)
			assert.InDelta(t, fast.Z, full.Z, 1e-9)
		}
	})

	t.Run("zero quaternion collapses the vector", func(t *testing.T) {
		assert.True(t, Quaternion{}.RotateSandwich(forward).IsZero())
	})
}

func TestQuaternionMul(t *testing.T) {
	// Two quarter turns compose into a half turn.
	q := YawQuaternion(math.Pi / 2).Mul(YawQuaternion(math.Pi / 2))
	want := YawQuaternion(math.Pi)
	assert.InDelta(t, want.Y, q.Y, 1e-9)
	assert.InDelta(t, want.W, q.W, 1e-9)
}

func TestQuaternionNormalize(t *testing.T) {
	t.Run("near-zero normalizes to identity", func(t *testing.T) {
		assert.Equal(t, IdentityQuaternion(), Quaternion{X: 1e-12}.Normalize())
	})

	t.Run("scaled quaternion recovers unit length", func(t *testing.T) {
		q := YawQuaternion(0.9)
		scaled := Quaternion{X: q.X * 3, Y: q.Y * 3, Z: q.Z * 3, W: q.W * 3}.Normalize()
		assert.InDelta(t, q.Y, scaled.Y, 1e-12)
		assert.InDelta(t, q.W, scaled.W, 1e-12)
	})
}
