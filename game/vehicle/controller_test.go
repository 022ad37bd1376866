package vehicle

import (
	"math"
	"testing"

	"github.com/beka-birhanu/drivom-api/game/geo"
	"github.com/stretchr/testify/assert"
)

func TestComputeForces(t *testing.T) {
	c := NewController(&Options{ForwardImpulse: 2, TorqueImpulse: 0.5})

	t.Run("forward at identity pushes along local forward axis", func(t *testing.T) {
		forces := c.ComputeForces(geo.IdentityQuaternion(), InputState{Forward: true})

		assert.InDelta(t, 0, forces.Impulse.X, 1e-12)
		assert.InDelta(t, 0, forces.Impulse.Y, 1e-12)
		assert.InDelta(t, -2, forces.Impulse.Z, 1e-12)
		assert.True(t, forces.TorqueImpulse.IsZero())
	})

	t.Run("backward negates the impulse", func(t *testing.T) {
		forces := c.ComputeForces(geo.IdentityQuaternion(), InputState{Backward: true})
		assert.InDelta(t, 2, forces.Impulse.Z, 1e-12)
	})

	t.Run("forward and backward cancel", func(t *testing.T) {
		forces := c.ComputeForces(geo.IdentityQuaternion(), InputState{Forward: true, Backward: true})
		assert.True(t, forces.Impulse.IsZero())
	})

	t.Run("left and right steer about the vertical axis", func(t *testing.T) {
		left := c.ComputeForces(geo.IdentityQuaternion(), InputState{Left: true})
		assert.Equal(t, geo.Vector3{Y: 0.5}, left.TorqueImpulse)

		right := c.ComputeForces(geo.IdentityQuaternion(), InputState{Right: true})
		assert.Equal(t, geo.Vector3{Y: -0.5}, right.TorqueImpulse)

		both := c.ComputeForces(geo.IdentityQuaternion(), InputState{Left: true, Right: true})
		assert.True(t, both.TorqueImpulse.IsZero())
	})

	t.Run("impulse follows the body yaw", func(t *testing.T) {
		orientation := geo.YawQuaternion(math.Pi / 2)
		forces := c.ComputeForces(orientation, InputState{Forward: true})

		assert.InDelta(t, -2, forces.Impulse.X, 1e-9)
		assert.InDelta(t, 0, forces.Impulse.Z, 1e-9)
	})

	t.Run("degenerate orientation applies no linear impulse", func(t *testing.T) {
		forces := c.ComputeForces(geo.Quaternion{}, InputState{Forward: true, Left: true})
		assert.True(t, forces.Impulse.IsZero())
		assert.Equal(t, geo.Vector3{Y: 0.5}, forces.TorqueImpulse)
	})

	t.Run("identical inputs produce identical outputs", func(t *testing.T) {
		orientation := geo.YawQuaternion(0.7)
		in := InputState{Forward: true, Right: true}
		assert.Equal(t, c.ComputeForces(orientation, in), c.ComputeForces(orientation, in))
	})
}

func TestForwardVector(t *testing.T) {
	t.Run("unit orientation yields unit forward", func(t *testing.T) {
		for _, angle := range []float64{0, 0.3, 1.1, math.Pi, 5.0} {
			forward := ForwardVector(geo.YawQuaternion(angle))
			assert.InDelta(t, 1, forward.Length(), 1e-9)
		}
	})

	t.Run("zero orientation yields zero forward", func(t *testing.T) {
		assert.True(t, ForwardVector(geo.Quaternion{}).IsZero())
	})
}
