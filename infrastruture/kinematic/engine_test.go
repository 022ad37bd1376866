package kinematic

import (
	"math"
	"testing"

	"github.com/beka-birhanu/drivom-api/game/geo"
	"github.com/beka-birhanu/drivom-api/game/layout"
	"github.com/beka-birhanu/drivom-api/game/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBody(t *testing.T, e *Engine, pos geo.Vector3) sim.BodyID {
	t.Helper()
	id, err := e.CreateRigidBody(sim.BodyDescriptor{
		Position:       pos,
		Rotation:       geo.IdentityQuaternion(),
		Mass:           1,
		Radius:         0.35,
		LinearDamping:  0,
		AngularDamping: 0,
	})
	require.NoError(t, err)
	return id
}

func TestCreateRigidBody(t *testing.T) {
	e := New()

	t.Run("rejects invalid descriptors", func(t *testing.T) {
		_, err := e.CreateRigidBody(sim.BodyDescriptor{Mass: 0, Radius: 1})
		assert.ErrorIs(t, err, ErrNonPositiveBodyMass)

		_, err = e.CreateRigidBody(sim.BodyDescriptor{Mass: 1, Radius: 0})
		assert.ErrorIs(t, err, ErrNonPositiveBodyRadius)
	})

	t.Run("handles are distinct and nonzero", func(t *testing.T) {
		a := newBody(t, e, geo.Vector3{})
		b := newBody(t, e, geo.Vector3{})
		assert.NotEqual(t, sim.WorldBody, a)
		assert.NotEqual(t, a, b)
	})
}

func TestCreateCollider(t *testing.T) {
	e := New()
	id := newBody(t, e, geo.Vector3{})

	err := e.CreateCollider(layout.ColliderDescriptor{}, id)
	assert.ErrorIs(t, err, ErrDynamicColliderAttach)

	err = e.CreateCollider(layout.ColliderDescriptor{}, sim.WorldBody)
	assert.NoError(t, err)
}

func TestStepIntegratesImpulses(t *testing.T) {
	t.Run("linear impulse moves the body along its direction", func(t *testing.T) {
		e := New()
		id := newBody(t, e, geo.Vector3{})

		e.ApplyImpulse(id, geo.Vector3{Z: -6}, true)
		e.Step()

		pos := e.Translation(id)
		assert.InDelta(t, -6*defaultTimestep, pos.Z, 1e-9)
		assert.InDelta(t, 0, pos.X, 1e-9)
	})

	t.Run("torque impulse yaws the body", func(t *testing.T) {
		e := New()
		id := newBody(t, e, geo.Vector3{})

		e.ApplyTorqueImpulse(id, geo.Vector3{Y: 1}, true)
		for i := 0; i < 60; i++ {
			e.Step()
		}

		// One unit of angular velocity for one second of steps.
		rot := e.Rotation(id)
		assert.InDelta(t, math.Sin(0.5), rot.Y, 1e-6)
	})

	t.Run("damping decays velocity", func(t *testing.T) {
		e := New()
		id, err := e.CreateRigidBody(sim.BodyDescriptor{
			Position: geo.Vector3{},
			Mass:     1,
			Radius:   0.35,
			// Strong damping stops the body almost immediately.
			LinearDamping: 60,
		})
		require.NoError(t, err)

		e.ApplyImpulse(id, geo.Vector3{X: 10}, true)
		e.Step()
		stepOne := e.Translation(id).X
		for i := 0; i < 10; i++ {
			e.Step()
		}
		assert.InDelta(t, stepOne, e.Translation(id).X, 1e-9)
	})
}

func TestStepResolvesWallOverlap(t *testing.T) {
	e := New()
	require.NoError(t, e.CreateCollider(layout.ColliderDescriptor{
		Position:    geo.Vector3{X: 0, Y: 1, Z: -1},
		HalfExtents: geo.Vector3{X: 0.5, Y: 1, Z: 0.5},
	}, sim.WorldBody))

	id := newBody(t, e, geo.Vector3{Z: 0.2})

	// Drive straight into the wall for a while.
	for i := 0; i < 120; i++ {
		e.ApplyImpulse(id, geo.Vector3{Z: -2}, true)
		e.Step()
	}

	pos := e.Translation(id)
	// The wall face nearest the body is at z = -0.5; the body circle may
	// touch but not penetrate it.
	assert.GreaterOrEqual(t, pos.Z, -0.5+0.35-1e-9)
}

func TestWorldBodyReadsAsOrigin(t *testing.T) {
	e := New()
	assert.True(t, e.Translation(sim.WorldBody).IsZero())
	assert.Equal(t, geo.IdentityQuaternion(), e.Rotation(sim.WorldBody))
}
