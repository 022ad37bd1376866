/*
Package kinematic is an in-process physics collaborator for authoritative
server sessions.

It integrates impulses into planar motion with damping and resolves vehicle
overlap against the static wall boxes with a simple circle pushout. It is
deliberately not a full rigid-body engine; sessions that need contact
fidelity should swap in one behind the same interface.
*/
package kinematic

import (
	"errors"
	"math"

	"github.com/beka-birhanu/drivom-api/game/geo"
	"github.com/beka-birhanu/drivom-api/game/layout"
	"github.com/beka-birhanu/drivom-api/game/sim"
)

const defaultTimestep = 1.0 / 60

var (
	ErrDynamicColliderAttach = errors.New("colliders can only attach to the static world body")
	ErrNonPositiveBodyMass   = errors.New("body mass must be positive")
	ErrNonPositiveBodyRadius = errors.New("body radius must be positive")
)

type body struct {
	pos    geo.Vector3
	yaw    float64
	vel    geo.Vector3
	angVel float64

	mass    float64
	radius  float64
	linDamp float64
	angDamp float64
}

// Engine implements sim.Engine. A value returned by New is fully
// initialized; the caller never observes a partially constructed engine.
type Engine struct {
	timestep  float64
	bodies    map[sim.BodyID]*body
	colliders []layout.ColliderDescriptor
	nextID    sim.BodyID
}

// New creates a ready-to-use engine with the default fixed timestep.
func New() *Engine {
	return &Engine{
		timestep: defaultTimestep,
		bodies:   make(map[sim.BodyID]*body),
	}
}

// CreateRigidBody registers a dynamic body and returns its handle.
func (e *Engine) CreateRigidBody(d sim.BodyDescriptor) (sim.BodyID, error) {
	if d.Mass <= 0 {
		return 0, ErrNonPositiveBodyMass
	}
	if d.Radius <= 0 {
		return 0, ErrNonPositiveBodyRadius
	}

	e.nextID++
	e.bodies[e.nextID] = &body{
		pos:     d.Position,
		yaw:     yawOf(d.Rotation),
		mass:    d.Mass,
		radius:  d.Radius,
		linDamp: d.LinearDamping,
		angDamp: d.AngularDamping,
	}
	return e.nextID, nil
}

// CreateCollider registers a static collision box. Only the world body is
// supported as an owner.
func (e *Engine) CreateCollider(d layout.ColliderDescriptor, owner sim.BodyID) error {
	if owner != sim.WorldBody {
		return ErrDynamicColliderAttach
	}
	e.colliders = append(e.colliders, d)
	return nil
}

// ApplyImpulse adds an instantaneous change to a body's linear momentum.
func (e *Engine) ApplyImpulse(id sim.BodyID, impulse geo.Vector3, wake bool) {
	b, ok := e.bodies[id]
	if !ok {
		return
	}
	b.vel = b.vel.Add(impulse.Scale(1 / b.mass))
}

// ApplyTorqueImpulse adds an instantaneous change to a body's angular
// momentum about the vertical axis. Other components are ignored since
// bodies are yaw-constrained.
func (e *Engine) ApplyTorqueImpulse(id sim.BodyID, impulse geo.Vector3, wake bool) {
	b, ok := e.bodies[id]
	if !ok {
		return
	}
	b.angVel += impulse.Y / b.mass
}

// Step advances every body by one fixed timestep and resolves wall overlap.
func (e *Engine) Step() {
	dt := e.timestep
	for _, b := range e.bodies {
		b.vel = b.vel.Scale(damping(b.linDamp, dt))
		b.angVel *= damping(b.angDamp, dt)

		b.yaw += b.angVel * dt
		b.pos = b.pos.Add(b.vel.Scale(dt))

		e.pushOut(b)
	}
}

// Translation returns a body's position. Unknown bodies and the world body
// read as the origin.
func (e *Engine) Translation(id sim.BodyID) geo.Vector3 {
	if b, ok := e.bodies[id]; ok {
		return b.pos
	}
	return geo.Vector3{}
}

// Rotation returns a body's orientation. Unknown bodies and the world body
// read as the identity.
func (e *Engine) Rotation(id sim.BodyID) geo.Quaternion {
	if b, ok := e.bodies[id]; ok {
		return geo.YawQuaternion(b.yaw)
	}
	return geo.IdentityQuaternion()
}

// pushOut resolves overlap between a body's ground-plane circle and every
// static box, sliding the body to the box surface and cancelling the
// velocity component into it.
func (e *Engine) pushOut(b *body) {
	for _, c := range e.colliders {
		minX := c.Position.X - c.HalfExtents.X
		maxX := c.Position.X + c.HalfExtents.X
		minZ := c.Position.Z - c.HalfExtents.Z
		maxZ := c.Position.Z + c.HalfExtents.Z

		closestX := math.Max(minX, math.Min(b.pos.X, maxX))
		closestZ := math.Max(minZ, math.Min(b.pos.Z, maxZ))

		dx := b.pos.X - closestX
		dz := b.pos.Z - closestZ
		distSq := dx*dx + dz*dz
		if distSq >= b.radius*b.radius {
			continue
		}

		var normalX, normalZ float64
		if distSq > 0 {
			dist := math.Sqrt(distSq)
			normalX, normalZ = dx/dist, dz/dist
			b.pos.X = closestX + normalX*b.radius
			b.pos.Z = closestZ + normalZ*b.radius
		} else {
			// Center inside the box: exit along the shallowest axis.
			leftPen, rightPen := b.pos.X-minX, maxX-b.pos.X
			nearPen, farPen := b.pos.Z-minZ, maxZ-b.pos.Z
			minPen := math.Min(math.Min(leftPen, rightPen), math.Min(nearPen, farPen))
			switch minPen {
			case leftPen:
				normalX = -1
				b.pos.X = minX - b.radius
			case rightPen:
				normalX = 1
				b.pos.X = maxX + b.radius
			case nearPen:
				normalZ = -1
				b.pos.Z = minZ - b.radius
			default:
				normalZ = 1
				b.pos.Z = maxZ + b.radius
			}
		}

		// Cancel the velocity component pointing into the wall.
		into := b.vel.X*normalX + b.vel.Z*normalZ
		if into < 0 {
			b.vel.X -= into * normalX
			b.vel.Z -= into * normalZ
		}
	}
}

// damping converts a damping coefficient to a per-step velocity factor.
func damping(coefficient, dt float64) float64 {
	factor := 1 - coefficient*dt
	if factor < 0 {
		return 0
	}
	return factor
}

// yawOf extracts the yaw angle of a rotation by rotating the forward axis.
func yawOf(q geo.Quaternion) float64 {
	forward := q.Rotate(geo.Vector3{Z: -1})
	if forward.IsZero() {
		return 0
	}
	return math.Atan2(-forward.X, -forward.Z)
}
