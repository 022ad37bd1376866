/*
Package sim ties the maze, layout, station, and vehicle packages to the
external physics, rendering, and input collaborators.

The collaborators are narrow capability interfaces so the whole game core
can run against lightweight fakes in tests and against real engines in
production. An Engine value only exists after its initialization has
completed, so body and collider creation can never precede it.
*/
package sim

import (
	"github.com/beka-birhanu/drivom-api/game/geo"
	"github.com/beka-birhanu/drivom-api/game/layout"
	"github.com/beka-birhanu/drivom-api/game/station"
	"github.com/beka-birhanu/drivom-api/game/vehicle"
)

// BodyID identifies a rigid body owned by the physics collaborator.
type BodyID uint32

// WorldBody is the implicit static body; colliders attached to it never
// move.
const WorldBody BodyID = 0

// BodyDescriptor describes a dynamic rigid body at creation time.
type BodyDescriptor struct {
	Position       geo.Vector3
	Rotation       geo.Quaternion
	Mass           float64
	Radius         float64 // collision footprint radius in the ground plane
	LinearDamping  float64
	AngularDamping float64
}

// Engine is the physics collaborator. The core only produces data for it
// (colliders, impulses) and reads state back (transforms); integration and
// contact resolution belong to the implementation.
type Engine interface {
	CreateRigidBody(d BodyDescriptor) (BodyID, error)
	CreateCollider(d layout.ColliderDescriptor, body BodyID) error
	ApplyImpulse(body BodyID, impulse geo.Vector3, wake bool)
	ApplyTorqueImpulse(body BodyID, impulse geo.Vector3, wake bool)
	Step()
	Translation(body BodyID) geo.Vector3
	Rotation(body BodyID) geo.Quaternion
}

// Renderer is the rendering collaborator: static wall transforms and
// station markers are submitted once, the vehicle transform every frame.
type Renderer interface {
	SetWalls(instances []layout.WallInstance)
	SetStations(stations []station.Station)
	UpdateVehicle(position geo.Vector3, rotation geo.Quaternion)
}

// InputSource is the input collaborator, sampled once per tick.
type InputSource interface {
	Snapshot() vehicle.InputState
}
