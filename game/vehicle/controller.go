/*
Package vehicle maps keyboard input and body orientation to the impulses
applied to the vehicle each simulation tick.

The controller is a pure function of its inputs: it keeps no state between
ticks, and momentum accumulation is entirely the physics collaborator's job.
*/
package vehicle

import "github.com/beka-birhanu/drivom-api/game/geo"

const (
	defaultForwardImpulse = 1.5
	defaultTorqueImpulse  = 0.4
)

// localForward is the vehicle's forward axis in body space.
var localForward = geo.Vector3{Z: -1}

// InputState is a read-only snapshot of the four drive keys, taken once per
// tick from the input collaborator.
type InputState struct {
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`
	Left     bool `json:"left"`
	Right    bool `json:"right"`
}

// Forces is the controller output for one tick.
type Forces struct {
	Impulse       geo.Vector3
	TorqueImpulse geo.Vector3
}

// Options tunes the impulse magnitudes. Zero values fall back to defaults.
type Options struct {
	ForwardImpulse float64
	TorqueImpulse  float64
}

// Controller computes per-tick impulses from orientation and input.
type Controller struct {
	forwardImpulse float64
	torqueImpulse  float64
}

// NewController creates a Controller with the given options.
func NewController(opts *Options) *Controller {
	if opts == nil {
		opts = &Options{}
	}

	forward := opts.ForwardImpulse
	if forward <= 0 {
		forward = defaultForwardImpulse
	}

	torque := opts.TorqueImpulse
	if torque <= 0 {
		torque = defaultTorqueImpulse
	}

	return &Controller{
		forwardImpulse: forward,
		torqueImpulse:  torque,
	}
}

// ComputeForces maps the current orientation and input snapshot to the
// impulses for one tick. Opposing keys sum to zero rather than being
// special-cased. A denormalized orientation yields a zero forward vector
// and therefore no linear impulse.
func (c *Controller) ComputeForces(orientation geo.Quaternion, input InputState) Forces {
	var forces Forces

	forward := ForwardVector(orientation)
	if input.Forward {
		forces.Impulse = forces.Impulse.Add(forward.Scale(c.forwardImpulse))
	}
	if input.Backward {
		forces.Impulse = forces.Impulse.Add(forward.Scale(-c.forwardImpulse))
	}

	if input.Left {
		forces.TorqueImpulse = forces.TorqueImpulse.Add(geo.Vector3{Y: c.torqueImpulse})
	}
	if input.Right {
		forces.TorqueImpulse = forces.TorqueImpulse.Add(geo.Vector3{Y: -c.torqueImpulse})
	}

	return forces
}

// ForwardVector rotates the local forward axis through orientation and
// normalizes the result. The full sandwich product is used so a
// denormalized orientation shows up as a near-zero vector, which reads as
// the zero vector: the degenerate-tick case.
func ForwardVector(orientation geo.Quaternion) geo.Vector3 {
	return orientation.RotateSandwich(localForward).Normalize()
}
