package sim

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/drivom-api/game/vehicle"
)

var (
	ErrNilRenderer    = errors.New("nil renderer")
	ErrNilInputSource = errors.New("nil input source")
	ErrNilController  = errors.New("nil vehicle controller")
	ErrNilLevel       = errors.New("nil level")
)

// Loop drives one level: every tick it samples input, maps it to impulses,
// advances the physics collaborator, and forwards the vehicle transform to
// the rendering collaborator. The tick order is fixed; reordering any step
// would desynchronize control from motion by one frame.
type Loop struct {
	engine     Engine
	renderer   Renderer
	input      InputSource
	controller *vehicle.Controller
	level      *Level
}

// NewLoop wires a loop for the given level and submits the static scene
// (walls, station markers) to the renderer once.
func NewLoop(engine Engine, renderer Renderer, input InputSource, controller *vehicle.Controller, level *Level) (*Loop, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if renderer == nil {
		return nil, ErrNilRenderer
	}
	if input == nil {
		return nil, ErrNilInputSource
	}
	if controller == nil {
		return nil, ErrNilController
	}
	if level == nil {
		return nil, ErrNilLevel
	}

	renderer.SetWalls(level.Layout.Instances)
	renderer.SetStations(level.Stations.Stations)

	return &Loop{
		engine:     engine,
		renderer:   renderer,
		input:      input,
		controller: controller,
		level:      level,
	}, nil
}

// Tick runs one frame: (1) snapshot input, (2) read the vehicle
// orientation, (3) compute and apply impulses, (4) step physics,
// (5) read back the transform and hand it to the renderer.
func (l *Loop) Tick() {
	input := l.input.Snapshot()
	orientation := l.engine.Rotation(l.level.Vehicle)

	forces := l.controller.ComputeForces(orientation, input)
	// Zero impulses are not submitted so an idle body can stay asleep.
	if !forces.Impulse.IsZero() {
		l.engine.ApplyImpulse(l.level.Vehicle, forces.Impulse, true)
	}
	if !forces.TorqueImpulse.IsZero() {
		l.engine.ApplyTorqueImpulse(l.level.Vehicle, forces.TorqueImpulse, true)
	}

	l.engine.Step()

	l.renderer.UpdateVehicle(l.engine.Translation(l.level.Vehicle), l.engine.Rotation(l.level.Vehicle))
}

// Run ticks the loop at the given rate until ctx is canceled, i.e. until
// the host stops requesting frames.
func (l *Loop) Run(ctx context.Context, rate time.Duration) {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Level returns the level the loop is driving.
func (l *Loop) Level() *Level {
	return l.level
}
