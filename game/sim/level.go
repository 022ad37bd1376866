package sim

import (
	"errors"
	"math/rand"

	"github.com/beka-birhanu/drivom-api/game/geo"
	"github.com/beka-birhanu/drivom-api/game/layout"
	"github.com/beka-birhanu/drivom-api/game/maze"
	"github.com/beka-birhanu/drivom-api/game/station"
)

const (
	defaultMazeWidth    = 21
	defaultMazeHeight   = 21
	defaultStationCount = 12

	vehicleSpawnHeight    = 0.5
	defaultVehicleMass    = 1.0
	defaultVehicleRadius  = 0.35
	defaultLinearDamping  = 2.0
	defaultAngularDamping = 4.0
)

var ErrNilEngine = errors.New("nil physics engine")

// LevelOptions tunes level construction. Zero values fall back to defaults.
type LevelOptions struct {
	MazeWidth    int
	MazeHeight   int
	StationCount int
	Placement    *station.Options
	VehicleMass  float64
}

// Level is the owned per-level context: maze grid, wall layout, station
// placements, and the vehicle body handle. It is built once and read-only
// thereafter; its lifecycle ends at level teardown.
type Level struct {
	Grid     *maze.Grid
	Layout   layout.Layout
	Stations station.Result
	Vehicle  BodyID
}

// BuildLevel generates a maze, submits its wall colliders and the vehicle
// body to the physics engine, and places the stations. The engine must
// already be initialized; holding an Engine value is the proof.
func BuildLevel(engine Engine, opts *LevelOptions, rng *rand.Rand) (*Level, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if opts == nil {
		opts = &LevelOptions{}
	}

	width := opts.MazeWidth
	if width <= 0 {
		width = defaultMazeWidth
	}
	height := opts.MazeHeight
	if height <= 0 {
		height = defaultMazeHeight
	}
	stationCount := opts.StationCount
	if stationCount <= 0 {
		stationCount = defaultStationCount
	}
	mass := opts.VehicleMass
	if mass <= 0 {
		mass = defaultVehicleMass
	}

	grid, err := maze.Generate(width, height, rng)
	if err != nil {
		return nil, err
	}

	walls := layout.BuildWalls(grid)
	stations := station.Place(grid, stationCount, rng, opts.Placement)
	return NewLevel(engine, grid, walls, stations, mass)
}

// NewLevel submits an already generated maze to the physics engine: one
// static collider per wall and the vehicle body at the spawn cell.
func NewLevel(engine Engine, grid *maze.Grid, walls layout.Layout, stations station.Result, vehicleMass float64) (*Level, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if vehicleMass <= 0 {
		vehicleMass = defaultVehicleMass
	}

	for _, collider := range walls.Colliders {
		if err := engine.CreateCollider(collider, WorldBody); err != nil {
			return nil, err
		}
	}

	vehicleBody, err := engine.CreateRigidBody(BodyDescriptor{
		Position:       layout.CellWorldPosition(grid, grid.Spawn(), vehicleSpawnHeight),
		Rotation:       geo.IdentityQuaternion(),
		Mass:           vehicleMass,
		Radius:         defaultVehicleRadius,
		LinearDamping:  defaultLinearDamping,
		AngularDamping: defaultAngularDamping,
	})
	if err != nil {
		return nil, err
	}

	return &Level{
		Grid:     grid,
		Layout:   walls,
		Stations: stations,
		Vehicle:  vehicleBody,
	}, nil
}
