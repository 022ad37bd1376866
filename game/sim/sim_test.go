package sim

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/drivom-api/game/geo"
	"github.com/beka-birhanu/drivom-api/game/layout"
	"github.com/beka-birhanu/drivom-api/game/station"
	"github.com/beka-birhanu/drivom-api/game/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine records the order of every call so tests can assert the fixed
// tick sequence.
type fakeEngine struct {
	calls       []string
	colliders   []layout.ColliderDescriptor
	bodies      int
	rotation    geo.Quaternion
	translation geo.Vector3
	impulses    []geo.Vector3
	torques     []geo.Vector3
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{rotation: geo.IdentityQuaternion()}
}

func (f *fakeEngine) CreateRigidBody(d BodyDescriptor) (BodyID, error) {
	f.calls = append(f.calls, "createRigidBody")
	f.bodies++
	f.translation = d.Position
	return BodyID(f.bodies), nil
}

func (f *fakeEngine) CreateCollider(d layout.ColliderDescriptor, body BodyID) error {
	f.calls = append(f.calls, "createCollider")
	f.colliders = append(f.colliders, d)
	return nil
}

func (f *fakeEngine) ApplyImpulse(body BodyID, impulse geo.Vector3, wake bool) {
	f.calls = append(f.calls, "applyImpulse")
	f.impulses = append(f.impulses, impulse)
}

func (f *fakeEngine) ApplyTorqueImpulse(body BodyID, impulse geo.Vector3, wake bool) {
	f.calls = append(f.calls, "applyTorqueImpulse")
	f.torques = append(f.torques, impulse)
}

func (f *fakeEngine) Step() {
	f.calls = append(f.calls, "step")
}

func (f *fakeEngine) Translation(body BodyID) geo.Vector3 {
	f.calls = append(f.calls, "translation")
	return f.translation
}

func (f *fakeEngine) Rotation(body BodyID) geo.Quaternion {
	f.calls = append(f.calls, "rotation")
	return f.rotation
}

type fakeRenderer struct {
	walls    [][]layout.WallInstance
	stations [][]station.Station
	updates  []geo.Vector3
}

func (f *fakeRenderer) SetWalls(instances []layout.WallInstance) {
	f.walls = append(f.walls, instances)
}

func (f *fakeRenderer) SetStations(stations []station.Station) {
	f.stations = append(f.stations, stations)
}

func (f *fakeRenderer) UpdateVehicle(position geo.Vector3, rotation geo.Quaternion) {
	f.updates = append(f.updates, position)
}

type fakeInput struct {
	state vehicle.InputState
}

func (f *fakeInput) Snapshot() vehicle.InputState {
	return f.state
}

func TestBuildLevel(t *testing.T) {
	t.Run("requires an engine", func(t *testing.T) {
		_, err := BuildLevel(nil, nil, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, ErrNilEngine)
	})

	t.Run("submits one collider per wall and one vehicle body", func(t *testing.T) {
		engine := newFakeEngine()
		level, err := BuildLevel(engine, &LevelOptions{MazeWidth: 11, MazeHeight: 11, StationCount: 4}, rand.New(rand.NewSource(2)))
		require.NoError(t, err)

		assert.Len(t, engine.colliders, level.Grid.WallCount())
		assert.Equal(t, 1, engine.bodies)
		assert.Equal(t, BodyID(1), level.Vehicle)
		assert.Equal(t, 4, level.Stations.Requested)
	})

	t.Run("vehicle spawns at the spawn cell", func(t *testing.T) {
		engine := newFakeEngine()
		level, err := BuildLevel(engine, &LevelOptions{MazeWidth: 9, MazeHeight: 9}, rand.New(rand.NewSource(3)))
		require.NoError(t, err)

		want := layout.CellWorldPosition(level.Grid, level.Grid.Spawn(), vehicleSpawnHeight)
		assert.Equal(t, want, engine.translation)
	})
}

func TestLoop(t *testing.T) {
	buildLoop := func(t *testing.T, input *fakeInput) (*Loop, *fakeEngine, *fakeRenderer) {
		t.Helper()
		engine := newFakeEngine()
		level, err := BuildLevel(engine, &LevelOptions{MazeWidth: 7, MazeHeight: 7, StationCount: 2}, rand.New(rand.NewSource(4)))
		require.NoError(t, err)

		renderer := &fakeRenderer{}
		loop, err := NewLoop(engine, renderer, input, vehicle.NewController(nil), level)
		require.NoError(t, err)
		engine.calls = nil // drop the level-construction calls
		return loop, engine, renderer
	}

	t.Run("submits the static scene exactly once", func(t *testing.T) {
		loop, _, renderer := buildLoop(t, &fakeInput{})
		loop.Tick()
		loop.Tick()

		assert.Len(t, renderer.walls, 1)
		assert.Len(t, renderer.stations, 1)
		assert.Len(t, renderer.updates, 2)
	})

	t.Run("tick order is input, forces, step, read-back", func(t *testing.T) {
		loop, engine, _ := buildLoop(t, &fakeInput{state: vehicle.InputState{Forward: true, Left: true}})
		loop.Tick()

		assert.Equal(t, []string{
			"rotation",
			"applyImpulse",
			"applyTorqueImpulse",
			"step",
			"translation",
			"rotation",
		}, engine.calls)
	})

	t.Run("idle input applies no impulses", func(t *testing.T) {
		loop, engine, _ := buildLoop(t, &fakeInput{})
		loop.Tick()

		assert.Equal(t, []string{"rotation", "step", "translation", "rotation"}, engine.calls)
		assert.Empty(t, engine.impulses)
		assert.Empty(t, engine.torques)
	})

	t.Run("rejects missing collaborators", func(t *testing.T) {
		engine := newFakeEngine()
		level, err := BuildLevel(engine, nil, rand.New(rand.NewSource(5)))
		require.NoError(t, err)

		_, err = NewLoop(nil, &fakeRenderer{}, &fakeInput{}, vehicle.NewController(nil), level)
		assert.ErrorIs(t, err, ErrNilEngine)

		_, err = NewLoop(engine, nil, &fakeInput{}, vehicle.NewController(nil), level)
		assert.ErrorIs(t, err, ErrNilRenderer)

		_, err = NewLoop(engine, &fakeRenderer{}, nil, vehicle.NewController(nil), level)
		assert.ErrorIs(t, err, ErrNilInputSource)

		_, err = NewLoop(engine, &fakeRenderer{}, &fakeInput{}, nil, level)
		assert.ErrorIs(t, err, ErrNilController)

		_, err = NewLoop(engine, &fakeRenderer{}, &fakeInput{}, vehicle.NewController(nil), nil)
		assert.ErrorIs(t, err, ErrNilLevel)
	})
}
