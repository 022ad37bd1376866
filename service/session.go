package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/drivom-api/domain"
	"github.com/beka-birhanu/drivom-api/game/geo"
	"github.com/beka-birhanu/drivom-api/game/layout"
	"github.com/beka-birhanu/drivom-api/game/sim"
	"github.com/beka-birhanu/drivom-api/game/station"
	"github.com/beka-birhanu/drivom-api/game/vehicle"
	"github.com/beka-birhanu/drivom-api/service/i"
	"github.com/google/uuid"
)

const (
	defaultTickRate        = 50 * time.Millisecond
	defaultSessionDuration = 5 * time.Minute

	// pickupRadius is the ground-plane distance within which a station
	// counts as collected.
	pickupRadius = 0.6

	// frameBufferSize bounds how many unread frames a slow client can
	// accumulate before ticks start dropping frames.
	frameBufferSize = 8
)

// EngineFactory creates a fully initialized physics engine for one
// session. The factory does not return until initialization completed, so
// no body or collider can be created against an unready engine.
type EngineFactory func() (sim.Engine, error)

// PlaySessionManager owns the live authoritative sessions, one vehicle and
// simulation loop per player.
type PlaySessionManager struct {
	levels      i.LevelProvider
	newEngine   EngineFactory
	controller  *vehicle.Controller
	userRepo    i.UserRepo
	leaderboard i.Leaderboard
	logger      i.Logger

	tickRate time.Duration
	duration time.Duration

	sessions map[uuid.UUID]*PlaySession
	sync.RWMutex
}

// SessionManagerConfig carries the PlaySessionManager dependencies.
type SessionManagerConfig struct {
	Levels      i.LevelProvider
	NewEngine   EngineFactory
	Controller  *vehicle.Controller
	UserRepo    i.UserRepo
	Leaderboard i.Leaderboard
	Logger      i.Logger

	TickRate time.Duration // zero selects the default
	Duration time.Duration // zero selects the default
}

// NewPlaySessionManager creates a PlaySessionManager.
func NewPlaySessionManager(c *SessionManagerConfig) (*PlaySessionManager, error) {
	if c == nil || c.Levels == nil || c.NewEngine == nil || c.Controller == nil || c.Logger == nil {
		return nil, errors.New("missing session manager dependency")
	}

	tickRate := c.TickRate
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	duration := c.Duration
	if duration <= 0 {
		duration = defaultSessionDuration
	}

	return &PlaySessionManager{
		levels:      c.Levels,
		newEngine:   c.NewEngine,
		controller:  c.Controller,
		userRepo:    c.UserRepo,
		leaderboard: c.Leaderboard,
		logger:      c.Logger,
		tickRate:    tickRate,
		duration:    duration,
		sessions:    make(map[uuid.UUID]*PlaySession),
	}, nil
}

// NewSession builds a level for the seed, spins up its simulation loop in
// a goroutine, and returns the running session. The session ends when all
// stations are collected, the duration expires, ctx is canceled, or Stop
// is called.
func (m *PlaySessionManager) NewSession(ctx context.Context, playerID uuid.UUID, seed int64) (i.PlaySession, error) {
	engine, err := m.newEngine()
	if err != nil {
		return nil, err
	}

	level, err := m.levels.Build(seed, 0, 0, 0)
	if err != nil {
		return nil, err
	}

	simLevel, err := sim.NewLevel(engine, level.Grid, level.Walls, level.Stations, 0)
	if err != nil {
		return nil, err
	}

	session := &PlaySession{
		id:        uuid.New(),
		playerID:  playerID,
		level:     level,
		engine:    engine,
		simLevel:  simLevel,
		collected: make([]bool, len(level.Stations.Stations)),
		frames:    make(chan dmn.Frame, frameBufferSize),
		manager:   m,
	}

	loop, err := sim.NewLoop(engine, session, session, m.controller, simLevel)
	if err != nil {
		return nil, err
	}
	session.loop = loop

	runCtx, cancel := context.WithCancel(ctx)
	session.cancel = cancel

	m.Lock()
	m.sessions[session.id] = session
	m.Unlock()

	go session.run(runCtx, m.tickRate, m.duration)
	m.logger.Info(fmt.Sprintf("Started session %s for player %s (seed=%d)", session.id, playerID, seed))
	return session, nil
}

// remove drops an ended session from the registry.
func (m *PlaySessionManager) remove(id uuid.UUID) {
	m.Lock()
	delete(m.sessions, id)
	m.Unlock()
}

// recordResult persists a completed run: the player's best time and the
// leaderboard entry.
func (m *PlaySessionManager) recordResult(playerID uuid.UUID, elapsed time.Duration) {
	elapsedMs := elapsed.Milliseconds()

	if m.userRepo != nil {
		user, err := m.userRepo.ByID(playerID)
		if err != nil {
			m.logger.Error(fmt.Sprintf("Loading player %s after finished run: %s", playerID, err))
		} else if user.RecordTime(elapsedMs) {
			if err := m.userRepo.Save(user); err != nil {
				m.logger.Error(fmt.Sprintf("Saving best time for player %s: %s", playerID, err))
			}
		}
	}

	if m.leaderboard != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := m.leaderboard.SubmitTime(ctx, playerID, elapsedMs); err != nil {
			m.logger.Error(fmt.Sprintf("Submitting leaderboard time for player %s: %s", playerID, err))
		}
	}
}

// PlaySession is one live run. It implements sim.InputSource and
// sim.Renderer: input written by the transport is sampled at each tick,
// and each rendered frame is forwarded to the frames channel.
type PlaySession struct {
	id       uuid.UUID
	playerID uuid.UUID
	level    *dmn.Level
	engine   sim.Engine
	simLevel *sim.Level
	loop     *sim.Loop
	manager  *PlaySessionManager

	inputMu sync.Mutex
	input   vehicle.InputState

	// Mutated only by the loop goroutine.
	collected []bool
	score     int
	startedAt time.Time
	finished  bool

	frames   chan dmn.Frame
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// ID returns the session identifier.
func (s *PlaySession) ID() uuid.UUID {
	return s.id
}

// Level returns the generated level the session runs on.
func (s *PlaySession) Level() *dmn.Level {
	return s.level
}

// SetInput replaces the input snapshot sampled on the next tick.
func (s *PlaySession) SetInput(state vehicle.InputState) {
	s.inputMu.Lock()
	s.input = state
	s.inputMu.Unlock()
}

// Snapshot implements sim.InputSource.
func (s *PlaySession) Snapshot() vehicle.InputState {
	s.inputMu.Lock()
	defer s.inputMu.Unlock()
	return s.input
}

// Frames delivers one Frame per tick; closed when the session ends.
func (s *PlaySession) Frames() <-chan dmn.Frame {
	return s.frames
}

// Stop ends the session early. Safe to call more than once.
func (s *PlaySession) Stop() {
	s.stopOnce.Do(s.cancel)
}

// SetWalls implements sim.Renderer. The browser already holds the level
// payload, so the static scene is not re-streamed.
func (s *PlaySession) SetWalls(instances []layout.WallInstance) {}

// SetStations implements sim.Renderer.
func (s *PlaySession) SetStations(stations []station.Station) {}

// UpdateVehicle implements sim.Renderer: it runs at the end of every tick
// with the freshly stepped transform, scores pickups, and emits the frame.
func (s *PlaySession) UpdateVehicle(position geo.Vector3, rotation geo.Quaternion) {
	s.scorePickups(position)

	frame := dmn.Frame{
		Position:  position,
		Rotation:  rotation,
		Score:     s.score,
		Collected: append([]bool(nil), s.collected...),
		ElapsedMs: time.Since(s.startedAt).Milliseconds(),
		Finished:  s.finished,
	}

	// Drop the frame rather than stall the simulation on a slow reader.
	select {
	case s.frames <- frame:
	default:
	}
}

// scorePickups collects every uncollected station within pickup range.
func (s *PlaySession) scorePickups(position geo.Vector3) {
	for idx, st := range s.level.Stations.Stations {
		if s.collected[idx] {
			continue
		}
		dx := position.X - st.World.X
		dz := position.Z - st.World.Z
		if dx*dx+dz*dz <= pickupRadius*pickupRadius {
			s.collected[idx] = true
			s.score++
		}
	}
	if len(s.collected) > 0 && s.score == len(s.collected) {
		s.finished = true
	}
}

// run drives the simulation loop until the session ends, then records the
// result and releases the session.
func (s *PlaySession) run(ctx context.Context, tickRate, duration time.Duration) {
	defer s.teardown()

	s.startedAt = time.Now()
	deadline := time.NewTimer(duration)
	defer deadline.Stop()

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			s.manager.logger.Info(fmt.Sprintf("Session %s timed out with score %d", s.id, s.score))
			return
		case <-ticker.C:
			s.loop.Tick()
			if s.finished {
				elapsed := time.Since(s.startedAt)
				s.manager.logger.Info(fmt.Sprintf("Session %s finished in %s", s.id, elapsed))
				s.manager.recordResult(s.playerID, elapsed)
				return
			}
		}
	}
}

func (s *PlaySession) teardown() {
	s.stopOnce.Do(s.cancel)
	close(s.frames)
	s.manager.remove(s.id)
}
