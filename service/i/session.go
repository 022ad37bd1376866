package i

import (
	"context"

	dmn "github.com/beka-birhanu/drivom-api/domain"
	"github.com/beka-birhanu/drivom-api/game/vehicle"
	"github.com/google/uuid"
)

// PlaySession is a live authoritative simulation for one player. Input is
// written asynchronously by the transport; frames stream out once per tick.
type PlaySession interface {
	ID() uuid.UUID
	Level() *dmn.Level

	// SetInput replaces the input snapshot sampled on the next tick.
	SetInput(state vehicle.InputState)

	// Frames delivers one Frame per simulation tick. The channel closes
	// when the session ends.
	Frames() <-chan dmn.Frame

	// Stop ends the session early. Safe to call more than once.
	Stop()
}

// SessionManager creates and tracks play sessions.
type SessionManager interface {
	NewSession(ctx context.Context, playerID uuid.UUID, seed int64) (PlaySession, error)
}
