package i

import (
	"context"

	"github.com/google/uuid"
)

// LeaderboardEntry is one ranked record: a player and their best completion
// time in milliseconds.
type LeaderboardEntry struct {
	PlayerID uuid.UUID
	TimeMs   int64
}

// Leaderboard ranks players by best level completion time.
type Leaderboard interface {
	// SubmitTime records a completion time, keeping the player's best.
	SubmitTime(ctx context.Context, playerID uuid.UUID, timeMs int64) error

	// Top returns up to n entries ordered best first.
	Top(ctx context.Context, n int64) ([]LeaderboardEntry, error)
}
