// Package leaderboard ranks players by best completion time on a Redis
// sorted set.
package leaderboard

import (
	"context"
	"errors"

	"github.com/beka-birhanu/drivom-api/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultKey = "leaderboard:best_time"

// RedisLeaderboard stores each player's best completion time as a sorted
// set member scored in milliseconds, lowest first.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
}

// NewRedisLeaderboard initializes a RedisLeaderboard with the provided
// Redis client. An empty key selects the default.
func NewRedisLeaderboard(client *redis.Client, key string) (i.Leaderboard, error) {
	if client == nil {
		return nil, errors.New("nil redis client")
	}
	if key == "" {
		key = defaultKey
	}

	board := &RedisLeaderboard{
		client: client,
		key:    key,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// SubmitTime records a completion time, keeping the player's best. The
// read-compare-write is guarded by a per-player distributed lock so
// concurrent submissions cannot overwrite a better time.
func (rl *RedisLeaderboard) SubmitTime(ctx context.Context, playerID uuid.UUID, timeMs int64) error {
	if timeMs <= 0 {
		return errors.New("non-positive completion time")
	}

	mutex := rl.locker.NewMutex(rl.key + ":lock:" + playerID.String())
	if err := mutex.Lock(); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	member := playerID.String()
	current, err := rl.client.ZScore(ctx, rl.key, member).Result()
	if err == nil && int64(current) <= timeMs {
		return nil // existing record is already better
	}
	if err != nil && err != redis.Nil {
		return err
	}

	return rl.client.ZAdd(ctx, rl.key, redis.Z{Score: float64(timeMs), Member: member}).Err()
}

// Top returns up to n entries ordered best (lowest time) first.
func (rl *RedisLeaderboard) Top(ctx context.Context, n int64) ([]i.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	members, err := rl.client.ZRangeWithScores(ctx, rl.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	var entries []i.LeaderboardEntry
	for _, m := range members {
		raw, ok := m.Member.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			continue // skip non-UUID members
		}
		entries = append(entries, i.LeaderboardEntry{PlayerID: id, TimeMs: int64(m.Score)})
	}
	return entries, nil
}
