package service

import (
	"errors"
	"fmt"
	"math/rand"

	dmn "github.com/beka-birhanu/drivom-api/domain"
	"github.com/beka-birhanu/drivom-api/game/layout"
	"github.com/beka-birhanu/drivom-api/game/maze"
	"github.com/beka-birhanu/drivom-api/game/station"
	"github.com/beka-birhanu/drivom-api/service/i"
)

const (
	defaultLevelWidth    = 21
	defaultLevelHeight   = 21
	defaultLevelStations = 12
)

// LevelService builds reproducible levels: the same seed and dimensions
// always yield the same maze, walls, and station placements.
type LevelService struct {
	logger i.Logger
}

// NewLevelService creates a LevelService.
func NewLevelService(logger i.Logger) (i.LevelProvider, error) {
	if logger == nil {
		return nil, errors.New("nil logger")
	}
	return &LevelService{logger: logger}, nil
}

// Build generates the level for a seed. Zero dimensions or station count
// select the defaults.
func (s *LevelService) Build(seed int64, width, height, stationCount int) (*dmn.Level, error) {
	if width <= 0 {
		width = defaultLevelWidth
	}
	if height <= 0 {
		height = defaultLevelHeight
	}
	if stationCount <= 0 {
		stationCount = defaultLevelStations
	}

	rng := rand.New(rand.NewSource(seed))
	grid, err := maze.Generate(width, height, rng)
	if err != nil {
		return nil, err
	}

	stations := station.Place(grid, stationCount, rng, nil)
	if stations.Partial() {
		s.logger.Warning(fmt.Sprintf(
			"Level seed=%d placed %d of %d stations", seed, len(stations.Stations), stations.Requested))
	}

	return &dmn.Level{
		Seed:         seed,
		Grid:         grid,
		Walls:        layout.BuildWalls(grid),
		Stations:     stations,
		StationCount: stationCount,
	}, nil
}
