package domain

import (
	"github.com/beka-birhanu/drivom-api/game/layout"
	"github.com/beka-birhanu/drivom-api/game/maze"
	"github.com/beka-birhanu/drivom-api/game/station"
)

// Level is a fully generated level: the maze grid, its wall layout, and the
// station placements. A Level is reproducible from its seed and dimensions.
type Level struct {
	Seed         int64
	Grid         *maze.Grid
	Walls        layout.Layout
	Stations     station.Result
	StationCount int
}
