/*
Package station selects waypoint positions on the open cells of a maze.

Placement is rejection sampling under spacing constraints: candidates on
walls, too close to the spawn cell, or too close to an accepted station are
discarded. The attempt budget is bounded, so a maze that cannot fit the
requested number of stations yields a partial result instead of looping.
*/
package station

import (
	"math"
	"math/rand"

	"github.com/beka-birhanu/drivom-api/game/geo"
	"github.com/beka-birhanu/drivom-api/game/layout"
	"github.com/beka-birhanu/drivom-api/game/maze"
)

const (
	defaultSpawnClearance = 3.0
	defaultMinSpacing     = 2.5

	// attemptsPerStation bounds the sampling budget relative to the request.
	attemptsPerStation = 20

	// MarkerHeight is the world-space height of a station marker center.
	MarkerHeight = 1.0
)

// Station is a waypoint record created once at level setup and read
// thereafter.
type Station struct {
	Cell  maze.CellPosition
	World geo.Vector3
}

// Options tunes the placement constraints. Zero values fall back to
// defaults.
type Options struct {
	SpawnClearance float64 // minimum distance from the spawn cell, in cells
	MinSpacing     float64 // minimum distance between stations, in cells
	MaxAttempts    int     // total sampling budget; 0 derives it from count
}

// Result holds the accepted placements. The list may legitimately be
// shorter than requested when the maze cannot satisfy the constraints;
// callers decide whether to proceed or regenerate.
type Result struct {
	Stations  []Station
	Requested int
}

// Partial reports whether fewer stations were placed than requested.
func (r Result) Partial() bool {
	return len(r.Stations) < r.Requested
}

// Place samples up to count station positions on the Path cells of grid.
// Randomness is injected so placements can be reproduced from a seed.
func Place(grid *maze.Grid, count int, rng *rand.Rand, opts *Options) Result {
	if opts == nil {
		opts = &Options{}
	}

	spawnClearance := opts.SpawnClearance
	if spawnClearance <= 0 {
		spawnClearance = defaultSpawnClearance
	}

	minSpacing := opts.MinSpacing
	if minSpacing <= 0 {
		minSpacing = defaultMinSpacing
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = count * attemptsPerStation
	}

	result := Result{Requested: count}
	if count <= 0 {
		return result
	}

	spawn := grid.Spawn()
	for attempts := 0; attempts < maxAttempts && len(result.Stations) < count; attempts++ {
		candidate := maze.CellPosition{X: rng.Intn(grid.Width()), Y: rng.Intn(grid.Height())}

		if grid.At(candidate) != maze.Path {
			continue
		}
		if cellDistance(candidate, spawn) < spawnClearance {
			continue
		}
		if tooClose(result.Stations, candidate, minSpacing) {
			continue
		}

		result.Stations = append(result.Stations, Station{
			Cell:  candidate,
			World: layout.CellWorldPosition(grid, candidate, MarkerHeight),
		})
	}

	return result
}

// tooClose reports whether candidate violates the spacing constraint
// against any accepted station.
func tooClose(accepted []Station, candidate maze.CellPosition, minSpacing float64) bool {
	for _, s := range accepted {
		if cellDistance(s.Cell, candidate) < minSpacing {
			return true
		}
	}
	return false
}

// cellDistance is the Euclidean distance between two cells in cell units.
func cellDistance(a, b maze.CellPosition) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
