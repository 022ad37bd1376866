package i

import (
	dmn "github.com/beka-birhanu/drivom-api/domain"
)

// LevelProvider builds reproducible levels from a seed.
type LevelProvider interface {
	// Build generates the level for a seed. Passing zero dimensions or
	// station count selects the provider defaults.
	Build(seed int64, width, height, stationCount int) (*dmn.Level, error)
}
