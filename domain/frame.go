package domain

import "github.com/beka-birhanu/drivom-api/game/geo"

// Frame is one simulation tick's state for the rendering host: the vehicle
// transform plus the collection progress.
type Frame struct {
	Position  geo.Vector3    `json:"position"`
	Rotation  geo.Quaternion `json:"rotation"`
	Score     int            `json:"score"`
	Collected []bool         `json:"collected"`
	ElapsedMs int64          `json:"elapsed_ms"`
	Finished  bool           `json:"finished"`
}
