package level

import (
	dmn "github.com/beka-birhanu/drivom-api/domain"
	"github.com/beka-birhanu/drivom-api/game/maze"
)

// CreateRequest asks for a level. A zero seed lets the server pick one;
// zero dimensions or station count select the server defaults.
type CreateRequest struct {
	Seed     int64 `json:"seed"`
	Width    int   `json:"width"`
	Height   int   `json:"height"`
	Stations int   `json:"stations"`
}

// WallResponse is one wall segment's world-space center.
type WallResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// StationResponse is one station's grid cell and world-space marker.
type StationResponse struct {
	CellX  int     `json:"cell_x"`
	CellY  int     `json:"cell_y"`
	WorldX float64 `json:"world_x"`
	WorldY float64 `json:"world_y"`
	WorldZ float64 `json:"world_z"`
}

// LevelResponse is the full generated level. Cells holds one string per
// grid row, '#' for walls and '.' for paths; the spawn is always (0, 0).
type LevelResponse struct {
	Seed     int64             `json:"seed"`
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Cells    []string          `json:"cells"`
	Walls    []WallResponse    `json:"walls"`
	Stations []StationResponse `json:"stations"`
	Partial  bool              `json:"partial_stations"`
}

// NewLevelResponse flattens a generated level for transport.
func NewLevelResponse(lvl *dmn.Level) LevelResponse {
	cells := make([]string, 0, lvl.Grid.Height())
	for y := 0; y < lvl.Grid.Height(); y++ {
		row := make([]byte, lvl.Grid.Width())
		for x := 0; x < lvl.Grid.Width(); x++ {
			if lvl.Grid.At(maze.CellPosition{X: x, Y: y}) == maze.Path {
				row[x] = '.'
			} else {
				row[x] = '#'
			}
		}
		cells = append(cells, string(row))
	}

	walls := make([]WallResponse, 0, len(lvl.Walls.Instances))
	for _, w := range lvl.Walls.Instances {
		walls = append(walls, WallResponse{X: w.Position.X, Y: w.Position.Y, Z: w.Position.Z})
	}

	stations := make([]StationResponse, 0, len(lvl.Stations.Stations))
	for _, s := range lvl.Stations.Stations {
		stations = append(stations, StationResponse{
			CellX:  s.Cell.X,
			CellY:  s.Cell.Y,
			WorldX: s.World.X,
			WorldY: s.World.Y,
			WorldZ: s.World.Z,
		})
	}

	return LevelResponse{
		Seed:     lvl.Seed,
		Width:    lvl.Grid.Width(),
		Height:   lvl.Grid.Height(),
		Cells:    cells,
		Walls:    walls,
		Stations: stations,
		Partial:  lvl.Stations.Partial(),
	}
}

// RankResponse is one leaderboard row.
type RankResponse struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Username string `json:"username,omitempty"`
	TimeMs   int64  `json:"time_ms"`
}
