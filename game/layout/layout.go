/*
Package layout converts a maze grid into world-space wall geometry and the
matching static collision descriptors.

One wall instance and one collider are emitted per Wall cell. Positions are
centered so the whole grid is symmetric about the world origin, which keeps
camera and lighting setup on the client independent of maze size.
*/
package layout

import (
	"github.com/beka-birhanu/drivom-api/game/geo"
	"github.com/beka-birhanu/drivom-api/game/maze"
)

const (
	// CellSize is the world-space footprint of one grid cell.
	CellSize = 1.0

	// WallHeight is the world-space height of every wall block.
	WallHeight = 2.0

	// WallFriction is the friction coefficient of every wall collider.
	WallFriction = 0.8
)

// WallInstance is the world-space transform of a single wall block, ready
// for batched rendering.
type WallInstance struct {
	Position geo.Vector3
}

// ColliderDescriptor describes a static collision volume. Ownership passes
// to the physics collaborator once submitted.
type ColliderDescriptor struct {
	Position    geo.Vector3
	HalfExtents geo.Vector3
	Friction    float64
}

// Layout pairs the render instances with their collision descriptors.
// The two slices are always the same length, one entry per Wall cell.
type Layout struct {
	Instances []WallInstance
	Colliders []ColliderDescriptor
}

// BuildWalls emits a wall instance and a matching static collider for every
// Wall cell of the grid. Pure function of the grid.
func BuildWalls(grid *maze.Grid) Layout {
	count := grid.WallCount()
	result := Layout{
		Instances: make([]WallInstance, 0, count),
		Colliders: make([]ColliderDescriptor, 0, count),
	}

	halfExtents := geo.Vector3{X: CellSize / 2, Y: WallHeight / 2, Z: CellSize / 2}

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if grid.At(maze.CellPosition{X: x, Y: y}) != maze.Wall {
				continue
			}

			position := CellWorldPosition(grid, maze.CellPosition{X: x, Y: y}, WallHeight/2)
			result.Instances = append(result.Instances, WallInstance{Position: position})
			result.Colliders = append(result.Colliders, ColliderDescriptor{
				Position:    position,
				HalfExtents: halfExtents,
				Friction:    WallFriction,
			})
		}
	}

	return result
}

// CellWorldPosition maps a grid cell to its world-space center at the given
// height, using the same origin-centering as the wall layout. Station
// placement and vehicle spawning share this mapping so everything lines up.
func CellWorldPosition(grid *maze.Grid, pos maze.CellPosition, height float64) geo.Vector3 {
	return geo.Vector3{
		X: (float64(pos.X) - float64(grid.Width())/2) * CellSize,
		Y: height,
		Z: (float64(pos.Y) - float64(grid.Height())/2) * CellSize,
	}
}
