/*
Package maze provides tools for generating and inspecting rectangular mazes.

Mazes are carved with an iterative recursive-backtracker walk over a grid in
which even-indexed cells are rooms and the cells between them are walls.
The carved Path cells always form a perfect maze: a spanning tree rooted at
the spawn cell, with exactly one route between any two rooms.

Utility methods enable cell lookup, wall counting, and ASCII visualization
of the grid.
*/
package maze

import (
	"errors"
	"math/rand"
	"strings"
)

const (
	maxMazeDimension = 99
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")

	// carveDirections are the four stride-2 moves between rooms.
	carveDirections = []CellPosition{
		{X: 0, Y: -2},
		{X: 0, Y: 2},
		{X: 2, Y: 0},
		{X: -2, Y: 0},
	}
)

// CellState marks a grid cell as solid or open.
type CellState uint8

const (
	Wall CellState = iota
	Path
)

// CellPosition identifies a cell by its column (X) and row (Y).
type CellPosition struct {
	X int
	Y int
}

// Grid is a rectangular maze of Wall and Path cells. The spawn cell (0,0)
// is always Path. A Grid is immutable once generated.
type Grid struct {
	width  int
	height int
	cells  []CellState
}

// Generate carves a new maze of the given dimensions using the provided
// random source. Randomness is injected so callers can reproduce a maze
// from a seed.
//
// Dimensions of 1 are valid and yield a single open spawn cell.
func Generate(width, height int, rng *rand.Rand) (*Grid, error) {
	if min(width, height) < 1 || max(width, height) > maxMazeDimension {
		return nil, ErrInvalidDimensions
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]CellState, width*height),
	}

	spawn := g.Spawn()
	g.setState(spawn, Path)

	visited := map[CellPosition]struct{}{spawn: {}}
	stack := []CellPosition{spawn}

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		candidates := g.unvisitedRooms(current, visited)
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1] // backtrack
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		between := CellPosition{X: (current.X + next.X) / 2, Y: (current.Y + next.Y) / 2}
		g.setState(between, Path)
		g.setState(next, Path)

		visited[next] = struct{}{}
		stack = append(stack, next)
	}

	return g, nil
}

// unvisitedRooms returns the in-bounds rooms two cells away from pos that
// the carving walk has not visited yet.
func (g *Grid) unvisitedRooms(pos CellPosition, visited map[CellPosition]struct{}) []CellPosition {
	var result []CellPosition
	for _, delta := range carveDirections {
		room := CellPosition{X: pos.X + delta.X, Y: pos.Y + delta.Y}
		if !g.InBounds(room) {
			continue
		}
		if _, seen := visited[room]; seen {
			continue
		}
		result = append(result, room)
	}
	return result
}

// Width returns the number of columns in the grid.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid.
func (g *Grid) Height() int {
	return g.height
}

// Spawn returns the fixed spawn cell of the maze.
func (g *Grid) Spawn() CellPosition {
	return CellPosition{X: 0, Y: 0}
}

// InBounds reports whether pos lies inside the grid.
func (g *Grid) InBounds(pos CellPosition) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

// At returns the state of the cell at pos. Out-of-bounds cells read as Wall
// so callers can probe neighbors without bounds checks.
func (g *Grid) At(pos CellPosition) CellState {
	if !g.InBounds(pos) {
		return Wall
	}
	return g.cells[pos.Y*g.width+pos.X]
}

func (g *Grid) setState(pos CellPosition, s CellState) {
	g.cells[pos.Y*g.width+pos.X] = s
}

// WallCount returns the number of Wall cells in the grid.
func (g *Grid) WallCount() int {
	count := 0
	for _, c := range g.cells {
		if c == Wall {
			count++
		}
	}
	return count
}

// PathCells returns every Path cell in row-major order.
func (g *Grid) PathCells() []CellPosition {
	var cells []CellPosition
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			pos := CellPosition{X: x, Y: y}
			if g.At(pos) == Path {
				cells = append(cells, pos)
			}
		}
	}
	return cells
}

// String provides a textual representation of the maze, one rune per cell.
func (g *Grid) String() string {
	var output strings.Builder

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			switch {
			case x == 0 && y == 0:
				output.WriteString("S")
			case g.At(CellPosition{X: x, Y: y}) == Wall:
				output.WriteString("#")
			default:
				output.WriteString(".")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
