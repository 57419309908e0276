package physics

import (
	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/vmath"
)

// corners are the offsets of the body's bounding square, in radius units
var corners = [4]vmath.Vec2{{X: -1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1}}

// Collides reports whether any corner of the square of half-size radius centered at pos lands on a thin wall
// Corners outside the grid never collide
func Collides(pos vmath.Vec2, radius float64, grid *maze.Grid) bool {
	if grid == nil {
		return false
	}
	for _, c := range corners {
		cell := grid.CellAt(pos.Add(c.Scale(radius)))
		if grid.IsThinWall(cell.X, cell.Y) {
			return true
		}
	}
	return false
}

// TouchedCells returns the distinct in-bounds cells under the body's corners
func TouchedCells(pos vmath.Vec2, radius float64, grid *maze.Grid) []maze.Point {
	if grid == nil {
		return nil
	}
	cells := make([]maze.Point, 0, 4)
	for _, c := range corners {
		cell := grid.CellAt(pos.Add(c.Scale(radius)))
		if !grid.InBounds(cell.X, cell.Y) {
			continue
		}
		dup := false
		for _, seen := range cells {
			if seen == cell {
				dup = true
				break
			}
		}
		if !dup {
			cells = append(cells, cell)
		}
	}
	return cells
}
