package maze

import (
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/sonar-maze/vmath"
)

// Cell is the logical topology value of one grid cell
type Cell uint8

const (
	Passage Cell = iota
	Wall
	Exit
)

func (c Cell) String() string {
	switch c {
	case Passage:
		return "passage"
	case Wall:
		return "wall"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

type Point struct {
	X, Y int
}

// Manhattan returns |dx| + |dy|
func (p Point) Manhattan(o Point) int {
	return vmath.AbsInt(p.X-o.X) + vmath.AbsInt(p.Y-o.Y)
}

// Chebyshev returns max(|dx|, |dy|)
func (p Point) Chebyshev(o Point) int {
	return max(vmath.AbsInt(p.X-o.X), vmath.AbsInt(p.Y-o.Y))
}

var cardinals = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Grid is the dual-layer maze produced once per session and read-only afterwards
// Cells is the topology, ThinWalls the collision/visibility mask, Danger the hidden lethal walls
type Grid struct {
	Cols, Rows int
	CellSize   float64

	Cells     [][]Cell
	ThinWalls [][]bool
	Danger    mapset.Set[Point]

	Start Point
	Exit  Point

	// BorderWalls is the count of wall cells adjacent to a passage
	BorderWalls int
	// DangerCandidates is the count of border walls eligible for danger selection
	DangerCandidates int
}

func newGrid(cols, rows int, cellSize float64) *Grid {
	g := &Grid{
		Cols:      cols,
		Rows:      rows,
		CellSize:  cellSize,
		Cells:     make([][]Cell, rows),
		ThinWalls: make([][]bool, rows),
		Danger:    mapset.New[Point](),
	}
	for y := range g.Cells {
		g.Cells[y] = make([]Cell, cols)
		g.ThinWalls[y] = make([]bool, cols)
		for x := range g.Cells[y] {
			g.Cells[y][x] = Wall
		}
	}
	return g
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Cols && y >= 0 && y < g.Rows
}

// At returns the cell value, Wall for out-of-bounds
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.Cells[y][x]
}

// IsThinWall reports the collision mask, false out of bounds
func (g *Grid) IsThinWall(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.ThinWalls[y][x]
}

func (g *Grid) IsDanger(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.Danger.Has(Point{x, y})
}

func (g *Grid) IsExit(x, y int) bool {
	return g.InBounds(x, y) && g.Cells[y][x] == Exit
}

// IsWall reports a logical wall inside the grid
func (g *Grid) IsWall(x, y int) bool {
	return g.InBounds(x, y) && g.Cells[y][x] == Wall
}

// Walkable reports whether a path may pass through the cell
func (g *Grid) Walkable(x, y int) bool {
	return g.InBounds(x, y) && g.Cells[y][x] != Wall
}

// IsBorderWall reports a wall cell with at least one passage among its 4 neighbors
func (g *Grid) IsBorderWall(x, y int) bool {
	if g.At(x, y) != Wall || !g.InBounds(x, y) {
		return false
	}
	for _, d := range cardinals {
		nx, ny := x+d.X, y+d.Y
		if g.InBounds(nx, ny) && g.Cells[ny][nx] == Passage {
			return true
		}
	}
	return false
}

// CellAt maps a pixel position to its cell, may be out of bounds
func (g *Grid) CellAt(pos vmath.Vec2) Point {
	return Point{
		X: int(math.Floor(pos.X / g.CellSize)),
		Y: int(math.Floor(pos.Y / g.CellSize)),
	}
}

// CellCenter returns the pixel center of a cell
func (g *Grid) CellCenter(p Point) vmath.Vec2 {
	return vmath.Vec2{
		X: (float64(p.X) + 0.5) * g.CellSize,
		Y: (float64(p.Y) + 0.5) * g.CellSize,
	}
}

// CellBounds returns the pixel rectangle of a cell as min and max corners
func (g *Grid) CellBounds(p Point) (vmath.Vec2, vmath.Vec2) {
	lo := vmath.Vec2{X: float64(p.X) * g.CellSize, Y: float64(p.Y) * g.CellSize}
	return lo, vmath.Vec2{X: lo.X + g.CellSize, Y: lo.Y + g.CellSize}
}

// Size returns the playfield dimensions in pixels
func (g *Grid) Size() (float64, float64) {
	return float64(g.Cols) * g.CellSize, float64(g.Rows) * g.CellSize
}

// DangerZones returns the danger set as a slice in row-major order
func (g *Grid) DangerZones() []Point {
	zones := make([]Point, 0, g.Danger.Size())
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if g.Danger.Has(Point{x, y}) {
				zones = append(zones, Point{x, y})
			}
		}
	}
	return zones
}
