package maze

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/sonar-maze/vmath"
)

var (
	ErrInvalidDimensions = errors.New("maze: grid must be at least 3x3")
	ErrInvalidCellSize   = errors.New("maze: cell size must be positive")
	ErrStartZoneTooLarge = errors.New("maze: start zone does not fit inside the outer wall")
	ErrInvalidRatio      = errors.New("maze: danger ratio must be within [0, 1]")
	ErrUnreachableExit   = errors.New("maze: exit unreachable from start")
)

type Config struct {
	Cols, Rows int
	CellSize   float64

	// StartZoneRadius clears a (2r+1)² block around the grid center
	StartZoneRadius int

	// DangerRatio is the fraction of eligible border walls turned into danger zones
	DangerRatio float64

	// MinDangerDistance excludes walls within this Chebyshev distance of the exit
	// Negative disables the exclusion
	MinDangerDistance int
}

// Validate checks the generation preconditions
func (c Config) Validate() error {
	if c.Cols < 3 || c.Rows < 3 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Cols, c.Rows)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidCellSize, c.CellSize)
	}
	block := 2*c.StartZoneRadius + 1
	if c.StartZoneRadius < 0 || block > c.Cols-2 || block > c.Rows-2 {
		return fmt.Errorf("%w: radius %d in %dx%d", ErrStartZoneTooLarge, c.StartZoneRadius, c.Cols, c.Rows)
	}
	if c.DangerRatio < 0 || c.DangerRatio > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidRatio, c.DangerRatio)
	}
	return nil
}

// Generate builds a perfect maze with one border exit and hidden danger zones.
// The same config and an identically seeded rng yield an identical grid.
func Generate(cfg Config, rng vmath.Rand) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Initialize Grid (Filled with Walls)
	g := newGrid(cfg.Cols, cfg.Rows, cfg.CellSize)
	g.Start = Point{cfg.Cols / 2, cfg.Rows / 2}

	// 2. Spawn room
	clearStartZone(g, cfg.StartZoneRadius)

	// 3. Core Generation (Recursive Backtracker)
	recursiveBacktracker(g, g.Start, rng)

	// 4. Exit on the outer frame, connected to the carved interior
	g.Exit = placeExit(g, rng)
	connectExit(g)
	if Solve(g, g.Start, g.Exit) == nil {
		return nil, ErrUnreachableExit
	}

	// 5-6. Overlay layers
	classifyWalls(g, cfg, rng)

	return g, nil
}

// --- Core Algorithms ---

func clearStartZone(g *Grid, radius int) {
	for y := g.Start.Y - radius; y <= g.Start.Y+radius; y++ {
		for x := g.Start.X - radius; x <= g.Start.X+radius; x++ {
			if g.InBounds(x, y) {
				g.Cells[y][x] = Passage
			}
		}
	}
}

// recursiveBacktracker carves a spanning tree over the step-2 lattice through start.
// Nodes stay off the outer frame so the exit is the only opening.
// Visited is tracked apart from the cell value so nodes inside the cleared
// start zone are still traversed.
func recursiveBacktracker(g *Grid, start Point, rng vmath.Rand) {
	visited := make([][]bool, g.Rows)
	for i := range visited {
		visited[i] = make([]bool, g.Cols)
	}

	stack := []Point{start}
	visited[start.Y][start.X] = true
	g.Cells[start.Y][start.X] = Passage

	dirs := []Point{{-2, 0}, {2, 0}, {0, -2}, {0, 2}}
	candidates := make([]Point, 0, 4)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			// Leave 1 cell border for walls
			if nx > 0 && nx < g.Cols-1 && ny > 0 && ny < g.Rows-1 && !visited[ny][nx] {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		wallX, wallY := curr.X+d.X/2, curr.Y+d.Y/2
		nextX, nextY := curr.X+d.X, curr.Y+d.Y

		g.Cells[wallY][wallX] = Passage
		g.Cells[nextY][nextX] = Passage
		visited[nextY][nextX] = true

		stack = append(stack, Point{nextX, nextY})
	}
}

// placeExit marks a uniformly chosen non-corner cell on a uniformly chosen side
func placeExit(g *Grid, rng vmath.Rand) Point {
	var p Point
	switch rng.Intn(4) {
	case 0: // top
		p = Point{vmath.IntRange(rng, 1, g.Cols-2), 0}
	case 1: // right
		p = Point{g.Cols - 1, vmath.IntRange(rng, 1, g.Rows-2)}
	case 2: // bottom
		p = Point{vmath.IntRange(rng, 1, g.Cols-2), g.Rows - 1}
	default: // left
		p = Point{0, vmath.IntRange(rng, 1, g.Rows-2)}
	}
	g.Cells[p.Y][p.X] = Exit
	return p
}

// connectExit carves the shortest interior run from the exit to the nearest passage.
// Search never enters the outer frame, keeping the opening one cell wide.
func connectExit(g *Grid) {
	interior := func(x, y int) bool {
		return x > 0 && x < g.Cols-1 && y > 0 && y < g.Rows-1
	}

	cameFrom := make(map[Point]Point)
	visited := map[Point]bool{g.Exit: true}
	queue := []Point{g.Exit}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr != g.Exit && g.Cells[curr.Y][curr.X] == Passage {
			// Carve back toward the exit, excluding both endpoints
			for p := cameFrom[curr]; p != g.Exit; p = cameFrom[p] {
				g.Cells[p.Y][p.X] = Passage
			}
			return
		}

		for _, d := range cardinals {
			next := Point{curr.X + d.X, curr.Y + d.Y}
			if interior(next.X, next.Y) && !visited[next] {
				visited[next] = true
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
}

// classifyWalls splits border walls into the thin-wall mask and the danger set
func classifyWalls(g *Grid, cfg Config, rng vmath.Rand) {
	border := make([]Point, 0, g.Cols*g.Rows/2)
	candidates := make([]Point, 0, g.Cols*g.Rows/2)

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if !g.IsBorderWall(x, y) {
				continue
			}
			p := Point{x, y}
			border = append(border, p)
			if cfg.MinDangerDistance < 0 || p.Chebyshev(g.Exit) > cfg.MinDangerDistance {
				candidates = append(candidates, p)
			}
		}
	}
	g.BorderWalls = len(border)
	g.DangerCandidates = len(candidates)

	// Partial Fisher-Yates: the first count entries become a uniform sample
	count := int(float64(len(candidates)) * cfg.DangerRatio)
	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		g.Danger.Put(candidates[i])
	}

	for _, p := range border {
		if !g.Danger.Has(p) {
			g.ThinWalls[p.Y][p.X] = true
		}
	}
}

// --- Helpers ---

// Solve returns the BFS shortest route from start to end inclusive over walkable cells, nil if none
func Solve(g *Grid, start, end Point) []Point {
	if !g.Walkable(start.X, start.Y) || !g.Walkable(end.X, end.Y) {
		return nil
	}

	queue := []Point{start}
	cameFrom := make(map[Point]Point)
	visited := map[Point]bool{start: true}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			// Reconstruct Path
			path := []Point{}
			for curr != start {
				path = append(path, curr)
				curr = cameFrom[curr]
			}
			path = append(path, start)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range cardinals {
			next := Point{curr.X + d.X, curr.Y + d.Y}
			if g.Walkable(next.X, next.Y) && !visited[next] {
				visited[next] = true
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// Reachable returns every walkable cell connected to start
func Reachable(g *Grid, start Point) map[Point]bool {
	seen := make(map[Point]bool)
	if !g.Walkable(start.X, start.Y) {
		return seen
	}
	seen[start] = true
	stack := []Point{start}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range cardinals {
			next := Point{curr.X + d.X, curr.Y + d.Y}
			if g.Walkable(next.X, next.Y) && !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return seen
}
