package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/vmath"
)

func roomGrid() *maze.Grid {
	return maze.MustParse(10,
		"#####",
		"#...#",
		"#.S.#",
		"#...#",
		"#####",
	)
}

// TestDisplacementDiagonalMatchesAxial verifies diagonal travel covers the axial distance
func TestDisplacementDiagonalMatchesAxial(t *testing.T) {
	speed := SpeedFromAxial(3.5)

	axial := Displacement(Intent{DX: 1}, speed)
	if axial.Len() != 3.5 {
		t.Errorf("Expected axial length 3.5, got %v", axial.Len())
	}

	diag := Displacement(Intent{DX: -1, DY: 1}, speed)
	if math.Abs(diag.Len()-3.5) > 1e-9 {
		t.Errorf("Expected diagonal length 3.5, got %v", diag.Len())
	}
	if diag.X >= 0 || diag.Y <= 0 {
		t.Errorf("Expected (-,+) direction, got %v", diag)
	}

	// Components outside {-1,0,1} are clamped
	big := Displacement(Intent{DX: 5}, speed)
	if big != axial {
		t.Errorf("Expected clamped intent %v, got %v", axial, big)
	}
}

// TestResolveMoveStaysInsideRoom verifies repeated pushes never enter a thin wall
func TestResolveMoveStaysInsideRoom(t *testing.T) {
	g := roomGrid()
	speed := SpeedFromAxial(3)
	world := World{Grid: g}
	const radius = 4.0

	intents := []Intent{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}}
	for _, in := range intents {
		pos := vmath.V(25, 25)
		for i := 0; i < 50; i++ {
			pos = ResolveMove(pos, in, radius, speed, world)
			if Collides(pos, radius, g) {
				t.Fatalf("Intent %v: body entered a wall at %v", in, pos)
			}
		}
		if pos.X < 10+radius || pos.X >= 40-radius || pos.Y < 10+radius || pos.Y >= 40-radius {
			t.Errorf("Intent %v: expected position inside room, got %v", in, pos)
		}
	}
}

// TestResolveMoveSlidesAlongCorridor verifies a diagonal push into a wall keeps the free axis
func TestResolveMoveSlidesAlongCorridor(t *testing.T) {
	g := maze.MustParse(10,
		"#######",
		"#..S..#",
		"#######",
	)
	speed := SpeedFromAxial(3)
	start := vmath.V(15, 15)

	got := ResolveMove(start, Intent{DX: 1, DY: 1}, 3, speed, World{Grid: g})

	want := vmath.V(15+speed.Diagonal, 15)
	if math.Abs(got.X-want.X) > 1e-9 || got.Y != want.Y {
		t.Errorf("Expected slide to %v, got %v", want, got)
	}
}

// TestResolveMoveVerticalSlide verifies the Y-only fallback when X is blocked
func TestResolveMoveVerticalSlide(t *testing.T) {
	g := maze.MustParse(10,
		"###",
		"#.#",
		"#S#",
		"#.#",
		"###",
	)
	speed := SpeedFromAxial(2)
	start := vmath.V(15, 25)

	got := ResolveMove(start, Intent{DX: 1, DY: -1}, 4.5, speed, World{Grid: g})
	if got.X != start.X || got.Y >= start.Y {
		t.Errorf("Expected vertical slide upward, got %v", got)
	}
}

// TestResolveMoveBlockedStays verifies a fully blocked move leaves position unchanged
func TestResolveMoveBlockedStays(t *testing.T) {
	g := maze.MustParse(10,
		"###",
		"#S#",
		"###",
	)
	start := vmath.V(15, 15)
	got := ResolveMove(start, Intent{DX: 1}, 4.5, SpeedFromAxial(3), World{Grid: g})
	if got != start {
		t.Errorf("Expected %v, got %v", start, got)
	}
}

// TestResolveMoveTerminal verifies movement is frozen after the game ends
func TestResolveMoveTerminal(t *testing.T) {
	start := vmath.V(25, 25)
	got := ResolveMove(start, Intent{DX: 1, DY: 1}, 4, SpeedFromAxial(3), World{Grid: roomGrid(), Terminal: true})
	if got != start {
		t.Errorf("Expected no movement, got %v", got)
	}

	got = ResolveMove(start, Intent{}, 4, SpeedFromAxial(3), World{Grid: roomGrid()})
	if got != start {
		t.Errorf("Expected zero intent to stay, got %v", got)
	}
}

// TestCollidesOutOfBounds verifies cells outside the grid never block
func TestCollidesOutOfBounds(t *testing.T) {
	g := roomGrid()
	if Collides(vmath.V(-100, -100), 4, g) {
		t.Error("Expected out-of-bounds position to be free")
	}
	if Collides(vmath.V(5, 25), 4, nil) {
		t.Error("Expected nil grid to never collide")
	}
	if !Collides(vmath.V(5, 25), 4, g) {
		t.Error("Expected left wall to collide")
	}
}

// TestCollidesIgnoresDangerZones verifies danger walls are not in the collision mask
func TestCollidesIgnoresDangerZones(t *testing.T) {
	g := maze.MustParse(10,
		"#####",
		"#.SX#",
		"#####",
	)
	if Collides(vmath.V(35, 15), 3, g) {
		t.Error("Expected danger wall to be passable")
	}
}

// TestTouchedCells verifies corner cells are deduplicated and bounded
func TestTouchedCells(t *testing.T) {
	g := roomGrid()

	cells := TouchedCells(vmath.V(25, 25), 4, g)
	if len(cells) != 1 || cells[0] != (maze.Point{X: 2, Y: 2}) {
		t.Errorf("Expected single cell (2,2), got %v", cells)
	}

	cells = TouchedCells(vmath.V(20, 20), 4, g)
	if len(cells) != 4 {
		t.Errorf("Expected 4 cells at a cell corner, got %v", cells)
	}

	cells = TouchedCells(vmath.V(0, 0), 4, g)
	if len(cells) != 1 {
		t.Errorf("Expected only the in-bounds corner, got %v", cells)
	}
}
