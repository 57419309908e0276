package physics

import (
	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/vmath"
)

// Intent is the per-axis movement direction, each component in {-1, 0, 1}
type Intent struct {
	DX, DY int
}

// IsZero reports no movement requested
func (i Intent) IsZero() bool {
	return i.DX == 0 && i.DY == 0
}

// Speed holds the per-tick displacement for axial and diagonal movement
type Speed struct {
	Axial    float64
	Diagonal float64
}

// SpeedFromAxial derives the diagonal speed so diagonal travel matches axial travel
func SpeedFromAxial(axial float64) Speed {
	return Speed{Axial: axial, Diagonal: axial * vmath.InvSqrt2}
}

// World is the collision context for one move
// Terminal freezes movement once the game is won or lost
type World struct {
	Grid     *maze.Grid
	Terminal bool
}

// Displacement returns the pixel offset for an intent, diagonal moves use the diagonal speed
func Displacement(intent Intent, speed Speed) vmath.Vec2 {
	dx, dy := vmath.Sign(intent.DX), vmath.Sign(intent.DY)
	s := speed.Axial
	if dx != 0 && dy != 0 {
		s = speed.Diagonal
	}
	return vmath.Vec2{X: float64(dx) * s, Y: float64(dy) * s}
}

// ResolveMove returns the new position after applying intent against the thin-wall layer.
// A blocked move falls back to X only, then Y only, then staying put, letting the body
// slide along walls when moving diagonally into them.
func ResolveMove(pos vmath.Vec2, intent Intent, radius float64, speed Speed, world World) vmath.Vec2 {
	if world.Terminal || intent.IsZero() {
		return pos
	}

	d := Displacement(intent, speed)

	candidate := pos.Add(d)
	if !Collides(candidate, radius, world.Grid) {
		return candidate
	}

	// Try horizontal movement only (keep old Y)
	if d.X != 0 {
		slideX := vmath.Vec2{X: pos.X + d.X, Y: pos.Y}
		if !Collides(slideX, radius, world.Grid) {
			return slideX
		}
	}

	// Try vertical movement only (keep old X)
	if d.Y != 0 {
		slideY := vmath.Vec2{X: pos.X, Y: pos.Y + d.Y}
		if !Collides(slideY, radius, world.Grid) {
			return slideY
		}
	}

	return pos
}
