package main

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/vmath"
)

const (
	// Each maze cell is two terminal columns wide so cells render roughly square
	cellCols = 2
	hudRows  = 1
)

// viewport maps world pixels onto terminal cells
type viewport struct {
	cellSize   float64
	offX, offY int
}

func newViewport(grid *maze.Grid, width, height int) viewport {
	v := viewport{cellSize: grid.CellSize, offY: hudRows}
	if w := grid.Cols * cellCols; width > w {
		v.offX = (width - w) / 2
	}
	if h := grid.Rows + hudRows; height > h {
		v.offY = hudRows + (height-h)/2
	}
	return v
}

func (v viewport) toScreen(p vmath.Vec2) (int, int) {
	return v.offX + int(math.Floor(p.X/v.cellSize*cellCols)), v.offY + int(math.Floor(p.Y/v.cellSize))
}

func (v viewport) cellToScreen(c maze.Point) (int, int) {
	return v.offX + c.X*cellCols, v.offY + c.Y
}

// toWorld returns the world position at the center of a terminal cell
func (v viewport) toWorld(sx, sy int) vmath.Vec2 {
	return vmath.V(
		(float64(sx-v.offX)+0.5)/cellCols*v.cellSize,
		(float64(sy-v.offY)+0.5)*v.cellSize,
	)
}

// aimAt returns the heading from a world position toward a terminal cell
func (v viewport) aimAt(from vmath.Vec2, sx, sy int) float64 {
	return vmath.AngleTo(from, v.toWorld(sx, sy))
}

// fade is 1 for a fresh sample and falls linearly to 0 at lifetime
func fade(age, lifetime time.Duration) float64 {
	if lifetime <= 0 || age >= lifetime {
		return 0
	}
	if age <= 0 {
		return 1
	}
	return 1 - float64(age)/float64(lifetime)
}

// shade scales an RGB triple by intensity, keeping a floor so faded samples stay legible
func shade(r, g, b int32, intensity float64) tcell.Color {
	k := 0.25 + 0.75*vmath.Clamp(intensity, 0, 1)
	return tcell.NewRGBColor(int32(float64(r)*k), int32(float64(g)*k), int32(float64(b)*k))
}

// progressBar renders a fixed-width cooldown bar
func progressBar(p float64, width int) string {
	filled := int(vmath.Clamp(p, 0, 1) * float64(width))
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '■'
		} else {
			bar[i] = '·'
		}
	}
	return string(bar)
}
