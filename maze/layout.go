package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Layout glyphs, shared by Parse and Format
const (
	GlyphPassage   = '.'
	GlyphStart     = 'S'
	GlyphExit      = 'E'
	GlyphThinWall  = '#'
	GlyphSolidWall = '@'
	GlyphDanger    = 'X'
)

var ErrBadLayout = errors.New("maze: bad layout")

// Parse builds a grid from a hand-written layout, one string per row.
// Wall layers are taken verbatim from the glyphs: '#' thin wall, '@' invisible
// wall, 'X' danger wall. Border classification is not recomputed.
func Parse(cellSize float64, rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadLayout)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidCellSize, cellSize)
	}

	cols := len(rows[0])
	g := newGrid(cols, len(rows), cellSize)
	g.Start = Point{cols / 2, len(rows) / 2}
	g.Exit = Point{-1, -1}

	for y, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrBadLayout, y, len(line), cols)
		}
		for x, ch := range line {
			p := Point{x, y}
			switch ch {
			case GlyphPassage:
				g.Cells[y][x] = Passage
			case GlyphStart:
				g.Cells[y][x] = Passage
				g.Start = p
			case GlyphExit:
				g.Cells[y][x] = Exit
				g.Exit = p
			case GlyphThinWall:
				g.ThinWalls[y][x] = true
			case GlyphSolidWall:
			case GlyphDanger:
				g.Danger.Put(p)
			default:
				return nil, fmt.Errorf("%w: unknown glyph %q at (%d,%d)", ErrBadLayout, ch, x, y)
			}
		}
	}

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if g.IsBorderWall(x, y) {
				g.BorderWalls++
			}
		}
	}
	g.DangerCandidates = g.Danger.Size()
	return g, nil
}

// MustParse is Parse for fixtures, panicking on error
func MustParse(cellSize float64, rows ...string) *Grid {
	g, err := Parse(cellSize, rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Format renders the grid with the layout glyphs, the inverse of Parse
func Format(g *Grid) string {
	var b strings.Builder
	b.Grow((g.Cols + 1) * g.Rows)
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			b.WriteByte(glyphAt(g, Point{x, y}))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func glyphAt(g *Grid, p Point) byte {
	switch {
	case p == g.Start:
		return GlyphStart
	case g.Cells[p.Y][p.X] == Exit:
		return GlyphExit
	case g.Cells[p.Y][p.X] == Passage:
		return GlyphPassage
	case g.Danger.Has(p):
		return GlyphDanger
	case g.ThinWalls[p.Y][p.X]:
		return GlyphThinWall
	default:
		return GlyphSolidWall
	}
}
