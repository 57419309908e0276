package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/sonar-maze/engine"
	"github.com/lixenwraith/sonar-maze/physics"
	"github.com/lixenwraith/sonar-maze/vmath"
)

var (
	colorBackground = color.RGBA{8, 10, 16, 255}
	colorWall       = color.RGBA{40, 44, 70, 255}
	colorPath       = color.RGBA{230, 200, 60, 255}
	colorAim        = color.RGBA{120, 120, 140, 255}
	colorFootprint  = color.RGBA{40, 90, 110, 255}
)

// Draw renders only what the sensors have returned, plus the avatar and HUD
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	grid := g.session.Grid()
	cs := float32(grid.CellSize)
	now := g.session.Now()
	lifetime := g.session.Config().PointLifetime.Duration

	if g.showWalls {
		for y := 0; y < grid.Rows; y++ {
			for x := 0; x < grid.Cols; x++ {
				if grid.IsThinWall(x, y) {
					vector.DrawFilledRect(screen, float32(x)*cs, float32(y)*cs, cs, cs, colorWall, false)
				}
			}
		}
		p := g.session.Player()
		for _, c := range physics.TouchedCells(p.Pos, p.Radius, grid) {
			vector.StrokeRect(screen, float32(c.X)*cs, float32(c.Y)*cs, cs, cs, 1, colorFootprint, false)
		}
	}

	for _, c := range g.session.RevealedDangers() {
		vector.DrawFilledRect(screen, float32(c.X)*cs, float32(c.Y)*cs, cs, cs, color.NRGBA{170, 30, 30, 160}, false)
	}

	for _, c := range g.session.Path() {
		p := grid.CellCenter(c)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 3, colorPath, true)
	}

	g.drawWaves(screen, now, lifetime)
	g.drawLocatorPoints(screen, now, lifetime)
	g.drawPlayer(screen)
	g.drawHUD(screen)
	g.drawBanner(screen)
}

func (g *Game) drawWaves(screen *ebiten.Image, now time.Time, lifetime time.Duration) {
	reach := g.session.Config().Detector.MaxRange
	for _, w := range g.session.Waves() {
		k := fade(now.Sub(w.At), lifetime)
		limit := float64(g.revealOf(w.At)) * reach

		edge := color.NRGBA{60, 120, 255, uint8(60 * k)}
		for _, r := range []vmath.Vec2{w.Left.To, w.Right.To} {
			end := w.Origin.Add(r.Sub(w.Origin).Scale(limit / reach))
			vector.StrokeLine(screen, float32(w.Origin.X), float32(w.Origin.Y), float32(end.X), float32(end.Y), 1, edge, true)
		}

		dot := color.NRGBA{60, 120, 255, uint8(200 * k)}
		for _, p := range w.Points {
			if p.Pos.Dist(w.Origin) > limit {
				continue
			}
			vector.DrawFilledRect(screen, float32(p.Pos.X)-1, float32(p.Pos.Y)-1, 2, 2, dot, false)
		}

		hot := color.NRGBA{255, 60, 60, uint8(255 * k)}
		for _, p := range w.Dangers {
			if p.Pos.Dist(w.Origin) > limit {
				continue
			}
			vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), 2.5, hot, true)
		}
	}
}

func (g *Game) drawLocatorPoints(screen *ebiten.Image, now time.Time, lifetime time.Duration) {
	for _, h := range g.session.LocatorPoints() {
		a := uint8(255 * fade(now.Sub(h.Point.At), lifetime))
		c := color.NRGBA{235, 235, 235, a}
		if h.Exit {
			c = color.NRGBA{60, 255, 120, a}
		}
		x, y := float32(h.Point.Pos.X), float32(h.Point.Pos.Y)
		vector.DrawFilledRect(screen, x-1.5, y-1.5, 3, 3, c, false)

		// Short tick along the surface the ray struck
		t := h.Normal.Perpendicular().Scale(3)
		vector.StrokeLine(screen, x-float32(t.X), y-float32(t.Y), x+float32(t.X), y+float32(t.Y), 1, c, true)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.session.Player()
	x, y := float32(p.Pos.X), float32(p.Pos.Y)

	tip := p.Pos.Along(g.aim, p.Radius+12)
	vector.StrokeLine(screen, x, y, float32(tip.X), float32(tip.Y), 1.5, colorAim, true)

	glow := 0.0
	if limit := g.session.Config().Player.MaxGlow; limit > 0 {
		glow = vmath.Clamp(p.Glow/limit, 0, 1)
	}
	if glow > 0 {
		vector.StrokeCircle(screen, x, y, float32(p.Radius*(1+glow)), 2, color.NRGBA{80, 220, 255, uint8(180 * glow)}, true)
	}
	base := uint8(140 + 115*glow)
	vector.DrawFilledCircle(screen, x, y, float32(p.Radius), color.RGBA{40, base, 255, 255}, true)

	if g.pulse > 0 {
		a := uint8(255 * (1 - g.pulse))
		vector.StrokeCircle(screen, x, y, float32(p.Radius)+pulseRadius*g.pulse, 2, color.NRGBA{60, 255, 120, a}, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.session
	status := s.Phase().String()
	if s.Paused() {
		status = "paused"
	}
	ready := "charging"
	if s.DetectorReady() {
		ready = "ready"
	}
	msg := fmt.Sprintf("%s  %s  seed %d\ndetector %s (%3.0f%%)  dangers %d  sound %s",
		status, s.Elapsed().Truncate(time.Second), s.Seed(),
		ready, s.DetectorProgress()*100, len(s.RevealedDangers()), onOff(!g.sound.Muted()))
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) drawBanner(screen *ebiten.Image) {
	msg := bannerText(g.session)
	if msg == "" || g.banner <= 0 {
		return
	}
	w, h := g.Layout(0, 0)
	vector.DrawFilledRect(screen, 0, float32(h)/2-24, float32(w), 48, color.NRGBA{0, 0, 0, uint8(180 * g.banner)}, false)
	ebitenutil.DebugPrintAt(screen, msg, w/2-len(msg)*3, h/2-8)
}

func bannerText(s *engine.Session) string {
	switch s.Phase() {
	case engine.PhaseWon:
		return fmt.Sprintf("Escaped in %s. R for a new maze, Esc to quit", s.Elapsed().Truncate(100*time.Millisecond))
	case engine.PhaseLost:
		return "Lost in a danger zone. R for a new maze, Esc to quit"
	}
	return ""
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
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
