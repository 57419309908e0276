package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/sonar-maze/audio"
	"github.com/lixenwraith/sonar-maze/engine"
	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/parameter"
	"github.com/lixenwraith/sonar-maze/physics"
	"github.com/lixenwraith/sonar-maze/vmath"
)

const (
	// Aim rotation per q/e press
	aimStep = 15 * math.Pi / 180
	// Longer gaps, e.g. after a suspended terminal, count as one frame
	maxFrameGap = 250 * time.Millisecond
)

var (
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleWall      = tcell.StyleDefault.Foreground(tcell.NewRGBColor(60, 60, 80))
	styleFootprint = tcell.StyleDefault.Foreground(tcell.NewRGBColor(40, 90, 110))
	styleDanger    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(170, 30, 30))
	stylePath      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleAim       = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 120, 120))
	styleBanner    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleLossMsg   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
)

type Game struct {
	screen        tcell.Screen
	width, height int

	session *engine.Session
	sound   *audio.SoundManager
	log     logrus.FieldLogger

	keys heldKeys
	aim  float64

	// showWalls draws the thin-wall mask, a debugging aid
	showWalls bool
	lastTick  time.Time
}

func NewGame(screen tcell.Screen, session *engine.Session, sound *audio.SoundManager, log logrus.FieldLogger) *Game {
	g := &Game{
		screen:   screen,
		session:  session,
		sound:    sound,
		log:      log.WithField("component", "tui"),
		lastTick: time.Now(),
	}
	g.width, g.height = screen.Size()
	return g
}

func (g *Game) view() viewport {
	return newViewport(g.session.Grid(), g.width, g.height)
}

// handleInput applies one terminal event, returning false to quit
func (g *Game) handleInput(ev tcell.Event) bool {
	now := time.Now()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			g.keys.pressY(-1, now)
		case tcell.KeyDown:
			g.keys.pressY(1, now)
		case tcell.KeyLeft:
			g.keys.pressX(-1, now)
		case tcell.KeyRight:
			g.keys.pressX(1, now)
		case tcell.KeyEnter:
			g.keys.detectRequested = true
		case tcell.KeyRune:
			return g.handleRune(ev.Rune(), now)
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		g.aim = g.view().aimAt(g.session.Player().Pos, x, y)
		buttons := ev.Buttons()
		g.keys.mouseLocate = buttons&tcell.Button1 != 0
		if buttons&tcell.Button2 != 0 {
			g.keys.detectRequested = true
		}

	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}

	return true
}

func (g *Game) handleRune(r rune, now time.Time) bool {
	switch r {
	case 'w', 'W':
		g.keys.pressY(-1, now)
	case 's', 'S':
		g.keys.pressY(1, now)
	case 'a', 'A':
		g.keys.pressX(-1, now)
	case 'd', 'D':
		g.keys.pressX(1, now)
	case 'q':
		g.aim -= aimStep
	case 'e':
		g.aim += aimStep
	case ' ':
		g.keys.pressLocate(now)
	case 'f':
		g.keys.detectRequested = true
	case 'h':
		g.session.TogglePath()
	case 'p':
		if g.session.Paused() {
			g.session.Resume()
		} else {
			g.session.Pause()
		}
	case 'm':
		g.sound.SetMuted(!g.sound.Muted())
	case 'v':
		g.showWalls = !g.showWalls
	case 'r':
		if err := g.session.Restart(); err != nil {
			g.log.WithError(err).Error("restart failed")
			return false
		}
		g.keys.reset()
	}
	return true
}

// tick advances the session one frame and plays the cues its events trigger
func (g *Game) tick(now time.Time) {
	dt := now.Sub(g.lastTick)
	g.lastTick = now
	if dt < 0 || dt > maxFrameGap {
		dt = parameter.TickInterval
	}

	in := engine.Input{
		Move:   g.keys.intent(now),
		Aim:    g.aim,
		Locate: g.keys.locating(now),
		Detect: g.keys.takeDetect(),
	}
	ev := g.session.Update(in, dt)
	if ev == 0 {
		return
	}

	g.log.WithField("events", ev.String()).Debug("tick events")
	g.sound.PlayAll(audio.CuesFor(ev), g.cueParams())
}

// cueParams pans toward the aim and pitches by the latest locator distance
func (g *Game) cueParams() audio.Params {
	p := audio.Params{Pan: panFor(g.aim)}
	if pts := g.session.LocatorPoints(); len(pts) > 0 {
		p.Distance = pts[len(pts)-1].Distance / g.session.Config().Locator.MaxRange
	}
	return p
}

func (g *Game) draw() {
	g.screen.Clear()

	v := g.view()
	grid := g.session.Grid()
	now := g.session.Now()
	lifetime := g.session.Config().PointLifetime.Duration

	if g.showWalls {
		for y := 0; y < grid.Rows; y++ {
			for x := 0; x < grid.Cols; x++ {
				if grid.IsThinWall(x, y) {
					g.fillCell(v, maze.Point{X: x, Y: y}, '░', styleWall)
				}
			}
		}
		p := g.session.Player()
		for _, c := range physics.TouchedCells(p.Pos, p.Radius, grid) {
			g.fillCell(v, c, '▒', styleFootprint)
		}
	}

	for _, c := range g.session.RevealedDangers() {
		g.fillCell(v, c, '▓', styleDanger)
	}

	for _, c := range g.session.Path() {
		sx, sy := v.cellToScreen(c)
		g.setCell(sx, sy, '•', stylePath)
	}

	for _, w := range g.session.Waves() {
		k := fade(now.Sub(w.At), lifetime)
		for _, p := range w.Points {
			sx, sy := v.toScreen(p.Pos)
			g.setCell(sx, sy, '∙', tcell.StyleDefault.Foreground(shade(60, 120, 255, k)))
		}
		for _, p := range w.Dangers {
			sx, sy := v.toScreen(p.Pos)
			g.setCell(sx, sy, '×', tcell.StyleDefault.Foreground(shade(255, 60, 60, k)))
		}
	}

	for _, h := range g.session.LocatorPoints() {
		k := fade(now.Sub(h.Point.At), lifetime)
		sx, sy := v.toScreen(h.Point.Pos)
		if h.Exit {
			g.setCell(sx, sy, '◆', tcell.StyleDefault.Foreground(shade(60, 255, 120, k)))
		} else {
			g.setCell(sx, sy, '█', tcell.StyleDefault.Foreground(shade(255, 255, 255, k)))
		}
	}

	g.drawPlayer(v)
	g.drawHUD()
	g.drawBanner()

	g.screen.Show()
}

func (g *Game) drawPlayer(v viewport) {
	p := g.session.Player()

	tip := p.Pos.Along(g.aim, g.session.Grid().CellSize*1.5)
	ax, ay := v.toScreen(tip)
	g.setCell(ax, ay, '+', styleAim)

	glow := 0.0
	if limit := g.session.Config().Player.MaxGlow; limit > 0 {
		glow = p.Glow / limit
	}
	sx, sy := v.toScreen(p.Pos)
	g.setCell(sx, sy, '@', tcell.StyleDefault.Foreground(shade(80, 220, 255, glow)).Bold(true))
}

func (g *Game) drawHUD() {
	s := g.session
	status := s.Phase().String()
	if s.Paused() {
		status = "paused"
	}
	hint := "off"
	if s.Path() != nil {
		hint = "on"
	}
	sound := "on"
	if g.sound.Muted() {
		sound = "muted"
	}

	line := fmt.Sprintf(" %s | %s | seed %d | detector [%s] | hint %s | sound %s | dangers %d",
		status, s.Elapsed().Truncate(time.Second), s.Seed(),
		progressBar(s.DetectorProgress(), 10), hint, sound, len(s.RevealedDangers()))
	g.drawText(0, 0, line, styleHUD)
}

func (g *Game) drawBanner() {
	var msg string
	style := styleBanner
	switch g.session.Phase() {
	case engine.PhaseWon:
		msg = fmt.Sprintf(" Escaped in %s. r for a new maze, Esc to quit ", g.session.Elapsed().Truncate(100*time.Millisecond))
	case engine.PhaseLost:
		msg = " Lost in a danger zone. r for a new maze, Esc to quit "
		style = styleLossMsg
	default:
		return
	}
	x := (g.width - len([]rune(msg))) / 2
	g.drawText(max(0, x), g.height/2, msg, style)
}

// fillCell paints both terminal columns of a maze cell
func (g *Game) fillCell(v viewport, c maze.Point, r rune, style tcell.Style) {
	sx, sy := v.cellToScreen(c)
	for i := 0; i < cellCols; i++ {
		g.setCell(sx+i, sy, r, style)
	}
}

func (g *Game) setCell(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < hudRows || x >= g.width || y >= g.height {
		return
	}
	g.screen.SetContent(x, y, r, nil, style)
}

func (g *Game) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= g.width {
			return
		}
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (g *Game) run() {
	ticker := time.NewTicker(parameter.TickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			g.tick(now)
			g.draw()
		}
	}
}

// panFor places a cue in the stereo field by the horizontal component of the aim
func panFor(aim float64) float64 {
	return vmath.Clamp(math.Cos(aim), -1, 1)
}
