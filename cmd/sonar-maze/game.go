package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"

	"github.com/lixenwraith/sonar-maze/audio"
	"github.com/lixenwraith/sonar-maze/engine"
	"github.com/lixenwraith/sonar-maze/parameter"
	"github.com/lixenwraith/sonar-maze/physics"
	"github.com/lixenwraith/sonar-maze/vmath"
)

const (
	frameDuration  = time.Second / ebiten.DefaultTPS
	pulseDuration  = 400 * time.Millisecond
	bannerDuration = 600 * time.Millisecond
	pulseRadius    = 40
)

// Game adapts an engine session to ebiten's Update/Draw loop
type Game struct {
	session *engine.Session
	sound   *audio.SoundManager
	log     logrus.FieldLogger
	tweens  *Tweens

	aim float64

	// reveal is the visible fraction of each detector wave, keyed by fire time
	reveal map[time.Time]float32
	// pulse is the exit ping ring progress, 0 when idle
	pulse  float32
	// banner fades the outcome overlay in
	banner float32

	showWalls bool
}

func NewGame(session *engine.Session, sound *audio.SoundManager, log logrus.FieldLogger) *Game {
	return &Game{
		session: session,
		sound:   sound,
		log:     log.WithField("component", "ebiten"),
		tweens:  NewTweens(),
		reveal:  make(map[time.Time]float32),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if err := g.handleToggles(); err != nil {
		return err
	}

	cx, cy := ebiten.CursorPosition()
	g.aim = vmath.AngleTo(g.session.Player().Pos, vmath.V(float64(cx), float64(cy)))

	g.step(engine.Input{
		Move: intentFrom(
			ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
			ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
			ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
			ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		),
		Aim:    g.aim,
		Locate: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace),
		Detect: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) || inpututil.IsKeyJustPressed(ebiten.KeyF),
	})
	return nil
}

func (g *Game) handleToggles() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.session.TogglePath()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.sound.SetMuted(!g.sound.Muted())
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.showWalls = !g.showWalls
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		return g.restart()
	}
	return nil
}

func (g *Game) togglePause() {
	if g.session.Paused() {
		g.session.Resume()
	} else {
		g.session.Pause()
	}
}

func (g *Game) restart() error {
	if err := g.session.Restart(); err != nil {
		g.log.WithError(err).Error("restart failed")
		return err
	}
	g.tweens.Clear()
	clear(g.reveal)
	g.pulse, g.banner = 0, 0
	return nil
}

// step advances the session one frame, then the effects its events started
func (g *Game) step(in engine.Input) engine.Events {
	ev := g.session.Update(in, frameDuration)
	if ev != 0 {
		g.react(ev)
	}
	if !g.session.Paused() {
		g.tweens.Update(frameDuration)
	}
	g.pruneReveal()
	return ev
}

func (g *Game) react(ev engine.Events) {
	if ev.Has(engine.EventDetectorFired) {
		if waves := g.session.Waves(); len(waves) > 0 {
			at := waves[len(waves)-1].At
			g.tweens.Start(0, 1, parameter.WaveRevealDuration, ease.OutQuad, func(v float32) {
				g.reveal[at] = v
			})
		}
	}
	if ev.Has(engine.EventExitPinged) {
		g.tweens.Start(0, 1, pulseDuration, ease.OutCubic, func(v float32) {
			g.pulse = v
		}).addOnFinish(func() { g.pulse = 0 })
	}
	if ev.Has(engine.EventWon) || ev.Has(engine.EventLost) {
		g.tweens.Start(0, 1, bannerDuration, ease.InOutQuad, func(v float32) {
			g.banner = v
		})
		g.log.WithFields(logrus.Fields{
			"phase":   g.session.Phase().String(),
			"elapsed": g.session.Elapsed().String(),
		}).Info("round finished")
	}

	g.sound.PlayAll(audio.CuesFor(ev), g.cueParams())
}

// pruneReveal forgets reveal progress for waves the session has expired
func (g *Game) pruneReveal() {
	if len(g.reveal) == 0 {
		return
	}
	live := make(map[time.Time]bool, len(g.session.Waves()))
	for _, w := range g.session.Waves() {
		live[w.At] = true
	}
	for at := range g.reveal {
		if !live[at] {
			delete(g.reveal, at)
		}
	}
}

// revealOf is 1 for waves fired before the effect began tracking them
func (g *Game) revealOf(at time.Time) float32 {
	if v, ok := g.reveal[at]; ok {
		return v
	}
	return 1
}

func (g *Game) cueParams() audio.Params {
	p := audio.Params{Pan: vmath.Clamp(vmath.FromAngle(g.aim).X, -1, 1)}
	if pts := g.session.LocatorPoints(); len(pts) > 0 {
		p.Distance = pts[len(pts)-1].Distance / g.session.Config().Locator.MaxRange
	}
	return p
}

// Layout pins the logical screen to the maze's pixel size
func (g *Game) Layout(_, _ int) (int, int) {
	w, h := g.session.Grid().Size()
	return int(w), int(h)
}

func intentFrom(up, down, left, right bool) physics.Intent {
	var in physics.Intent
	if left {
		in.DX--
	}
	if right {
		in.DX++
	}
	if up {
		in.DY--
	}
	if down {
		in.DY++
	}
	return in
}
