package main

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/sonar-maze/audio"
	"github.com/lixenwraith/sonar-maze/config"
	"github.com/lixenwraith/sonar-maze/engine"
	"github.com/lixenwraith/sonar-maze/parameter"
)

func newTestGame(t *testing.T) (*Game, *engine.MockTimeProvider) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.Default()
	cfg.Seed = 11
	cfg.Audio.Enabled = false

	mock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	session, err := engine.NewSession(cfg, engine.WithTimeProvider(mock), engine.WithLogger(log))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return NewGame(session, audio.NewSoundManager(cfg.Audio, log), log), mock
}

// TestIntentFrom verifies opposing keys cancel and diagonals combine
func TestIntentFrom(t *testing.T) {
	cases := []struct {
		up, down, left, right bool
		dx, dy                int
	}{
		{false, false, false, false, 0, 0},
		{true, false, false, true, 1, -1},
		{false, true, true, false, -1, 1},
		{true, true, true, true, 0, 0},
	}
	for _, c := range cases {
		in := intentFrom(c.up, c.down, c.left, c.right)
		if in.DX != c.dx || in.DY != c.dy {
			t.Errorf("intentFrom(%v,%v,%v,%v): expected (%d,%d), got (%d,%d)",
				c.up, c.down, c.left, c.right, c.dx, c.dy, in.DX, in.DY)
		}
	}
}

// TestLayoutMatchesMaze verifies the logical screen is the maze's pixel size
func TestLayoutMatchesMaze(t *testing.T) {
	g, _ := newTestGame(t)
	w, h := g.Layout(640, 480)

	cfg := g.session.Config()
	if w != int(float64(cfg.Maze.Cols)*cfg.Maze.CellSize) || h != int(float64(cfg.Maze.Rows)*cfg.Maze.CellSize) {
		t.Errorf("Expected %dx%d layout, got %dx%d",
			int(float64(cfg.Maze.Cols)*cfg.Maze.CellSize), int(float64(cfg.Maze.Rows)*cfg.Maze.CellSize), w, h)
	}
}

// TestDetectorWaveReveal verifies a detector sweep tweens its wave from hidden to fully shown
func TestDetectorWaveReveal(t *testing.T) {
	g, _ := newTestGame(t)

	ev := g.step(engine.Input{Detect: true})
	if !ev.Has(engine.EventDetectorFired) {
		t.Fatalf("Expected detector to fire, got events %s", ev)
	}

	at := g.session.Waves()[0].At
	first := g.revealOf(at)
	if first <= 0 || first >= 1 {
		t.Errorf("Expected partial reveal after one frame, got %f", first)
	}

	frames := int(parameter.WaveRevealDuration/frameDuration) + 2
	for i := 0; i < frames; i++ {
		g.step(engine.Input{})
	}
	if got := g.revealOf(at); got != 1 {
		t.Errorf("Expected full reveal, got %f", got)
	}
	if g.tweens.Len() != 0 {
		t.Errorf("Expected reveal tween finished, got %d running", g.tweens.Len())
	}
}

// TestRevealPrunedWithWaves verifies reveal state is dropped once the session expires the wave
func TestRevealPrunedWithWaves(t *testing.T) {
	g, mock := newTestGame(t)

	g.step(engine.Input{Detect: true})
	if len(g.reveal) != 1 {
		t.Fatalf("Expected one tracked wave, got %d", len(g.reveal))
	}

	mock.Advance(g.session.Config().PointLifetime.Duration + time.Millisecond)
	g.step(engine.Input{})

	if len(g.session.Waves()) != 0 {
		t.Fatalf("Expected wave expired, got %d", len(g.session.Waves()))
	}
	if len(g.reveal) != 0 {
		t.Errorf("Expected reveal state pruned, got %d entries", len(g.reveal))
	}
}

// TestPausedStepFreezesTweens verifies effects hold while the session is paused
func TestPausedStepFreezesTweens(t *testing.T) {
	g, _ := newTestGame(t)

	g.step(engine.Input{Detect: true})
	at := g.session.Waves()[0].At
	before := g.revealOf(at)

	g.togglePause()
	for i := 0; i < 30; i++ {
		g.step(engine.Input{})
	}
	if got := g.revealOf(at); got != before {
		t.Errorf("Expected reveal frozen at %f while paused, got %f", before, got)
	}

	g.togglePause()
	if g.session.Paused() {
		t.Error("Expected session resumed")
	}
}

// TestExitPulseResets verifies the exit ping ring returns to idle when its tween finishes
func TestExitPulseResets(t *testing.T) {
	g, _ := newTestGame(t)

	g.react(engine.EventLocatorHit | engine.EventExitPinged)
	if g.tweens.Len() != 1 {
		t.Fatalf("Expected one pulse tween, got %d", g.tweens.Len())
	}

	g.tweens.Update(pulseDuration / 2)
	if g.pulse <= 0 || g.pulse >= 1 {
		t.Errorf("Expected pulse in progress, got %f", g.pulse)
	}

	g.tweens.Update(pulseDuration)
	if g.pulse != 0 {
		t.Errorf("Expected pulse reset to 0, got %f", g.pulse)
	}
}

// TestOutcomeBannerFadesIn verifies win or loss events fade the banner overlay in
func TestOutcomeBannerFadesIn(t *testing.T) {
	g, _ := newTestGame(t)

	g.react(engine.EventLost)
	g.tweens.Update(bannerDuration)
	if g.banner != 1 {
		t.Errorf("Expected banner fully shown, got %f", g.banner)
	}
}

// TestRestartClearsEffects verifies restart drops tweens and per-wave state
func TestRestartClearsEffects(t *testing.T) {
	g, _ := newTestGame(t)

	g.step(engine.Input{Detect: true})
	g.react(engine.EventWon)
	if err := g.restart(); err != nil {
		t.Fatalf("restart failed: %v", err)
	}

	if g.tweens.Len() != 0 || len(g.reveal) != 0 || g.banner != 0 || g.pulse != 0 {
		t.Errorf("Expected clean effects after restart, got tweens=%d reveal=%d banner=%f pulse=%f",
			g.tweens.Len(), len(g.reveal), g.banner, g.pulse)
	}
	if len(g.session.Waves()) != 0 {
		t.Errorf("Expected session waves cleared, got %d", len(g.session.Waves()))
	}
}

// TestBannerText verifies outcome messages
func TestBannerText(t *testing.T) {
	g, _ := newTestGame(t)
	if msg := bannerText(g.session); msg != "" {
		t.Errorf("Expected no banner while playing, got %q", msg)
	}
}

// TestCueParamsPan verifies the stereo pan follows the horizontal aim
func TestCueParamsPan(t *testing.T) {
	g, _ := newTestGame(t)

	g.aim = 0
	if p := g.cueParams(); p.Pan < 0.99 {
		t.Errorf("Expected right pan, got %f", p.Pan)
	}
	g.aim = 3.14159
	if p := g.cueParams(); p.Pan > -0.99 {
		t.Errorf("Expected left pan, got %f", p.Pan)
	}
	if p := g.cueParams(); p.Distance != 0 {
		t.Errorf("Expected zero distance without locator returns, got %f", p.Distance)
	}
}

func TestOnOff(t *testing.T) {
	if !strings.EqualFold(onOff(true), "on") || onOff(false) != "off" {
		t.Error("Expected on/off labels")
	}
}
