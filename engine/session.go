// Package engine hosts a game session: it owns the maze, the player, both sensors
// and the retained sensor output, and advances them one tick at a time.
package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/sonar-maze/config"
	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/navigation"
	"github.com/lixenwraith/sonar-maze/physics"
	"github.com/lixenwraith/sonar-maze/sensor"
	"github.com/lixenwraith/sonar-maze/vmath"
)

// Player is the session's view of the avatar
type Player struct {
	Pos    vmath.Vec2
	Radius float64
	Speed  physics.Speed
	// Glow rises on locator hits and decays over time, visual only
	Glow float64
}

// Input is one tick of frontend intent
type Input struct {
	Move physics.Intent
	// Aim is the sensor heading in radians, screen coordinates (y down)
	Aim float64
	// Locate is held for continuous locator scanning
	Locate bool
	// Detect triggers one detector sweep
	Detect bool
}

type Option func(*Session)

func WithTimeProvider(tp TimeProvider) Option {
	return func(s *Session) { s.source = tp }
}

// WithRand replaces the seeded generator; Seed then reports the configured seed only
func WithRand(rng vmath.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) { s.log = log }
}

// Session is driven from a single goroutine, the frontend loop
type Session struct {
	cfg    config.Config
	source TimeProvider
	clock  *PausableClock
	rng    vmath.Rand
	seed   int64
	log    logrus.FieldLogger

	grid    *maze.Grid
	player  Player
	phase   GamePhase
	phaseAt time.Time
	started time.Time

	// startedReal is provider time at generation, pauses included
	startedReal time.Time

	locator  *sensor.Locator
	detector *sensor.Detector

	// Retained sensor output, oldest first
	points []sensor.Hit
	waves  []sensor.Wave

	revealed mapset.Set[maze.Point]
	paths    *navigation.PathCache
}

// NewSession validates cfg and generates the first maze
func NewSession(cfg config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:   cfg,
		seed:  cfg.Seed,
		paths: navigation.NewPathCache(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.source == nil {
		s.source = NewMonotonicTimeProvider()
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.rng == nil {
		if s.seed == 0 {
			s.seed = vmath.SeedFromTime()
		}
		s.rng = vmath.NewFastRand(uint64(s.seed))
	}
	s.log = s.log.WithField("component", "session")

	s.clock = NewPausableClock(s.source)
	s.locator = sensor.NewLocator(cfg.LocatorConfig(), s.rng)
	s.detector = sensor.NewDetector(cfg.DetectorConfig())

	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart generates a fresh maze and resets the player, sensors and retained output.
// The path hint keeps its enabled state.
func (s *Session) Restart() error {
	grid, err := maze.Generate(s.cfg.MazeConfig(), s.rng)
	if err != nil {
		return fmt.Errorf("session: generate maze: %w", err)
	}

	now := s.clock.Now()
	s.grid = grid
	s.player = Player{
		Pos:    grid.CellCenter(grid.Start),
		Radius: s.cfg.Player.Radius,
		Speed:  physics.SpeedFromAxial(s.cfg.Player.Speed),
	}
	s.phase = PhasePlaying
	s.phaseAt = now
	s.started = now
	s.startedReal = s.clock.RealTime()
	s.points = s.points[:0]
	s.waves = s.waves[:0]
	s.revealed = mapset.New[maze.Point]()
	s.locator.Reset()
	s.detector.Reset()
	s.paths.Invalidate()
	s.refreshPath()

	s.log.WithFields(logrus.Fields{
		"seed":        s.seed,
		"cols":        grid.Cols,
		"rows":        grid.Rows,
		"exit":        grid.Exit,
		"dangers":     grid.Danger.Size(),
		"borderWalls": grid.BorderWalls,
	}).Info("maze generated")
	return nil
}

// Update advances one tick. Movement uses the per-tick speed; dt drives glow decay only.
// Nothing happens while paused.
func (s *Session) Update(in Input, dt time.Duration) Events {
	if s.clock.IsPaused() {
		return 0
	}

	now := s.clock.Now()
	var ev Events

	if !s.phase.IsTerminal() {
		if in.Locate {
			if hit, ok := s.Locate(in.Aim); ok {
				ev |= EventLocatorHit
				if hit.Exit {
					ev |= EventExitPinged
				}
			}
		}

		if in.Detect {
			before := s.revealed.Size()
			if _, ok := s.Detect(in.Aim); ok {
				ev |= EventDetectorFired
				if s.revealed.Size() > before {
					ev |= EventDangerRevealed
				}
			}
		}

		s.player.Pos = physics.ResolveMove(s.player.Pos, in.Move, s.player.Radius, s.player.Speed, s.world())
		ev |= s.checkOutcome(now)
	}

	if s.player.Glow > 0 {
		s.player.Glow = max(0, s.player.Glow-s.cfg.Player.GlowDecay*dt.Seconds())
	}

	s.expire(now)
	s.refreshPath()
	return ev
}

// Locate fires the locator from the player toward angle
func (s *Session) Locate(angle float64) (sensor.Hit, bool) {
	if s.phase.IsTerminal() || s.clock.IsPaused() {
		return sensor.Hit{}, false
	}

	hit, ok := s.locator.Scan(s.grid, s.player.Pos, angle, s.clock.Now())
	if !ok {
		return sensor.Hit{}, false
	}
	s.points = append(s.points, hit)
	s.player.Glow = min(s.cfg.Player.MaxGlow, s.player.Glow+s.cfg.Player.GlowIncrease)
	return hit, true
}

// Detect fires the detector from the player toward angle; revealed danger cells stay revealed
func (s *Session) Detect(angle float64) (sensor.Wave, bool) {
	if s.phase.IsTerminal() || s.clock.IsPaused() {
		return sensor.Wave{}, false
	}

	wave, ok := s.detector.Scan(s.grid, s.player.Pos, angle, s.clock.Now())
	if !ok {
		return sensor.Wave{}, false
	}
	s.waves = append(s.waves, wave)

	fresh := 0
	for _, c := range wave.DangerCells {
		if !s.revealed.Has(c) {
			s.revealed.Put(c)
			fresh++
		}
	}
	s.log.WithFields(logrus.Fields{
		"samples": len(wave.Points),
		"dangers": len(wave.DangerCells),
		"fresh":   fresh,
	}).Debug("detector sweep")
	return wave, true
}

// TogglePath flips the exit hint, computing the route immediately when enabled
func (s *Session) TogglePath() bool {
	on := s.paths.Toggle()
	s.refreshPath()
	s.log.WithField("enabled", on).Debug("path hint toggled")
	return on
}

// Path returns the hint route from the player's cell to the exit, nil while disabled or unreachable
func (s *Session) Path() []maze.Point {
	return s.paths.Path()
}

func (s *Session) Pause()       { s.clock.Pause() }
func (s *Session) Resume()      { s.clock.Resume() }
func (s *Session) Paused() bool { return s.clock.IsPaused() }

func (s *Session) Config() config.Config { return s.cfg }
func (s *Session) Seed() int64           { return s.seed }
func (s *Session) Grid() *maze.Grid      { return s.grid }
func (s *Session) Player() Player        { return s.player }
func (s *Session) Phase() GamePhase      { return s.phase }

// Now returns session time, frozen while paused
func (s *Session) Now() time.Time { return s.clock.Now() }

// Elapsed returns session time since the maze was generated, stopped at the outcome
func (s *Session) Elapsed() time.Duration {
	if s.phase.IsTerminal() {
		return s.phaseAt.Sub(s.started)
	}
	return s.clock.Now().Sub(s.started)
}

// LocatorPoints returns the retained locator hits, oldest first
func (s *Session) LocatorPoints() []sensor.Hit { return s.points }

// Waves returns the retained detector waves, oldest first
func (s *Session) Waves() []sensor.Wave { return s.waves }

// RevealedDangers returns every danger cell detected this session in row-major order
func (s *Session) RevealedDangers() []maze.Point {
	out := make([]maze.Point, 0, s.revealed.Size())
	for _, p := range s.grid.DangerZones() {
		if s.revealed.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Session) IsRevealed(p maze.Point) bool { return s.revealed.Has(p) }

func (s *Session) LocatorReady() bool       { return s.locator.Ready(s.clock.Now()) }
func (s *Session) DetectorReady() bool      { return s.detector.Ready(s.clock.Now()) }
func (s *Session) DetectorProgress() float64 { return s.detector.Progress(s.clock.Now()) }

// PlayerCell returns the cell under the player's center
func (s *Session) PlayerCell() maze.Point {
	return s.grid.CellAt(s.player.Pos)
}

func (s *Session) world() physics.World {
	return physics.World{Grid: s.grid, Terminal: s.phase.IsTerminal()}
}

// checkOutcome resolves win and loss at the player's center cell
func (s *Session) checkOutcome(now time.Time) Events {
	cell := s.PlayerCell()
	switch {
	case s.grid.IsDanger(cell.X, cell.Y):
		s.setPhase(PhaseLost, now)
		s.revealed.Put(cell)
		return EventLost
	case s.grid.IsExit(cell.X, cell.Y):
		s.setPhase(PhaseWon, now)
		return EventWon
	}
	return 0
}

func (s *Session) setPhase(p GamePhase, now time.Time) {
	s.phase = p
	s.phaseAt = now
	s.log.WithFields(logrus.Fields{
		"phase":   p.String(),
		"cell":    s.PlayerCell(),
		"elapsed": now.Sub(s.started).String(),
		"paused":  s.clock.TotalPauseDuration().String(),
		"wall":    s.clock.RealTime().Sub(s.startedReal).String(),
	}).Info("game over")
}

// expire drops locator points and waves older than the configured lifetime
func (s *Session) expire(now time.Time) {
	lifetime := s.cfg.PointLifetime.Duration

	n := 0
	for n < len(s.points) && now.Sub(s.points[n].Point.At) > lifetime {
		n++
	}
	if n > 0 {
		s.points = append(s.points[:0], s.points[n:]...)
	}

	n = 0
	for n < len(s.waves) && now.Sub(s.waves[n].At) > lifetime {
		n++
	}
	if n > 0 {
		s.waves = append(s.waves[:0], s.waves[n:]...)
	}
}

func (s *Session) refreshPath() {
	if s.grid == nil {
		return
	}
	s.paths.Update(s.grid, s.PlayerCell(), s.grid.Exit)
}
