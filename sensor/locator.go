package sensor

import (
	"time"

	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/parameter"
	"github.com/lixenwraith/sonar-maze/vmath"
)

type LocatorConfig struct {
	Cooldown time.Duration

	// MinOffset skips the player's own body
	MinOffset float64
	MaxRange  float64
	Step      float64

	// AngleJitter is the uniform aim noise in radians
	AngleJitter float64
	// HitJitter is the uniform scatter along the wall normal in pixels
	HitJitter float64
}

func DefaultLocatorConfig() LocatorConfig {
	return LocatorConfig{
		Cooldown:    parameter.LocatorCooldown,
		MinOffset:   parameter.LocatorMinOffset,
		MaxRange:    parameter.LocatorMaxRange,
		Step:        parameter.LocatorStep,
		AngleJitter: parameter.LocatorAngleJitter,
		HitJitter:   parameter.LocatorHitJitter,
	}
}

// Hit is one locator return
type Hit struct {
	Point    HitPoint
	Normal   vmath.Vec2
	Cell     maze.Point
	Distance float64
	// Exit is set when the ray struck the exit cell rather than a wall
	Exit bool
}

// Locator is the narrow continuous probe
type Locator struct {
	cfg      LocatorConfig
	cooldown Cooldown
	rng      vmath.Rand
}

func NewLocator(cfg LocatorConfig, rng vmath.Rand) *Locator {
	return &Locator{
		cfg:      cfg,
		cooldown: Cooldown{Period: cfg.Cooldown},
		rng:      rng,
	}
}

func (l *Locator) Kind() Kind { return KindLocator }

func (l *Locator) Config() LocatorConfig { return l.cfg }

func (l *Locator) Ready(now time.Time) bool { return l.cooldown.Ready(now) }

func (l *Locator) Progress(now time.Time) float64 { return l.cooldown.Progress(now) }

func (l *Locator) Reset() { l.cooldown.Reset() }

// Scan fires one jittered ray toward angle and returns the first thin wall or exit it meets.
// A scan while cooling down, or one that finds nothing within range, reports false.
// A miss still consumes the cooldown.
func (l *Locator) Scan(grid *maze.Grid, origin vmath.Vec2, angle float64, now time.Time) (Hit, bool) {
	if grid == nil || !l.cooldown.Fire(now) {
		return Hit{}, false
	}

	if l.cfg.AngleJitter > 0 {
		angle += vmath.Uniform(l.rng, -l.cfg.AngleJitter, l.cfg.AngleJitter)
	}

	var (
		hit   Hit
		found bool
	)
	march(origin, angle, l.cfg.MinOffset, l.cfg.MaxRange, l.cfg.Step, func(pos vmath.Vec2, dist float64) bool {
		cell := grid.CellAt(pos)
		if !grid.InBounds(cell.X, cell.Y) {
			return true
		}
		exit := grid.IsExit(cell.X, cell.Y)
		if !exit && !grid.IsThinWall(cell.X, cell.Y) {
			return true
		}
		hit = Hit{
			Point:    HitPoint{Pos: pos, At: now},
			Cell:     cell,
			Distance: dist,
			Exit:     exit,
		}
		found = true
		return false
	})
	if !found {
		return Hit{}, false
	}

	hit.Normal = WallNormal(grid, hit.Cell, hit.Point.Pos)
	if l.cfg.HitJitter > 0 {
		scattered := hit.Point.Pos.Add(hit.Normal.Scale(vmath.Uniform(l.rng, -l.cfg.HitJitter, l.cfg.HitJitter)))
		if d := scattered.Dist(origin); d <= l.cfg.MaxRange {
			hit.Point.Pos = scattered
			hit.Distance = d
		}
	}
	return hit, true
}
