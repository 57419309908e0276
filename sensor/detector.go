package sensor

import (
	"math"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/parameter"
	"github.com/lixenwraith/sonar-maze/vmath"
)

type DetectorConfig struct {
	Cooldown time.Duration

	// Spread is the cone half-angle in degrees
	Spread float64
	// AngleStep is the angular increment between rays in degrees
	AngleStep float64
	MaxRange  float64
	Step      float64
}

func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Cooldown:  parameter.DetectorCooldown,
		Spread:    parameter.DetectorSpread,
		AngleStep: parameter.DetectorAngleStep,
		MaxRange:  parameter.DetectorMaxRange,
		Step:      parameter.DetectorStep,
	}
}

// Wave is one detector activation
type Wave struct {
	Origin vmath.Vec2
	Angle  float64
	At     time.Time

	// Points holds every in-bounds sample of every ray
	Points []HitPoint
	// Dangers holds the samples that landed on danger cells
	Dangers []HitPoint
	// DangerCells lists each danger cell touched, once, in discovery order
	DangerCells []maze.Point

	Left, Right Ray
}

// Detector is the wide-cone danger probe
type Detector struct {
	cfg      DetectorConfig
	cooldown Cooldown
}

func NewDetector(cfg DetectorConfig) *Detector {
	return &Detector{
		cfg:      cfg,
		cooldown: Cooldown{Period: cfg.Cooldown},
	}
}

func (d *Detector) Kind() Kind { return KindDetector }

func (d *Detector) Config() DetectorConfig { return d.cfg }

func (d *Detector) Ready(now time.Time) bool { return d.cooldown.Ready(now) }

func (d *Detector) Progress(now time.Time) float64 { return d.cooldown.Progress(now) }

func (d *Detector) Reset() { d.cooldown.Reset() }

// RayCount returns the number of rays in one sweep
func (d *Detector) RayCount() int {
	if d.cfg.AngleStep <= 0 || d.cfg.Spread <= 0 {
		return 1
	}
	return int(math.Floor(2*d.cfg.Spread/d.cfg.AngleStep+1e-9)) + 1
}

// Scan sweeps the cone centered on angle, false while cooling down.
// Danger cells are recorded in passing; a ray stops at the grid edge, a thin wall,
// or any other wall that is not a danger zone.
func (d *Detector) Scan(grid *maze.Grid, origin vmath.Vec2, angle float64, now time.Time) (Wave, bool) {
	if grid == nil || !d.cooldown.Fire(now) {
		return Wave{}, false
	}

	spread := vmath.Radians(d.cfg.Spread)
	wave := Wave{Origin: origin, Angle: angle, At: now}
	wave.Left, wave.Right = ConeEdges(origin, angle, spread, d.cfg.MaxRange)

	seen := mapset.New[maze.Point]()
	rays := d.RayCount()
	for i := 0; i < rays; i++ {
		delta := -d.cfg.Spread + float64(i)*d.cfg.AngleStep
		if rays == 1 {
			delta = 0
		}

		march(origin, angle+vmath.Radians(delta), 0, d.cfg.MaxRange, d.cfg.Step, func(pos vmath.Vec2, _ float64) bool {
			cell := grid.CellAt(pos)
			if !grid.InBounds(cell.X, cell.Y) {
				return false
			}

			sample := HitPoint{Pos: pos, At: now}
			wave.Points = append(wave.Points, sample)

			danger := grid.IsDanger(cell.X, cell.Y)
			if danger {
				wave.Dangers = append(wave.Dangers, sample)
				if !seen.Has(cell) {
					seen.Put(cell)
					wave.DangerCells = append(wave.DangerCells, cell)
				}
			}

			if grid.IsThinWall(cell.X, cell.Y) || (grid.IsWall(cell.X, cell.Y) && !danger) {
				return false
			}
			return true
		})
	}
	return wave, true
}
