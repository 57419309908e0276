// Package sensor implements the two ray-marching probes: the narrow locator that
// reveals single wall points and the wide-cone detector that reveals danger zones.
package sensor

import (
	"math"
	"time"

	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/vmath"
)

// Kind names the closed set of sensor variants
type Kind uint8

const (
	KindLocator Kind = iota
	KindDetector
)

func (k Kind) String() string {
	switch k {
	case KindLocator:
		return "locator"
	case KindDetector:
		return "detector"
	default:
		return "unknown"
	}
}

// HitPoint is a sampled or hit position tagged with its creation time
type HitPoint struct {
	Pos vmath.Vec2
	At  time.Time
}

// Ray is a pure geometric segment, never hit-tested
type Ray struct {
	From, To vmath.Vec2
}

// Cooldown gates repeated activations; the zero value with a Period is ready
type Cooldown struct {
	Period time.Duration

	last  time.Time
	fired bool
}

// Ready reports whether Period has elapsed since the last activation
func (c *Cooldown) Ready(now time.Time) bool {
	return !c.fired || now.Sub(c.last) >= c.Period
}

// Fire records an activation at now, false if still cooling down
func (c *Cooldown) Fire(now time.Time) bool {
	if !c.Ready(now) {
		return false
	}
	c.last = now
	c.fired = true
	return true
}

// Progress returns the recharge fraction in [0, 1]
func (c *Cooldown) Progress(now time.Time) float64 {
	if !c.fired || c.Period <= 0 {
		return 1
	}
	return vmath.Clamp(float64(now.Sub(c.last))/float64(c.Period), 0, 1)
}

// Reset makes the gate ready immediately
func (c *Cooldown) Reset() {
	c.fired = false
	c.last = time.Time{}
}

// march visits samples along angle at from, from+step, ... up to and including to.
// Distances are derived from the sample index so long rays do not accumulate drift.
// visit returns false to stop the ray.
func march(origin vmath.Vec2, angle, from, to, step float64, visit func(pos vmath.Vec2, dist float64) bool) {
	if step <= 0 || to < from {
		return
	}
	dir := vmath.FromAngle(angle)
	n := int(math.Floor((to-from)/step + 1e-9))
	for i := 0; i <= n; i++ {
		d := from + float64(i)*step
		if !visit(origin.Add(dir.Scale(d)), d) {
			return
		}
	}
}

// WallNormal returns the outward unit normal of the cell edge nearest to hit.
// Ties resolve in left, right, top, bottom order.
func WallNormal(grid *maze.Grid, cell maze.Point, hit vmath.Vec2) vmath.Vec2 {
	lo, hi := grid.CellBounds(cell)

	best := math.Abs(hit.X - lo.X)
	normal := vmath.Vec2{X: -1}

	if d := math.Abs(hit.X - hi.X); d < best {
		best, normal = d, vmath.Vec2{X: 1}
	}
	if d := math.Abs(hit.Y - lo.Y); d < best {
		best, normal = d, vmath.Vec2{Y: -1}
	}
	if d := math.Abs(hit.Y - hi.Y); d < best {
		normal = vmath.Vec2{Y: 1}
	}
	return normal
}

// ConeEdges returns the two boundary rays of a cone of half-angle spread (radians)
func ConeEdges(origin vmath.Vec2, angle, spread, length float64) (left, right Ray) {
	left = Ray{From: origin, To: origin.Along(angle-spread, length)}
	right = Ray{From: origin, To: origin.Along(angle+spread, length)}
	return left, right
}
