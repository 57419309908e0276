package sensor

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/vmath"
)

var epoch = time.Unix(1_700_000_000, 0)

func corridor() *maze.Grid {
	return maze.MustParse(10,
		"##########",
		"#S.......#",
		"##########",
	)
}

func exactLocator(maxRange float64) *Locator {
	cfg := DefaultLocatorConfig()
	cfg.AngleJitter = 0
	cfg.HitJitter = 0
	cfg.MaxRange = maxRange
	return NewLocator(cfg, vmath.NewFastRand(1))
}

// TestCooldownGate verifies Fire respects the period and Progress tracks recharge
func TestCooldownGate(t *testing.T) {
	c := Cooldown{Period: 100 * time.Millisecond}

	if !c.Ready(epoch) || c.Progress(epoch) != 1 {
		t.Fatal("Expected fresh cooldown to be ready")
	}
	if !c.Fire(epoch) {
		t.Fatal("Expected first fire to succeed")
	}
	if c.Fire(epoch.Add(50 * time.Millisecond)) {
		t.Error("Expected fire during cooldown to fail")
	}
	if p := c.Progress(epoch.Add(50 * time.Millisecond)); math.Abs(p-0.5) > 1e-9 {
		t.Errorf("Expected progress 0.5, got %v", p)
	}
	if !c.Fire(epoch.Add(100 * time.Millisecond)) {
		t.Error("Expected fire after full period to succeed")
	}

	c.Reset()
	if !c.Ready(epoch.Add(100 * time.Millisecond)) {
		t.Error("Expected reset cooldown to be ready")
	}
}

// TestWallNormalNearestEdge verifies the outward normal of each cell edge
func TestWallNormalNearestEdge(t *testing.T) {
	g := corridor()
	cell := maze.Point{X: 1, Y: 1}

	tests := []struct {
		name string
		hit  vmath.Vec2
		want vmath.Vec2
	}{
		{"left", vmath.V(10.5, 15), vmath.V(-1, 0)},
		{"right", vmath.V(19.5, 15), vmath.V(1, 0)},
		{"top", vmath.V(15, 10.2), vmath.V(0, -1)},
		{"bottom", vmath.V(15, 19.9), vmath.V(0, 1)},
		{"tie prefers left", vmath.V(10, 10), vmath.V(-1, 0)},
	}
	for _, tt := range tests {
		if got := WallNormal(g, cell, tt.hit); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

// TestConeEdges verifies boundary rays are symmetric around the aim angle
func TestConeEdges(t *testing.T) {
	origin := vmath.V(100, 100)
	left, right := ConeEdges(origin, 0, math.Pi/4, 200)

	if left.From != origin || right.From != origin {
		t.Error("Expected both edges to start at origin")
	}
	if math.Abs(left.To.Dist(origin)-200) > 1e-9 || math.Abs(right.To.Dist(origin)-200) > 1e-9 {
		t.Errorf("Expected edge length 200, got %v and %v", left.To.Dist(origin), right.To.Dist(origin))
	}
	if math.Abs(left.To.X-right.To.X) > 1e-9 || math.Abs((left.To.Y-100)+(right.To.Y-100)) > 1e-9 {
		t.Errorf("Expected mirrored edges, got %v and %v", left.To, right.To)
	}
	if left.To.Y >= 100 {
		t.Errorf("Expected left edge at negative angle, got %v", left.To)
	}
}

// TestMarchIncludesEndpoints verifies sample placement along a ray
func TestMarchIncludesEndpoints(t *testing.T) {
	var dists []float64
	march(vmath.V(0, 0), 0, 0, 9, 3, func(_ vmath.Vec2, d float64) bool {
		dists = append(dists, d)
		return true
	})
	want := []float64{0, 3, 6, 9}
	if len(dists) != len(want) {
		t.Fatalf("Expected %v, got %v", want, dists)
	}
	for i := range want {
		if dists[i] != want[i] {
			t.Errorf("Expected sample %d at %v, got %v", i, want[i], dists[i])
		}
	}

	calls := 0
	march(vmath.V(0, 0), 0, 0, 9, 0, func(vmath.Vec2, float64) bool {
		calls++
		return true
	})
	if calls != 0 {
		t.Errorf("Expected zero step to sample nothing, got %d", calls)
	}
}
