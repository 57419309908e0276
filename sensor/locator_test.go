package sensor

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/vmath"
)

// TestLocatorHitsFirstThinWall verifies the exact hit along a clear corridor
func TestLocatorHitsFirstThinWall(t *testing.T) {
	loc := exactLocator(200)

	hit, ok := loc.Scan(corridor(), vmath.V(15, 15), 0, epoch)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Cell != (maze.Point{X: 9, Y: 1}) {
		t.Errorf("Expected cell (9,1), got %v", hit.Cell)
	}
	if hit.Point.Pos != vmath.V(90, 15) {
		t.Errorf("Expected point (90,15), got %v", hit.Point.Pos)
	}
	if hit.Distance != 75 {
		t.Errorf("Expected distance 75, got %v", hit.Distance)
	}
	if hit.Normal != vmath.V(-1, 0) {
		t.Errorf("Expected normal facing the player, got %v", hit.Normal)
	}
	if !hit.Point.At.Equal(epoch) {
		t.Errorf("Expected timestamp %v, got %v", epoch, hit.Point.At)
	}
	if hit.Exit {
		t.Error("Expected wall hit, not exit")
	}
}

// TestLocatorMissBeyondRange verifies open space returns nothing, repeatedly
func TestLocatorMissBeyondRange(t *testing.T) {
	loc := exactLocator(50)
	g := corridor()

	for i := 0; i < 3; i++ {
		now := epoch.Add(time.Duration(i) * time.Second)
		if _, ok := loc.Scan(g, vmath.V(15, 15), 0, now); ok {
			t.Errorf("Scan %d: expected miss with wall at 75px and range 50", i)
		}
	}

	rows := make([]string, 60)
	for y := range rows {
		row := make([]byte, 60)
		for x := range row {
			row[x] = '.'
		}
		rows[y] = string(row)
	}
	open := maze.MustParse(10, rows...)
	loc = NewLocator(DefaultLocatorConfig(), vmath.NewFastRand(3))
	for i := 0; i < 8; i++ {
		now := epoch.Add(time.Duration(i) * time.Second)
		if _, ok := loc.Scan(open, vmath.V(300, 300), float64(i)*math.Pi/4, now); ok {
			t.Errorf("Scan %d: expected miss in open field", i)
		}
	}
}

// TestLocatorRangeBound verifies scattered points never exceed max range
func TestLocatorRangeBound(t *testing.T) {
	// The wall starts 75px out; jittered rays need slightly more reach to touch it
	cfg := DefaultLocatorConfig()
	cfg.MaxRange = 76
	loc := NewLocator(cfg, vmath.NewFastRand(7))
	g := corridor()
	origin := vmath.V(15, 15)

	hits := 0
	for i := 0; i < 200; i++ {
		now := epoch.Add(time.Duration(i) * cfg.Cooldown)
		hit, ok := loc.Scan(g, origin, 0, now)
		if !ok {
			continue
		}
		hits++
		if d := hit.Point.Pos.Dist(origin); d > cfg.MaxRange+1e-9 {
			t.Fatalf("Scan %d: expected distance <= %v, got %v", i, cfg.MaxRange, d)
		}
	}
	if hits == 0 {
		t.Error("Expected at least one hit at the range edge")
	}
}

// TestLocatorRangeBoundGenerated verifies the bound over a generated maze and random aims
func TestLocatorRangeBoundGenerated(t *testing.T) {
	rng := vmath.NewFastRand(42)
	g, err := maze.Generate(maze.Config{
		Cols: 33, Rows: 27, CellSize: 30,
		StartZoneRadius: 1, DangerRatio: 0.3, MinDangerDistance: 2,
	}, rng)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	loc := NewLocator(DefaultLocatorConfig(), rng)
	origin := g.CellCenter(g.Start)
	for i := 0; i < 500; i++ {
		now := epoch.Add(time.Duration(i) * time.Second)
		hit, ok := loc.Scan(g, origin, vmath.Uniform(rng, -math.Pi, math.Pi), now)
		if !ok {
			continue
		}
		if d := hit.Point.Pos.Dist(origin); d > loc.Config().MaxRange+1e-9 {
			t.Fatalf("Expected distance <= %v, got %v", loc.Config().MaxRange, d)
		}
		if !g.IsThinWall(hit.Cell.X, hit.Cell.Y) && !g.IsExit(hit.Cell.X, hit.Cell.Y) {
			t.Fatalf("Expected hit on a thin wall or exit, got cell %v", hit.Cell)
		}
	}
}

// TestLocatorCooldown verifies scans are rejected until the cooldown elapses, misses included
func TestLocatorCooldown(t *testing.T) {
	loc := exactLocator(50)
	g := corridor()
	origin := vmath.V(15, 15)

	loc.Scan(g, origin, 0, epoch)
	if loc.Ready(epoch.Add(10 * time.Millisecond)) {
		t.Error("Expected locator cooling down after a miss")
	}

	loc = exactLocator(200)
	if _, ok := loc.Scan(g, origin, 0, epoch); !ok {
		t.Fatal("Expected first scan to hit")
	}
	if _, ok := loc.Scan(g, origin, 0, epoch.Add(10*time.Millisecond)); ok {
		t.Error("Expected scan within 25ms to be rejected")
	}
	if _, ok := loc.Scan(g, origin, 0, epoch.Add(25*time.Millisecond)); !ok {
		t.Error("Expected scan after 25ms to hit")
	}
}

// TestLocatorSeesExitNotDanger verifies danger walls are transparent and the exit is reported
func TestLocatorSeesExitNotDanger(t *testing.T) {
	g := maze.MustParse(10,
		"#########",
		"#S..X...E",
		"#########",
	)
	hit, ok := exactLocator(200).Scan(g, vmath.V(15, 15), 0, epoch)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if !hit.Exit || hit.Cell != (maze.Point{X: 8, Y: 1}) {
		t.Errorf("Expected exit hit at (8,1), got %+v", hit)
	}
}
