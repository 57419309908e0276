package navigation

import (
	"testing"

	"github.com/lixenwraith/sonar-maze/maze"
)

// TestPathCacheRecomputesOnlyOnChange verifies lazy recomputation while enabled
func TestPathCacheRecomputesOnlyOnChange(t *testing.T) {
	g := maze.MustParse(10,
		"######",
		"#S...E",
		"######",
	)
	c := NewPathCache()

	if c.Update(g, g.Start, g.Exit) {
		t.Error("Expected no compute while disabled")
	}
	if c.Path() != nil {
		t.Error("Expected nil path while disabled")
	}

	if !c.Toggle() {
		t.Fatal("Expected toggle to enable")
	}
	if !c.Update(g, g.Start, g.Exit) {
		t.Error("Expected first update to compute")
	}
	if c.Update(g, g.Start, g.Exit) {
		t.Error("Expected unchanged endpoints to reuse the cached route")
	}
	if len(c.Path()) != 4 {
		t.Errorf("Expected 4 steps, got %v", c.Path())
	}

	if !c.Update(g, pt(2, 1), g.Exit) {
		t.Error("Expected moved start to recompute")
	}
	if len(c.Path()) != 3 {
		t.Errorf("Expected 3 steps, got %v", c.Path())
	}

	c.Invalidate()
	if !c.Update(g, pt(2, 1), g.Exit) {
		t.Error("Expected invalidated cache to recompute")
	}
	if c.Computes != 3 {
		t.Errorf("Expected 3 computes, got %d", c.Computes)
	}

	if c.Toggle() {
		t.Error("Expected toggle to disable")
	}
	if c.Path() != nil || c.IsValid() {
		t.Error("Expected disabled cache to drop its route")
	}
}
