package navigation

import (
	"github.com/lixenwraith/sonar-maze/maze"
)

// PathCache holds the hint route and recomputes it only while enabled and only when an endpoint moves
type PathCache struct {
	Enabled bool

	// Computes counts A* runs since creation
	Computes int

	path      []maze.Point
	lastStart maze.Point
	lastGoal  maze.Point
	valid     bool
}

func NewPathCache() *PathCache {
	return &PathCache{}
}

// Toggle flips the hint and returns the new state; disabling drops the cached route
func (c *PathCache) Toggle() bool {
	c.Enabled = !c.Enabled
	if !c.Enabled {
		c.Invalidate()
	}
	return c.Enabled
}

// Update recomputes if needed, returns true if A* ran this call
func (c *PathCache) Update(t Terrain, start, goal maze.Point) bool {
	if !c.Enabled {
		return false
	}
	if c.valid && start == c.lastStart && goal == c.lastGoal {
		return false
	}

	c.path = FindPath(t, start, goal)
	c.lastStart = start
	c.lastGoal = goal
	c.valid = true
	c.Computes++
	return true
}

// Invalidate forces recomputation on next Update
func (c *PathCache) Invalidate() {
	c.path = nil
	c.valid = false
}

// Path returns the cached route, nil while disabled
func (c *PathCache) Path() []maze.Point {
	if !c.Enabled {
		return nil
	}
	return c.path
}

// IsValid returns true if the cached route matches the last endpoints
func (c *PathCache) IsValid() bool {
	return c.valid
}
