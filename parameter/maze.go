package parameter

// Maze Grid
const (
	// MazeCols and MazeRows give a 990x810 playfield at the default cell size
	MazeCols = 33
	MazeRows = 27

	// MazeCellSize is the side length of one grid cell in pixels
	MazeCellSize = 30

	// MazeStartZoneRadius clears a (2r+1)² block at the grid center for the spawn
	MazeStartZoneRadius = 1
)

// Danger Zones
const (
	// DangerZoneRatio is the fraction of border walls converted to hidden danger zones
	DangerZoneRatio = 0.3

	// DangerMinExitDistance excludes walls within this Chebyshev distance of the exit
	DangerMinExitDistance = 2
)
