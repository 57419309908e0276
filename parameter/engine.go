package parameter

import "time"

// Frame Timing
const (
	// TickInterval drives the frontend loops at ~60Hz
	TickInterval = 16 * time.Millisecond
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "sonar-maze.log"
	// LogMaxSize rotates the log to .old once exceeded
	LogMaxSize = 10 * 1024 * 1024
)
