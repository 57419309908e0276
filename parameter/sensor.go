package parameter

import "time"

// Locator (continuous narrow scan)
const (
	LocatorCooldown = 25 * time.Millisecond

	// LocatorMinOffset skips the samples inside the player body
	LocatorMinOffset = 5
	LocatorMaxRange  = 200
	LocatorStep      = 1

	// LocatorAngleJitter is the uniform heading noise in radians
	LocatorAngleJitter = 0.02

	// LocatorHitJitter scatters the hit point along the wall normal, in pixels
	LocatorHitJitter = 2
)

// Detector (cooldown-gated wide cone)
const (
	DetectorCooldown = 500 * time.Millisecond

	// DetectorSpread is the half-angle of the cone in degrees
	DetectorSpread    = 45
	DetectorAngleStep = 2
	DetectorMaxRange  = 200
	DetectorStep      = 3
)

// Sensor Point Retention
const (
	// PointLifetime is how long locator points and detector waves stay visible
	PointLifetime = 2500 * time.Millisecond

	// WaveRevealDuration is the sweep animation length of a detector wave
	WaveRevealDuration = 300 * time.Millisecond
)
