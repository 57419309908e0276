package parameter

// Player Body
const (
	PlayerRadius = 10
	// PlayerSpeed is pixels per tick on a single axis, diagonal is scaled by 1/√2
	PlayerSpeed = 3.5
)

// Player Glow (locator hit feedback)
const (
	PlayerMaxGlow      = 1.0
	PlayerGlowIncrease = 0.2
	// PlayerGlowDecay is glow units lost per second
	PlayerGlowDecay = 5.0
)
