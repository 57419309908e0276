package vmath

import (
	"math"
	"time"
)

// InvSqrt2 scales axial speed down to diagonal speed
const InvSqrt2 = 0.7071067811865476

// --- Scalars ---

// Clamp constrains v to the inclusive [lo, hi] range
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt constrains v to the inclusive [lo, hi] range
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp performs linear interpolation between a and b, t in [0, 1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// AbsInt returns the absolute value of an int
func AbsInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// --- Angles ---

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// AngleTo returns the heading from a to b in radians, screen coordinates (Y down)
func AngleTo(a, b Vec2) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// --- Randomness ---

// Rand is the random source threaded through generation and sensors
// Satisfied by *FastRand and *math/rand.Rand
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// FastRand is a xorshift64 generator, deterministic for a given seed
type FastRand struct {
	state uint64
}

// NewFastRand creates a generator; seed 0 is remapped since xorshift sticks at zero
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// SeedFromTime returns a non-zero seed derived from the wall clock
func SeedFromTime() int64 {
	s := time.Now().UnixNano()
	if s == 0 {
		s = 1
	}
	return s
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n), 0 for n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1) with 53 bits of precision
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Uniform returns a value in [lo, hi) drawn from rng
func Uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// IntRange returns a value in the inclusive [lo, hi] range drawn from rng
func IntRange(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
