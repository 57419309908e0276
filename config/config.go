// Package config holds the immutable game settings built once at startup
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/parameter"
	"github.com/lixenwraith/sonar-maze/sensor"
)

// Environment overrides, applied after the file
const (
	EnvSeed         = "SONAR_MAZE_SEED"
	EnvAudioEnabled = "SONAR_MAZE_AUDIO_ENABLED"
	EnvVolume       = "SONAR_MAZE_VOLUME"
)

var (
	ErrUnknownKeys = errors.New("config: unknown keys")
	ErrInvalid     = errors.New("config: invalid value")
)

// Duration decodes from TOML strings such as "25ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Maze struct {
	Cols              int     `toml:"cols"`
	Rows              int     `toml:"rows"`
	CellSize          float64 `toml:"cell_size"`
	StartZoneRadius   int     `toml:"start_zone_radius"`
	DangerRatio       float64 `toml:"danger_ratio"`
	MinDangerDistance int     `toml:"min_danger_distance"`
}

type Player struct {
	Radius       float64 `toml:"radius"`
	Speed        float64 `toml:"speed"`
	MaxGlow      float64 `toml:"max_glow"`
	GlowIncrease float64 `toml:"glow_increase"`
	GlowDecay    float64 `toml:"glow_decay"`
}

type Locator struct {
	Cooldown    Duration `toml:"cooldown"`
	MinOffset   float64  `toml:"min_offset"`
	MaxRange    float64  `toml:"max_range"`
	Step        float64  `toml:"step"`
	AngleJitter float64  `toml:"angle_jitter"`
	HitJitter   float64  `toml:"hit_jitter"`
}

type Detector struct {
	Cooldown  Duration `toml:"cooldown"`
	Spread    float64  `toml:"spread"`
	AngleStep float64  `toml:"angle_step"`
	MaxRange  float64  `toml:"max_range"`
	Step      float64  `toml:"step"`
}

type Audio struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
}

// Config is passed by value into every constructor and never mutated after Load
type Config struct {
	// Seed drives maze generation and sensor jitter, 0 picks one from the clock
	Seed int64 `toml:"seed"`

	// PointLifetime is how long locator points and detector waves are retained
	PointLifetime Duration `toml:"point_lifetime"`

	Maze     Maze     `toml:"maze"`
	Player   Player   `toml:"player"`
	Locator  Locator  `toml:"locator"`
	Detector Detector `toml:"detector"`
	Audio    Audio    `toml:"audio"`
}

func Default() Config {
	return Config{
		PointLifetime: Duration{parameter.PointLifetime},
		Maze: Maze{
			Cols:              parameter.MazeCols,
			Rows:              parameter.MazeRows,
			CellSize:          parameter.MazeCellSize,
			StartZoneRadius:   parameter.MazeStartZoneRadius,
			DangerRatio:       parameter.DangerZoneRatio,
			MinDangerDistance: parameter.DangerMinExitDistance,
		},
		Player: Player{
			Radius:       parameter.PlayerRadius,
			Speed:        parameter.PlayerSpeed,
			MaxGlow:      parameter.PlayerMaxGlow,
			GlowIncrease: parameter.PlayerGlowIncrease,
			GlowDecay:    parameter.PlayerGlowDecay,
		},
		Locator: Locator{
			Cooldown:    Duration{parameter.LocatorCooldown},
			MinOffset:   parameter.LocatorMinOffset,
			MaxRange:    parameter.LocatorMaxRange,
			Step:        parameter.LocatorStep,
			AngleJitter: parameter.LocatorAngleJitter,
			HitJitter:   parameter.LocatorHitJitter,
		},
		Detector: Detector{
			Cooldown:  Duration{parameter.DetectorCooldown},
			Spread:    parameter.DetectorSpread,
			AngleStep: parameter.DetectorAngleStep,
			MaxRange:  parameter.DetectorMaxRange,
			Step:      parameter.DetectorStep,
		},
		Audio: Audio{
			Enabled:    true,
			Volume:     parameter.AudioMasterVolume,
			SampleRate: parameter.AudioSampleRate,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and validates.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("%w in %s: %s", ErrUnknownKeys, path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg as TOML, replacing any existing file
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return f.Close()
}

// applyEnv overrides from the environment, malformed values are ignored
func (c *Config) applyEnv() {
	if seed := os.Getenv(EnvSeed); seed != "" {
		if val, err := strconv.ParseInt(seed, 10, 64); err == nil {
			c.Seed = val
		}
	}

	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = val
		}
	}

	// Volume 0-100 converted to 0.0-1.0
	if volume := os.Getenv(EnvVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.Audio.Volume = float64(val) / 100.0
			if c.Audio.Volume < 0 {
				c.Audio.Volume = 0
			}
			if c.Audio.Volume > 1 {
				c.Audio.Volume = 1
			}
		}
	}
}

// Validate checks every section, maze preconditions included
func (c Config) Validate() error {
	if err := c.MazeConfig().Validate(); err != nil {
		return err
	}

	checks := []struct {
		ok   bool
		what string
	}{
		{c.PointLifetime.Duration > 0, "point_lifetime must be positive"},
		{c.Player.Radius > 0, "player.radius must be positive"},
		{2*c.Player.Radius < c.Maze.CellSize, "player.radius must fit inside a corridor"},
		{c.Player.Speed > 0, "player.speed must be positive"},
		{c.Player.MaxGlow >= 0 && c.Player.GlowIncrease >= 0 && c.Player.GlowDecay >= 0, "player glow values must not be negative"},
		{c.Locator.Cooldown.Duration >= 0, "locator.cooldown must not be negative"},
		{c.Locator.Step > 0, "locator.step must be positive"},
		{c.Locator.MinOffset >= 0 && c.Locator.MinOffset <= c.Locator.MaxRange, "locator.min_offset must be within [0, max_range]"},
		{c.Locator.AngleJitter >= 0 && c.Locator.HitJitter >= 0, "locator jitter must not be negative"},
		{c.Detector.Cooldown.Duration >= 0, "detector.cooldown must not be negative"},
		{c.Detector.Step > 0 && c.Detector.MaxRange > 0, "detector.step and detector.max_range must be positive"},
		{c.Detector.Spread >= 0 && c.Detector.Spread <= 180, "detector.spread must be within [0, 180]"},
		{c.Detector.AngleStep > 0, "detector.angle_step must be positive"},
		{c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within [0, 1]"},
		{!c.Audio.Enabled || c.Audio.SampleRate > 0, "audio.sample_rate must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, chk.what)
		}
	}
	return nil
}

func (c Config) MazeConfig() maze.Config {
	return maze.Config{
		Cols:              c.Maze.Cols,
		Rows:              c.Maze.Rows,
		CellSize:          c.Maze.CellSize,
		StartZoneRadius:   c.Maze.StartZoneRadius,
		DangerRatio:       c.Maze.DangerRatio,
		MinDangerDistance: c.Maze.MinDangerDistance,
	}
}

func (c Config) LocatorConfig() sensor.LocatorConfig {
	return sensor.LocatorConfig{
		Cooldown:    c.Locator.Cooldown.Duration,
		MinOffset:   c.Locator.MinOffset,
		MaxRange:    c.Locator.MaxRange,
		Step:        c.Locator.Step,
		AngleJitter: c.Locator.AngleJitter,
		HitJitter:   c.Locator.HitJitter,
	}
}

func (c Config) DetectorConfig() sensor.DetectorConfig {
	return sensor.DetectorConfig{
		Cooldown:  c.Detector.Cooldown.Duration,
		Spread:    c.Detector.Spread,
		AngleStep: c.Detector.AngleStep,
		MaxRange:  c.Detector.MaxRange,
		Step:      c.Detector.Step,
	}
}
