// Package config loads the YAML tuning file shared by the engine and
// the demo systems, with optional live reload through the Watcher.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root tuning document.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	World  WorldConfig  `yaml:"world"`
	Spawn  SpawnConfig  `yaml:"spawn"`
	Motion MotionConfig `yaml:"motion"`
	Audio  AudioConfig  `yaml:"audio"`
}

// EngineConfig tunes the game loop.
type EngineConfig struct {
	// TickRate is the fixed loop frequency in ticks per second.
	TickRate int `yaml:"tick_rate"`
	// MaxDelta clamps a single tick's delta time, in seconds.
	MaxDelta float64 `yaml:"max_delta"`
	// TimeScale multiplies logical time.
	TimeScale float64 `yaml:"time_scale"`
}

// WorldConfig tunes entity store behavior.
type WorldConfig struct {
	// Strict turns unregistered component types into errors instead
	// of pass-through warnings.
	Strict bool `yaml:"strict"`
}

// SpawnConfig tunes the glyph spawner.
type SpawnConfig struct {
	// Interval between spawns, in seconds.
	Interval float64 `yaml:"interval"`
	// MaxGlyphs caps live glyph entities.
	MaxGlyphs int `yaml:"max_glyphs"`
	// Lifetime of a spawned glyph, in seconds.
	Lifetime float64 `yaml:"lifetime"`
}

// MotionConfig tunes the movement system.
type MotionConfig struct {
	// Gravity in cells per second squared.
	Gravity float64 `yaml:"gravity"`
}

// AudioConfig tunes the audio system.
type AudioConfig struct {
	Enabled    bool `yaml:"enabled"`
	SampleRate int  `yaml:"sample_rate"`
}

// Default returns the built-in tuning used when no file is present.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			TickRate:  60,
			MaxDelta:  0.1,
			TimeScale: 1.0,
		},
		Spawn: SpawnConfig{
			Interval:  0.25,
			MaxGlyphs: 120,
			Lifetime:  8.0,
		},
		Motion: MotionConfig{
			Gravity: 12.0,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
	}
}

// Load reads a YAML tuning file over the defaults, so partial files
// only override what they mention.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}
