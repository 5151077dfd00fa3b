// Package config provides YAML-based configuration loading and difficulty
// presets for the dash game.
package config

import (
	"time"

	"github.com/vovakirdan/tui-dash/internal/games/dash/engine"
)

// DashConfig contains all configuration for the dash game.
type DashConfig struct {
	Timing     TimingConfig     `yaml:"timing"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
}

// TimingConfig defines the virtual-time units that pace the simulation.
type TimingConfig struct {
	Step     time.Duration `yaml:"step"`
	Settle   time.Duration `yaml:"settle"`
	Fall     time.Duration `yaml:"fall"`
	Patrol   time.Duration `yaml:"patrol"`
	EnemyGap time.Duration `yaml:"enemy_gap"`
}

// GameplayConfig defines session parameters.
type GameplayConfig struct {
	Lives  int    `yaml:"lives"`
	Level  string `yaml:"level"`  // level played when none is requested
	Width  int    `yaml:"width"`  // board width for level files without a size
	Height int    `yaml:"height"` // board height for level files without a size
}

// Engine converts the configuration into engine settings.
// speed scales every timing unit; values <= 0 or 1 keep the configured pacing.
func (c DashConfig) Engine(speed float64) engine.Config {
	timing := engine.Timing{
		Step:     c.Timing.Step,
		Settle:   c.Timing.Settle,
		Fall:     c.Timing.Fall,
		Patrol:   c.Timing.Patrol,
		EnemyGap: c.Timing.EnemyGap,
	}
	if speed > 0 && speed != 1 {
		timing = timing.Scaled(1 / speed)
	}
	return engine.Config{
		Timing: timing,
		Lives:  c.Gameplay.Lives,
	}
}
