package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/dash.yaml
var defaultDashYAML []byte

// DefaultDashConfig returns the default dash configuration.
func DefaultDashConfig() DashConfig {
	return DashConfig{
		Timing: TimingConfig{
			Step:     200 * time.Millisecond,
			Settle:   800 * time.Millisecond,
			Fall:     200 * time.Millisecond,
			Patrol:   200 * time.Millisecond,
			EnemyGap: 400 * time.Millisecond,
		},
		Gameplay: GameplayConfig{
			Lives:  3,
			Level:  "classic",
			Width:  40,
			Height: 14,
		},
		Difficulty: DifficultyNormal,
	}
}
