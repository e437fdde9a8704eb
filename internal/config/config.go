// Package config provides YAML-based configuration loading for the bubble shooter:
// the level set and presentation settings.
package config

import (
	"errors"
	"fmt"
)

// Limits enforced by Validate.
const (
	MaxColors  = 7
	MaxAimStep = 45.0
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// BubblesConfig contains all configuration for the bubble shooter.
type BubblesConfig struct {
	Levels  []LevelSpec   `yaml:"levels"`
	Display DisplayConfig `yaml:"display"`
}

// LevelSpec defines a single level.
type LevelSpec struct {
	Index      int    `yaml:"index"`
	Name       string `yaml:"name"`
	Colors     int    `yaml:"colors"`               // Palette size, 1..7
	FillRows   int    `yaml:"fill_rows,omitempty"`  // Rows filled at start; 0 = half the lattice
	Background string `yaml:"background,omitempty"` // Backdrop pattern name
	MatchRule  string `yaml:"match_rule,omitempty"` // "path" (default) or "component"
}

// DisplayConfig defines presentation parameters.
type DisplayConfig struct {
	AimStep   float64 `yaml:"aim_step"`   // Degrees per left/right key press
	Theme     string  `yaml:"theme"`      // "default", "neon", "pastel" or "mono"
	ShowGuide bool    `yaml:"show_guide"` // Draw the aim guide line
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// FillRowsForPreset returns the number of starting rows for a preset.
// Returns 0 (level default) for normal or unknown presets.
func FillRowsForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 0
	}
}

// ApplyBubblesPreset modifies the level set based on a difficulty preset.
func ApplyBubblesPreset(cfg *BubblesConfig, preset DifficultyPreset) {
	rows := FillRowsForPreset(preset)
	if rows == 0 {
		return
	}
	for i := range cfg.Levels {
		cfg.Levels[i].FillRows = rows
	}
	// Easy mode pops any connected group of three
	if preset == DifficultyEasy {
		for i := range cfg.Levels {
			cfg.Levels[i].MatchRule = "component"
		}
	}
}

// Validate checks the configuration for values the game cannot run with.
func (c BubblesConfig) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: no levels defined", ErrInvalidConfig)
	}

	seen := make(map[int]bool, len(c.Levels))
	for i, l := range c.Levels {
		if l.Index <= 0 {
			return fmt.Errorf("%w: level #%d has index %d", ErrInvalidConfig, i+1, l.Index)
		}
		if seen[l.Index] {
			return fmt.Errorf("%w: duplicate level index %d", ErrInvalidConfig, l.Index)
		}
		seen[l.Index] = true

		if l.Colors < 1 || l.Colors > MaxColors {
			return fmt.Errorf("%w: level %d has %d colors (want 1..%d)", ErrInvalidConfig, l.Index, l.Colors, MaxColors)
		}
		if l.FillRows < 0 {
			return fmt.Errorf("%w: level %d has negative fill_rows", ErrInvalidConfig, l.Index)
		}
		switch l.MatchRule {
		case "", "path", "component":
		default:
			return fmt.Errorf("%w: level %d has unknown match_rule %q", ErrInvalidConfig, l.Index, l.MatchRule)
		}
	}

	if c.Display.AimStep <= 0 || c.Display.AimStep > MaxAimStep {
		return fmt.Errorf("%w: aim_step %.1f out of range (0, %.0f]", ErrInvalidConfig, c.Display.AimStep, MaxAimStep)
	}
	return nil
}

// Level returns the level with the given index.
func (c BubblesConfig) Level(index int) (LevelSpec, bool) {
	for _, l := range c.Levels {
		if l.Index == index {
			return l, true
		}
	}
	return LevelSpec{}, false
}
