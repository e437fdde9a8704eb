package config

import (
	_ "embed"
)

//go:embed defaults/bubbles.yaml
var defaultBubblesYAML []byte

// DefaultBubblesConfig returns the default bubble shooter configuration.
func DefaultBubblesConfig() BubblesConfig {
	return BubblesConfig{
		Levels: []LevelSpec{
			{Index: 1, Name: "Shallows", Colors: 3, Background: "waves", MatchRule: "path"},
			{Index: 2, Name: "Reef", Colors: 5, Background: "coral", MatchRule: "path"},
			{Index: 3, Name: "Abyss", Colors: 7, Background: "deep", MatchRule: "path"},
		},
		Display: DisplayConfig{
			AimStep:   3,
			Theme:     "default",
			ShowGuide: true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "bubbles":
		return defaultBubblesYAML
	default:
		return nil
	}
}
