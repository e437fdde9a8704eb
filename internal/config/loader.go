package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadBubbles loads the bubble shooter configuration.
// Search order: customPath -> ~/.arcade/configs/bubbles.yaml -> ./configs/bubbles.yaml -> embedded default
// A custom path that cannot be read, parsed or validated is an error; the
// other locations are skipped silently when unusable.
func LoadBubbles(customPath string) (BubblesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BubblesConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseBubbles(data)
		if err != nil {
			return BubblesConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bubbles.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseBubbles(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "bubbles.yaml")); err == nil {
		if cfg, err := ParseBubbles(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseBubbles(defaultBubblesYAML)
	if err != nil {
		return DefaultBubblesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseBubbles decodes and validates a bubble shooter YAML document.
// Missing display values are taken from the defaults; levels are sorted by index.
func ParseBubbles(data []byte) (BubblesConfig, error) {
	cfg := BubblesConfig{Display: DefaultBubblesConfig().Display}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BubblesConfig{}, fmt.Errorf("failed to parse yaml: %w", err)
	}

	sort.SliceStable(cfg.Levels, func(i, j int) bool {
		return cfg.Levels[i].Index < cfg.Levels[j].Index
	})

	if err := cfg.Validate(); err != nil {
		return BubblesConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
