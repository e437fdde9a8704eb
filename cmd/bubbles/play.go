package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bubble-shooter/internal/core"
	"github.com/vovakirdan/bubble-shooter/internal/games/bubbles"
	"github.com/vovakirdan/bubble-shooter/internal/platform/tui"
	"github.com/vovakirdan/bubble-shooter/internal/registry"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Bubble Shooter",
	Long: `Start playing right away.

Controls:
  Left/Right, A/D  - Aim
  Space            - Fire
  Mouse click      - Aim at the clicked cell and fire
  P                - Pause
  R                - Restart
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Five starting rows, any group of three pops
  normal - Level defaults
  hard   - Ten starting rows

Examples:
  bubbles play
  bubbles play --level 3
  bubbles play --difficulty hard --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start from (1-indexed)")
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, _ []string) error {
	if n := bubbles.LevelCount(); flagLevel < 0 || flagLevel > n {
		return fmt.Errorf("level %d out of range (1-%d)", flagLevel, n)
	}
	bubbles.SetStartLevel(flagLevel)

	game, err := registry.Create("bubbles")
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	logger.Debug("starting game", "level", flagLevel, "seed", cfg.Seed, "size", fmt.Sprintf("%dx%d", cfg.ScreenW, cfg.ScreenH))

	st, err := tui.Run(game, store, cfg)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	switch {
	case st.Won:
		fmt.Printf("All levels cleared! Final score: %d\n", st.Score)
	default:
		fmt.Printf("Final score: %d (level %d)\n", st.Score, st.Level)
	}
	return nil
}
