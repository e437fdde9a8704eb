package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-shooter/internal/games/bubbles"
	"github.com/vovakirdan/bubble-shooter/internal/platform/tui"
	"github.com/vovakirdan/bubble-shooter/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a level.
After a round ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Scoreboard
  Q            - Quit

Examples:
  bubbles menu
  bubbles menu --fps 30
  bubbles menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("scoreboard failed", "error", err)
			}
			if goBack {
				continue
			}
			return nil
		}

		bubbles.SetStartLevel(result.Level)
		game, err := registry.Create("bubbles")
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}

		// Fresh field every round unless a seed was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		st, err := tui.Run(game, store, cfg)
		if err != nil {
			logger.Error("game failed", "error", err)
			continue
		}
		logger.Debug("round finished", "score", st.Score, "level", st.Level, "won", st.Won)
	}
}
