// bubbles is a hexagonal bubble shooter for the terminal.
//
// Usage:
//
//	bubbles play             - Play from the first (or --level) level
//	bubbles menu             - Pick a level interactively
//	bubbles levels           - List the configured levels
//	bubbles scores           - Show high scores
//	bubbles serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Use a custom level config YAML
//	--difficulty <preset> - easy, normal or hard
//	--debug               - Write debug logs to ~/.arcade/debug.log
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-shooter/internal/config"
	"github.com/vovakirdan/bubble-shooter/internal/games/bubbles"
	"github.com/vovakirdan/bubble-shooter/internal/platform/tui"
	"github.com/vovakirdan/bubble-shooter/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bubbles",
	})
	debugFile io.Closer
)

func main() {
	err := rootCmd.Execute()
	if debugFile != nil {
		debugFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubbles",
	Short: "Bubble Shooter - pop bubbles in your terminal",
	Long: `Bubble Shooter is a hexagonal bubble shooter for the terminal.

Aim the launcher, fire coloured bubbles and pop groups of three or more.
Bubbles cut off from the ceiling fall. Clear the field to advance;
let a bubble settle below the danger line and the round is lost.

Available commands:
  play     - Play directly
  menu     - Interactive level picker
  levels   - Show the configured levels
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  bubbles play
  bubbles play --level 2 --difficulty easy
  bubbles menu --config ./my-levels.yaml
  bubbles scores --level 3
  bubbles serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom level config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs to ~/.arcade/debug.log")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the level config and theme shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	if flagDebug {
		if err := enableDebugLog(); err != nil {
			logger.Warn("could not open debug log", "error", err)
		}
	}

	cfg, err := config.LoadBubbles(flagConfig)
	if err != nil {
		return err
	}

	switch preset := config.DifficultyPreset(flagDifficulty); preset {
	case "":
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard:
		config.ApplyBubblesPreset(&cfg, preset)
	default:
		return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	bubbles.Configure(cfg)

	if theme, ok := tui.ThemeByName(cfg.Display.Theme); ok {
		tui.SetTheme(theme)
	} else {
		logger.Warn("unknown theme, using default", "theme", cfg.Display.Theme, "available", tui.ThemeNames())
	}

	logger.Debug("config loaded", "levels", len(cfg.Levels), "difficulty", flagDifficulty, "theme", cfg.Display.Theme)
	return nil
}

// enableDebugLog redirects logging to a file, since the terminal belongs to the game.
func enableDebugLog() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	debugFile = f

	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "bubbles",
		Level:           log.DebugLevel,
	})
	bubbles.SetLogger(logger.WithPrefix("game"))
	return nil
}

// openStore opens the scores database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
