package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-shooter/internal/games/bubbles"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the configured levels",
	Long: `Shows the level set in play order, as loaded from --config,
~/.arcade/configs/bubbles.yaml, ./configs/bubbles.yaml or the built-in defaults.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	levels, err := bubbles.Levels()
	if err != nil {
		return err
	}

	if len(levels) == 0 {
		fmt.Println("No levels configured.")
		return nil
	}

	maxNameLen := len("Name")
	for _, l := range levels {
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Printf("  %-3s  %-*s  %-6s  %-9s  %-4s  %s\n", "#", maxNameLen, "Name", "Colors", "Rule", "Rows", "Backdrop")
	fmt.Printf("  %-3s  %-*s  %-6s  %-9s  %-4s  %s\n", "-", maxNameLen, "----", "------", "----", "----", "--------")
	for i, l := range levels {
		fmt.Printf("  %-3d  %-*s  %-6d  %-9s  %-4d  %s\n", i+1, maxNameLen, l.Name, l.ColorCount, l.MatchRule, l.FillRows, l.Background)
	}

	fmt.Println()
	fmt.Println("Run 'bubbles play --level <#>' to start from a level.")
	return nil
}
