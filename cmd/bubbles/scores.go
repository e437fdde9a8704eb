package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-shooter/internal/games/bubbles"
	"github.com/vovakirdan/bubble-shooter/internal/storage"
)

var flagScoresLevel int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 high scores, for all levels or for the level
a round ended on.

Examples:
  bubbles scores
  bubbles scores --level 2`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLevel, "level", 0, "Only show scores for this level (0 = all)")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	scores, err := store.TopScores("bubbles", flagScoresLevel, 10)
	if err != nil {
		return err
	}

	title := "High Scores - Bubble Shooter"
	if flagScoresLevel > 0 {
		title = fmt.Sprintf("%s (level %d)", title, flagScoresLevel)
		if name, ok := bubbles.LevelName(flagScoresLevel); ok {
			title = fmt.Sprintf("High Scores - Bubble Shooter (level %d: %s)", flagScoresLevel, name)
		}
	}
	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bubbles play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-12s  %s\n", "Rank", "Score", "Level", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-12s  %s\n", "----", "-----", "-----", "------", "----")
	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-10d  %-5d  %-12s  %s\n", i+1, e.Score, e.Level, player, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats("bubbles")
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Rounds: %d  Best: %d  Average: %.0f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	return nil
}
