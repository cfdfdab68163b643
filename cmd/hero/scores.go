package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ricrios/hero-arcade/internal/platform/tui"
	"github.com/ricrios/hero-arcade/internal/registry"
	"github.com/ricrios/hero-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for a game, or a summary of every game when
no game is given. --tui opens the interactive scoreboard instead.

Examples:
  hero scores
  hero scores snake
  hero scores snake --limit 25
  hero scores --tui
  hero scores snake --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	if flagScoresTUI {
		s, cleanup, err := newSettings(logger)
		if err != nil {
			return err
		}
		defer cleanup()
		w, h := terminalSize()
		_, err = tui.RunScoreboard(s, w, h)
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'hero list' to see available games", gameID)
	}
	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", titleOf(gameID))
		return nil
	}
	return printTop(store, gameID)
}

func printTop(store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", titleOf(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'hero play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "When")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-10s  %s\n", i+1, humanize.Comma(int64(e.Score)), humanize.Time(e.CreatedAt))
	}
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Printf("  %-8s  %-6s  %-8s  %-8s  %s\n", "Game", "Runs", "Best", "Avg", "Last played")
	fmt.Printf("  %-8s  %-6s  %-8s  %-8s  %s\n", "----", "----", "----", "---", "-----------")
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok {
			fmt.Printf("  %-8s  %-6s  %-8s  %-8s  %s\n", g.ID, "0", "-", "-", "never")
			continue
		}
		fmt.Printf("  %-8s  %-6s  %-8s  %-8.1f  %s\n",
			g.ID,
			humanize.Comma(int64(st.GamesCount)),
			humanize.Comma(int64(st.HighScore)),
			st.AvgScore,
			humanize.RelTime(st.LastPlayed, time.Now(), "ago", "from now"))
	}
	return nil
}

func titleOf(gameID string) string {
	for _, g := range registry.List() {
		if g.ID == gameID {
			return g.Title
		}
	}
	return gameID
}
