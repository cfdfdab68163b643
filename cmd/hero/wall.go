package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ricrios/hero-arcade/internal/games/slap"
	"github.com/ricrios/hero-arcade/internal/platform/tui"
	"github.com/ricrios/hero-arcade/internal/storage"
)

var wallCmd = &cobra.Command{
	Use:   "wall",
	Short: "Manage the wall of SLAP posts",
	Long: `Without a subcommand, opens the interactive wall browser.

Examples:
  hero wall
  hero wall list
  hero wall show <id>
  hero wall delete <id>
  hero wall clear`,
	RunE: runWallBrowser,
}

var wallListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	Args:  cobra.NoArgs,
	RunE: withWall(func(w *slap.Wall, _ []string) error {
		drafts := w.Drafts()
		if len(drafts) == 0 {
			fmt.Println("Nothing posted yet.")
			return nil
		}
		fmt.Printf("  %-36s  %-16s  %-7s  %s\n", "ID", "Posted", "Size", "Ink")
		for _, d := range drafts {
			fmt.Printf("  %-36s  %-16s  %-7s  %s %s\n",
				d.ID,
				humanize.RelTime(d.Created(), time.Now(), "ago", "from now"),
				fmt.Sprintf("%dx%d", d.Grid.Cols, d.Grid.Rows),
				d.Glyph, d.Color)
		}
		return nil
	}),
}

var wallShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a post",
	Args:  cobra.ExactArgs(1),
	RunE: withWall(func(w *slap.Wall, args []string) error {
		d, ok := w.Find(args[0])
		if !ok {
			return fmt.Errorf("no post with id %q", args[0])
		}
		cols, rows := terminalSize()
		fmt.Println(tui.PaintDraft(d, cols, rows-1))
		return nil
	}),
}

var wallDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: withWall(func(w *slap.Wall, args []string) error {
		if !w.Delete(args[0]) {
			return fmt.Errorf("no post with id %q", args[0])
		}
		fmt.Println("Deleted.")
		return nil
	}),
}

var wallClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every post",
	Args:  cobra.NoArgs,
	RunE: withWall(func(w *slap.Wall, _ []string) error {
		fmt.Printf("Deleted %d posts.\n", w.ClearDrafts())
		return nil
	}),
}

func init() {
	wallCmd.AddCommand(wallListCmd, wallShowCmd, wallDeleteCmd, wallClearCmd)
}

// withWall opens the database and hands its wall to fn.
func withWall(fn func(w *slap.Wall, args []string) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		logger, closeLog := newLogger()
		defer closeLog()

		return withStore(func(s *storage.Store, args []string) error {
			return fn(slap.NewWall(s, logger.WithPrefix("wall"), 0, 0), args)
		})(nil, args)
	}
}

func runWallBrowser(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	s, cleanup, err := newSettings(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	w, h := terminalSize()
	res, err := tui.RunWall(s, w, h)
	if err != nil || res.OpenID == "" {
		return err
	}
	return tui.Run(s, slap.GameID, w, h, tui.OpenDraft(res.OpenID))
}
