package main

import (
	"github.com/spf13/cobra"

	"github.com/ricrios/hero-arcade/internal/games/slap"
	"github.com/ricrios/hero-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Leaving a game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Snake visual variant
  Enter/Space  - Select game
  Tab          - High scores
  F            - The wall of SLAP posts
  Q            - Quit

Examples:
  hero menu
  hero menu --fps 30
  hero menu --db ./hero.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	s, cleanup, err := newSettings(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	width, height := terminalSize()
	for {
		res, err := tui.RunMenu(s.Store, s.Variant, width, height)
		if err != nil {
			return err
		}
		if res.Width > 0 && res.Height > 0 {
			width, height = res.Width, res.Height
		}
		s.Variant = res.Variant

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(s, width, height)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}

		case res.WantsWall:
			wr, err := tui.RunWall(s, width, height)
			if err != nil {
				return err
			}
			if wr.Quit {
				return nil
			}
			if wr.OpenID != "" {
				if err := tui.Run(s, slap.GameID, width, height, tui.OpenDraft(wr.OpenID)); err != nil {
					return err
				}
				s.Seed = 0
			}

		default:
			if err := tui.Run(s, res.GameID, width, height, nil); err != nil {
				return err
			}
			// --seed reproduces the first run only.
			s.Seed = 0
		}
	}
}
