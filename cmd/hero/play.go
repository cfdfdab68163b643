package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ricrios/hero-arcade/internal/platform/tui"
	"github.com/ricrios/hero-arcade/internal/registry"
)

var flagDraft string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Mount the specified game into the terminal.

Controls:
  Arrows/WASD  - Move (snake) or cursor (slap)
  Mouse        - Steer toward the pointer (snake) or paint (slap)
  Space        - Start / pause / stamp
  P/Esc        - Pause
  R            - Restart
  Enter        - Bypass overlay (snake)
  U/Y          - Undo / redo (slap)
  X / O        - Slap / post to the wall (slap)
  ?            - Help
  Q            - Leave, Ctrl+C - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  hero play snake
  hero play snake --variant luxcyberpunk --difficulty hard
  hero play snake --time-of-day evening --seed 42
  hero play slap --draft 6f1c...`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDraft, "draft", "", "Open a posted SLAP draft by id")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'hero list' to see available games", gameID)
	}

	logger, closeLog := newLogger()
	defer closeLog()

	s, cleanup, err := newSettings(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	var setup func(registry.Game)
	if flagDraft != "" {
		setup = tui.OpenDraft(flagDraft)
	}

	width, height := terminalSize()
	if err := tui.Run(s, gameID, width, height, setup); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
