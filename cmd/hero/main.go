// hero is the responsive hero arcade: Snake and SLAP Studio on a grid that
// fits whatever terminal it is given.
//
// Usage:
//
//	hero list              - List available games
//	hero play <game>       - Play a game
//	hero menu              - Start menu to pick games interactively
//	hero serve             - Start SSH server for remote play
//	hero scores [game]     - Show high scores
//	hero wall              - List, show or delete SLAP posts
//	hero grid              - Print the grid computed for a container size
//	hero storage           - Inspect the games' local storage
//
// Global flags:
//
//	--fps <rate>            - Target frame rate (default: from game config)
//	--seed <value>          - RNG seed for reproducible runs
//	--db <path>             - Database path (default: ~/.hero/hero.db)
//	--time-of-day <part>    - Pin the day-part instead of following the clock
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ricrios/hero-arcade/internal/audio"
	"github.com/ricrios/hero-arcade/internal/config"
	_ "github.com/ricrios/hero-arcade/internal/games/slap"
	_ "github.com/ricrios/hero-arcade/internal/games/snake"
	"github.com/ricrios/hero-arcade/internal/platform/tui"
	"github.com/ricrios/hero-arcade/internal/storage"
	"github.com/ricrios/hero-arcade/internal/timeofday"
)

var (
	// Global flags
	flagFPS           int
	flagSeed          int64
	flagDBPath        string
	flagConfig        string
	flagDifficulty    string
	flagVariant       string
	flagTimeOfDay     string
	flagReducedMotion bool
	flagSound         bool
	flagVerbose       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hero",
	Short: "Hero Arcade - responsive grid games in your terminal",
	Long: `Hero Arcade mounts small grid games into whatever space it is given.
The grid is recomputed from the terminal size, so the same game fits a
phone-sized SSH window and a full-screen terminal.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  wall     - Manage SLAP posts
  grid     - Show the computed layout for a size
  storage  - Inspect local storage

Examples:
  hero list
  hero play snake --variant steelgrid
  hero play slap
  hero menu --time-of-day dusk
  hero serve --ssh :2222
  hero grid --width 390 --height 844`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Target frame rate (0 = game default)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.hero/hero.db", "Path to the database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagVariant, "variant", "", "Snake visual variant: editorial, steelgrid, luxcyberpunk")
	pf.StringVar(&flagTimeOfDay, "time-of-day", "", "Pin the day-part: dawn, morning, afternoon, dusk, evening")
	pf.BoolVar(&flagReducedMotion, "reduced-motion", false, "Disable motion effects")
	pf.BoolVar(&flagSound, "sound", false, "Play sound effects")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(wallCmd)
	rootCmd.AddCommand(gridCmd)
}

// newLogger writes to ~/.hero/hero.log; the terminal belongs to the game.
func newLogger() (*log.Logger, func()) {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "hero"})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return logger, func() {}
	}
	dir := filepath.Join(home, ".hero")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return logger, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "hero.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return logger, func() {}
	}
	logger.SetOutput(f)
	return logger, func() { f.Close() }
}

// newSettings builds the shared game settings from the global flags. The
// returned cleanup closes the store and the log file.
func newSettings(logger *log.Logger) (tui.Settings, func(), error) {
	s := tui.Settings{
		Logger:     logger,
		FPS:        flagFPS,
		Seed:       flagSeed,
		ConfigPath: flagConfig,
		Variant:    flagVariant,
		Mouse:      true,
	}

	if flagDifficulty != "" {
		switch p := config.DifficultyPreset(flagDifficulty); p {
		case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
			s.Difficulty = p
		default:
			return s, nil, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
	}

	if flagTimeOfDay != "" {
		part, err := timeofday.Parse(flagTimeOfDay)
		if err != nil {
			return s, nil, err
		}
		s.TimeOfDay = timeofday.NewSwitchable(part)
	}

	if flagReducedMotion {
		reduced := true
		s.ReducedMotion = &reduced
	}

	sound, err := audio.New(flagSound, 0)
	if err != nil {
		logger.Warn("sound disabled", "err", err)
	}
	s.Sound = sound

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, progress will not be saved", "err", err)
	} else {
		s.Store = store
	}

	cleanup := func() {
		if sm, ok := s.Sound.(*audio.SoundManager); ok {
			sm.Cleanup()
		}
		if s.Store != nil {
			s.Store.Close()
		}
	}
	return s.WithDefaults(), cleanup, nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
