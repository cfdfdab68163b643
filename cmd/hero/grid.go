package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ricrios/hero-arcade/internal/engine"
	"github.com/ricrios/hero-arcade/internal/registry"
	"github.com/ricrios/hero-arcade/internal/storage"
	"github.com/ricrios/hero-arcade/internal/viewport"
)

var (
	flagGridWidth  int
	flagGridHeight int
	flagGridGame   string
	flagGridTouch  bool
	flagGridDPR    float64
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the grid computed for a container size",
	Long: `Classify a container and compute the grid a game would mount into it.
Sizes are in px. Without --width/--height the current terminal is used.

Examples:
  hero grid --width 390 --height 844 --touch
  hero grid --width 1440 --height 900 --game slap
  hero grid`,
	Args: cobra.NoArgs,
	RunE: runGrid,
}

func init() {
	gridCmd.Flags().IntVar(&flagGridWidth, "width", 0, "Container width in px")
	gridCmd.Flags().IntVar(&flagGridHeight, "height", 0, "Container height in px")
	gridCmd.Flags().StringVar(&flagGridGame, "game", "snake", "Game whose layout config to use")
	gridCmd.Flags().BoolVar(&flagGridTouch, "touch", false, "Treat the container as a touch screen")
	gridCmd.Flags().Float64Var(&flagGridDPR, "dpr", 1, "Device pixel ratio")
}

// pxContainer is a fixed-size container described by flags.
type pxContainer struct{ env viewport.Env }

func (c pxContainer) Env() viewport.Env { return c.env }

func runGrid(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	game, err := registry.Create(flagGridGame, registry.Deps{
		Store:      storage.NewMemoryKV(),
		Logger:     logger,
		ConfigPath: flagConfig,
	})
	if err != nil {
		return err
	}
	cfg := game.EngineConfig()

	env := viewport.Env{
		Width:            flagGridWidth,
		Height:           flagGridHeight,
		HasTouch:         flagGridTouch,
		HasMouse:         !flagGridTouch,
		DevicePixelRatio: flagGridDPR,
	}
	if env.Width <= 0 || env.Height <= 0 {
		cols, rows := terminalSize()
		env = viewport.FromTerminal(cols, rows, cfg.Glyph.OrDefault(), true)
	}

	h, err := engine.Mount(pxContainer{env}, game, cfg, engine.WithLogger(logger), engine.WithSeed(1))
	if err != nil {
		return err
	}
	defer h.Unmount()

	vp, spec := h.Viewport(), h.Spec()
	fmt.Printf("Viewport  %dx%d px  %s %s  dpr %.2f  touch %t\n",
		vp.Width, vp.Height, vp.DeviceClass, vp.Orientation, vp.DevicePixelRatio, vp.IsTouch)
	fmt.Printf("Grid      %s\n", spec)
	fmt.Printf("Config    baseline %d  cell %d..%d px  padding %d  reserved %d\n",
		cfg.Grid.BaselineCells, cfg.Grid.MinCellPx, cfg.Grid.MaxCellPx, cfg.Grid.PaddingPx, cfg.Grid.ReservedUIHeight)
	for _, b := range h.Buttons() {
		fmt.Printf("Button    %-8s %dx%d at (%d,%d)\n", b.Label, b.Rect.W, b.Rect.H, b.Rect.X, b.Rect.Y)
	}
	for _, w := range vp.Warnings() {
		fmt.Printf("Warning   %s\n", w)
	}
	return nil
}
