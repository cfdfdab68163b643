// Package grid computes the integer cell layout of a game canvas for a given
// container size. It is pure arithmetic: no I/O and no failure path.
package grid

import (
	"fmt"

	"github.com/ricrios/hero-arcade/internal/core"
)

// Config controls how a container is carved into square cells.
type Config struct {
	BaselineCells    int `yaml:"baseline_cells"`     // Target cell count along the short side
	MinCellPx        int `yaml:"min_cell_px"`        // Smallest allowed cell edge
	MaxCellPx        int `yaml:"max_cell_px"`        // Largest allowed cell edge
	PaddingPx        int `yaml:"padding_px"`         // Padding on every side of the container
	ReservedUIHeight int `yaml:"reserved_ui_height"` // Vertical space kept for HUD/controls
}

// DefaultConfig returns the layout used when no configuration is provided.
func DefaultConfig() Config {
	return Config{
		BaselineCells:    20,
		MinCellPx:        8,
		MaxCellPx:        40,
		PaddingPx:        16,
		ReservedUIHeight: 0,
	}
}

// Validate repairs values that would make the arithmetic meaningless.
// It never fails; inverted bounds are swapped and zeros replaced by defaults.
func (c Config) Validate() Config {
	def := DefaultConfig()
	if c.BaselineCells <= 0 {
		c.BaselineCells = def.BaselineCells
	}
	if c.MinCellPx <= 0 {
		c.MinCellPx = 1
	}
	if c.MaxCellPx <= 0 {
		c.MaxCellPx = max(c.MinCellPx, def.MaxCellPx)
	}
	if c.MinCellPx > c.MaxCellPx {
		c.MinCellPx, c.MaxCellPx = c.MaxCellPx, c.MinCellPx
	}
	c.PaddingPx = max(0, c.PaddingPx)
	c.ReservedUIHeight = max(0, c.ReservedUIHeight)
	return c
}

// Spec is the derived layout. Recomputed, never mutated, on resize.
type Spec struct {
	Cols     int
	Rows     int
	CellSize int

	CanvasW int // Cols * CellSize
	CanvasH int // Rows * CellSize

	// Offsets center the canvas inside the available area.
	OffsetX int
	OffsetY int

	// Padding and available area the offsets are relative to.
	PaddingPx int
	AvailW    int
	AvailH    int
}

// Compute derives the grid for a container.
//
// The cell size is floor(min(availW, availH) / baseline) clamped to
// [MinCellPx, MaxCellPx]; cols and rows are floored so the canvas never
// exceeds the available area once the cell is at least MinCellPx. Containers
// too small for a single cell degrade to a 1x1 grid.
func Compute(container core.Size, cfg Config) Spec {
	cfg = cfg.Validate()

	availW := max(0, container.W-2*cfg.PaddingPx)
	availH := max(0, container.H-2*cfg.PaddingPx-cfg.ReservedUIHeight)

	cell := core.Clamp(min(availW, availH)/cfg.BaselineCells, cfg.MinCellPx, cfg.MaxCellPx)

	cols := max(1, availW/cell)
	rows := max(1, availH/cell)

	s := Spec{
		Cols:      cols,
		Rows:      rows,
		CellSize:  cell,
		CanvasW:   cols * cell,
		CanvasH:   rows * cell,
		PaddingPx: cfg.PaddingPx,
		AvailW:    availW,
		AvailH:    availH,
	}
	s.OffsetX = max(0, (availW-s.CanvasW)/2)
	s.OffsetY = max(0, (availH-s.CanvasH)/2)
	return s
}

// Contains reports whether p is a valid cell of the grid.
func (s Spec) Contains(p core.Point) bool {
	return p.X >= 0 && p.X < s.Cols && p.Y >= 0 && p.Y < s.Rows
}

// Cells returns the total number of cells.
func (s Spec) Cells() int {
	return s.Cols * s.Rows
}

// Center returns the middle cell.
func (s Spec) Center() core.Point {
	return core.Point{X: s.Cols / 2, Y: s.Rows / 2}
}

// CanvasRect returns the canvas bounds in container pixels.
func (s Spec) CanvasRect() core.Rect {
	return core.NewRect(s.PaddingPx+s.OffsetX, s.PaddingPx+s.OffsetY, s.CanvasW, s.CanvasH)
}

// Equal reports whether two specs describe the same layout.
func (s Spec) Equal(o Spec) bool {
	return s == o
}

// String returns a short human-readable description.
func (s Spec) String() string {
	return fmt.Sprintf("%dx%d cells @ %dpx (canvas %dx%d, offset %d,%d)",
		s.Cols, s.Rows, s.CellSize, s.CanvasW, s.CanvasH, s.OffsetX, s.OffsetY)
}
