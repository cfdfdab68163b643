package slap

import (
	"math/rand"
	"slices"
	"testing"
)

var (
	red  = Cell{Char: "█", Color: "#ff4444"}
	blue = Cell{Char: "●", Color: "#44aaff"}
)

func inked(c *Canvas) map[[2]int]Cell {
	out := make(map[[2]int]Cell)
	for y := 0; y < c.Rows(); y++ {
		for x := 0; x < c.Cols(); x++ {
			if v := c.At(x, y); !v.IsBlank() {
				out[[2]int{x, y}] = v
			}
		}
	}
	return out
}

func TestApplyBrushFootprint(t *testing.T) {
	tests := []struct {
		name     string
		x, y     int
		size     int
		expected [][2]int
	}{
		{"size 1", 5, 5, 1, [][2]int{{5, 5}}},
		{"size 2 leans up-left", 5, 5, 2, [][2]int{{4, 4}, {5, 4}, {4, 5}, {5, 5}}},
		{"size 3 centered", 5, 5, 3, [][2]int{{4, 4}, {5, 4}, {6, 4}, {4, 5}, {5, 5}, {6, 5}, {4, 6}, {5, 6}, {6, 6}}},
		{"clipped at corner", 0, 0, 3, [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
		{"zero size is one cell", 2, 3, 0, [][2]int{{2, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 10, 200)
			n := c.ApplyBrush(tt.x, tt.y, tt.size, red)
			if n != len(tt.expected) {
				t.Errorf("ApplyBrush() = %d, expected %d", n, len(tt.expected))
			}
			got := inked(c)
			if len(got) != len(tt.expected) {
				t.Errorf("inked %d cells, expected %d", len(got), len(tt.expected))
			}
			for _, p := range tt.expected {
				if got[p] != red {
					t.Errorf("cell %v = %+v, expected %+v", p, got[p], red)
				}
			}
		})
	}
}

func TestApplyBrushSkipsUnchanged(t *testing.T) {
	c := NewCanvas(10, 10, 200)
	c.ApplyBrush(5, 5, 1, red)
	if n := c.ApplyBrush(5, 5, 1, red); n != 0 {
		t.Errorf("ApplyBrush() on identical cell = %d, expected 0", n)
	}
	if c.HistoryLen() != 1 {
		t.Errorf("HistoryLen() = %d, a no-op stamp must not add history", c.HistoryLen())
	}
	if n := c.ApplyBrush(5, 5, 1, blue); n != 1 {
		t.Errorf("ApplyBrush() with new ink = %d, expected 1", n)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewCanvas(16, 12, 200)
	inks := []Cell{red, blue, {Char: "▲", Color: "#ffff44"}}

	states := [][]Cell{c.Cells()}
	for i := 0; i < 40; i++ {
		if c.ApplyBrush(rng.Intn(16), rng.Intn(12), 1+rng.Intn(4), inks[rng.Intn(len(inks))]) > 0 {
			states = append(states, c.Cells())
		}
	}
	if c.Clear() {
		states = append(states, c.Cells())
	}

	for i := len(states) - 2; i >= 0; i-- {
		if !c.Undo() {
			t.Fatalf("Undo() failed with %d states left", i+1)
		}
		if !slices.Equal(c.Cells(), states[i]) {
			t.Fatalf("after undo, canvas differs from state %d", i)
		}
	}
	if c.Undo() {
		t.Error("Undo() past the first state should fail")
	}

	for i := 1; i < len(states); i++ {
		if !c.Redo() {
			t.Fatalf("Redo() failed at state %d", i)
		}
		if !slices.Equal(c.Cells(), states[i]) {
			t.Fatalf("after redo, canvas differs from state %d", i)
		}
	}
	if c.Redo() {
		t.Error("Redo() past the last state should fail")
	}
}

func TestOverlappingStrokeUndo(t *testing.T) {
	c := NewCanvas(5, 5, 200)
	c.ApplyBrush(2, 2, 3, red)
	c.ApplyBrush(3, 3, 3, blue)
	c.Undo()
	if c.At(2, 2) != red || c.At(4, 4) != Blank {
		t.Errorf("undo of overlapping stamp: (2,2)=%+v (4,4)=%+v", c.At(2, 2), c.At(4, 4))
	}
}

func TestNewDrawClearsRedo(t *testing.T) {
	c := NewCanvas(5, 5, 200)
	c.ApplyBrush(1, 1, 1, red)
	c.Undo()
	if !c.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}
	c.ApplyBrush(2, 2, 1, blue)
	if c.CanRedo() {
		t.Error("a new stamp should clear the redo stack")
	}
}

func TestNoOpDrawClearsRedo(t *testing.T) {
	c := NewCanvas(5, 5, 200)
	c.ApplyBrush(1, 1, 1, red)
	c.ApplyBrush(3, 3, 1, blue)
	c.Undo()

	// (1, 1) already holds red, so this stamp changes nothing.
	if n := c.ApplyBrush(1, 1, 1, red); n != 0 {
		t.Fatalf("ApplyBrush() = %d, expected 0", n)
	}
	if c.CanRedo() {
		t.Error("a stamp that changes nothing should still clear the redo stack")
	}
	if c.HistoryLen() != 1 {
		t.Errorf("HistoryLen() = %d, expected 1", c.HistoryLen())
	}
}

func TestHistoryCap(t *testing.T) {
	c := NewCanvas(30, 30, 5)
	for i := 0; i < 8; i++ {
		c.ApplyBrush(i, 0, 1, red)
	}
	if c.HistoryLen() != 5 {
		t.Fatalf("HistoryLen() = %d, expected cap 5", c.HistoryLen())
	}
	for c.Undo() {
	}
	// The three oldest stamps fell off the history.
	for x := 0; x < 8; x++ {
		expected := x < 3
		if got := !c.At(x, 0).IsBlank(); got != expected {
			t.Errorf("cell %d inked = %v, expected %v", x, got, expected)
		}
	}
}

func TestClearIsUndoable(t *testing.T) {
	c := NewCanvas(6, 6, 200)
	if c.Clear() {
		t.Error("Clear() on a blank canvas should report false")
	}
	c.ApplyBrush(3, 3, 3, red)
	before := c.Cells()

	if !c.Clear() {
		t.Fatal("Clear() = false on an inked canvas")
	}
	if len(inked(c)) != 0 {
		t.Error("canvas not blank after Clear()")
	}
	c.Undo()
	if !slices.Equal(c.Cells(), before) {
		t.Error("Undo() after Clear() did not restore the drawing")
	}
}

func TestStats(t *testing.T) {
	c := NewCanvas(10, 10, 200)
	c.ApplyBrush(2, 2, 3, red)
	c.ApplyBrush(7, 7, 2, blue)
	c.ApplyBrush(0, 9, 1, Cell{Char: "█", Color: "#44aaff"})

	s := c.Stats()
	if s.Cells != 14 || s.Colors != 2 || s.Glyphs != 2 {
		t.Errorf("Stats() = %+v, expected 14 cells, 2 colors, 2 glyphs", s)
	}
}

func TestExportASCII(t *testing.T) {
	c := NewCanvas(6, 4, 200)
	if got := c.ExportASCII(); got != "" {
		t.Errorf("ExportASCII() on blank canvas = %q, expected empty", got)
	}
	c.ApplyBrush(1, 0, 1, red)
	c.ApplyBrush(3, 1, 1, blue)

	expected := " █\n   ●"
	if got := c.ExportASCII(); got != expected {
		t.Errorf("ExportASCII() = %q, expected %q", got, expected)
	}
}

func TestImportASCII(t *testing.T) {
	c := NewCanvas(4, 3, 200)
	c.ApplyBrush(0, 2, 1, red)

	c.ImportASCII("ab\r\n  cdef\n\nzz")

	tests := []struct {
		x, y     int
		expected Cell
	}{
		{0, 0, Cell{Char: "a"}},
		{1, 0, Cell{Char: "b"}},
		{2, 0, Blank},
		{2, 1, Cell{Char: "c"}},
		{3, 1, Cell{Char: "d"}},
		{0, 2, Blank},
	}
	for _, tt := range tests {
		if got := c.At(tt.x, tt.y); got != tt.expected {
			t.Errorf("At(%d,%d) = %+v, expected %+v", tt.x, tt.y, got, tt.expected)
		}
	}
	if c.CanUndo() {
		t.Error("ImportASCII() should clear history")
	}
}

func TestSerializeHydrate(t *testing.T) {
	c := NewCanvas(8, 5, 200)
	c.ApplyBrush(4, 2, 3, red)
	g := c.Serialize()
	if g.Rows != 5 || g.Cols != 8 || len(g.Cells) != 5 || len(g.Cells[0]) != 8 {
		t.Fatalf("Serialize() = %dx%d with %d rows", g.Cols, g.Rows, len(g.Cells))
	}

	other := NewCanvas(8, 5, 200)
	if !other.Hydrate(g) {
		t.Fatal("Hydrate() of a same-size grid failed")
	}
	if !slices.Equal(other.Cells(), c.Cells()) {
		t.Error("hydrated canvas differs from the original")
	}

	small := NewCanvas(4, 4, 200)
	small.ApplyBrush(0, 0, 1, blue)
	if small.Hydrate(g) {
		t.Error("Hydrate() of a different-size grid should fail")
	}
	if small.At(0, 0) != blue {
		t.Error("failed Hydrate() must leave the canvas untouched")
	}
	if small.Hydrate(Grid{Rows: 4, Cols: 4}) {
		t.Error("Hydrate() without cells should fail")
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(6, 6, 200)
	c.ApplyBrush(1, 1, 1, red)
	c.ApplyBrush(5, 5, 1, blue)

	c.Resize(4, 8)
	if c.Cols() != 4 || c.Rows() != 8 {
		t.Fatalf("size = %dx%d, expected 4x8", c.Cols(), c.Rows())
	}
	if c.At(1, 1) != red {
		t.Error("overlapping content lost on resize")
	}
	if len(inked(c)) != 1 {
		t.Errorf("inked cells = %d, expected 1 after cropping", len(inked(c)))
	}
	if c.CanUndo() {
		t.Error("Resize() should drop history")
	}
}
