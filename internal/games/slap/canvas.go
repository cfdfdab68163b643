package slap

import "strings"

// Cell is one canvas position. The JSON field names are part of the
// persisted draft format.
type Cell struct {
	Char  string `json:"char"`
	Color string `json:"color"`
}

// Blank is the empty cell.
var Blank = Cell{Char: " "}

// IsBlank reports whether c draws nothing.
func (c Cell) IsBlank() bool {
	return (c.Char == " " || c.Char == "") && c.Color == ""
}

func (c Cell) inked() bool {
	return c.Char != " " && c.Char != ""
}

// Diff records one cell change so it can be replayed in both directions.
type Diff struct {
	X, Y int
	Prev Cell
	Next Cell
}

// Batch is the unit of undo: every change made by one brush stamp or clear.
type Batch []Diff

// Canvas is a cols x rows grid of cells with bounded undo/redo history.
// Not safe for concurrent use.
type Canvas struct {
	cols, rows int
	cells      []Cell

	undo       []Batch
	redo       []Batch
	historyCap int
}

// NewCanvas creates a blank canvas.
func NewCanvas(cols, rows, historyCap int) *Canvas {
	c := &Canvas{historyCap: max(1, historyCap)}
	c.reset(cols, rows)
	return c
}

func (c *Canvas) reset(cols, rows int) {
	c.cols, c.rows = max(1, cols), max(1, rows)
	c.cells = make([]Cell, c.cols*c.rows)
	for i := range c.cells {
		c.cells[i] = Blank
	}
	c.undo, c.redo = nil, nil
}

func (c *Canvas) Cols() int { return c.cols }
func (c *Canvas) Rows() int { return c.rows }

// InBounds reports whether (x, y) is a canvas cell.
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.cols && y >= 0 && y < c.rows
}

// At returns the cell at (x, y), or Blank outside the canvas.
func (c *Canvas) At(x, y int) Cell {
	if !c.InBounds(x, y) {
		return Blank
	}
	return c.cells[y*c.cols+x]
}

func (c *Canvas) set(x, y int, v Cell) {
	c.cells[y*c.cols+x] = v
}

// Cells returns a copy of every cell in row-major order.
func (c *Canvas) Cells() []Cell {
	out := make([]Cell, len(c.cells))
	copy(out, c.cells)
	return out
}

// ApplyBrush stamps v onto the size x size square around (x, y). The square
// starts floor(size/2) cells up and left of the cursor and is clipped to the
// canvas. Cells that already hold v are skipped. Returns the number of cells
// changed. Every stamp clears the redo stack; one that changes anything
// becomes one undo batch.
func (c *Canvas) ApplyBrush(x, y, size int, v Cell) int {
	size = max(1, size)
	off := size / 2
	var batch Batch
	for by := 0; by < size; by++ {
		for bx := 0; bx < size; bx++ {
			tx, ty := x-off+bx, y-off+by
			if !c.InBounds(tx, ty) {
				continue
			}
			prev := c.At(tx, ty)
			if prev == v {
				continue
			}
			c.set(tx, ty, v)
			batch = append(batch, Diff{X: tx, Y: ty, Prev: prev, Next: v})
		}
	}
	c.redo = nil
	c.commit(batch)
	return len(batch)
}

// Clear blanks the canvas as a single undoable batch.
// Returns false when the canvas was already blank.
func (c *Canvas) Clear() bool {
	var batch Batch
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			prev := c.At(x, y)
			if prev.IsBlank() {
				continue
			}
			c.set(x, y, Blank)
			batch = append(batch, Diff{X: x, Y: y, Prev: prev, Next: Blank})
		}
	}
	c.redo = nil
	c.commit(batch)
	return len(batch) > 0
}

func (c *Canvas) commit(b Batch) {
	if len(b) == 0 {
		return
	}
	c.undo = append(c.undo, b)
	if len(c.undo) > c.historyCap {
		c.undo = c.undo[len(c.undo)-c.historyCap:]
	}
	c.redo = nil
}

// Undo restores the prior values of the most recent batch.
func (c *Canvas) Undo() bool {
	if len(c.undo) == 0 {
		return false
	}
	b := c.undo[len(c.undo)-1]
	c.undo = c.undo[:len(c.undo)-1]
	for i := len(b) - 1; i >= 0; i-- {
		c.set(b[i].X, b[i].Y, b[i].Prev)
	}
	c.redo = append(c.redo, b)
	return true
}

// Redo re-applies the most recently undone batch.
func (c *Canvas) Redo() bool {
	if len(c.redo) == 0 {
		return false
	}
	b := c.redo[len(c.redo)-1]
	c.redo = c.redo[:len(c.redo)-1]
	for _, d := range b {
		c.set(d.X, d.Y, d.Next)
	}
	c.undo = append(c.undo, b)
	return true
}

func (c *Canvas) CanUndo() bool { return len(c.undo) > 0 }
func (c *Canvas) CanRedo() bool { return len(c.redo) > 0 }

// HistoryLen returns the number of undoable batches.
func (c *Canvas) HistoryLen() int { return len(c.undo) }

// Resize changes the dimensions, keeping the overlapping region and
// dropping history.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(1, cols), max(1, rows)
	if cols == c.cols && rows == c.rows {
		return
	}
	old, oldCols, oldRows := c.cells, c.cols, c.rows
	c.reset(cols, rows)
	for y := 0; y < min(oldRows, rows); y++ {
		for x := 0; x < min(oldCols, cols); x++ {
			c.set(x, y, old[y*oldCols+x])
		}
	}
}

// Stats summarizes the inked content of the canvas.
type Stats struct {
	Cells  int // Non-blank cells
	Colors int // Distinct colors among them
	Glyphs int // Distinct glyphs among them
}

// Stats counts the inked cells and their distinct colors and glyphs.
func (c *Canvas) Stats() Stats {
	colors := make(map[string]struct{})
	glyphs := make(map[string]struct{})
	var s Stats
	for _, cell := range c.cells {
		if !cell.inked() {
			continue
		}
		s.Cells++
		colors[cell.Color] = struct{}{}
		glyphs[cell.Char] = struct{}{}
	}
	s.Colors, s.Glyphs = len(colors), len(glyphs)
	return s
}

// ExportASCII renders the glyphs as text, one line per row, with trailing
// spaces and trailing empty lines removed.
func (c *Canvas) ExportASCII() string {
	lines := make([]string, c.rows)
	for y := 0; y < c.rows; y++ {
		var sb strings.Builder
		for x := 0; x < c.cols; x++ {
			ch := c.At(x, y).Char
			if ch == "" {
				ch = " "
			}
			sb.WriteString(ch)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// ImportASCII replaces the canvas with art, one rune per cell, uncolored.
// Text beyond the canvas is dropped. History is cleared.
func (c *Canvas) ImportASCII(art string) {
	lines := strings.Split(art, "\n")
	c.reset(c.cols, c.rows)
	for y := 0; y < min(len(lines), c.rows); y++ {
		x := 0
		for _, r := range strings.TrimRight(lines[y], "\r") {
			if x >= c.cols {
				break
			}
			if r != ' ' {
				c.set(x, y, Cell{Char: string(r)})
			}
			x++
		}
	}
}

// Grid is the serialized form of a canvas stored with drafts.
type Grid struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Cell `json:"cells"`
}

// Serialize returns the full grid, row by row.
func (c *Canvas) Serialize() Grid {
	g := Grid{Rows: c.rows, Cols: c.cols, Cells: make([][]Cell, c.rows)}
	for y := 0; y < c.rows; y++ {
		row := make([]Cell, c.cols)
		copy(row, c.cells[y*c.cols:(y+1)*c.cols])
		g.Cells[y] = row
	}
	return g
}

// Hydrate loads a serialized grid of the same dimensions. Missing cells
// become blank. Returns false, leaving the canvas untouched, when the
// dimensions differ or the grid has no cells.
func (c *Canvas) Hydrate(g Grid) bool {
	if g.Cells == nil || g.Rows != c.rows || g.Cols != c.cols {
		return false
	}
	c.reset(c.cols, c.rows)
	for y := 0; y < c.rows && y < len(g.Cells); y++ {
		row := g.Cells[y]
		for x := 0; x < c.cols && x < len(row); x++ {
			v := row[x]
			if v.Char == "" {
				v.Char = " "
			}
			c.set(x, y, v)
		}
	}
	return true
}
