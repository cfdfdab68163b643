package slap

import (
	"fmt"
	"unicode/utf8"

	"github.com/ricrios/hero-arcade/internal/core"
	"github.com/ricrios/hero-arcade/internal/registry"
)

// Render draws the canvas, the cursor and the HUD.
func (g *Game) Render(f registry.Frame) {
	ink := g.Ink()
	f.Surface.Rasterize(f.Screen, f.Glyph, func(p core.Point) (rune, core.Color, bool) {
		cell := g.canvas.At(p.X, p.Y)
		if cell.inked() {
			r, _ := utf8.DecodeRuneInString(cell.Char)
			return r, core.Color(cell.Color), true
		}
		if p == g.cursor {
			return '+', core.Color(ink.Color), true
		}
		return 0, "", false
	})
	g.renderHUD(f, ink)
}

func (g *Game) renderHUD(f registry.Frame, ink Cell) {
	row := f.HUDRow(0)
	f.Screen.DrawHLine(0, row, f.Screen.Width(), ' ', core.ColorDefault)
	line := fmt.Sprintf(" Score: %d  Best: %d  Creations: %d  Brush: %d  ",
		g.score, g.highScore, g.creations, g.brush)
	f.Screen.DrawText(0, row, line, core.ColorGray)
	f.Screen.DrawText(utf8.RuneCountInString(line), row, ink.Char, core.Color(ink.Color))

	flow := fmt.Sprintf("Flow: %s. ", g.Flow())
	f.Screen.DrawText(f.Screen.Width()-utf8.RuneCountInString(flow), row, flow, core.ColorIcyBlue)

	if f.HUD.H > 1 {
		hint := f.HUDRow(1)
		f.Screen.DrawHLine(0, hint, f.Screen.Width(), ' ', core.ColorDefault)
		if g.notice != "" {
			f.Screen.DrawText(0, hint, " "+g.notice, core.ColorNeonMint)
			return
		}
		f.Screen.DrawText(0, hint, " arrows move  space paint  u/y undo/redo  c clear  x slap  o post", core.ColorDimGray)
	}
}
