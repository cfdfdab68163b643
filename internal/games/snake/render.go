package snake

import (
	"math"

	"github.com/ricrios/hero-arcade/internal/core"
	"github.com/ricrios/hero-arcade/internal/registry"
)

// glowHaloPx is the blur radius from which the head casts a visible halo.
const glowHaloPx = 6

// Render draws the board, HUD and overlay.
func (g *Game) Render(f registry.Frame) {
	st := g.Style(f.Throttled, f.ReducedMotion)

	body := make(map[core.Point]bool, len(g.session.body))
	for _, p := range g.session.body {
		body[p] = true
	}
	head := g.session.Head()
	fruit := g.session.Fruit()
	halo := st.GlowPx >= glowHaloPx

	f.Surface.Rasterize(f.Screen, f.Glyph, func(cell core.Point) (rune, core.Color, bool) {
		switch {
		case cell == head:
			return st.HeadRune, st.Head, true
		case body[cell]:
			return st.BodyRune, st.Snake, true
		case cell == fruit:
			return st.FruitRune, st.Fruit, true
		case halo && cell.Manhattan(head) == 1:
			return '·', st.Glow, true
		case g.variant == SteelGrid && (cell.X+cell.Y)%2 == 0:
			return '·', core.ColorDimGray, true
		}
		return 0, "", false
	})

	dx, dy := g.parallax(f)
	canvas := core.NewRect(0, 0, f.Screen.Width(), f.Screen.Height())
	if f.HUD.H > 0 {
		canvas.H = f.HUD.Y
	}
	f.Screen.Shift(canvas, charShift(dx, f.Glyph.W), charShift(dy, f.Glyph.H))

	g.renderHUD(f, st)
	f.Screen.Shift(f.HUD, charShift(dx/2, f.Glyph.W), charShift(dy/2, f.Glyph.H))
	if g.overlay {
		g.renderOverlay(f)
	}
}

// parallax returns the canvas offset in px for the last pointer position.
// The HUD moves at half of it.
func (g *Game) parallax(f registry.Frame) (float64, float64) {
	if !g.pointerSeen {
		return 0, 0
	}
	container := core.Size{W: f.Screen.Width() * f.Glyph.W, H: f.Screen.Height() * f.Glyph.H}
	return Parallax(g.pointer.X, g.pointer.Y, container, g.cfg.Engine.Parallax, f.ReducedMotion)
}

func charShift(px float64, glyph int) int {
	if glyph <= 0 {
		return 0
	}
	return int(math.Round(px / float64(glyph)))
}

func (g *Game) renderHUD(f registry.Frame, st Style) {
	color := st.HUD
	if g.pulseMs > 0 && st.Pulse > 0 {
		color = core.ColorNeonMint
	}
	row := f.HUDRow(0)
	f.Screen.DrawHLine(0, row, f.Screen.Width(), ' ', core.ColorDefault)
	f.Screen.DrawText(0, row, g.hudLine(), color)

	if g.cfg.Overlay.ShowBypass && g.cfg.Overlay.BypassLabel != "" {
		label := "[enter] " + g.cfg.Overlay.BypassLabel + " "
		f.Screen.DrawText(f.Screen.Width()-len([]rune(label)), row, label, core.ColorBrightWhite)
	}

	if f.HUD.H > 1 {
		hint := f.HUDRow(1)
		f.Screen.DrawHLine(0, hint, f.Screen.Width(), ' ', core.ColorDefault)
		f.Screen.DrawText(0, hint, g.hintLine(), core.ColorDimGray)
	}
}

// renderOverlay draws the bypass panel. The game keeps running behind it.
func (g *Game) renderOverlay(f registry.Frame) {
	lines := []string{
		"Designing precision into possibility.",
		"Overlay is non-blocking; game runs behind.",
		"[enter] Back to game",
	}
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := core.NewRect((f.Screen.Width()-w-4)/2, (f.Screen.Height()-len(lines)*2-1)/2, w+4, len(lines)*2+1)
	f.Screen.DrawRect(box, ' ', core.ColorDefault)
	f.Screen.DrawBox(box, core.ColorIcyBlue)
	for i, l := range lines {
		c := core.ColorBaseWhite
		if i == len(lines)-1 {
			c = core.ColorIcyBlue
		}
		f.Screen.DrawTextCentered(box.Y+1+i*2, l, c)
	}
}
