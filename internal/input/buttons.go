package input

import "github.com/ricrios/hero-arcade/internal/core"

// Button is an on-screen control mapped 1:1 to an event.
type Button struct {
	Label string
	Rect  core.Rect // Container px
	Event Event
}

func (r *Router) hitButton(px, py int) (Button, bool) {
	for _, b := range r.buttons {
		if b.Rect.Contains(px, py) {
			return b, true
		}
	}
	return Button{}, false
}

// PadButton describes one entry of a control strip before layout.
type PadButton struct {
	Label string
	Event Event
}

// SnakePad is the direction pad plus primary, pause and restart.
func SnakePad() []PadButton {
	return []PadButton{
		{"↑", Direction(core.DirUp)},
		{"←", Direction(core.DirLeft)},
		{"⚡", Action(core.ActionPrimary)},
		{"→", Direction(core.DirRight)},
		{"↓", Direction(core.DirDown)},
		{"⏸", Action(core.ActionPause)},
		{"↻", Action(core.ActionRestart)},
	}
}

// SlapPad is the drawing tool strip.
func SlapPad() []PadButton {
	return []PadButton{
		{"undo", Action(core.ActionUndo)},
		{"redo", Action(core.ActionRedo)},
		{"clear", Action(core.ActionClear)},
		{"brush", Action(core.ActionBrush)},
		{"glyph", Action(core.ActionGlyph)},
		{"color", Action(core.ActionColor)},
		{"slap", Action(core.ActionSlap)},
		{"post", Action(core.ActionPost)},
	}
}

// LayoutRow lays pad buttons out left to right inside area, each w px wide
// with gap px between them. Buttons that do not fit are dropped.
func LayoutRow(area core.Rect, pad []PadButton, w, gap int) []Button {
	out := make([]Button, 0, len(pad))
	x := area.X
	for _, p := range pad {
		if x+w > area.Right() {
			break
		}
		out = append(out, Button{
			Label: p.Label,
			Rect:  core.NewRect(x, area.Y, w, area.H),
			Event: p.Event,
		})
		x += w + gap
	}
	return out
}
