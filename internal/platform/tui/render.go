package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ricrios/hero-arcade/internal/core"
)

type styleKey struct {
	color core.Color
	bold  bool
}

// styles caches one lipgloss style per color and weight. Slap inks are
// arbitrary hex values, so the cache fills lazily.
var styles sync.Map // styleKey -> lipgloss.Style

func styleFor(k styleKey) lipgloss.Style {
	if v, ok := styles.Load(k); ok {
		return v.(lipgloss.Style)
	}
	st := lipgloss.NewStyle().Bold(k.bold)
	if k.color != core.ColorDefault {
		st = st.Foreground(lipgloss.Color(string(k.color)))
	}
	styles.Store(k, st)
	return st
}

func keyOf(c core.Cell) styleKey {
	return styleKey{color: c.Color, bold: c.Bold}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			k := keyOf(s.GetCell(x, y))
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if keyOf(cell) != k {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styleFor(k).Render(run.String()))
		}
	}
	return sb.String()
}
