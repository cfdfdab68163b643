// Package tui hosts the engine in a terminal through Bubble Tea: it turns
// terminal messages into engine input, schedules frames, and paints the
// character raster with lipgloss. The same models run locally and per SSH
// session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is a frame request. Gen is the loop generation the request was
// scheduled for; requests from an older generation are dropped.
type FrameMsg struct {
	Gen uint64
	At  time.Time
}

// frameCmd requests the next frame after interval.
func frameCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Gen: gen, At: t}
	})
}
