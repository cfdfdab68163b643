package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ricrios/hero-arcade/internal/core"
	"github.com/ricrios/hero-arcade/internal/engine"
	"github.com/ricrios/hero-arcade/internal/input"
	"github.com/ricrios/hero-arcade/internal/registry"
	"github.com/ricrios/hero-arcade/internal/surface"
	"github.com/ricrios/hero-arcade/internal/viewport"
)

// Model is the Bubble Tea model hosting one mounted game.
type Model struct {
	handle *engine.Handle
	screen *core.Screen
	glyph  viewport.Glyph
	log    *log.Logger

	keys     GameKeyMap
	help     help.Model
	showHelp bool

	// standalone models quit the program on leave; session models hand
	// control back to the menu.
	standalone bool
	quitting   bool
	leaving    bool
}

// NewModel wraps a mounted handle sized to a cols x rows terminal.
func NewModel(h *engine.Handle, cols, rows int, s Settings) Model {
	s = s.WithDefaults()
	hm := help.New()
	hm.ShowAll = true
	return Model{
		handle: h,
		screen: core.NewScreen(cols, rows),
		glyph:  s.Glyph,
		log:    s.Logger,
		keys:   DefaultGameKeyMap(),
		help:   hm,
	}
}

// Init schedules the first frame.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.handle.Interval(), m.handle.Generation())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.handle.Resize(msg.Width*m.glyph.W, msg.Height*m.glyph.H, time.Now())
		return m, nil

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.handle.Unmount()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Leave):
		m.handle.Unmount()
		m.leaving = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.log.Warn("screenshot failed", "err", err)
		} else {
			m.log.Info("screenshot saved", "path", path)
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	m.handle.Key(msg.String())
	return m, nil
}

// handleMouse converts a character cell to the px at its center so the
// engine sees the same coordinates a pixel host would report.
func (m Model) handleMouse(msg tea.MouseMsg) {
	x, y := surface.CharToPixel(msg.X, msg.Y, m.glyph)
	ev := input.PointerEvent{X: x, Y: y, At: time.Now()}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.handle.Pointer(engine.PointerPress, ev)
		}
	case tea.MouseActionMotion:
		m.handle.Pointer(engine.PointerMove, ev)
	case tea.MouseActionRelease:
		m.handle.Pointer(engine.PointerRelease, ev)
	}
}

func (m Model) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	gen := m.handle.Generation()
	if msg.Gen != gen {
		return m, nil
	}
	m.handle.Frame(msg.At)
	return m, frameCmd(m.handle.Interval(), gen)
}

// saveScreenshot writes the current raster as plain text.
func (m Model) saveScreenshot() (string, error) {
	m.handle.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".hero", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", m.handle.Game().ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.leaving {
		return ""
	}
	if m.showHelp {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Render(m.handle.Game().Title() + "\n\n" + m.help.View(m.keys))
		return lipgloss.Place(m.screen.Width(), m.screen.Height(), lipgloss.Center, lipgloss.Center, box)
	}

	m.handle.Render(m.screen)
	return RenderScreen(m.screen)
}

// Handle returns the mounted engine handle.
func (m Model) Handle() *engine.Handle {
	return m.handle
}

// Leaving reports whether the player asked to leave the game.
func (m Model) Leaving() bool {
	return m.leaving
}

// IsQuitting reports whether the player asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run mounts game id in the current terminal and blocks until the player
// leaves. setup, when non-nil, runs against the game before the first frame.
func Run(s Settings, id string, cols, rows int, setup func(registry.Game)) error {
	s = s.WithDefaults()
	s.Mouse = true
	h, err := s.Launch(id, cols, rows)
	if err != nil {
		return err
	}
	defer h.Unmount()

	if setup != nil {
		h.Do(setup)
	}

	model := NewModel(h, cols, rows, s)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}
