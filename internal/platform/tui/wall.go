package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ricrios/hero-arcade/internal/games/slap"
)

// WallKeyMap defines the key bindings for the wall browser.
type WallKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WallKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Delete, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WallKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultWallKeyMap returns default key bindings.
func DefaultWallKeyMap() WallKeyMap {
	return WallKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open in editor")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// WallModel browses the drafts posted from SLAP.
type WallModel struct {
	wall   *slap.Wall
	drafts []slap.Draft
	now    func() time.Time

	table table.Model
	help  help.Model
	keys  WallKeyMap

	width, height int
	opened        string
	quitting      bool
	goingBack     bool
}

// NewWallModel creates a wall browser over the session's local storage.
func NewWallModel(s Settings, width, height int) WallModel {
	s = s.WithDefaults()
	m := WallModel{
		wall:   slap.NewWall(s.KV, s.Logger.WithPrefix("wall"), 0, 0),
		now:    time.Now,
		help:   help.New(),
		keys:   DefaultWallKeyMap(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

func (m *WallModel) reload() {
	m.drafts = m.wall.Drafts()
	rows := make([]table.Row, len(m.drafts))
	for i, d := range m.drafts {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			humanize.RelTime(d.Created(), m.now(), "ago", "from now"),
			fmt.Sprintf("%dx%d", d.Grid.Cols, d.Grid.Rows),
			d.Glyph,
			fmt.Sprintf("%d", d.Brush),
		}
	}

	cursor := m.table.Cursor()
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Posted", Width: 16},
			{Title: "Size", Width: 8},
			{Title: "Ink", Width: 4},
			{Title: "Brush", Width: 6},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-6)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#f5f7fa")).
		Background(lipgloss.Color("#4682b4"))
	t.SetStyles(s)
	t.SetCursor(min(cursor, max(0, len(rows)-1)))
	m.table = t
}

func (m WallModel) current() (slap.Draft, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.drafts) {
		return slap.Draft{}, false
	}
	return m.drafts[i], true
}

// Init initializes the wall browser.
func (m WallModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the wall browser.
func (m WallModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Open):
			if d, ok := m.current(); ok {
				m.opened = d.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if d, ok := m.current(); ok {
				m.wall.Delete(d.ID)
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the wall browser.
func (m WallModel) View() string {
	if m.quitting || m.goingBack || m.opened != "" {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9d"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("THE WALL", m.width)))
	b.WriteString("\n")
	b.WriteString(dim.Render(centerText(fmt.Sprintf("%d posts", len(m.drafts)), m.width)))
	b.WriteString("\n\n")

	if len(m.drafts) == 0 {
		b.WriteString(dim.Italic(true).Padding(2, 4).Render("Nothing posted yet.\nDraw in SLAP Studio and press o to post."))
	} else {
		preview := ""
		if d, ok := m.current(); ok {
			preview = box.Render(PaintDraft(d, max(10, m.width-60), max(3, m.height-8)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, box.Render(m.table.View()), "  ", preview))
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(m.help.View(m.keys)))
	return b.String()
}

// PaintDraft renders a draft's grid in its own colors, cropped to w x h.
// Drafts without a grid fall back to their plain ascii art.
func PaintDraft(d slap.Draft, w, h int) string {
	if len(d.Grid.Cells) == 0 {
		lines := strings.Split(d.Art, "\n")
		if len(lines) > h {
			lines = lines[:h]
		}
		return strings.Join(lines, "\n")
	}

	var b strings.Builder
	for y, row := range d.Grid.Cells {
		if y >= h {
			break
		}
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, c := range row {
			if x >= w {
				break
			}
			ch := c.Char
			if ch == "" {
				ch = " "
			}
			if c.Color == "" {
				b.WriteString(ch)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(ch))
		}
	}
	return b.String()
}

// Opened returns the id of the draft the player chose to edit.
func (m WallModel) Opened() string {
	return m.opened
}

// WallResult holds the result of running the wall browser.
type WallResult struct {
	OpenID string
	Back   bool
	Quit   bool
}

// RunWall runs the wall browser.
func RunWall(s Settings, width, height int) (WallResult, error) {
	p := tea.NewProgram(NewWallModel(s, width, height), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return WallResult{}, err
	}
	m, ok := finalModel.(WallModel)
	if !ok {
		return WallResult{Quit: true}, nil
	}
	return WallResult{OpenID: m.opened, Back: m.goingBack, Quit: m.quitting}, nil
}
