package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// GameKeyMap holds the host-level keys of a running game. Everything else is
// forwarded to the engine's input router.
type GameKeyMap struct {
	Quit       key.Binding
	Leave      key.Binding
	Screenshot key.Binding
	Help       key.Binding

	// Shown in help only; handled by the router.
	Move    key.Binding
	Primary key.Binding
	Pause   key.Binding
	Restart key.Binding
	Undo    key.Binding
	Redo    key.Binding
	Tools   key.Binding
	Slap    key.Binding
	Post    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Primary, k.Pause, k.Leave, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Primary, k.Pause, k.Restart},
		{k.Undo, k.Redo, k.Tools, k.Slap, k.Post},
		{k.Screenshot, k.Help, k.Leave, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Leave: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "leave"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d"),
			key.WithHelp("arrows/wasd", "move"),
		),
		Primary: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/paint"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("y", "ctrl+y"),
			key.WithHelp("y", "redo"),
		),
		Tools: key.NewBinding(
			key.WithKeys("b", "g", "k", "v"),
			key.WithHelp("b/g/k/v", "brush/glyph/color/variant"),
		),
		Slap: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "slap"),
		),
		Post: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "post"),
		),
	}
}

// MenuKeyMap defines the key bindings for the game picker.
type MenuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Variant key.Binding
	Select  key.Binding
	Scores  key.Binding
	Wall    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Variant, k.Select, k.Scores, k.Wall, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Variant: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("left/right", "variant"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Wall: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "wall"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
