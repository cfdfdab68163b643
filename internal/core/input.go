package core

// Direction is one of the four grid directions.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Vector returns the unit grid step for the direction.
func (d Direction) Vector() Point {
	switch d {
	case DirUp:
		return Point{X: 0, Y: -1}
	case DirDown:
		return Point{X: 0, Y: 1}
	case DirLeft:
		return Point{X: -1, Y: 0}
	case DirRight:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the 180 degree reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Action names a semantic intent, abstracted from physical keys or buttons.
type Action string

const (
	ActionPause   Action = "pause"
	ActionRestart Action = "restart"
	ActionBypass  Action = "bypass"
	ActionPrimary Action = "primary"
	ActionUndo    Action = "undo"
	ActionRedo    Action = "redo"
	ActionClear   Action = "clear"
	ActionSlap    Action = "slap"
	ActionPost    Action = "post"
	ActionBrush   Action = "brush"   // cycle brush size
	ActionGlyph   Action = "glyph"   // cycle glyph
	ActionColor   Action = "color"   // cycle color
	ActionVariant Action = "variant" // cycle visual variant
)
