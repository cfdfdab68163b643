// Package input normalizes keyboard, pointer drag/swipe and on-screen button
// input into one small event vocabulary consumed by games.
//
// Events are queued as they arrive and drained once at the start of each
// frame, so a game sees input only between ticks.
package input

import (
	"strings"
	"time"

	"github.com/ricrios/hero-arcade/internal/core"
)

// EventType discriminates Event.
type EventType int

const (
	EventDirection EventType = iota
	EventAction
	EventPointer
)

// Phase of a pointer event.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
)

// Event is one normalized input.
type Event struct {
	Type EventType

	Dir  core.Direction // EventDirection
	Name core.Action    // EventAction

	// EventPointer: the grid cell under the pointer.
	Phase Phase
	Cell  core.Point
	// Pixel is the container position, used for parallax.
	Pixel core.Point
}

// Direction creates a direction event.
func Direction(d core.Direction) Event {
	return Event{Type: EventDirection, Dir: d}
}

// Action creates an action event.
func Action(a core.Action) Event {
	return Event{Type: EventAction, Name: a}
}

// PointerEvent is a raw press, move or release from a mouse or touch.
type PointerEvent struct {
	ID int // Touch identifier; mice use 0
	X  int // Container px
	Y  int
	At time.Time
}

// HitTester maps container pixels to grid cells.
type HitTester interface {
	ScreenToGrid(px, py int) (core.Point, bool)
}

// Config holds gesture thresholds and key bindings.
type Config struct {
	SwipeMinDistance int           // Strictly greater than this resolves a swipe
	SwipeMaxDuration time.Duration // Strictly shorter than this resolves a swipe
	Bindings         map[string]core.Action
}

// DefaultConfig returns the documented thresholds and the default bindings.
func DefaultConfig() Config {
	return Config{
		SwipeMinDistance: 50,
		SwipeMaxDuration: 300 * time.Millisecond,
		Bindings: map[string]core.Action{
			" ":      core.ActionPrimary,
			"p":      core.ActionPause,
			"esc":    core.ActionPause,
			"r":      core.ActionRestart,
			"enter":  core.ActionBypass,
			"u":      core.ActionUndo,
			"ctrl+z": core.ActionUndo,
			"y":      core.ActionRedo,
			"ctrl+y": core.ActionRedo,
			"c":      core.ActionClear,
			"x":      core.ActionSlap,
			"o":      core.ActionPost,
			"b":      core.ActionBrush,
			"g":      core.ActionGlyph,
			"k":      core.ActionColor,
			"v":      core.ActionVariant,
		},
	}
}

type press struct {
	id   int
	x, y int
	at   time.Time
}

// Router turns raw input into queued events.
type Router struct {
	cfg     Config
	hit     HitTester
	buttons []Button

	queue    []Event
	active   *press
	detached bool
}

// NewRouter creates a router. hit may be nil when pointer cells are not needed.
func NewRouter(cfg Config, hit HitTester) *Router {
	def := DefaultConfig()
	if cfg.SwipeMinDistance <= 0 {
		cfg.SwipeMinDistance = def.SwipeMinDistance
	}
	if cfg.SwipeMaxDuration <= 0 {
		cfg.SwipeMaxDuration = def.SwipeMaxDuration
	}
	if cfg.Bindings == nil {
		cfg.Bindings = def.Bindings
	}
	return &Router{cfg: cfg, hit: hit}
}

// SetButtons replaces the on-screen button layout.
func (r *Router) SetButtons(b []Button) {
	r.buttons = b
}

// Buttons returns the current on-screen button layout.
func (r *Router) Buttons() []Button {
	return r.buttons
}

// Push queues an event.
func (r *Router) Push(ev Event) {
	if r.detached {
		return
	}
	r.queue = append(r.queue, ev)
}

// Drain returns the queued events in arrival order and empties the queue.
func (r *Router) Drain() []Event {
	if len(r.queue) == 0 {
		return nil
	}
	out := r.queue
	r.queue = nil
	return out
}

// Pending returns the number of queued events.
func (r *Router) Pending() int {
	return len(r.queue)
}

// Detach stops the router from accepting input and drops the queue.
// Safe to call more than once.
func (r *Router) Detach() {
	r.detached = true
	r.queue = nil
	r.active = nil
}

// Detached reports whether Detach has been called.
func (r *Router) Detached() bool {
	return r.detached
}

// Key translates a key name (as reported by the terminal, e.g. "up", "W",
// "ctrl+z") and queues the resulting event. Unknown keys return false.
func (r *Router) Key(k string) bool {
	if r.detached {
		return false
	}
	if d := KeyDirection(k); d != core.DirNone {
		r.Push(Direction(d))
		return true
	}
	if a, ok := r.cfg.Bindings[k]; ok {
		r.Push(Action(a))
		return true
	}
	if a, ok := r.cfg.Bindings[strings.ToLower(k)]; ok {
		r.Push(Action(a))
		return true
	}
	return false
}

// KeyDirection maps arrows and WASD (any case) to a direction.
func KeyDirection(k string) core.Direction {
	switch strings.ToLower(k) {
	case "up", "w":
		return core.DirUp
	case "down", "s":
		return core.DirDown
	case "left", "a":
		return core.DirLeft
	case "right", "d":
		return core.DirRight
	}
	return core.DirNone
}
