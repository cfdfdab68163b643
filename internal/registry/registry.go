// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the CLI, the menu
// and the SSH server to discover and instantiate games without hardcoded
// dependencies. Instances share nothing: every collaborator a game needs is
// passed in through Deps.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/ricrios/hero-arcade/internal/audio"
	"github.com/ricrios/hero-arcade/internal/config"
	"github.com/ricrios/hero-arcade/internal/core"
	"github.com/ricrios/hero-arcade/internal/grid"
	"github.com/ricrios/hero-arcade/internal/input"
	"github.com/ricrios/hero-arcade/internal/storage"
	"github.com/ricrios/hero-arcade/internal/surface"
	"github.com/ricrios/hero-arcade/internal/timeofday"
	"github.com/ricrios/hero-arcade/internal/viewport"
)

// Game is the interface every mounted game implements.
// Games contain pure logic with no terminal dependencies (especially no
// Bubble Tea). The engine owns sizing, timing and input normalization.
type Game interface {
	// ID returns a unique identifier (e.g., "snake", "slap").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// EngineConfig returns the grid and loop options the game was configured with.
	EngineConfig() config.EngineConfig

	// Pad returns the on-screen buttons for pointer-only players.
	Pad() []input.PadButton

	// Reset initializes or resets the game state.
	Reset(cfg core.RuntimeConfig)

	// Resize applies a new grid layout. Called once before the first frame
	// and on every confirmed resize.
	Resize(spec grid.Spec)

	// Handle consumes one normalized input event.
	// Events are drained at the start of each frame, before Update.
	Handle(ev input.Event)

	// Update advances the game by dtMs of accumulated frame time.
	Update(dtMs float64)

	// Render draws the current state into the frame's raster.
	Render(f Frame)

	// State returns the coarse state (score, phase, game over, paused).
	State() core.GameState

	// Details returns game-specific status fields.
	Details() Details
}

// Details is the game-specific part of the engine status.
type Details struct {
	Variant   string
	ScoreGoal int
	Extra     map[string]string

	// Endless games never reach game over; their open run is recorded on
	// unmount. Other games only record finished runs.
	Endless bool
}

// Frame is everything a game needs to draw one frame.
type Frame struct {
	Screen        *core.Screen
	Surface       *surface.Surface
	Glyph         viewport.Glyph
	Throttled     bool
	ReducedMotion bool

	// HUD is the reserved strip below the canvas, in raster characters.
	HUD core.Rect
}

// HUDRow returns the raster row of the i-th HUD line, clamped to the screen.
func (f Frame) HUDRow(i int) int {
	if f.HUD.H <= 0 {
		return f.Screen.Height() - 1
	}
	return core.Clamp(f.HUD.Y+i, 0, f.Screen.Height()-1)
}

// Deps carries the collaborators a game instance is built with.
type Deps struct {
	Store      storage.KV
	Time       *timeofday.Binder
	Sound      audio.Player
	Logger     *log.Logger
	ConfigPath string
	Difficulty config.DifficultyPreset
	Variant    string
}

// WithDefaults fills unset collaborators with in-process fallbacks.
func (d Deps) WithDefaults() Deps {
	if d.Store == nil {
		d.Store = storage.NewMemoryKV()
	}
	if d.Time == nil {
		d.Time = timeofday.NewBinder(timeofday.Clock{}, timeofday.SeasonalConfig{})
	}
	if d.Sound == nil {
		d.Sound = audio.Nop{}
	}
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	return d
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func(deps Deps) (Game, error)

type entry struct {
	title   string
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: title, factory: f}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered or its configuration
// cannot be loaded.
func Create(id string, deps Deps) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	g, err := e.factory(deps.WithDefaults())
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
