// Package slap implements SLAP, a direct-manipulation ASCII drawing canvas
// with undo/redo, creation scoring and a local wall of posted drafts.
package slap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ricrios/hero-arcade/internal/audio"
	"github.com/ricrios/hero-arcade/internal/config"
	"github.com/ricrios/hero-arcade/internal/core"
	"github.com/ricrios/hero-arcade/internal/grid"
	"github.com/ricrios/hero-arcade/internal/input"
	"github.com/ricrios/hero-arcade/internal/registry"
)

const (
	GameID = "slap"

	noticeMs = 2000
)

func init() {
	registry.Register(GameID, "SLAP Studio", func(d registry.Deps) (registry.Game, error) {
		return New(d)
	})
}

// Game is the SLAP drawing session.
type Game struct {
	cfg  config.SlapConfig
	deps registry.Deps
	log  *log.Logger
	wall *Wall

	canvas *Canvas
	cursor core.Point
	brush  int
	glyph  int
	color  int

	drawing   bool
	flow      FlowMeter
	elapsed   time.Duration
	score     int
	creations int
	highScore int

	notice   string
	noticeMs float64
}

// New loads the SLAP configuration and builds a game.
func New(deps registry.Deps) (*Game, error) {
	cfg, err := config.LoadSlap(deps.ConfigPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, deps), nil
}

// NewWithConfig builds a game from an explicit configuration.
func NewWithConfig(cfg config.SlapConfig, deps registry.Deps) *Game {
	deps = deps.WithDefaults()
	def := config.DefaultSlapConfig()
	if len(cfg.Palette.Glyphs) == 0 {
		cfg.Palette.Glyphs = def.Palette.Glyphs
	}
	if len(cfg.Palette.Colors) == 0 {
		cfg.Palette.Colors = def.Palette.Colors
	}
	if cfg.Canvas.MaxBrush <= 0 {
		cfg.Canvas.MaxBrush = def.Canvas.MaxBrush
	}
	if cfg.Canvas.HistoryCap <= 0 {
		cfg.Canvas.HistoryCap = def.Canvas.HistoryCap
	}

	logger := deps.Logger.WithPrefix("slap")
	g := &Game{
		cfg:    cfg,
		deps:   deps,
		log:    logger,
		wall:   NewWall(deps.Store, logger, cfg.Canvas.DraftsCap, cfg.Canvas.LeaderboardCap),
		canvas: NewCanvas(1, 1, cfg.Canvas.HistoryCap),
		brush:  1,
	}
	g.highScore = g.wall.HighScore()
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "SLAP Studio" }

// EngineConfig returns the engine options.
func (g *Game) EngineConfig() config.EngineConfig { return g.cfg.Engine }

// Pad returns the on-screen tool strip.
func (g *Game) Pad() []input.PadButton { return input.SlapPad() }

// Reset starts a fresh session on a blank canvas.
func (g *Game) Reset(core.RuntimeConfig) {
	g.canvas = NewCanvas(g.canvas.Cols(), g.canvas.Rows(), g.cfg.Canvas.HistoryCap)
	g.cursor = core.Point{X: g.canvas.Cols() / 2, Y: g.canvas.Rows() / 2}
	g.score, g.creations = 0, 0
	g.drawing = false
	g.flow.Reset()
	g.notice, g.noticeMs = "", 0
}

// Resize fits the canvas to a new grid, keeping what still fits.
func (g *Game) Resize(spec grid.Spec) {
	if spec.Cols != g.canvas.Cols() || spec.Rows != g.canvas.Rows() {
		g.log.Debug("canvas resized", "grid", spec.String(), "history_dropped", g.canvas.HistoryLen())
	}
	g.canvas.Resize(spec.Cols, spec.Rows)
	g.cursor.X = core.Clamp(g.cursor.X, 0, g.canvas.Cols()-1)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, g.canvas.Rows()-1)
}

// Handle consumes one input event.
func (g *Game) Handle(ev input.Event) {
	switch ev.Type {
	case input.EventPointer:
		g.handlePointer(ev)
	case input.EventDirection:
		v := ev.Dir.Vector()
		g.cursor.X = core.Clamp(g.cursor.X+v.X, 0, g.canvas.Cols()-1)
		g.cursor.Y = core.Clamp(g.cursor.Y+v.Y, 0, g.canvas.Rows()-1)
	case input.EventAction:
		g.handleAction(ev.Name)
	}
}

func (g *Game) handlePointer(ev input.Event) {
	inside := g.canvas.InBounds(ev.Cell.X, ev.Cell.Y)
	switch ev.Phase {
	case input.PhaseDown:
		if !inside {
			return
		}
		g.drawing = true
		g.cursor = ev.Cell
		g.Stamp()
	case input.PhaseMove:
		if g.drawing && inside {
			g.cursor = ev.Cell
			g.Stamp()
		}
	case input.PhaseUp:
		g.drawing = false
	}
}

func (g *Game) handleAction(a core.Action) {
	switch a {
	case core.ActionPrimary:
		g.Stamp()
	case core.ActionUndo:
		if !g.canvas.Undo() {
			g.say("Nothing to undo.")
		}
	case core.ActionRedo:
		if !g.canvas.Redo() {
			g.say("Nothing to redo.")
		}
	case core.ActionClear, core.ActionRestart:
		g.Clear()
	case core.ActionSlap:
		g.Slap()
	case core.ActionPost:
		g.Post()
	case core.ActionBrush:
		g.brush = g.brush%g.cfg.Canvas.MaxBrush + 1
	case core.ActionGlyph:
		g.glyph = (g.glyph + 1) % len(g.cfg.Palette.Glyphs)
	case core.ActionColor:
		g.color = (g.color + 1) % len(g.cfg.Palette.Colors)
	}
}

func (g *Game) say(msg string) {
	g.notice = msg
	g.noticeMs = noticeMs
}

// Ink returns the cell the brush currently paints.
func (g *Game) Ink() Cell {
	return Cell{Char: g.cfg.Palette.Glyphs[g.glyph], Color: g.cfg.Palette.Colors[g.color]}
}

// Stamp applies the brush at the cursor.
func (g *Game) Stamp() int {
	n := g.canvas.ApplyBrush(g.cursor.X, g.cursor.Y, g.brush, g.Ink())
	if n > 0 {
		g.flow.Record(g.elapsed)
	}
	return n
}

// Clear blanks the canvas as one undoable step and resets the flow meter.
func (g *Game) Clear() {
	if g.canvas.Clear() {
		g.flow.Reset()
		g.say("Canvas cleared.")
	}
}

// Slap scores the current canvas, adds the points to the session score and
// records the result on the leaderboard. Returns the points earned.
func (g *Game) Slap() int {
	pts := Points(g.canvas.Stats())
	g.score += pts
	g.creations++
	if g.score > g.highScore {
		g.highScore = g.score
		g.wall.SaveHighScore(g.highScore)
	}
	g.wall.Record(g.score, g.creations, g.canvas.ExportASCII())
	g.deps.Sound.Play(audio.EffectSlap)
	g.say(fmt.Sprintf("SLAPPED! +%d points", pts))
	g.log.Info("slap", "points", pts, "score", g.score, "creations", g.creations)
	return pts
}

// Post stores the canvas on the wall. An empty canvas is not posted.
func (g *Game) Post() (Draft, bool) {
	art := g.canvas.ExportASCII()
	if strings.TrimSpace(art) == "" {
		g.say("Draw something first.")
		return Draft{}, false
	}
	ink := g.Ink()
	d := g.wall.Post(Draft{
		Glyph: ink.Char,
		Color: ink.Color,
		Brush: g.brush,
		Art:   art,
		Grid:  g.canvas.Serialize(),
	})
	g.say("Posted to local wall.")
	return d, true
}

// LoadDraft replaces the canvas with a posted draft. A draft saved at other
// dimensions is loaded from its ascii art instead of its grid.
func (g *Game) LoadDraft(id string) bool {
	d, ok := g.wall.Find(id)
	if !ok {
		return false
	}
	if !g.canvas.Hydrate(d.Grid) {
		g.canvas.ImportASCII(d.Art)
		g.log.Debug("draft size differs, imported from art", "id", id, "cols", d.Grid.Cols, "rows", d.Grid.Rows)
	}
	g.say("Post loaded into editor.")
	return true
}

// DeleteDraft removes a draft from the wall.
func (g *Game) DeleteDraft(id string) bool {
	if !g.wall.Delete(id) {
		return false
	}
	g.say("Post removed.")
	return true
}

// Drafts returns the posted drafts, newest first.
func (g *Game) Drafts() []Draft { return g.wall.Drafts() }

// Wall returns the persistence layer.
func (g *Game) Wall() *Wall { return g.wall }

// Canvas exposes the canvas for tooling and tests.
func (g *Game) Canvas() *Canvas { return g.canvas }

// Cursor returns the cell the keyboard brush paints at.
func (g *Game) Cursor() core.Point { return g.cursor }

// Brush returns the brush size.
func (g *Game) Brush() int { return g.brush }

// SetBrush sets the brush size, clamped to [1, max brush].
func (g *Game) SetBrush(n int) {
	g.brush = core.Clamp(n, 1, g.cfg.Canvas.MaxBrush)
}

// HighScore returns the best cumulative score on this store.
func (g *Game) HighScore() int { return g.highScore }

// Flow classifies the current drawing tempo.
func (g *Game) Flow() FlowLevel { return g.flow.Level(g.elapsed) }

// Notice returns the transient status line, if any.
func (g *Game) Notice() string { return g.notice }

// Update advances the session clock.
func (g *Game) Update(dtMs float64) {
	if dtMs <= 0 {
		return
	}
	g.elapsed += time.Duration(dtMs * float64(time.Millisecond))
	g.noticeMs = math.Max(0, g.noticeMs-dtMs)
	if g.noticeMs == 0 {
		g.notice = ""
	}
}

// State returns the coarse state. SLAP never ends.
func (g *Game) State() core.GameState {
	phase := "idle"
	if g.drawing {
		phase = "drawing"
	}
	return core.GameState{Score: g.score, Phase: phase}
}

// Details returns the SLAP-specific status fields.
func (g *Game) Details() registry.Details {
	ink := g.Ink()
	return registry.Details{
		Endless: true,
		Extra: map[string]string{
			"brush":      strconv.Itoa(g.brush),
			"glyph":      ink.Char,
			"color":      ink.Color,
			"flow":       string(g.Flow()),
			"creations":  strconv.Itoa(g.creations),
			"high_score": strconv.Itoa(g.highScore),
			"history":    strconv.Itoa(g.canvas.HistoryLen()),
		},
	}
}
