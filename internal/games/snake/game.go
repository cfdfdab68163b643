// Package snake implements the hero Snake game: a time-aware Snake on the
// responsive grid, with visual variants, an unlock goal and a non-blocking
// bypass overlay.
package snake

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/ricrios/hero-arcade/internal/audio"
	"github.com/ricrios/hero-arcade/internal/config"
	"github.com/ricrios/hero-arcade/internal/core"
	"github.com/ricrios/hero-arcade/internal/grid"
	"github.com/ricrios/hero-arcade/internal/input"
	"github.com/ricrios/hero-arcade/internal/registry"
	"github.com/ricrios/hero-arcade/internal/storage"
	"github.com/ricrios/hero-arcade/internal/timeofday"
)

const (
	GameID       = "snake"
	HighScoreKey = "snake-high-score"

	eatPulseMs = 300
)

func init() {
	registry.Register(GameID, "Hero Snake", func(d registry.Deps) (registry.Game, error) {
		return New(d)
	})
}

// Game wraps a Session with persistence, sound, style and overlay.
type Game struct {
	cfg    config.SnakeConfig
	deps   registry.Deps
	log    *log.Logger
	speed  SpeedModel
	signal timeofday.Signal

	session *Session
	spec    grid.Spec
	seed    int64
	variant Variant

	highScore int
	overlay   bool
	pulseMs   float64

	pointer     core.Point
	pointerSeen bool
}

// New loads the Snake configuration and builds a game.
func New(deps registry.Deps) (*Game, error) {
	cfg, err := config.LoadSnake(deps.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Difficulty.ApplyPreset(deps.Difficulty)
	return NewWithConfig(cfg, deps), nil
}

// NewWithConfig builds a game from an explicit configuration.
func NewWithConfig(cfg config.SnakeConfig, deps registry.Deps) *Game {
	deps = deps.WithDefaults()
	g := &Game{
		cfg:   cfg,
		deps:  deps,
		log:   deps.Logger.WithPrefix("snake"),
		speed: NewSpeedModel(cfg.Speed, cfg.Difficulty),
	}

	name := cfg.Overlay.Variant
	if deps.Variant != "" {
		name = deps.Variant
	}
	v, err := ParseVariant(name)
	if err != nil {
		g.log.Warn("falling back to editorial", "err", err)
		v = Editorial
	}
	g.variant = v

	g.loadHighScore()
	g.signal = deps.Time.Signal()
	g.session = NewSession(1, 1, Rules{
		InitialLength:  cfg.Rules.InitialLength,
		ScoreGoal:      cfg.Rules.ScoreGoal,
		MilestoneEvery: cfg.Rules.MilestoneEvery,
	}, g.events(), 0)
	g.applySpeed()
	return g
}

func (g *Game) events() Events {
	return Events{
		OnEat: func(score int) {
			g.pulseMs = eatPulseMs
			g.deps.Sound.Play(audio.EffectEat)
			if score > g.highScore {
				g.highScore = score
				g.saveHighScore()
			}
		},
		OnMilestone: func(score int) {
			g.applySpeed()
			g.deps.Sound.Play(audio.EffectMilestone)
			g.log.Debug("milestone", "score", score, "speed_ms", g.session.SpeedMs(), "tod", g.signal.DayPart)
		},
		OnUnlock: func(score int) {
			g.deps.Sound.Play(audio.EffectUnlock)
			g.log.Info("unlock", "score", score, "tod", g.signal.DayPart)
		},
		OnPerfect: func(score int) {
			g.log.Info("perfect score", "score", score, "cells", g.session.Cols()*g.session.Rows())
		},
		OnGameOver: func(score int, perfect bool) {
			g.deps.Sound.Play(audio.EffectGameOver)
			g.log.Info("game over", "score", score, "perfect", perfect, "moves", g.session.Moves())
		},
	}
}

func (g *Game) loadHighScore() {
	var n int
	if _, err := storage.ReadJSON(g.deps.Store, HighScoreKey, &n); err != nil {
		g.log.Warn("discarding stored high score", "err", err)
		return
	}
	g.highScore = max(0, n)
}

func (g *Game) saveHighScore() {
	if err := storage.WriteJSON(g.deps.Store, HighScoreKey, g.highScore); err != nil {
		g.log.Warn("cannot persist high score", "err", err)
	}
}

// applySpeed recomputes the step interval with the canonical composition.
func (g *Game) applySpeed() {
	ms := g.speed.Compose(g.session.Score(), g.signal.DayPart, g.signal.Adj.BaseMsBias)
	g.session.SetSpeedMs(ms, g.cfg.Speed.FloorMs)
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Hero Snake" }

// EngineConfig returns the engine options.
func (g *Game) EngineConfig() config.EngineConfig { return g.cfg.Engine }

// Pad returns the on-screen controls.
func (g *Game) Pad() []input.PadButton { return input.SnakePad() }

// Reset starts a fresh run on the current board.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.seed = rc.Seed
	g.session.Reset(g.spec.Cols, g.spec.Rows, g.seed)
	g.pulseMs = 0
	g.applySpeed()
}

// Resize applies a new grid layout.
func (g *Game) Resize(spec grid.Spec) {
	g.spec = spec
	if g.session.Resize(spec.Cols, spec.Rows) {
		g.log.Info("board shrank below the snake, run reset", "grid", spec.String())
		g.applySpeed()
	}
}

// Handle consumes one input event.
func (g *Game) Handle(ev input.Event) {
	switch ev.Type {
	case input.EventDirection:
		if g.session.Phase() == PhaseIdle {
			g.start()
		}
		g.session.SetDirection(ev.Dir)
	case input.EventAction:
		g.handleAction(ev.Name)
	case input.EventPointer:
		g.pointer = ev.Pixel
		g.pointerSeen = true
		if ev.Phase == input.PhaseDown && g.session.Phase() == PhaseIdle {
			g.start()
		}
	}
}

func (g *Game) handleAction(a core.Action) {
	switch a {
	case core.ActionPrimary:
		switch g.session.Phase() {
		case PhaseIdle:
			g.start()
		case PhaseGameOver:
			g.restart()
		default:
			g.session.TogglePause()
		}
	case core.ActionPause:
		g.session.TogglePause()
	case core.ActionRestart:
		g.restart()
	case core.ActionBypass:
		g.overlay = !g.overlay
		if g.overlay {
			g.log.Info("bypass", "score", g.session.Score())
		} else {
			g.log.Info("return to game", "score", g.session.Score())
		}
	case core.ActionVariant:
		g.SetVariant(g.variant.Next())
	}
}

func (g *Game) start() {
	g.applySpeed()
	g.session.Start()
}

func (g *Game) restart() {
	g.seed++
	g.Reset(core.RuntimeConfig{Seed: g.seed})
}

// Update advances the game by dtMs.
func (g *Game) Update(dtMs float64) {
	sig := g.deps.Time.Signal()
	changed := sig.DayPart != g.signal.DayPart || sig.Adj.BaseMsBias != g.signal.Adj.BaseMsBias
	g.signal = sig
	if changed {
		g.applySpeed()
		g.log.Debug("day-part change", "tod", sig.DayPart, "season", sig.Season, "speed_ms", g.session.SpeedMs())
	}

	g.session.Advance(dtMs)
	g.pulseMs = math.Max(0, g.pulseMs-dtMs)
}

// State returns the coarse game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Phase:    string(g.session.Phase()),
		GameOver: g.session.Phase() == PhaseGameOver,
		Paused:   g.session.Phase() == PhasePaused,
	}
}

// Details returns the Snake-specific status fields.
func (g *Game) Details() registry.Details {
	return registry.Details{
		Variant:   g.variant.Title(),
		ScoreGoal: g.cfg.Rules.ScoreGoal,
		Extra: map[string]string{
			"speed_ms":   strconv.FormatFloat(g.session.SpeedMs(), 'f', 0, 64),
			"high_score": strconv.Itoa(g.highScore),
			"unlocked":   strconv.FormatBool(g.session.Unlocked()),
			"overlay":    strconv.FormatBool(g.overlay),
			"season":     string(g.signal.Season),
		},
	}
}

// Session exposes the rules engine for tooling and tests.
func (g *Game) Session() *Session { return g.session }

// Variant returns the active variant.
func (g *Game) Variant() Variant { return g.variant }

// SetVariant switches the visual treatment at runtime.
func (g *Game) SetVariant(v Variant) {
	if _, err := ParseVariant(string(v)); err != nil {
		return
	}
	g.variant = v
}

// HighScore returns the best score seen on this store.
func (g *Game) HighScore() int { return g.highScore }

// OverlayOpen reports whether the bypass overlay is showing.
func (g *Game) OverlayOpen() bool { return g.overlay }

// Style returns the visual state for the given render flags.
func (g *Game) Style(throttled, reducedMotion bool) Style {
	return ComputeStyle(StyleInput{
		Variant:       g.variant,
		DayPart:       g.signal.DayPart,
		Throttled:     throttled,
		ReducedMotion: reducedMotion,
		Adj:           g.signal.Adj,
	})
}

func (g *Game) hudLine() string {
	return fmt.Sprintf(" Score: %d  Best: %d  Goal: %d  %s · %s",
		g.session.Score(), g.highScore, g.cfg.Rules.ScoreGoal, g.variant.Title(), g.signal.DayPart)
}

func (g *Game) hintLine() string {
	switch g.session.Phase() {
	case PhaseIdle:
		return " Arrows/WASD or swipe to start"
	case PhasePaused:
		return " Paused - p to resume"
	case PhaseGameOver:
		if g.session.Perfect() {
			return " Perfect! r to play again"
		}
		return " Game over - r to restart"
	default:
		if g.session.Unlocked() {
			return " Unlocked  p pause  v variant"
		}
		return " p pause  v variant"
	}
}
