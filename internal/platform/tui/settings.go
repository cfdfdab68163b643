package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/ricrios/hero-arcade/internal/audio"
	"github.com/ricrios/hero-arcade/internal/config"
	"github.com/ricrios/hero-arcade/internal/engine"
	"github.com/ricrios/hero-arcade/internal/registry"
	"github.com/ricrios/hero-arcade/internal/storage"
	"github.com/ricrios/hero-arcade/internal/timeofday"
	"github.com/ricrios/hero-arcade/internal/viewport"
)

// Settings is what a host needs to build and mount games. One Settings is
// shared by every screen of a session; SSH sessions get their own copy.
type Settings struct {
	// Store backs both the scoreboard and the games' key/value blobs.
	// May be nil, in which case games persist into KV only.
	Store *storage.Store
	KV    storage.KV

	Logger *log.Logger
	Sound  audio.Player

	FPS           int
	Seed          int64
	ConfigPath    string
	Difficulty    config.DifficultyPreset
	Variant       string
	ReducedMotion *bool

	// TimeOfDay pins the day-part; nil follows the clock.
	TimeOfDay *timeofday.Switchable

	Glyph viewport.Glyph
	Mouse bool
}

// WithDefaults fills the in-process fallbacks.
func (s Settings) WithDefaults() Settings {
	if s.KV == nil {
		if s.Store != nil {
			s.KV = s.Store
		} else {
			s.KV = storage.NewMemoryKV()
		}
	}
	if s.Logger == nil {
		s.Logger = log.Default()
	}
	if s.Sound == nil {
		s.Sound = audio.Nop{}
	}
	s.Glyph = s.Glyph.OrDefault()
	return s
}

func (s Settings) scores() storage.ScoreKeeper {
	if s.Store == nil {
		return nil
	}
	return s.Store
}

// Launch builds the game id and mounts it into a cols x rows terminal.
func (s Settings) Launch(id string, cols, rows int) (*engine.Handle, error) {
	s = s.WithDefaults()

	var src timeofday.Source = timeofday.Clock{}
	if s.TimeOfDay != nil {
		src = s.TimeOfDay
	}
	// Seasonal biasing is read from the game's own config after creation.
	binder := timeofday.NewBinder(src, timeofday.SeasonalConfig{})

	game, err := registry.Create(id, registry.Deps{
		Store:      s.KV,
		Time:       binder,
		Sound:      s.Sound,
		Logger:     s.Logger,
		ConfigPath: s.ConfigPath,
		Difficulty: s.Difficulty,
		Variant:    s.Variant,
	})
	if err != nil {
		return nil, err
	}

	cfg := game.EngineConfig()
	binder.Seasonal = cfg.Seasonal
	if s.FPS > 0 {
		cfg.TargetFPS = s.FPS
	}
	if !cfg.Glyph.Valid() {
		cfg.Glyph = s.Glyph
	}

	opts := []engine.Option{
		engine.WithLogger(s.Logger.WithPrefix("engine")),
		engine.WithTime(binder),
		engine.WithSeed(s.Seed),
	}
	if sk := s.scores(); sk != nil {
		opts = append(opts, engine.WithScores(sk))
	}
	if s.ReducedMotion != nil {
		opts = append(opts, engine.WithReducedMotion(*s.ReducedMotion))
	}

	h, err := engine.Mount(NewContainer(cols, rows, cfg.Glyph, s.Mouse), game, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: mount %s: %w", id, err)
	}
	return h, nil
}

// Container is a terminal window seen as an engine mount target.
type Container struct {
	Cols, Rows int
	Glyph      viewport.Glyph
	Mouse      bool
}

// NewContainer creates a terminal container.
func NewContainer(cols, rows int, glyph viewport.Glyph, mouse bool) *Container {
	return &Container{Cols: cols, Rows: rows, Glyph: glyph.OrDefault(), Mouse: mouse}
}

// Env implements engine.Container.
func (c *Container) Env() viewport.Env {
	return viewport.FromTerminal(c.Cols, c.Rows, c.Glyph, c.Mouse)
}
