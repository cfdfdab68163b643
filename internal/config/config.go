// Package config provides YAML-based configuration loading and difficulty
// management for the engine and its games.
package config

import (
	"github.com/ricrios/hero-arcade/internal/grid"
	"github.com/ricrios/hero-arcade/internal/timeofday"
	"github.com/ricrios/hero-arcade/internal/viewport"
)

// EngineConfig contains the options every mounted game recognizes.
type EngineConfig struct {
	Grid             grid.Config              `yaml:"grid"`
	TargetFPS        int                      `yaml:"target_fps"`
	LowFPSThreshold  float64                  `yaml:"low_fps_threshold"`
	ReducedMotion    *bool                    `yaml:"reduced_motion"` // nil = detect from environment
	Parallax         bool                     `yaml:"parallax"`
	Glyph            viewport.Glyph           `yaml:"glyph"`
	ResizeDebounceMs int                      `yaml:"resize_debounce_ms"`
	Seasonal         timeofday.SeasonalConfig `yaml:"seasonal"`
}

// SnakeConfig contains all configuration for the Snake hero game.
type SnakeConfig struct {
	Engine     EngineConfig     `yaml:"engine"`
	Speed      SnakeSpeed       `yaml:"speed"`
	Rules      SnakeRules       `yaml:"rules"`
	Overlay    SnakeOverlay     `yaml:"overlay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Sound      SoundConfig      `yaml:"sound"`
}

// SnakeSpeed defines step timing in milliseconds.
type SnakeSpeed struct {
	BaseMs  int `yaml:"base_ms"`  // Step interval before any biasing
	MinMs   int `yaml:"min_ms"`   // Floor of the composed interval
	FloorMs int `yaml:"floor_ms"` // Hard floor for the step interval
}

// SnakeRules defines gameplay rules.
type SnakeRules struct {
	InitialLength  int `yaml:"initial_length"`
	ScoreGoal      int `yaml:"score_goal"`      // Score that fires the unlock event
	MilestoneEvery int `yaml:"milestone_every"` // Points between milestones
}

// SnakeOverlay defines the non-blocking bypass overlay and visual variant.
type SnakeOverlay struct {
	BypassLabel string `yaml:"bypass_label"`
	Variant     string `yaml:"variant"` // editorial, steelgrid, luxcyberpunk
	ShowBypass  bool   `yaml:"show_bypass"`
}

// SlapConfig contains all configuration for the SLAP drawing game.
type SlapConfig struct {
	Engine  EngineConfig `yaml:"engine"`
	Canvas  SlapCanvas   `yaml:"canvas"`
	Palette SlapPalette  `yaml:"palette"`
	Sound   SoundConfig  `yaml:"sound"`
}

// SlapCanvas defines history and persistence caps.
type SlapCanvas struct {
	HistoryCap     int `yaml:"history_cap"`
	DraftsCap      int `yaml:"drafts_cap"`
	LeaderboardCap int `yaml:"leaderboard_cap"`
	MaxBrush       int `yaml:"max_brush"`
}

// SlapPalette lists the glyphs and colors a brush can use.
type SlapPalette struct {
	Glyphs []string `yaml:"glyphs"`
	Colors []string `yaml:"colors"`
}

// SoundConfig toggles sound effects.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Gain in beep volume units; 0 is unchanged
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "stepped", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
	Step  int    `yaml:"step"`   // Score granularity for "stepped"
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies a difficulty config based on a preset.
// Easy keeps the default curve starting from zero.
func (d *DifficultyConfig) ApplyPreset(preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		d.Enabled = false
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}
