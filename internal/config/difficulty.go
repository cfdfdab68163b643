package config

import (
	"math"

	"github.com/ricrios/hero-arcade/internal/core"
)

// DifficultyManager turns a score (or elapsed ticks) into a speed-up.
// The level climbs from InitialLevel to 1 along the configured progression.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, floor: core.Clamp(cfg.InitialLevel, 0.0, 1.0)}
}

// IsEnabled reports whether the level moves at all.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// progress is how far along the curve score or ticks are, in [0, 1].
func (d *DifficultyManager) progress(score, ticks int) (float64, bool) {
	span := float64(max(1, d.cfg.Progression.MaxAt))
	switch d.cfg.Progression.Type {
	case "score":
		return float64(score) / span, true
	case "stepped":
		step := max(1, d.cfg.Progression.Step)
		return float64(score-score%step) / span, true
	case "time":
		return float64(ticks) / span, true
	}
	return 0, false
}

// Level returns the difficulty level in [InitialLevel, 1].
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.floor
	}
	p, ok := d.progress(score, ticks)
	if !ok {
		return d.floor
	}
	return d.floor + core.Clamp(p, 0.0, 1.0)*(1-d.floor)
}

// Speed scales base by up to (1 + SpeedMultiplier) at the top level.
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// Multiplier returns the speed-up factor (>= 1) for a score.
// Step intervals are divided by it.
func (d *DifficultyManager) Multiplier(score int) float64 {
	return math.Max(1, d.Speed(1, score, 0))
}
