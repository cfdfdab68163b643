package snake

import (
	"math"

	"github.com/ricrios/hero-arcade/internal/config"
	"github.com/ricrios/hero-arcade/internal/timeofday"
)

// SpeedModel composes the step interval from its biasing inputs.
//
// The one composition order used everywhere:
//
//	speedMs = max(MinMs, round(BaseMs * SpeedFactor(dayPart) / difficulty(score)) + seasonalBiasMs)
//
// It is recomputed on start, on every milestone, and whenever the day-part
// or its seasonal bias changes.
type SpeedModel struct {
	BaseMs int
	MinMs  int

	Difficulty *config.DifficultyManager
}

// NewSpeedModel builds a model from the Snake configuration.
func NewSpeedModel(speed config.SnakeSpeed, diff config.DifficultyConfig) SpeedModel {
	return SpeedModel{
		BaseMs:     speed.BaseMs,
		MinMs:      speed.MinMs,
		Difficulty: config.NewDifficultyManager(diff),
	}
}

// Compose returns the step interval in milliseconds.
func (m SpeedModel) Compose(score int, part timeofday.DayPart, biasMs int) float64 {
	mult := 1.0
	if m.Difficulty != nil {
		mult = m.Difficulty.Multiplier(score)
	}
	ms := math.Round(float64(m.BaseMs)*timeofday.SpeedFactor(part)/mult) + float64(biasMs)
	return math.Max(float64(m.MinMs), ms)
}
