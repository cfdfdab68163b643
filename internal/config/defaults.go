package config

import (
	_ "embed"

	"github.com/ricrios/hero-arcade/internal/grid"
	"github.com/ricrios/hero-arcade/internal/timeofday"
	"github.com/ricrios/hero-arcade/internal/viewport"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/slap.yaml
var defaultSlapYAML []byte

// DefaultEngineConfig returns the engine options shared by both games.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Grid:             grid.DefaultConfig(),
		TargetFPS:        60,
		LowFPSThreshold:  50,
		Parallax:         true,
		Glyph:            viewport.DefaultGlyph,
		ResizeDebounceMs: 100,
		Seasonal: timeofday.SeasonalConfig{
			Enabled:    false,
			Hemisphere: timeofday.North,
		},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	eng := DefaultEngineConfig()
	eng.Grid.PaddingPx = 0
	eng.Grid.ReservedUIHeight = 32 // HUD line + control strip
	return SnakeConfig{
		Engine: eng,
		Speed: SnakeSpeed{
			BaseMs:  100,
			MinMs:   60,
			FloorMs: 40,
		},
		Rules: SnakeRules{
			InitialLength:  3,
			ScoreGoal:      5,
			MilestoneEvery: 5,
		},
		Overlay: SnakeOverlay{
			BypassLabel: "Enter site",
			Variant:     "editorial",
			ShowBypass:  true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "stepped",
				MaxAt: 30,
				Step:  5,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.12,
			},
		},
		Sound: SoundConfig{Enabled: false},
	}
}

// DefaultSlapConfig returns the default SLAP configuration.
func DefaultSlapConfig() SlapConfig {
	eng := DefaultEngineConfig()
	eng.Grid.BaselineCells = 24
	eng.Grid.MinCellPx = 8
	eng.Grid.PaddingPx = 0
	eng.Grid.ReservedUIHeight = 32
	eng.Parallax = false
	return SlapConfig{
		Engine: eng,
		Canvas: SlapCanvas{
			HistoryCap:     200,
			DraftsCap:      20,
			LeaderboardCap: 10,
			MaxBrush:       5,
		},
		Palette: SlapPalette{
			Glyphs: []string{"█", "▓", "▒", "░", "●", "○", "■", "□", "▲", "△"},
			Colors: []string{"#00ff9d", "#ff4444", "#44aaff", "#ffaa44", "#aa44ff", "#ffff44", "#44ffaa", "#ffffff"},
		},
		Sound: SoundConfig{Enabled: false},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snake":
		return defaultSnakeYAML
	case "slap":
		return defaultSlapYAML
	default:
		return nil
	}
}
