package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this for deterministic simulation; the grid itself comes from
// the engine's sizing pass, not from here.
type RuntimeConfig struct {
	TargetFPS int   // Frame callbacks per second (capped at 60)
	Seed      int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TargetFPS: 60,
		Seed:      0, // 0 means use current time in platform layer
	}
}

// GameState is the coarse state every game reports to its host.
type GameState struct {
	Score    int    // Current score
	Phase    string // Game-specific phase name (idle, running, paused, gameOver)
	GameOver bool   // Whether the game has ended
	Paused   bool   // Whether the game is paused
}
