package snake

import "github.com/ricrios/hero-arcade/internal/core"

// Snapshot captures the complete session state for determinism testing.
type Snapshot struct {
	Cols, Rows int
	Phase      Phase
	Score      int
	Moves      int
	SnakeLen   int
	Head       core.Point
	Dir        core.Direction
	Fruit      core.Point
	SpeedMs    float64
	Unlocked   bool
	Perfect    bool
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Cols:     s.cols,
		Rows:     s.rows,
		Phase:    s.phase,
		Score:    s.score,
		Moves:    s.moves,
		SnakeLen: len(s.body),
		Head:     s.body[0],
		Dir:      s.dir,
		Fruit:    s.fruit,
		SpeedMs:  s.speedMs,
		Unlocked: s.unlocked,
		Perfect:  s.perfect,
	}
}
