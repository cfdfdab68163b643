package engine

import (
	"maps"

	"github.com/ricrios/hero-arcade/internal/grid"
	"github.com/ricrios/hero-arcade/internal/timeofday"
)

// Status is a snapshot of a mounted game for hosts and tooling.
type Status struct {
	FPSThrottled  bool
	ReducedMotion bool
	TimeOfDay     timeofday.DayPart
	Season        timeofday.Season
	Variant       string
	ScoreGoal     int

	Score    int
	State    string
	GameOver bool
	Paused   bool

	FPS        float64
	Generation uint64
	Running    bool
	Grid       grid.Spec

	// Extra holds game-specific fields such as the snake speed or the
	// slap brush size.
	Extra map[string]string
}

// Status returns the current snapshot.
func (h *Handle) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()

	sig := h.opts.time.Signal()
	st := h.game.State()
	d := h.game.Details()
	return Status{
		FPSThrottled:  h.loop.Throttled(),
		ReducedMotion: h.reducedMotion,
		TimeOfDay:     sig.DayPart,
		Season:        sig.Season,
		Variant:       d.Variant,
		ScoreGoal:     d.ScoreGoal,
		Score:         st.Score,
		State:         st.Phase,
		GameOver:      st.GameOver,
		Paused:        st.Paused,
		FPS:           h.loop.FPS(),
		Generation:    h.loop.Generation(),
		Running:       h.loop.Running(),
		Grid:          h.surface.Spec(),
		Extra:         maps.Clone(d.Extra),
	}
}
